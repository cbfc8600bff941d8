package models

import (
	"bytes"
	"time"
)

// Account identifies a token holder. Subaccount distinguishes multiple
// holdings under one user and is part of ownership equality.
type Account struct {
	Owner      string `json:"owner"`
	Subaccount []byte `json:"subaccount,omitempty"`
}

// Equals reports whether two accounts are the same holder.
func (a Account) Equals(other Account) bool {
	return a.Owner == other.Owner && bytes.Equal(a.Subaccount, other.Subaccount)
}

// Attribute is a single trait on a token. Attribute order is meaningful and
// preserved: progress photos appear in upload order.
type Attribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

// TokenMetadata is the descriptive payload of a token.
type TokenMetadata struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Image       string      `json:"image,omitempty"`
	Attributes  []Attribute `json:"attributes"`
}

// Token is a minted NFT. IDs are assigned from a strictly increasing
// counter; an ID consumed by a rolled-back mint is never reused.
type Token struct {
	ID        uint64        `json:"id"`
	Owner     Account       `json:"owner"`
	Metadata  TokenMetadata `json:"metadata"`
	CreatedAt time.Time     `json:"created_at"`
	SessionID string        `json:"session_id,omitempty"`
}

// CollectionMetadata describes the token collection as a whole.
type CollectionMetadata struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Image       string  `json:"image,omitempty"`
	TotalSupply uint64  `json:"total_supply"`
	MaxSupply   *uint64 `json:"max_supply,omitempty"`
}

// TransferRequest asks to move one token between accounts.
type TransferRequest struct {
	TokenID uint64  `json:"token_id"`
	From    Account `json:"from"`
	To      Account `json:"to"`
}

// TransferResponse reports the outcome for one transfer request. Error is
// empty on success. Transfers in a batch succeed or fail independently.
type TransferResponse struct {
	TokenID uint64 `json:"token_id"`
	Error   string `json:"error,omitempty"`
}

// MintRequest is the input to minting a token directly from a session.
type MintRequest struct {
	SessionID            string      `json:"session_id"`
	Recipient            Account     `json:"recipient"`
	AdditionalAttributes []Attribute `json:"additional_attributes,omitempty"`
}
