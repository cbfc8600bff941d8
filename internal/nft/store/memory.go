// Package store holds the token ledger and collection metadata.
package store

import (
	"context"
	"sort"
	"sync"

	"originstamp/internal/nft/models"
	"originstamp/pkg/platform/sentinel"
)

const (
	defaultPageSize = 100
	maxPageSize     = 1000
)

// InMemoryStore is a thread-safe in-memory token ledger.
//
// Token IDs come from a strictly increasing counter starting at 1. The
// counter never moves backwards: a mint that is rolled back leaves a gap in
// the ID sequence rather than reusing the value.
type InMemoryStore struct {
	mu         sync.RWMutex
	tokens     map[uint64]*models.Token
	nextID     uint64
	collection models.CollectionMetadata
}

// NewInMemoryStore creates an empty token ledger.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		tokens: make(map[uint64]*models.Token),
		nextID: 1,
		collection: models.CollectionMetadata{
			Name:        "Origin Stamp Art NFTs",
			Description: "NFTs representing physical art pieces authenticated through Origin Stamp",
		},
	}
}

// NextTokenID consumes and returns the next token ID.
func (s *InMemoryStore) NextTokenID(_ context.Context) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	return id, nil
}

// Insert adds a minted token and bumps the collection supply.
func (s *InMemoryStore) Insert(_ context.Context, token *models.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tokens[token.ID]; exists {
		return sentinel.ErrConflict
	}
	s.tokens[token.ID] = cloneToken(token)
	s.collection.TotalSupply++
	return nil
}

// Remove deletes a token and decrements the supply, saturating at zero.
// Removing an absent token is a no-op so mint rollback is idempotent.
func (s *InMemoryStore) Remove(_ context.Context, tokenID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tokens[tokenID]; !exists {
		return nil
	}
	delete(s.tokens, tokenID)
	if s.collection.TotalSupply > 0 {
		s.collection.TotalSupply--
	}
	return nil
}

// FindByID returns a copy of the token or sentinel.ErrNotFound.
func (s *InMemoryStore) FindByID(_ context.Context, tokenID uint64) (*models.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	token, ok := s.tokens[tokenID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneToken(token), nil
}

// TokenIDs returns token IDs ascending, starting after prev when given.
// take defaults to 100 and is capped at 1000.
func (s *InMemoryStore) TokenIDs(_ context.Context, prev, take *uint64) ([]uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]uint64, 0, len(s.tokens))
	for id := range s.tokens {
		ids = append(ids, id)
	}
	return paginate(ids, prev, take), nil
}

// TokensOf returns the account's token IDs ascending, paginated as TokenIDs.
func (s *InMemoryStore) TokensOf(_ context.Context, account models.Account, prev, take *uint64) ([]uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ids []uint64
	for id, token := range s.tokens {
		if token.Owner.Equals(account) {
			ids = append(ids, id)
		}
	}
	return paginate(ids, prev, take), nil
}

// BalanceOf returns each account's token count, positionally.
func (s *InMemoryStore) BalanceOf(_ context.Context, accounts []models.Account) ([]uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	balances := make([]uint64, len(accounts))
	for i, account := range accounts {
		for _, token := range s.tokens {
			if token.Owner.Equals(account) {
				balances[i]++
			}
		}
	}
	return balances, nil
}

// OwnerOf returns each token's owner, positionally, nil for unknown IDs.
func (s *InMemoryStore) OwnerOf(_ context.Context, tokenIDs []uint64) ([]*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	owners := make([]*models.Account, len(tokenIDs))
	for i, id := range tokenIDs {
		if token, ok := s.tokens[id]; ok {
			owner := token.Owner
			owners[i] = &owner
		}
	}
	return owners, nil
}

// MetadataOf returns each token's metadata, positionally, nil for unknown IDs.
func (s *InMemoryStore) MetadataOf(_ context.Context, tokenIDs []uint64) ([]*models.TokenMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.TokenMetadata, len(tokenIDs))
	for i, id := range tokenIDs {
		if token, ok := s.tokens[id]; ok {
			clone := cloneToken(token)
			out[i] = &clone.Metadata
		}
	}
	return out, nil
}

// ListBySession returns tokens minted from a session, ID ascending.
func (s *InMemoryStore) ListBySession(_ context.Context, sessionID string) ([]*models.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Token
	for _, token := range s.tokens {
		if token.SessionID == sessionID {
			out = append(out, cloneToken(token))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ListByOwner returns all tokens held by a user across subaccounts, ID
// ascending.
func (s *InMemoryStore) ListByOwner(_ context.Context, owner string) ([]*models.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Token
	for _, token := range s.tokens {
		if token.Owner.Owner == owner {
			out = append(out, cloneToken(token))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// TotalSupply returns the number of live tokens.
func (s *InMemoryStore) TotalSupply(_ context.Context) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return uint64(len(s.tokens)), nil
}

// Collection returns a copy of the collection metadata.
func (s *InMemoryStore) Collection(_ context.Context) (models.CollectionMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collection, nil
}

// UpdateCollection replaces the descriptive collection fields. TotalSupply
// is ledger-owned and not touched.
func (s *InMemoryStore) UpdateCollection(_ context.Context, name, description, image string, maxSupply *uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.collection.Name = name
	s.collection.Description = description
	s.collection.Image = image
	s.collection.MaxSupply = maxSupply
	return nil
}

// Execute runs validate then mutate on a token under one lock hold.
func (s *InMemoryStore) Execute(
	_ context.Context,
	tokenID uint64,
	validate func(*models.Token) error,
	mutate func(*models.Token),
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok := s.tokens[tokenID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if err := validate(token); err != nil {
		return err
	}
	mutate(token)
	return nil
}

func paginate(ids []uint64, prev, take *uint64) []uint64 {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	start := 0
	if prev != nil {
		start = sort.Search(len(ids), func(i int) bool { return ids[i] > *prev })
	}

	limit := uint64(defaultPageSize)
	if take != nil {
		limit = min(*take, maxPageSize)
	}

	end := start + int(limit)
	if end > len(ids) {
		end = len(ids)
	}
	return append([]uint64(nil), ids[start:end]...)
}

func cloneToken(token *models.Token) *models.Token {
	clone := *token
	clone.Owner.Subaccount = append([]byte(nil), token.Owner.Subaccount...)
	clone.Metadata.Attributes = append([]models.Attribute(nil), token.Metadata.Attributes...)
	return &clone
}
