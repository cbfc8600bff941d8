package models

import (
	dErrors "originstamp/pkg/domain-errors"
)

// Tier represents a user's subscription level. The tier controls upload
// quotas and NFT minting eligibility through its Limits.
type Tier string

const (
	TierFree       Tier = "free"
	TierBasic      Tier = "basic"
	TierPremium    Tier = "premium"
	TierEnterprise Tier = "enterprise"
)

// Limits is the fixed entitlement set derived from a tier.
type Limits struct {
	MaxPhotos         int  `json:"max_photos"`
	MaxTotalSizeMB    int  `json:"max_total_size_mb"`
	NFTMintingAllowed bool `json:"nft_minting_allowed"`
	Priority          bool `json:"priority"`
}

// tierLimits is the single source of truth for the tier → limits mapping.
// The mapping itself is immutable; a user's tier changes through the registry.
var tierLimits = map[Tier]Limits{
	TierFree:       {MaxPhotos: 5, MaxTotalSizeMB: 50, NFTMintingAllowed: false, Priority: false},
	TierBasic:      {MaxPhotos: 25, MaxTotalSizeMB: 250, NFTMintingAllowed: true, Priority: false},
	TierPremium:    {MaxPhotos: 100, MaxTotalSizeMB: 1000, NFTMintingAllowed: true, Priority: true},
	TierEnterprise: {MaxPhotos: 500, MaxTotalSizeMB: 5000, NFTMintingAllowed: true, Priority: true},
}

// tierOrder drives upgrade suggestions in quota errors.
var tierOrder = []Tier{TierFree, TierBasic, TierPremium, TierEnterprise}

// ParseTier constructs a Tier from external input, validating it.
func ParseTier(s string) (Tier, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "tier cannot be empty")
	}
	t := Tier(s)
	if !t.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid tier: must be free, basic, premium or enterprise")
	}
	return t, nil
}

// IsValid checks if the tier is one of the supported enum values.
func (t Tier) IsValid() bool {
	_, ok := tierLimits[t]
	return ok
}

// Limits returns the entitlements for the tier. Unknown tiers fall back to
// the free tier so a corrupt registry entry can never widen access.
func (t Tier) Limits() Limits {
	if limits, ok := tierLimits[t]; ok {
		return limits
	}
	return tierLimits[TierFree]
}

// Next returns the next tier up, or the tier itself when already at the top.
// Used for upgrade hints in quota and minting errors.
func (t Tier) Next() Tier {
	for i, tier := range tierOrder {
		if tier == t && i+1 < len(tierOrder) {
			return tierOrder[i+1]
		}
	}
	return t
}

// String returns the string representation.
func (t Tier) String() string {
	return string(t)
}
