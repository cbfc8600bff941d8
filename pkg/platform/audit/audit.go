// Package audit defines the event shape emitted from domain logic for
// security-relevant operations. Events are transport-agnostic so sinks can
// fan out without touching the services that emit them.
package audit

import "time"

// EventCategory classifies audit events by their primary purpose.
type EventCategory string

const (
	// CategoryCompliance covers events with legal significance, such as
	// certificate issuance and token transfers. These need long retention.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers events relevant to security monitoring.
	// Examples: failed logins, permission denials, lock contention.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers events useful for debugging and
	// operational visibility.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions.
type Event struct {
	Category  EventCategory
	Timestamp time.Time
	Username  string
	Action    string
	Resource  string
	Decision  string
	Reason    string
	// RequestID is the correlation ID from the HTTP request context.
	RequestID string
}

// Well-known audit actions.
const (
	ActionCertificateIssued = "certificate_issued"
	ActionCertificateLinked = "certificate_nft_linked"
	ActionNFTMinted         = "nft_minted"
	ActionNFTMintRolledBack = "nft_mint_rolled_back"
	ActionNFTTransferred    = "nft_transferred"
	ActionUserRegistered    = "user_registered"
	ActionLoginFailed       = "login_failed"
	ActionTierChanged       = "tier_changed"
)
