package models

import "time"

// Status is the lifecycle state of an issued certificate.
//
// Certificates are never deleted. The only mutation after issuance is the
// NFT link-back; status changes to expired/revoked are administrative.
type Status string

const (
	StatusActive  Status = "active"
	StatusExpired Status = "expired"
	StatusRevoked Status = "revoked"
)

// IsValid checks if the status is one of the supported enum values.
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusExpired, StatusRevoked:
		return true
	}
	return false
}

// String returns the string representation.
func (s Status) String() string {
	return string(s)
}

// Scores is the authenticity score block computed at issuance from the
// session's photo evidence. All four values are monotonically non-decreasing
// in photo count, each capped at a fixed bonus above its baseline.
type Scores struct {
	Verification   int `json:"verification_score"`
	Authenticity   int `json:"authenticity_rating"`
	Provenance     int `json:"provenance_score"`
	CommunityTrust int `json:"community_trust"`
}

// Metadata captures the creation facts a certificate attests beyond the
// session photos.
type Metadata struct {
	CreationDuration string   `json:"creation_duration"`
	TotalActions     int      `json:"total_actions"`
	TotalSize        string   `json:"total_size"`
	FileFormat       string   `json:"file_format"`
	CreationTools    []string `json:"creation_tools"`
}

// NFTLink records the token minted from a certificate. At most one token may
// ever be linked; its presence is the AlreadyMinted guard.
type NFTLink struct {
	TokenID  uint64 `json:"token_id"`
	TokenURI string `json:"token_uri"`
}

// Certificate is an issued attestation binding a creation session to
// authenticity scores and verification hashes.
type Certificate struct {
	CertificateID    string    `json:"certificate_id"`
	SessionID        string    `json:"session_id"`
	OwnerUsername    string    `json:"owner_username"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	IssueDate        time.Time `json:"issue_date"`
	ExpiryDate       time.Time `json:"expiry_date"`
	VerificationHash string    `json:"verification_hash"`
	LedgerTxHash     string    `json:"ledger_tx_hash"`
	QRCodeData       string    `json:"qr_code_data"`
	VerificationURL  string    `json:"verification_url"`
	CertificateType  string    `json:"certificate_type"`
	Issuer           string    `json:"issuer"`
	Ledger           string    `json:"ledger"`
	TokenStandard    string    `json:"token_standard"`
	Status           Status    `json:"status"`
	Scores           Scores    `json:"scores"`
	Metadata         Metadata  `json:"metadata"`
	NFTLink          *NFTLink  `json:"nft_link,omitempty"`
}

// Expired reports whether the certificate is past its expiry at the given time.
func (c *Certificate) Expired(now time.Time) bool {
	return now.After(c.ExpiryDate)
}

// IssueRequest is the caller-supplied input to certificate issuance.
// FileSizes is optional: when present it holds per-file sizes in bytes and
// replaces the photo-count based size estimate in quota checks.
type IssueRequest struct {
	SessionID               string   `json:"session_id"`
	Username                string   `json:"username"`
	Title                   string   `json:"title"`
	Description             string   `json:"description"`
	PhotoCount              int      `json:"photo_count"`
	CreationDurationMinutes int      `json:"creation_duration_minutes"`
	FileFormat              string   `json:"file_format"`
	CreationTools           []string `json:"creation_tools"`
	FileSizes               []uint64 `json:"file_sizes,omitempty"`
}

// VerificationOutcome is the read-side result of checking a certificate.
type VerificationOutcome struct {
	Valid            bool      `json:"valid"`
	Score            int       `json:"score"`
	Reason           string    `json:"reason,omitempty"`
	CertificateID    string    `json:"certificate_id"`
	VerificationHash string    `json:"verification_hash,omitempty"`
	LedgerTxHash     string    `json:"ledger_tx_hash,omitempty"`
	CheckedAt        time.Time `json:"checked_at"`
}

// Verification failure reasons.
const (
	ReasonExpired        = "expired"
	ReasonInactiveStatus = "inactive_status"
)
