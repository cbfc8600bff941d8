package models

import "time"

// User is a registered account. Passwords are stored as bcrypt hashes only.
type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Permissions is an optional per-user permission record. Absence of a record
// means default-allow; an explicit record can withdraw individual
// capabilities without deleting the account.
type Permissions struct {
	Username              string `json:"username"`
	CanCreateCertificates bool   `json:"can_create_certificates"`
}
