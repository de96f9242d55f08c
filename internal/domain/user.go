package domain

import "time"

// User is the account record owned by the identity service. The numeric ID
// is the canonical subject carried in every issued credential.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Role         RoleName
	Blocked      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
