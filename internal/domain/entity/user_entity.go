package entity

import (
	"time"
)

// User is the aggregate root for the user domain.
// Password always holds an argon2id hash record, never plaintext.
type User struct {
	ID        string
	Name      string
	Email     string
	Password  string
	Role      Role
	Photo     string
	Verified  bool
	CreatedAt *time.Time
	UpdatedAt *time.Time
}
