package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/go-user-accounts/internal/domain/entity"
)

var (
	// ErrDuplicateEmail is returned by the Save methods when the email is already taken.
	ErrDuplicateEmail = errors.New("email already exists")
	// ErrNoSelector is returned by GetUser when the selector was not built with ByID, ByName or ByEmail.
	ErrNoSelector = errors.New("user selector is empty")
)

// SelectorField names the column a UserSelector matches on.
type SelectorField int

const (
	selectNone SelectorField = iota
	SelectByID
	SelectByName
	SelectByEmail
)

// UserSelector picks exactly one lookup column for GetUser.
type UserSelector struct {
	Field SelectorField
	Value string
}

func ByID(id string) UserSelector       { return UserSelector{Field: SelectByID, Value: id} }
func ByName(name string) UserSelector   { return UserSelector{Field: SelectByName, Value: name} }
func ByEmail(email string) UserSelector { return UserSelector{Field: SelectByEmail, Value: email} }

// UserRepository defines the store operations on users.
// GetUser returns (nil, nil) when nothing matches.
type UserRepository interface {
	GetUser(ctx context.Context, sel UserSelector) (*entity.User, error)
	GetUsers(ctx context.Context, page, limit int) ([]entity.User, error)
	SaveUser(ctx context.Context, name, email, hashedPassword string) (*entity.User, error)
	SaveAdminUser(ctx context.Context, name, email, hashedPassword string) (*entity.User, error)
}

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 50
)

// NormalizePage clamps paging input to a 1-based page and a limit in [1, MaxPageLimit].
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	switch {
	case limit == 0:
		limit = DefaultPageLimit
	case limit < 1:
		limit = 1
	case limit > MaxPageLimit:
		limit = MaxPageLimit
	}
	return page, limit
}
