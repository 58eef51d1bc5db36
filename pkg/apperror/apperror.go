package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is one of the closed set of domain failures that may be shown to a client.
type Kind int

const (
	EmptyPassword Kind = iota + 1
	ExceededMaxPasswordLength
	HashingError
	InvalidHashingFormat
	InvalidToken
	ServerError
	WrongCredentials
	EmailExists
	UserNoLongerExists
	TokenNotProvided
	PermissionDenied
)

// Error is a domain error. MaxLength is only meaningful for ExceededMaxPasswordLength.
type Error struct {
	Kind      Kind
	MaxLength int
}

func New(kind Kind) *Error {
	return &Error{Kind: kind}
}

func MaxPasswordLength(n int) *Error {
	return &Error{Kind: ExceededMaxPasswordLength, MaxLength: n}
}

func (e *Error) Error() string {
	switch e.Kind {
	case EmptyPassword:
		return "Password cannot be empty"
	case ExceededMaxPasswordLength:
		return fmt.Sprintf("Password must not be more than %d characters", e.MaxLength)
	case HashingError:
		return "Error While Hashing password"
	case InvalidHashingFormat:
		return "Invalid Password Hashing format"
	case InvalidToken:
		return "Authentication token is invalid or expired"
	case WrongCredentials:
		return "Email or Password is wrong"
	case EmailExists:
		return "Email Already Exists, Please use another email!"
	case UserNoLongerExists:
		return "User belonging to this token does no longer exist"
	case TokenNotProvided:
		return "You are not logged in, please provide a token"
	case PermissionDenied:
		return "You are not authorized to perform this action"
	default:
		return "Server Error. Please try again!"
	}
}

// Is matches any *Error with the same Kind, so errors.Is(err, New(EmailExists)) works.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Status is the HTTP status each kind renders with.
func (e *Error) Status() int {
	switch e.Kind {
	case EmptyPassword, ExceededMaxPasswordLength:
		return http.StatusBadRequest
	case WrongCredentials, InvalidToken, TokenNotProvided, PermissionDenied:
		return http.StatusUnauthorized
	case EmailExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// KindOf extracts the Kind of err, or 0 when err is not a domain error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
