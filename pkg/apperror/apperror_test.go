package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Messages(t *testing.T) {
	cases := map[Kind]string{
		EmptyPassword:        "Password cannot be empty",
		WrongCredentials:     "Email or Password is wrong",
		EmailExists:          "Email Already Exists, Please use another email!",
		TokenNotProvided:     "You are not logged in, please provide a token",
		ServerError:          "Server Error. Please try again!",
		UserNoLongerExists:   "User belonging to this token does no longer exist",
		HashingError:         "Error While Hashing password",
		InvalidHashingFormat: "Invalid Password Hashing format",
		PermissionDenied:     "You are not authorized to perform this action",
	}
	for kind, msg := range cases {
		assert.Equal(t, msg, New(kind).Error())
	}
	assert.Equal(t, "Password must not be more than 64 characters", MaxPasswordLength(64).Error())
}

func TestError_Status(t *testing.T) {
	cases := map[Kind]int{
		EmptyPassword:             http.StatusBadRequest,
		ExceededMaxPasswordLength: http.StatusBadRequest,
		WrongCredentials:          http.StatusUnauthorized,
		InvalidToken:              http.StatusUnauthorized,
		TokenNotProvided:          http.StatusUnauthorized,
		PermissionDenied:          http.StatusUnauthorized,
		EmailExists:               http.StatusConflict,
		HashingError:              http.StatusInternalServerError,
		InvalidHashingFormat:      http.StatusInternalServerError,
		ServerError:               http.StatusInternalServerError,
		UserNoLongerExists:        http.StatusInternalServerError,
	}
	for kind, status := range cases {
		assert.Equal(t, status, New(kind).Status(), "kind %d", kind)
	}
}

func TestError_IsMatchesKindThroughWrapping(t *testing.T) {
	err := fmt.Errorf("register: %w", New(EmailExists))
	assert.True(t, errors.Is(err, New(EmailExists)))
	assert.False(t, errors.Is(err, New(WrongCredentials)))
	assert.Equal(t, EmailExists, KindOf(err))
	assert.Equal(t, Kind(0), KindOf(errors.New("plain")))
}

func TestHTTPErrorConstructors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, BadRequest("x").Status)
	assert.Equal(t, http.StatusUnauthorized, Unauthorized("x").Status)
	assert.Equal(t, http.StatusConflict, UniqueConstraintViolation("x").Status)
	assert.Equal(t, http.StatusInternalServerError, ServerErrorHTTP("x").Status)
	assert.Equal(t, 418, NewHTTPError("x", 418).Status)
}

func TestFromError(t *testing.T) {
	he := FromError(New(EmailExists), nil)
	assert.Equal(t, http.StatusConflict, he.Status)
	assert.Equal(t, "Email Already Exists, Please use another email!", he.Message)

	he = FromError(errors.New("pq: connection refused on 10.0.0.3"), nil)
	assert.Equal(t, http.StatusInternalServerError, he.Status)
	assert.Equal(t, New(ServerError).Error(), he.Message)

	orig := BadRequest("bad")
	assert.Same(t, orig, FromError(fmt.Errorf("wrap: %w", orig), nil))
}
