package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-accounts/internal/domain/entity"
	"github.com/oksasatya/go-user-accounts/pkg/apperror"
	"github.com/oksasatya/go-user-accounts/pkg/helpers"
)

const (
	CtxUserIDKey = "userID"
	CtxUserKey   = "currentUser"
)

// TokenVerifier resolves a login token to the user id it was issued for.
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}

// UserLoader loads the user a verified token belongs to.
type UserLoader interface {
	CurrentUser(ctx context.Context, userID string) (*entity.User, error)
}

// Auth reads the bearer token (header first, then the token cookie),
// verifies it and loads its user into the Gin context.
func Auth(tokens TokenVerifier, users UserLoader, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, err := tokens.VerifyToken(tokenFromRequest(c))
		if err != nil {
			apperror.Abort(c, err, logger)
			return
		}
		u, err := users.CurrentUser(c.Request.Context(), uid)
		if err != nil {
			apperror.Abort(c, err, logger)
			return
		}

		c.Set(CtxUserIDKey, u.ID)
		c.Set(CtxUserKey, u)
		c.Next()
	}
}

// RequireRole lets the request through only when the authenticated user
// holds one of roles. Must run after Auth.
func RequireRole(logger *logrus.Logger, roles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			apperror.Abort(c, apperror.New(apperror.TokenNotProvided), logger)
			return
		}
		for _, r := range roles {
			if u.Role == r {
				c.Next()
				return
			}
		}
		apperror.Abort(c, apperror.New(apperror.PermissionDenied), logger)
	}
}

// CurrentUser returns the user set by Auth.
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(CtxUserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*entity.User)
	return u, ok && u != nil
}

func tokenFromRequest(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		if after, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(after)
		}
	}
	if tok, err := c.Cookie(helpers.TokenCookie); err == nil {
		return tok
	}
	return ""
}
