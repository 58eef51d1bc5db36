package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-user-accounts/internal/interface/http"
	"github.com/oksasatya/go-user-accounts/internal/interface/middleware"
)

// UserModule serves the token-protected user routes.
// Any user: GET /api/users/me
// Admin: GET /api/users, GET /api/users/search, POST /api/users/admin
type UserModule struct {
	Handler *handlers.UserHandler
	Auth    gin.HandlerFunc
	Admin   gin.HandlerFunc
	Redis   *redis.Client
}

func NewUserModule(h *handlers.UserHandler, auth, admin gin.HandlerFunc, rdb *redis.Client) *UserModule {
	return &UserModule{Handler: h, Auth: auth, Admin: admin, Redis: rdb}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.Use(m.Auth)
	users.Use(middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		users.GET("/me", m.Handler.Me)
	}

	admin := users.Group("")
	admin.Use(m.Admin)
	{
		admin.GET("", m.Handler.List)
		admin.GET("/search", m.Handler.Search)
		admin.POST("/admin", m.Handler.CreateAdmin)
	}
}
