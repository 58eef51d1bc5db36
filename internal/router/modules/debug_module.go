package modules

import (
	"encoding/json"
	"expvar"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-user-accounts/internal/interface/middleware"
)

// DebugModule exposes the named expvar counters at /api/debug/vars.
// Process vars such as cmdline and memstats are never published.
type DebugModule struct {
	Redis *redis.Client
	Vars  []string
}

func NewDebugModule(rdb *redis.Client, vars ...string) *DebugModule {
	return &DebugModule{Redis: rdb, Vars: vars}
}

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByIP(), nil)
	rg.GET("/debug/vars", rl, m.vars)
}

func (m *DebugModule) vars(c *gin.Context) {
	out := make(map[string]json.RawMessage, len(m.Vars))
	for _, name := range m.Vars {
		if v := expvar.Get(name); v != nil {
			out[name] = json.RawMessage(v.String())
		}
	}
	c.JSON(http.StatusOK, out)
}
