package modules

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

// Check probes one dependency.
type Check func(ctx context.Context) error

type checkResult struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// HealthModule serves GET /api/healthz: 200 when every check passes, 503 otherwise.
type HealthModule struct {
	Checks map[string]Check
}

func NewHealthModule(checks map[string]Check) *HealthModule {
	return &HealthModule{Checks: checks}
}

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/healthz", m.handle)
}

func (m *HealthModule) handle(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	names := make([]string, 0, len(m.Checks))
	for name := range m.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status, code := "healthy", http.StatusOK
	results := make(map[string]checkResult, len(names))
	for _, name := range names {
		if err := m.Checks[name](ctx); err != nil {
			results[name] = checkResult{Status: "down", Error: err.Error()}
			status, code = "unhealthy", http.StatusServiceUnavailable
			continue
		}
		results[name] = checkResult{Status: "up"}
	}
	c.JSON(code, gin.H{"status": status, "checks": results})
}
