package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func limitedEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(RealIP())
	r.POST("/login", append(mw, func(c *gin.Context) { c.Status(http.StatusOK) })...)
	return r
}

func doPost(r http.Handler, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.Header.Set("X-Forwarded-For", ip)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRateLimit_RejectsOverCapacity(t *testing.T) {
	_, rdb := newTestRedis(t)
	r := limitedEngine(RateLimit(rdb, 2, time.Minute, KeyByIP(), nil))

	rec := doPost(r, "203.0.113.7")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Remaining"))

	require.Equal(t, http.StatusOK, doPost(r, "203.0.113.7").Code)

	rec = doPost(r, "203.0.113.7")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"status":"fail","message":"`+RateLimitMessage+`"}`, rec.Body.String())
}

func TestRateLimit_KeysAreIndependentPerClient(t *testing.T) {
	_, rdb := newTestRedis(t)
	r := limitedEngine(RateLimit(rdb, 1, time.Minute, KeyByIPAndPath(), nil))

	assert.Equal(t, http.StatusOK, doPost(r, "203.0.113.7").Code)
	assert.Equal(t, http.StatusOK, doPost(r, "203.0.113.8").Code)
	assert.Equal(t, http.StatusTooManyRequests, doPost(r, "203.0.113.7").Code)
}

func TestRateLimit_WindowExpires(t *testing.T) {
	mr, rdb := newTestRedis(t)
	r := limitedEngine(RateLimit(rdb, 1, time.Minute, KeyByIP(), nil))

	require.Equal(t, http.StatusOK, doPost(r, "203.0.113.7").Code)
	require.Equal(t, http.StatusTooManyRequests, doPost(r, "203.0.113.7").Code)

	mr.FastForward(time.Minute + time.Second)
	assert.Equal(t, http.StatusOK, doPost(r, "203.0.113.7").Code)
}

func TestRateLimit_AllowPrivateIPBypasses(t *testing.T) {
	_, rdb := newTestRedis(t)
	r := limitedEngine(RateLimit(rdb, 1, time.Minute, KeyByIP(), AllowPrivateIP()))

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, doPost(r, "10.0.0.5").Code)
	}
	assert.Equal(t, http.StatusOK, doPost(r, "203.0.113.7").Code)
	assert.Equal(t, http.StatusTooManyRequests, doPost(r, "203.0.113.7").Code)
}

func TestRateLimit_FailsOpenWhenRedisDown(t *testing.T) {
	mr, rdb := newTestRedis(t)
	r := limitedEngine(RateLimit(rdb, 1, time.Minute, KeyByIP(), nil))
	mr.Close()

	assert.Equal(t, http.StatusOK, doPost(r, "203.0.113.7").Code)
	assert.Equal(t, http.StatusOK, doPost(r, "203.0.113.7").Code)
}

func TestRateLimit_NilClientIsPassThrough(t *testing.T) {
	r := limitedEngine(RateLimit(nil, 1, time.Minute, KeyByIP(), nil))

	assert.Equal(t, http.StatusOK, doPost(r, "203.0.113.7").Code)
	assert.Equal(t, http.StatusOK, doPost(r, "203.0.113.7").Code)
}

func TestRealIP_PrefersCloudflareHeader(t *testing.T) {
	r := gin.New()
	r.Use(RealIP())
	var got string
	r.GET("/", func(c *gin.Context) { got = c.GetString(CtxRealIPKey) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("CF-Connecting-IP", "198.51.100.1")
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	r.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "198.51.100.1", got)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	r.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "203.0.113.7", got)
}
