package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() { gin.SetMode(gin.TestMode) }

func record(fn func(c *gin.Context)) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	fn(c)
	return rec
}

type pub struct {
	Name string `json:"name"`
}

func TestUser(t *testing.T) {
	rec := record(func(c *gin.Context) { User(c, http.StatusCreated, pub{Name: "Ada"}) })
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"status":"success","data":{"user":{"name":"Ada"}}}`, rec.Body.String())

	rec = record(func(c *gin.Context) { User(c, 0, pub{Name: "Ada"}) })
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUsers_NilIsEmptyList(t *testing.T) {
	rec := record(func(c *gin.Context) { Users[pub](c, nil) })
	assert.JSONEq(t, `{"status":"success","users":[],"results":0}`, rec.Body.String())
}

func TestTokenAndOK(t *testing.T) {
	rec := record(func(c *gin.Context) { Token(c, "abc") })
	assert.JSONEq(t, `{"status":"success","token":"abc"}`, rec.Body.String())

	rec = record(func(c *gin.Context) { OK(c, "") })
	assert.JSONEq(t, `{"status":"success"}`, rec.Body.String())
}

func TestError_Aborts(t *testing.T) {
	var aborted bool
	rec := record(func(c *gin.Context) {
		Error(c, http.StatusBadRequest, StatusFail, "Validation failed", []string{"x"})
		aborted = c.IsAborted()
	})
	assert.True(t, aborted)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"status":"fail","message":"Validation failed","errors":["x"]}`, rec.Body.String())
}
