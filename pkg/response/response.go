package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusError   = "error"
)

// DataResponse wraps a single payload: {status, data}.
type DataResponse[T any] struct {
	Status string `json:"status"`
	Data   T      `json:"data"`
}

// UserData is the data object for single-user responses.
type UserData[T any] struct {
	User T `json:"user"`
}

// ListResponse is {status, users, results}.
type ListResponse[T any] struct {
	Status  string `json:"status"`
	Users   []T    `json:"users"`
	Results int    `json:"results"`
}

type TokenResponse struct {
	Status string `json:"status"`
	Token  string `json:"token"`
}

// Response is the bare envelope used for failures and message-only replies.
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

func User[T any](c *gin.Context, status int, user T) {
	if status == 0 {
		status = http.StatusOK
	}
	c.JSON(status, DataResponse[UserData[T]]{Status: StatusSuccess, Data: UserData[T]{User: user}})
}

func Users[T any](c *gin.Context, users []T) {
	if users == nil {
		users = []T{}
	}
	c.JSON(http.StatusOK, ListResponse[T]{Status: StatusSuccess, Users: users, Results: len(users)})
}

func Token(c *gin.Context, token string) {
	c.JSON(http.StatusOK, TokenResponse{Status: StatusSuccess, Token: token})
}

func OK(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Response{Status: StatusSuccess, Message: message})
}

// Error writes a failure envelope and aborts the handler chain.
func Error(c *gin.Context, status int, st string, message string, errs interface{}) {
	c.AbortWithStatusJSON(status, Response{Status: st, Message: message, Errors: errs})
}
