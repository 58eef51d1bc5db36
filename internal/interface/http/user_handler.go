package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/oksasatya/go-user-accounts/internal/application"
	"github.com/oksasatya/go-user-accounts/internal/interface/http/dto"
	"github.com/oksasatya/go-user-accounts/internal/interface/middleware"
	"github.com/oksasatya/go-user-accounts/pkg/apperror"
	"github.com/oksasatya/go-user-accounts/pkg/response"
)

type UserHandler struct {
	Svc    *userapp.Service
	Logger *logrus.Logger
}

func NewUserHandler(svc *userapp.Service, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

// Me GET /api/users/me
func (h *UserHandler) Me(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		apperror.Abort(c, apperror.New(apperror.TokenNotProvided), h.Logger)
		return
	}
	response.User(c, http.StatusOK, dto.FilterUser(u))
}

// List GET /api/users?page=&limit=
func (h *UserHandler) List(c *gin.Context) {
	var q dto.RequestQueryDTO
	if err := c.ShouldBindQuery(&q); err != nil {
		invalid(c, err)
		return
	}

	page, limit := q.Paging()
	users, err := h.Svc.ListUsers(c.Request.Context(), page, limit)
	if err != nil {
		apperror.Abort(c, err, h.Logger)
		return
	}
	response.Users(c, dto.FilterUsers(users))
}

// Search GET /api/users/search?q=&size=
func (h *UserHandler) Search(c *gin.Context) {
	var q dto.SearchQueryDTO
	if err := c.ShouldBindQuery(&q); err != nil {
		invalid(c, err)
		return
	}

	users, err := h.Svc.SearchUsers(c.Request.Context(), q.Q, q.SizeOrDefault())
	if err != nil {
		apperror.Abort(c, err, h.Logger)
		return
	}
	response.Users(c, dto.FilterUsers(users))
}

// CreateAdmin POST /api/users/admin
func (h *UserHandler) CreateAdmin(c *gin.Context) {
	var req dto.RegisterUserDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, err)
		return
	}

	u, err := h.Svc.RegisterAdmin(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		apperror.Abort(c, err, h.Logger)
		return
	}
	response.User(c, http.StatusCreated, dto.FilterUser(u))
}
