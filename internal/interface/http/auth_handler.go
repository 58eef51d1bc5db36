package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/oksasatya/go-user-accounts/internal/application"
	"github.com/oksasatya/go-user-accounts/internal/interface/http/dto"
	"github.com/oksasatya/go-user-accounts/pkg/apperror"
	"github.com/oksasatya/go-user-accounts/pkg/helpers"
	"github.com/oksasatya/go-user-accounts/pkg/response"
	"github.com/oksasatya/go-user-accounts/pkg/validation"
)

const ValidationFailed = "Validation failed"

type AuthHandler struct {
	Svc     *userapp.Service
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewAuthHandler(svc *userapp.Service, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterUserDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, err)
		return
	}

	u, err := h.Svc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		apperror.Abort(c, err, h.Logger)
		return
	}
	response.User(c, http.StatusCreated, dto.FilterUser(u))
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginUserDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, err)
		return
	}

	token, exp, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		apperror.Abort(c, err, h.Logger)
		return
	}
	h.Cookies.SetToken(c, token, exp)
	response.Token(c, token)
}

// Logout POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	response.OK(c, "")
}

func invalid(c *gin.Context, err error) {
	response.Error(c, http.StatusBadRequest, response.StatusFail, ValidationFailed, validation.ToFieldErrors(err))
}
