package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"demo-bank/internal/domain"
	"demo-bank/internal/service"
)

// AuthHandler mantiene dependencias para registro, login y logout.
type AuthHandler struct {
	logger        *zap.Logger
	userServ      *service.UserService
	codec         *service.SessionCodec
	secureCookies bool
}

// NewAuthHandler crea una instancia de AuthHandler con dependencias necesarias.
func NewAuthHandler(logger *zap.Logger, userServ *service.UserService, codec *service.SessionCodec, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		logger:        logger,
		userServ:      userServ,
		codec:         codec,
		secureCookies: secureCookies,
	}
}

// Register maneja POST /register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		FirstName string `form:"firstName" json:"firstName"`
		LastName  string `form:"lastName" json:"lastName"`
		Email     string `form:"email" json:"email"`
		Password  string `form:"password" json:"password"`
	}
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("invalid register request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, err := h.userServ.Register(c.Request.Context(), service.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, gin.H{"errors": verr.Fields})
		case errors.Is(err, service.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"message": "An account with this email already exists."})
		default:
			h.logger.Error("register failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "An error occurred while creating your account."})
		}
		return
	}

	if !h.startSession(c, user) {
		return
	}
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

// Login maneja POST /login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `form:"email" json:"email"`
		Password string `form:"password" json:"password"`
	}
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("invalid login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, err := h.userServ.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password."})
			return
		}
		h.logger.Error("login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not log in"})
		return
	}

	if !h.startSession(c, user) {
		return
	}
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

// Logout maneja POST /logout. La cookie se borra; un token ya emitido sigue
// siendo válido hasta su vencimiento original.
func (h *AuthHandler) Logout(c *gin.Context) {
	clearSessionCookie(c, h.secureCookies)
	c.Redirect(http.StatusSeeOther, "/login")
}

// ShowLogin maneja GET /login.
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"page": "login"})
}

// ShowRegister maneja GET /register.
func (h *AuthHandler) ShowRegister(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"page": "register"})
}

func (h *AuthHandler) startSession(c *gin.Context, user domain.User) bool {
	token, _, err := h.codec.Encode(user)
	if err != nil {
		h.logger.Error("session encode failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create session"})
		return false
	}
	setSessionCookie(c, token, int(h.codec.TTL().Seconds()), h.secureCookies)
	return true
}
