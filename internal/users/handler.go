package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-optimizer/internal/shared/server/middleware"
	"resume-optimizer/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterPublicRoutes attaches routes that do not require a token.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/register", h.register)
	rg.POST("/auth/login", h.login)
}

// RegisterRoutes attaches routes behind the auth middleware.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/profile", h.profile)
	rg.POST("/auth/logout", h.logout)
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	result, err := h.Svc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.fail(c, err, "Server error during registration")
		return
	}
	respond.Message(c, http.StatusCreated, "User registered successfully", result)
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	result, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err, "Server error during login")
		return
	}
	respond.Message(c, http.StatusOK, "Login successful", result)
}

func (h *Handler) profile(c *gin.Context) {
	user, err := h.Svc.GetByID(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		h.fail(c, err, "Failed to load profile")
		return
	}
	respond.OK(c, user.Profile())
}

func (h *Handler) logout(c *gin.Context) {
	respond.Message(c, http.StatusOK, "Logged out successfully", nil)
}

func (h *Handler) fail(c *gin.Context, err error, message string) {
	var verr *validationError
	switch {
	case errors.As(err, &verr):
		respond.Error(c, http.StatusBadRequest, verr.message)
	case errors.Is(err, ErrEmailTaken):
		respond.Error(c, http.StatusBadRequest, ErrEmailTaken.Error())
	case errors.Is(err, ErrInvalidCredentials):
		respond.Error(c, http.StatusUnauthorized, ErrInvalidCredentials.Error())
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "User not found")
	default:
		respond.Internal(c, message, err)
	}
}
