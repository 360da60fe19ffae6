package api

import (
	"net/http"

	"github.com/Domenick1991/spaceflights/internal/middleware"
	"github.com/Domenick1991/spaceflights/internal/service/auth"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service auth.AuthUseCase
}

type registerRequest struct {
	Email     string  `json:"email" binding:"required,email"`
	Username  string  `json:"username" binding:"required,max=150"`
	Password  string  `json:"password" binding:"required"`
	BirthDate *string `json:"birth_date"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID        int64   `json:"id"`
	Email     string  `json:"email"`
	Username  string  `json:"username"`
	BirthDate *string `json:"birth_date"`
}

func NewAuthHandler(service auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register mounts /register/ and /login/ on public (behind limit) and /logout/ on protected.
func (h *AuthHandler) Register(public, protected *gin.RouterGroup, limit gin.HandlerFunc) {
	public.POST("/register/", limit, h.register)
	public.POST("/login/", limit, h.login)
	protected.POST("/logout/", h.logout)
}

func (h *AuthHandler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	birthDate, err := parseOptionalDate("birth_date", req.BirthDate)
	if err != nil {
		writeError(c, err)
		return
	}

	user, err := h.service.Register(c.Request.Context(), auth.RegisterInput{
		Email:     req.Email,
		Username:  req.Username,
		Password:  req.Password,
		BirthDate: birthDate,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	resp := userResponse{ID: user.ID, Email: user.Email, Username: user.Username}
	if user.BirthDate != nil {
		s := formatDate(*user.BirthDate)
		resp.BirthDate = &s
	}
	c.JSON(http.StatusCreated, resp)
}

// login answers 403 {"message":"Login failed"} for any credential problem, including a malformed body.
func (h *AuthHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusForbidden, gin.H{"message": "Login failed"})
		return
	}

	user, err := h.service.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	pair, err := h.service.IssueTokens(user)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

func (h *AuthHandler) logout(c *gin.Context) {
	claims, ok := middleware.Claims(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Authentication credentials were not provided.", nil)
		return
	}
	if err := h.service.Revoke(c.Request.Context(), claims); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
