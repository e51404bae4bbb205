package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ldagroup/timetracking/internal/auth"
	"github.com/ldagroup/timetracking/internal/httperr"
	"github.com/ldagroup/timetracking/internal/ratelimit"
)

type AuthHandler struct {
	verifier auth.Verifier
	tokens   *auth.TokenManager
	limiter  ratelimit.Limiter
}

func NewAuthHandler(verifier auth.Verifier, tokens *auth.TokenManager, limiter ratelimit.Limiter) *AuthHandler {
	return &AuthHandler{verifier: verifier, tokens: tokens, limiter: limiter}
}

// --------- Requests ---------

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	if h.limiter != nil {
		allowed, err := h.limiter.Allow(c.Request.Context(), "login:"+c.ClientIP())
		if err != nil {
			log.Printf("login rate limiter unavailable, allowing: %v", err)
		} else if !allowed {
			httperr.Write(c, http.StatusTooManyRequests, "too_many_login_attempts", "Too many login attempts, try again later.")
			return
		}
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Username and password are required.")
		return
	}

	principal, err := h.verifier.Verify(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	token, expiresAt, err := h.tokens.Generate(principal)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Failed to generate token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Admin login successful",
		"token":      token,
		"expires_at": expiresAt,
		"user":       principal,
	})
}
