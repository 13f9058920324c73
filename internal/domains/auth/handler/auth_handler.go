package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"blogcms-backend/internal/domains/auth"
	"blogcms-backend/internal/shared/response"
	"blogcms-backend/pkg/cache"
	"blogcms-backend/pkg/logger"
	"blogcms-backend/pkg/token"
)

const (
	failedLoginKeyPrefix = "auth:failed:"
	failedLoginWindow    = 15 * time.Minute
	maxFailedLogins      = 5
)

// AuthHandler drives the two-state gate: login issues the trust
// marker, logout revokes it, verify reports which state the caller
// is in.
type AuthHandler struct {
	verifier   auth.Verifier
	issuer     token.Issuer
	cache      cache.Cache // nil disables login throttling
	cookieName string
	secure     bool
}

func NewAuthHandler(verifier auth.Verifier, issuer token.Issuer, c cache.Cache, cookieName string, secure bool) *AuthHandler {
	return &AuthHandler{
		verifier:   verifier,
		issuer:     issuer,
		cache:      c,
		cookieName: cookieName,
		secure:     secure,
	}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /api/v1/auth/login.
// On a match the marker cookie is set http-only, same-site-lax,
// secure in production, with a 7-day max-age.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	throttleKey := failedLoginKeyPrefix + c.ClientIP()
	if h.throttled(c, throttleKey) {
		response.Error(c, http.StatusTooManyRequests, auth.ErrTooManyAttempts.Error(), nil)
		return
	}

	if !h.verifier.Verify(req.Username, req.Password) {
		h.recordFailure(c, throttleKey)
		// No hint about which credential component failed.
		response.Error(c, http.StatusUnauthorized, auth.ErrInvalidCredentials.Error(), nil)
		return
	}

	marker, err := h.issuer.Issue()
	if err != nil {
		logger.Error("failed to issue marker", err)
		response.Error(c, http.StatusInternalServerError, "Internal server error", nil)
		return
	}

	if h.cache != nil {
		_ = h.cache.Delete(c.Request.Context(), throttleKey)
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		h.cookieName,               // cookie name
		marker,                     // trust marker
		int(token.MarkerTTL/time.Second), // 7 days
		"/",                        // path
		"",                         // domain
		h.secure,                   // secure in production
		true,                       // http-only
	)

	response.Success(c, http.StatusOK, "Login successful", gin.H{
		"admin": gin.H{"username": req.Username},
	})
}

// Logout handles POST /api/v1/auth/logout. Revocation is immediate:
// the cookie is expired on the spot.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, "", -1, "/", "", h.secure, true)

	response.Success(c, http.StatusOK, "Logout successful", nil)
}

// Verify handles GET /api/v1/auth/verify.
func (h *AuthHandler) Verify(c *gin.Context) {
	marker, err := c.Cookie(h.cookieName)
	if err != nil || !h.issuer.Verify(marker) {
		c.JSON(http.StatusUnauthorized, gin.H{"authenticated": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"authenticated": true})
}

func (h *AuthHandler) throttled(c *gin.Context, key string) bool {
	if h.cache == nil {
		return false
	}

	var count int64
	found, err := h.cache.Get(c.Request.Context(), key, &count)
	if err != nil {
		// Redis trouble must not lock admins out.
		logger.Warn("failed to read login counter", map[string]interface{}{"error": err.Error()})
		return false
	}

	return found && count >= maxFailedLogins
}

func (h *AuthHandler) recordFailure(c *gin.Context, key string) {
	if h.cache == nil {
		return
	}

	ctx := c.Request.Context()
	count, err := h.cache.Increment(ctx, key)
	if err != nil {
		logger.Warn("failed to record login failure", map[string]interface{}{"error": err.Error()})
		return
	}

	if count == 1 {
		_ = h.cache.Expire(ctx, key, failedLoginWindow)
	}
}
