package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Domenick1991/spaceflights/internal/domain"
	"github.com/Domenick1991/spaceflights/internal/logging"
	"github.com/Domenick1991/spaceflights/internal/service/auth"
	"github.com/gin-gonic/gin"
)

const (
	ctxUserIDKey = "user_id"
	ctxClaimsKey = "claims"
)

type TokenVerifier interface {
	Verify(ctx context.Context, raw string) (*auth.Claims, error)
}

// Auth requires a valid "Authorization: Bearer <access token>" header.
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortWithError(c, http.StatusUnauthorized, "Authentication credentials were not provided.")
			return
		}

		claims, err := verifier.Verify(c.Request.Context(), raw)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthenticated) {
				abortWithError(c, http.StatusUnauthorized, "Given token not valid for any token type")
				return
			}
			logging.Ctx(c.Request.Context()).Error().Err(err).Msg("token verification failed")
			abortWithError(c, http.StatusInternalServerError, "Internal server error")
			return
		}

		c.Set(ctxUserIDKey, claims.UserID)
		c.Set(ctxClaimsKey, claims)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// UserID returns the authenticated caller set by Auth.
func UserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(ctxUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

func Claims(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(ctxClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

// SetUser is used by handler tests to simulate an authenticated request.
func SetUser(c *gin.Context, claims *auth.Claims) {
	c.Set(ctxUserIDKey, claims.UserID)
	c.Set(ctxClaimsKey, claims)
}

func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": gin.H{"code": code, "message": message}})
}
