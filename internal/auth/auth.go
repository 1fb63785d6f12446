// Package auth implements the password-based admin session scheme: a
// correct password yields a random bearer token valid for 24 hours.
package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	// SessionCookie is the cookie carrying the admin token.
	SessionCookie = "adminToken"

	DefaultSessionTTL = 24 * time.Hour
)

// SessionStore persists issued admin tokens until they expire.
type SessionStore interface {
	Create(ctx context.Context, token string, ttl time.Duration) error
	Validate(ctx context.Context, token string) (bool, error)
	Delete(ctx context.Context, token string) error
}

type Authenticator struct {
	password string
	store    SessionStore
	ttl      time.Duration
}

func NewAuthenticator(password string, store SessionStore) *Authenticator {
	return &Authenticator{password: password, store: store, ttl: DefaultSessionTTL}
}

func (a *Authenticator) SessionTTL() time.Duration {
	return a.ttl
}

// Login checks the password and issues a session token on success.
func (a *Authenticator) Login(ctx context.Context, password string) (string, error) {
	if a.password == "" {
		return "", fmt.Errorf("admin password is not configured")
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) != 1 {
		return "", fmt.Errorf("invalid password")
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}
	token := hex.EncodeToString(raw)

	if err := a.store.Create(ctx, token, a.ttl); err != nil {
		return "", fmt.Errorf("storing session: %w", err)
	}
	return token, nil
}

func (a *Authenticator) Logout(ctx context.Context, token string) {
	if token == "" {
		return
	}
	if err := a.store.Delete(ctx, token); err != nil {
		slog.Error("error deleting session", "error", err)
	}
}

// Middleware rejects requests without a valid session token. The token is
// read from the Authorization header or the session cookie.
func (a *Authenticator) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := TokenFromRequest(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Admin authentication required"})
			return
		}

		ok, err := a.store.Validate(c.Request.Context(), token)
		if err != nil {
			slog.Error("error validating session", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Authentication failed"})
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Admin authentication required"})
			return
		}
		c.Next()
	}
}

// TokenFromRequest extracts the admin token from a Bearer header or cookie.
func TokenFromRequest(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}
