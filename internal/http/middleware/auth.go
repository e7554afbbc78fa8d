package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"tinkerly.io/api/internal/service"
)

var (
	ErrMissingToken = errors.New("missing authorization token")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

type contextKey string

const principalContextKey contextKey = "principal"

type AuthConfig struct {
	Secret []byte
	Issuer string // empty skips the iss check
}

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// ParseToken verifies an HS256 bearer token from the auth provider and returns the
// caller it identifies.
func ParseToken(tokenStr string, cfg AuthConfig) (service.Principal, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	token, err := jwt.ParseWithClaims(tokenStr, &claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return cfg.Secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return service.Principal{}, ErrExpiredToken
		}
		return service.Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid || c.Subject == "" {
		return service.Principal{}, ErrInvalidToken
	}

	return service.Principal{Subject: c.Subject, Email: c.Email}, nil
}

// RequireAuth rejects requests without a valid bearer token with 401 and stores
// the caller on the request context otherwise.
func RequireAuth(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrMissingToken.Error()})
			return
		}

		scheme, tokenStr, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(tokenStr) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			return
		}

		principal, err := ParseToken(strings.TrimSpace(tokenStr), cfg)
		if err != nil {
			msg := ErrInvalidToken.Error()
			if errors.Is(err, ErrExpiredToken) {
				msg = ErrExpiredToken.Error()
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), principal))
		c.Next()
	}
}

func WithPrincipal(ctx context.Context, p service.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

func GetPrincipal(ctx context.Context) (service.Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(service.Principal)
	return p, ok && p.Subject != ""
}
