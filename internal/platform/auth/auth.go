// Package auth provides the identity boundary for the viewer: JWT
// bearer validation, an in-memory revocation list backing sign-out, and
// the narrow Identity capability the view core is handed. The core sees
// only "is this request authenticated" and "sign out"; tokens, claims,
// and modes stay opaque behind this package.
package auth

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const claimsKey = "auth_claims"

// Claims are the token claims the server understands.
type Claims struct {
	jwt.RegisteredClaims
	Roles []string `json:"roles"`
}

// Config controls token validation.
type Config struct {
	// DevMode admits every request with a synthetic admin subject.
	DevMode    bool
	SigningKey []byte
	Issuer     string
	Audience   string
}

// Middleware validates the bearer token on every request and rejects
// revoked or malformed tokens with 401. In dev mode requests without a
// token pass through with a development subject.
func Middleware(cfg Config, revoked *RevocationList) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := bearerToken(c)

			if raw == "" {
				if cfg.DevMode {
					c.Set(claimsKey, devClaims())
					return next(c)
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			claims, err := parseToken(raw, cfg)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			if claims.ID != "" && revoked != nil && revoked.IsRevoked(claims.ID) {
				return echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
			}

			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func parseToken(raw string, cfg Config) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"})}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if len(cfg.SigningKey) == 0 {
			return nil, fmt.Errorf("no signing key configured")
		}
		return cfg.SigningKey, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func devClaims() *Claims {
	return &Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "dev-user"},
		Roles:            []string{"admin"},
	}
}

// ClaimsFromContext returns the validated claims on the request, nil
// when the request is unauthenticated.
func ClaimsFromContext(c echo.Context) *Claims {
	claims, _ := c.Get(claimsKey).(*Claims)
	return claims
}

// Identity is the capability the view core receives. It is injected at
// wiring time; the core never reaches for session state through
// globals.
type Identity interface {
	IsAuthenticated(c echo.Context) bool
	SignOut(c echo.Context) error
}

// TokenIdentity implements Identity over the validated request claims
// and the revocation list.
type TokenIdentity struct {
	revoked *RevocationList
}

// NewTokenIdentity returns the standard Identity implementation.
func NewTokenIdentity(revoked *RevocationList) *TokenIdentity {
	return &TokenIdentity{revoked: revoked}
}

// IsAuthenticated reports whether the request carries validated claims.
func (t *TokenIdentity) IsAuthenticated(c echo.Context) bool {
	return ClaimsFromContext(c) != nil
}

// SignOut revokes the presented token until its natural expiry. Signing
// out an already-signed-out or tokenless session is a no-op.
func (t *TokenIdentity) SignOut(c echo.Context) error {
	claims := ClaimsFromContext(c)
	if claims == nil || claims.ID == "" {
		return nil
	}
	exp := time.Now().Add(24 * time.Hour)
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}
	t.revoked.Revoke(claims.ID, exp)
	return nil
}

// SignOutHandler exposes sign-out as an endpoint.
func SignOutHandler(id Identity) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := id.SignOut(c); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.NoContent(http.StatusNoContent)
	}
}
