// Package tokens issues and verifies the HS256 bearer tokens used by the API.
// Tokens carry the identity, its role, and the session they were minted for;
// session revocation is checked separately by the accounts service.
package tokens

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hobbyhub-app/hobby-directory-api/internal/domain"
)

// Config holds signing parameters shared by issue and verify.
type Config struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// Claims is the payload extracted from a verified token.
type Claims struct {
	IdentityID domain.IdentityID
	SessionID  domain.SessionID
	Role       domain.Role
	ExpiresAt  time.Time
}

// ErrMissingToken is returned when no token is presented.
var ErrMissingToken = errors.New("missing bearer token")

// ErrInvalidToken wraps parsing/validation errors.
var ErrInvalidToken = errors.New("invalid bearer token")

// Issue mints a signed token for the identity/session pair.
func Issue(cfg Config, identityID domain.IdentityID, sessionID domain.SessionID, role domain.Role, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"iss":  cfg.Issuer,
		"sub":  string(identityID),
		"sid":  string(sessionID),
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  now.Add(cfg.TTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
}

// Parse validates a token and returns normalized claims.
func Parse(token string, cfg Config) (*Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrMissingToken
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(cfg.Secret), nil
	}, jwt.WithIssuer(cfg.Issuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	sid, _ := claims["sid"].(string)
	roleStr, _ := claims["role"].(string)
	if sub == "" || sid == "" {
		return nil, ErrInvalidToken
	}
	role, err := domain.ParseRole(roleStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, ErrInvalidToken
	}

	return &Claims{
		IdentityID: domain.IdentityID(sub),
		SessionID:  domain.SessionID(sid),
		Role:       role,
		ExpiresAt:  exp.Time,
	}, nil
}
