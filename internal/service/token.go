package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the claim set minted at login time. The flags reflect the
// account state at the moment of issue; there is no refresh flow.
type Claims struct {
	Email      string `json:"email"`
	Role       string `json:"role"`
	IsVerified bool   `json:"isVerified"`
	IsBlocked  bool   `json:"isBlocked"`
}

// TokenManager issues and verifies bearer tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates the token manager.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Generate signs the claim set into a bearer token with a fixed expiry.
func (m *TokenManager) Generate(claims Claims) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":        claims.Email,
		"role":       claims.Role,
		"isVerified": claims.IsVerified,
		"isBlocked":  claims.IsBlocked,
		"jti":        uuid.NewString(),
		"iat":        now.Unix(),
		"exp":        now.Add(m.ttl).Unix(),
	})

	return token.SignedString(m.secret)
}

// Parse verifies a bearer token and extracts the claim set.
func (m *TokenManager) Parse(raw string) (Claims, error) {
	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return Claims{}, err
	}
	if !parsed.Valid {
		return Claims{}, jwt.ErrTokenInvalidClaims
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, jwt.ErrTokenInvalidClaims
	}

	email, ok := mapClaims["sub"].(string)
	if !ok || email == "" {
		return Claims{}, jwt.ErrTokenInvalidClaims
	}

	role, _ := mapClaims["role"].(string)
	isVerified, _ := mapClaims["isVerified"].(bool)
	isBlocked, _ := mapClaims["isBlocked"].(bool)

	return Claims{
		Email:      email,
		Role:       role,
		IsVerified: isVerified,
		IsBlocked:  isBlocked,
	}, nil
}
