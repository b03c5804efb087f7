// Package auth implements the stateless credential primitives: signed identity
// tokens and password digests. There is no server-side session store; a token
// is valid until its expiry regardless of later account changes.
package auth

import (
	stderrors "errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/devlink-network/devlink/internal/errors"
)

// Claims binds an account id to a signed token.
type Claims struct {
	AccountID string `json:"account_id"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HMAC-signed identity tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

// NewTokenService builds a token service. A zero ttl defaults to 24 hours.
func NewTokenService(secret []byte, ttl time.Duration, issuer string) *TokenService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if issuer == "" {
		issuer = "devlink"
	}
	return &TokenService{secret: secret, ttl: ttl, issuer: issuer}
}

// Issue signs a token asserting the given account id. Signing failure is
// propagated, not retried.
func (s *TokenService) Issue(accountID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		AccountID: accountID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Internal("sign token", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the bound account id.
func (s *TokenService) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if stderrors.Is(err, jwt.ErrTokenExpired) {
			return "", errors.TokenExpired(err)
		}
		return "", errors.InvalidToken(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.AccountID == "" {
		return "", errors.InvalidToken(nil)
	}
	return claims.AccountID, nil
}
