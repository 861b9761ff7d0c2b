// Package auth issues and verifies the JWTs handed out by the development
// backend.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/signlink/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenKind separates access from refresh tokens so one cannot stand in for
// the other.
type TokenKind string

const (
	KindAccess  TokenKind = "access"
	KindRefresh TokenKind = "refresh"
)

// Claims are the registered claims plus the user id and the token kind.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64     `json:"user_id"`
	Kind   TokenKind `json:"token_type"`
}

// GenerateToken signs an HS256 token for userID valid for ttl. Every token
// carries a unique jti.
func GenerateToken(userID int64, kind TokenKind, secretKey []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
		Kind:   kind,
	})

	return token.SignedString(secretKey)
}

// GetUserIDFromToken verifies tokenString and returns its user id. Expired
// tokens yield common.ErrTokenExpired, anything else that fails verification
// (bad signature, wrong algorithm, wrong kind) common.ErrInvalidToken.
func GetUserIDFromToken(tokenString string, kind TokenKind, secretKey []byte) (int64, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, common.ErrTokenExpired
		}
		return 0, common.ErrInvalidToken
	}

	if !token.Valid || claims.Kind != kind {
		return 0, common.ErrInvalidToken
	}

	return claims.UserID, nil
}
