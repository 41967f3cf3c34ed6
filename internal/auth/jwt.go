package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenType is reported to clients alongside every access token.
const TokenType = "bearer"

// DefaultTokenExpiration is how long an access token stays valid.
const DefaultTokenExpiration = 60 * time.Minute

const issuer = "ai-chat-backend"

var (
	ErrTokenInvalid        = errors.New("invalid token")
	ErrTokenMissingSubject = errors.New("token has no subject")
)

// --- JWT Claims ---

// CustomClaims carries only registered claims; Subject holds the username.
type CustomClaims struct {
	jwt.RegisteredClaims
}

// NewAccessToken generates a signed HS256 access token for username, valid
// from now until now+expiration.
func NewAccessToken(username string, jwtSecret string, expiration time.Duration, now time.Time) (string, error) {
	claims := CustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   username,
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(jwtSecret))
	if err != nil {
		return "", fmt.Errorf("sign jwt: %w", err)
	}
	return signedToken, nil
}

// ParseAccessToken verifies signature, algorithm and expiry against the time
// returned by now, and returns the claims. A token without exp or sub is rejected.
func ParseAccessToken(tokenString string, jwtSecret string, now func() time.Time) (*CustomClaims, error) {
	claims := &CustomClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(jwtSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(now),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.Subject == "" {
		return nil, ErrTokenMissingSubject
	}
	return claims, nil
}
