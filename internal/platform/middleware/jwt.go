package middleware

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	id "altscore/pkg/domain"
)

// HS256Validator validates HMAC-signed JWTs issued by the surrounding
// authentication system. Only the subject claim is consumed here.
type HS256Validator struct {
	signingKey []byte
}

// NewHS256Validator builds a validator for the shared signing key.
func NewHS256Validator(signingKey string) *HS256Validator {
	return &HS256Validator{signingKey: []byte(signingKey)}
}

// ValidateToken parses and verifies the token, returning its claims.
func (v *HS256Validator) ValidateToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.signingKey, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("token is invalid")
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}
	userID, err := id.ParseUserID(subject)
	if err != nil {
		return nil, fmt.Errorf("token subject is not a user id: %w", err)
	}

	return &TokenClaims{UserID: userID}, nil
}
