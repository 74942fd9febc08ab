package middleware

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coachlab/notification-service/pkg/shared"
	"github.com/golang-jwt/jwt"
)

// JWTValidator HS256 token validator
type JWTValidator struct {
	secret []byte
}

// NewJWTValidator constructor
func NewJWTValidator(secret string) *JWTValidator {
	return &JWTValidator{secret: []byte(secret)}
}

// ValidateToken parse and verify token, subject claim is required
func (v *JWTValidator) ValidateToken(ctx context.Context, tokenString string) (*shared.TokenClaim, error) {
	var claim shared.TokenClaim
	token, err := jwt.ParseWithClaims(tokenString, &claim, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, errors.New("Token is expired")
		}
		return nil, errors.New("Invalid token")
	}
	if !token.Valid || claim.Subject == "" {
		return nil, errors.New("Invalid token")
	}
	return &claim, nil
}

// Generate signed token, used by tests and internal tooling
func (v *JWTValidator) Generate(userID, role string, expired time.Duration) (string, error) {
	claim := shared.TokenClaim{Role: role}
	claim.Subject = userID
	claim.IssuedAt = time.Now().Unix()
	claim.ExpiresAt = time.Now().Add(expired).Unix()
	return jwt.NewWithClaims(jwt.SigningMethodHS256, &claim).SignedString(v.secret)
}
