package shared

import "github.com/golang-jwt/jwt"

const (
	// RoleCoach viewer role
	RoleCoach = "coach"
	// RoleClient viewer role
	RoleClient = "client"
)

// TokenClaim for token claim data
type TokenClaim struct {
	jwt.StandardClaims
	Role string `json:"role"`
}

// UserID of token owner
func (t *TokenClaim) UserID() string {
	return t.Subject
}
