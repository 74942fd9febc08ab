package interfaces

import (
	"context"
	"net/http"

	"github.com/coachlab/notification-service/pkg/shared"
)

// TokenValidator abstraction
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*shared.TokenClaim, error)
}

// BasicAuthValidator abstraction
type BasicAuthValidator interface {
	ValidateBasic(ctx context.Context, username, password string) error
}

// Middleware abstraction
type Middleware interface {
	HTTPBasicAuth(next http.Handler) http.Handler
	HTTPBearerAuth(next http.Handler) http.Handler
	HTTPLiveBearerAuth(next http.Handler) http.Handler
}
