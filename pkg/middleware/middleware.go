package middleware

import (
	"context"
	"errors"

	"github.com/coachlab/notification-service/pkg/codebase/interfaces"
	"github.com/coachlab/notification-service/pkg/shared"
)

// Middleware impl
type Middleware struct {
	tokenValidator     interfaces.TokenValidator
	basicAuthValidator interfaces.BasicAuthValidator
}

// OptionFunc type
type OptionFunc func(*Middleware)

// SetTokenValidator option func
func SetTokenValidator(tokenValidator interfaces.TokenValidator) OptionFunc {
	return func(mw *Middleware) {
		mw.tokenValidator = tokenValidator
	}
}

// NewMiddleware create new middleware instance with option
func NewMiddleware(username, password string, opts ...OptionFunc) *Middleware {
	defaultMw := &defaultMiddleware{username: username, password: password}
	mw := &Middleware{tokenValidator: defaultMw, basicAuthValidator: defaultMw}
	for _, opt := range opts {
		opt(mw)
	}
	return mw
}

type defaultMiddleware struct {
	username, password string
}

func (defaultMiddleware) ValidateToken(ctx context.Context, token string) (*shared.TokenClaim, error) {
	return nil, errors.New("token validator is not configured")
}
func (d *defaultMiddleware) ValidateBasic(ctx context.Context, username, password string) error {
	if username != d.username || password != d.password {
		return errors.New("Invalid credentials")
	}
	return nil
}
