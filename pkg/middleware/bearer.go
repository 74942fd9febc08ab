package middleware

import (
	"context"
	"net/http"

	"github.com/coachlab/notification-service/pkg/helper"
	"github.com/coachlab/notification-service/pkg/shared"
	"github.com/coachlab/notification-service/pkg/tracer"
	"github.com/coachlab/notification-service/pkg/wrapper"
)

// Bearer token validator
func (m *Middleware) Bearer(ctx context.Context, tokenString string) (*shared.TokenClaim, error) {
	return m.tokenValidator.ValidateToken(ctx, tokenString)
}

// HTTPBearerAuth http jwt token middleware, token from Authorization header only
func (m *Middleware) HTTPBearerAuth(next http.Handler) http.Handler {
	return m.bearerAuth(next, false)
}

// HTTPLiveBearerAuth jwt token middleware for live channels, token from Authorization header
// or from "token" query param (EventSource cannot set headers)
func (m *Middleware) HTTPLiveBearerAuth(next http.Handler) http.Handler {
	return m.bearerAuth(next, true)
}

func (m *Middleware) bearerAuth(next http.Handler, allowQueryToken bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		if err := func() error {
			trace := tracer.StartTrace(ctx, "Middleware:HTTPBearerAuth")
			defer trace.Finish()

			tokenValue, err := extractBearerToken(req, allowQueryToken)
			if err != nil {
				trace.SetError(err)
				return err
			}

			tokenClaim, err := m.Bearer(trace.Context(), tokenValue)
			if err != nil {
				trace.SetError(err)
				return err
			}
			trace.SetTag("user_id", tokenClaim.UserID())
			trace.SetTag("role", tokenClaim.Role)
			ctx = shared.SetToContext(ctx, shared.ContextKeyTokenClaim, tokenClaim)
			return nil
		}(); err != nil {
			wrapper.NewHTTPResponse(http.StatusUnauthorized, err.Error()).JSON(w)
			return
		}

		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

func extractBearerToken(req *http.Request, allowQueryToken bool) (string, error) {
	authorization := req.Header.Get(helper.HeaderAuthorization)
	if authorization == "" && allowQueryToken {
		if token := req.URL.Query().Get(helper.QueryToken); token != "" {
			return token, nil
		}
	}
	return extractAuthType(BEARER, authorization)
}
