package middleware

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/coachlab/notification-service/pkg/helper"
	"github.com/coachlab/notification-service/pkg/wrapper"
)

// Basic function basic auth
func (m *Middleware) Basic(ctx context.Context, key string) error {
	data, err := base64.StdEncoding.DecodeString(key)
	if err != nil {
		return errors.New("Unauthorized")
	}

	decoded := strings.SplitN(string(data), ":", 2)
	if len(decoded) < 2 {
		return errors.New("Unauthorized")
	}

	if err := m.basicAuthValidator.ValidateBasic(ctx, decoded[0], decoded[1]); err != nil {
		return errors.New("Unauthorized")
	}
	return nil
}

// HTTPBasicAuth http basic auth middleware, used by internal callers
func (m *Middleware) HTTPBasicAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		key, err := extractAuthType(BASIC, req.Header.Get(helper.HeaderAuthorization))
		if err != nil {
			wrapper.NewHTTPResponse(http.StatusUnauthorized, err.Error()).JSON(w)
			return
		}

		if err := m.Basic(req.Context(), key); err != nil {
			wrapper.NewHTTPResponse(http.StatusUnauthorized, err.Error()).JSON(w)
			return
		}

		next.ServeHTTP(w, req)
	})
}
