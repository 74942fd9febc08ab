package restserver

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/coachlab/notification-service/pkg/logger"
	"github.com/coachlab/notification-service/pkg/tracer"
	"github.com/labstack/echo"
	"go.uber.org/zap/zapcore"
)

// tracerMiddleware root span of inbound request, response writer is left untouched so live streams can flush and hijack
func (h *restServer) tracerMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		if req.URL.Path == "/health" {
			return next(c)
		}

		trace, ctx := tracer.StartTraceWithContext(req.Context(), fmt.Sprintf("%s %s", req.Method, c.Path()))
		defer trace.Finish()

		trace.SetTag("http.url_path", req.URL.Path)
		trace.SetTag("http.method", req.Method)
		c.SetRequest(req.WithContext(ctx))

		err := next(c)
		statusCode := c.Response().Status
		trace.SetTag("http.status_code", statusCode)
		if statusCode >= http.StatusBadRequest {
			trace.SetError(fmt.Errorf("resp.code:%d", statusCode))
		}
		return err
	}
}

// EchoRecoverMiddleware turn handler panic into internal server error response
func EchoRecoverMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					logger.LogEf("rest_server > panic %s %s: %v", c.Request().Method, c.Request().URL.Path, r)
					err = echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprint(r))
				}
			}()
			return next(c)
		}
	}
}

// EchoCORSMiddleware middleware
func EchoCORSMiddleware(allowOrigins []string) echo.MiddlewareFunc {
	allowMethods := strings.Join([]string{
		http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
	}, ",")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {

			req := c.Request()
			res := c.Response()
			origin := req.Header.Get(echo.HeaderOrigin)
			allowOrigin := ""

			// Check allowed origins
			for _, o := range allowOrigins {
				if o == "*" || o == origin {
					allowOrigin = o
					break
				}
			}

			// Simple request
			if req.Method != http.MethodOptions {
				res.Header().Add(echo.HeaderVary, echo.HeaderOrigin)
				res.Header().Set(echo.HeaderAccessControlAllowOrigin, allowOrigin)
				return next(c)
			}

			// Preflight request
			res.Header().Add(echo.HeaderVary, echo.HeaderOrigin)
			res.Header().Add(echo.HeaderVary, echo.HeaderAccessControlRequestMethod)
			res.Header().Add(echo.HeaderVary, echo.HeaderAccessControlRequestHeaders)
			res.Header().Set(echo.HeaderAccessControlAllowOrigin, allowOrigin)
			res.Header().Set(echo.HeaderAccessControlAllowMethods, allowMethods)
			if h := req.Header.Get(echo.HeaderAccessControlRequestHeaders); h != "" {
				res.Header().Set(echo.HeaderAccessControlAllowHeaders, h)
			}
			return c.NoContent(http.StatusNoContent)
		}
	}
}

// EchoLoggerMiddleware middleware
func EchoLoggerMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {

			req := c.Request()
			res := c.Response()
			start := time.Now()
			if err = next(c); err != nil {
				c.Error(err)
			}
			stop := time.Now()

			level := zapcore.InfoLevel
			switch n := res.Status; {
			case n >= 500:
				level = zapcore.ErrorLevel
			case n >= 400:
				level = zapcore.WarnLevel
			}

			fields := map[string]interface{}{
				"message":       fmt.Sprintf("%s %s", req.Method, req.URL.Path),
				"remote_ip":     c.RealIP(),
				"host":          req.Host,
				"user_agent":    req.UserAgent(),
				"status":        res.Status,
				"latency_human": stop.Sub(start).String(),
				"bytes_out":     res.Size,
			}
			if err != nil {
				fields["error"] = err.Error()
			}
			logger.LogWithField(level, fields)
			return
		}
	}
}
