package restserver

import (
	"strings"

	"github.com/labstack/echo"
)

type (
	option struct {
		rootMiddlewares  []echo.MiddlewareFunc
		httpPort         uint16
		rootPath         string
		debugMode        bool
		corsAllowOrigins []string
	}

	// OptionFunc type
	OptionFunc func(*option)
)

func getDefaultOption() option {
	return option{
		httpPort:         8000,
		rootPath:         "",
		debugMode:        true,
		corsAllowOrigins: []string{"*"},
	}
}

// SetHTTPPort option func
func SetHTTPPort(port uint16) OptionFunc {
	return func(o *option) {
		o.httpPort = port
	}
}

// SetRootPath option func, modules are mounted under root path
func SetRootPath(rootPath string) OptionFunc {
	return func(o *option) {
		rootPath = strings.Trim(rootPath, "/")
		if rootPath != "" {
			rootPath = "/" + rootPath
		}
		o.rootPath = rootPath
	}
}

// SetDebugMode option func, request log is written in debug mode only
func SetDebugMode(debugMode bool) OptionFunc {
	return func(o *option) {
		o.debugMode = debugMode
	}
}

// SetCORSAllowOrigins option func
func SetCORSAllowOrigins(origins []string) OptionFunc {
	return func(o *option) {
		if len(origins) > 0 {
			o.corsAllowOrigins = origins
		}
	}
}

// AddRootMiddlewares option func
func AddRootMiddlewares(middlewares ...echo.MiddlewareFunc) OptionFunc {
	return func(o *option) {
		o.rootMiddlewares = append(o.rootMiddlewares, middlewares...)
	}
}
