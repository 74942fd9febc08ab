package restserver

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/coachlab/notification-service/pkg/codebase/factory"
	"github.com/coachlab/notification-service/pkg/codebase/factory/types"
	"github.com/coachlab/notification-service/pkg/helper"
	"github.com/coachlab/notification-service/pkg/logger"
	"github.com/coachlab/notification-service/pkg/wrapper"
	"github.com/gomodule/redigo/redis"
	"github.com/labstack/echo"
)

type restServer struct {
	serverEngine *echo.Echo
	service      factory.ServiceFactory
	opt          option
}

// NewServer create new REST server
func NewServer(service factory.ServiceFactory, opts ...OptionFunc) factory.AppServerFactory {
	server := &restServer{
		serverEngine: echo.New(),
		service:      service,
		opt:          getDefaultOption(),
	}
	for _, opt := range opts {
		opt(&server.opt)
	}

	server.serverEngine.HideBanner = true
	server.serverEngine.HTTPErrorHandler = CustomHTTPErrorHandler
	server.serverEngine.Use(EchoRecoverMiddleware(), EchoCORSMiddleware(server.opt.corsAllowOrigins), server.tracerMiddleware)
	if server.opt.debugMode {
		server.serverEngine.Use(EchoLoggerMiddleware())
	}
	server.serverEngine.Use(server.opt.rootMiddlewares...)

	server.serverEngine.GET("/", func(c echo.Context) error {
		return wrapper.NewHTTPResponse(http.StatusOK, fmt.Sprintf("Service %s up and running", service.Name())).JSON(c.Response())
	})
	server.serverEngine.GET("/health", server.health)

	rootPath := server.serverEngine.Group(server.opt.rootPath)
	for _, m := range service.GetModules() {
		if h := m.RESTHandler(); h != nil {
			h.Mount(rootPath)
		}
	}

	httpRoutes := server.serverEngine.Routes()
	for _, route := range httpRoutes {
		if !helper.StringInSlice(route.Path, []string{"/", "/health", "."}) && !strings.HasSuffix(route.Path, "*") &&
			!strings.Contains(route.Name, "(*Group).Use") {
			logger.LogGreen(fmt.Sprintf("[REST-ROUTE] %-6s %-30s --> %s", route.Method, route.Path, route.Name))
		}
	}

	fmt.Printf("\x1b[34;1m⇨ HTTP server run at port [::]:%d\x1b[0m\n\n", server.opt.httpPort)
	return server
}

func (h *restServer) Serve() {
	h.serverEngine.HideBanner = true
	h.serverEngine.HidePort = true
	if err := h.serverEngine.Start(fmt.Sprintf(":%d", h.opt.httpPort)); err != nil && err != http.ErrServerClosed {
		log.Panicf("REST Server: Unexpected Error: %v", err)
	}
}

func (h *restServer) Shutdown(ctx context.Context) {
	defer log.Println("\x1b[33;1mStopping HTTP server:\x1b[0m \x1b[32;1mSUCCESS\x1b[0m")

	if err := h.serverEngine.Shutdown(ctx); err != nil {
		log.Printf("\x1b[31;1mStopping HTTP server:\x1b[0m %v", err)
	}
}

func (h *restServer) Name() string {
	return string(types.REST)
}

// health ping every opened dependency
func (h *restServer) health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	deps := h.service.GetDependency()
	status := map[string]string{}
	mErr := helper.NewMultiError()
	check := func(name string, err error) {
		if err != nil {
			mErr.Append(name, err)
			status[name] = "down"
			return
		}
		status[name] = "up"
	}

	if db := deps.GetSQLDatabase(); db != nil {
		check("sql", db.WriteDB().PingContext(ctx))
	}
	if db := deps.GetMongoDatabase(); db != nil {
		check("mongo", db.WriteDB().Client().Ping(ctx, nil))
	}
	if pool := deps.GetRedisPool(); pool != nil {
		check("redis", pingRedis(ctx, pool.WritePool()))
	}
	status["live_connections"] = fmt.Sprint(deps.GetRegistry().Count())

	if mErr.HasError() {
		return wrapper.NewHTTPResponse(http.StatusServiceUnavailable, "Unhealthy", mErr).JSON(c.Response())
	}
	return wrapper.NewHTTPResponse(http.StatusOK, "Healthy", status).JSON(c.Response())
}

func pingRedis(ctx context.Context, pool *redis.Pool) error {
	conn, err := pool.GetContext(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	_, err = conn.Do("PING")
	return err
}
