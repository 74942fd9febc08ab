package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coachlab/notification-service/config/env"
	kafkaworker "github.com/coachlab/notification-service/pkg/codebase/app/kafka_worker"
	restserver "github.com/coachlab/notification-service/pkg/codebase/app/rest_server"
	"github.com/coachlab/notification-service/pkg/codebase/factory"
)

// App service
type App struct {
	service factory.ServiceFactory
	servers []factory.AppServerFactory
}

// New service app
func New(service factory.ServiceFactory) *App {
	log.Printf("Starting \x1b[32;1m%s\x1b[0m service\n\n", service.Name())

	appInstance := &App{service: service}
	e := env.BaseEnv()

	if e.UseKafkaConsumer {
		appInstance.servers = append(appInstance.servers, kafkaworker.NewWorker(service,
			kafkaworker.SetConsumerGroup(e.Kafka.ConsumerGroup),
			kafkaworker.SetBrokers(e.Kafka.Brokers),
			kafkaworker.SetMaxGoroutines(e.MaxGoroutines),
			kafkaworker.SetDebugMode(e.DebugMode),
		))
	}

	if fanout := service.GetDependency().GetFanout(); fanout != nil {
		appInstance.servers = append(appInstance.servers, fanout)
	}

	if e.UseREST {
		appInstance.servers = append(appInstance.servers, restserver.NewServer(service,
			restserver.SetHTTPPort(e.HTTPPort),
			restserver.SetRootPath(e.HTTPRootPath),
			restserver.SetDebugMode(e.DebugMode),
			restserver.SetCORSAllowOrigins(e.CORSAllowOrigins),
		))
	}

	return appInstance
}

// Run start app
func (a *App) Run() {

	if len(a.servers) == 0 {
		panic("No server/worker running")
	}

	errServe := make(chan error)
	for _, server := range a.servers {
		go func(srv factory.AppServerFactory) {
			defer func() {
				if r := recover(); r != nil {
					errServe <- fmt.Errorf("%s: %v", srv.Name(), r)
				}
			}()
			srv.Serve()
		}(server)
	}

	quitSignal := make(chan os.Signal, 1)
	signal.Notify(quitSignal, os.Interrupt, syscall.SIGTERM)

	select {
	case e := <-errServe:
		panic(e)
	case <-quitSignal:
		a.shutdown(quitSignal)
	}
}

// graceful shutdown all server, stop waiting when the process exceed given timeout in context
func (a *App) shutdown(forceShutdown chan os.Signal) {
	fmt.Println("\x1b[34;1mGracefully shutdown... (press Ctrl+C again to force)\x1b[0m")

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
	defer cancel()

	// open streams keep http server shutdown waiting until timeout
	a.service.GetDependency().GetRegistry().CloseAll()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for _, server := range a.servers {
			server.Shutdown(ctx)
		}
	}()

	select {
	case <-done:
		log.Println("\x1b[32;1mSuccess shutdown all server & worker\x1b[0m")
	case <-forceShutdown:
		log.Println("\x1b[31;1mForce shutdown server & worker\x1b[0m")
		cancel()
	case <-ctx.Done():
		log.Println("\x1b[31;1mContext timeout\x1b[0m")
	}
}
