package main

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/coachlab/notification-service/config"
	"github.com/coachlab/notification-service/config/env"
	service "github.com/coachlab/notification-service/internal"
	"github.com/coachlab/notification-service/internal/modules/notification/repository"
	"github.com/coachlab/notification-service/pkg/codebase/app"
	"github.com/coachlab/notification-service/pkg/logger"
	"github.com/coachlab/notification-service/pkg/tracer"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           serviceName,
		Short:         "Notification and live delivery service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newVAPIDKeysCmd())
	return cmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run rest server and enabled workers",
		RunE:  runServe,
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply sql migrations or ensure mongo indexes",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			defer recoverErr(&err)

			cfg := config.Init(serviceName)
			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()
			defer cfg.Exit(ctx)

			if cfg.Mongo != nil {
				if err := repository.EnsureMongoIndexes(ctx, cfg.Mongo.WriteDB()); err != nil {
					return err
				}
				logger.LogGreen("mongo indexes ensured")
				return nil
			}

			applied, err := repository.Migrate(ctx, cfg.SQL.WriteDB())
			if err != nil {
				return err
			}
			logger.LogGreen(fmt.Sprintf("applied %d migration(s): %v", len(applied), applied))
			return nil
		},
	}
}

func newVAPIDKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vapid-keys",
		Short: "Generate VAPID key pair for web push",
		RunE: func(cmd *cobra.Command, args []string) error {
			privateKey, publicKey, err := webpush.GenerateVAPIDKeys()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "VAPID_PUBLIC_KEY=%s\nVAPID_PRIVATE_KEY=%s\n", publicKey, privateKey)
			return nil
		},
	}
}

func runServe(cmd *cobra.Command, args []string) (err error) {
	defer recoverErr(&err)

	cfg := config.Init(serviceName)
	e := env.BaseEnv()

	logger.SetDebugMode(e.DebugMode)
	if e.LogFile != "" {
		logger.InitZap(logger.OptionAddWriter(logger.NewRotateFileWriter(e.LogFile)))
	}
	if e.JaegerTracingHost != "" {
		closer, err := tracer.InitOpenTracing(serviceName,
			tracer.OptionSetAgentHost(e.JaegerTracingHost),
			tracer.OptionSetLevel(e.Environment),
			tracer.OptionSetMaxGoroutineTag(e.MaxGoroutines),
		)
		if err != nil {
			logger.LogEf("init tracing: %v", err)
		} else {
			defer closer.Close()
		}
	}

	srv := service.NewService(serviceName, cfg)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.LogIfError(srv.GetDependency().Disconnect(ctx))
		logger.Sync()
	}()

	app.New(srv).Run()
	return nil
}

func recoverErr(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%v\nStack trace: \n%s", r, debug.Stack())
	}
}
