package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/estatemanner/hookrelay/pkg/cli/config"
	controller "github.com/estatemanner/hookrelay/pkg/controller/http"
	githubinfra "github.com/estatemanner/hookrelay/pkg/infra/github"
	"github.com/estatemanner/hookrelay/pkg/usecase"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg   config.Server
		githubCfg   config.GitHub
		registryCfg config.Registry
	)

	flags := append(serverCfg.Flags(), githubCfg.Flags()...)
	flags = append(flags, registryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			serviceMap, err := registryCfg.ServiceMap()
			if err != nil {
				return goerr.Wrap(err, "failed to load service map")
			}

			if githubCfg.Token == "" {
				logger.Warn("GitHub token is not configured, dispatch requests will fail")
			}

			logger.Info("Starting hookrelay server",
				slog.String("addr", serverCfg.Addr),
				slog.String("dispatch_target", githubCfg.Owner+"/"+githubCfg.Repo),
				slog.Any("supported_repositories", serviceMap.Repositories()),
			)

			// Create use cases
			dispatcher := githubinfra.NewDispatcher(
				githubCfg.Token,
				githubCfg.Owner,
				githubCfg.Repo,
				githubinfra.WithBaseURL(githubCfg.BaseURL),
			)
			webhookUC := usecase.NewWebhook(serviceMap, dispatcher)

			// Create HTTP server with options
			server, err := controller.NewServer(
				ctx,
				webhookUC,
				controller.WithAddr(serverCfg.Addr),
				controller.WithMaxPayloadSize(serverCfg.MaxPayloadSize),
				controller.WithProcessingTimeout(serverCfg.ProcessingTimeout),
				controller.WithVerboseRequestLog(serverCfg.VerboseRequestLog),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			// Start server in goroutine
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
