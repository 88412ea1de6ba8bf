// Command cosmic runs the scientists, planets and missions API.
//
//	cosmic           same as cosmic serve
//	cosmic serve     run the HTTP server
//	cosmic migrate   apply pending database migrations
//	cosmic seed      insert sample planets and scientists
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/deppfellow/cosmic-api/internal/config"
	"github.com/deppfellow/cosmic-api/internal/database"
	"github.com/deppfellow/cosmic-api/internal/handler"
	"github.com/deppfellow/cosmic-api/internal/logger"
	"github.com/deppfellow/cosmic-api/internal/repository"
	"github.com/deppfellow/cosmic-api/internal/router"
	"github.com/deppfellow/cosmic-api/internal/server"
	"github.com/deppfellow/cosmic-api/internal/service"
)

// ShutdownTimeout bounds graceful shutdown after SIGINT/SIGTERM.
const ShutdownTimeout = 30 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	serve := serveCmd()

	root := &cobra.Command{
		Use:           "cosmic",
		Short:         "Scientists, planets and space missions API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}
	root.AddCommand(serve, migrateCmd(), seedCmd())
	return root
}

// bootstrap loads config and builds the logger every command starts with.
func bootstrap() (*config.Config, *logger.LoggerService, zerolog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, zerolog.Nop(), err
	}

	loggerService, err := logger.NewLoggerService(cfg.Observability)
	if err != nil {
		return nil, nil, zerolog.Nop(), err
	}

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)
	return cfg, loggerService, log, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, loggerService, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer loggerService.Shutdown()

			if cfg.Database.AutoMigrate {
				if err := database.Migrate(ctx, &log, cfg); err != nil {
					return fmt.Errorf("failed to migrate database: %w", err)
				}
			}

			srv, err := server.New(cfg, &log, loggerService)
			if err != nil {
				return fmt.Errorf("failed to initialize server: %w", err)
			}

			services, err := service.NewServices(srv, repository.NewStore(srv.DB.Pool))
			if err != nil {
				return fmt.Errorf("could not create services: %w", err)
			}

			r := router.NewRouter(srv, handler.NewHandlers(srv, services))
			srv.SetupHTTPServer(r)

			serveErr := make(chan error, 1)
			go func() {
				serveErr <- srv.Start()
			}()

			select {
			case err := <-serveErr:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("failed to start server: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			log.Info().Msg("shutting down server")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("server forced to shutdown: %w", err)
			}

			log.Info().Msg("server exited properly")
			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, loggerService, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer loggerService.Shutdown()

			return database.Migrate(cmd.Context(), &log, cfg)
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert sample planets and scientists into an empty database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, loggerService, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer loggerService.Shutdown()

			if err := database.Migrate(ctx, &log, cfg); err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}

			db, err := database.New(cfg, &log, loggerService)
			if err != nil {
				return err
			}
			defer db.Close()

			result, err := repository.Seed(ctx, repository.NewStore(db.Pool))
			if err != nil {
				return fmt.Errorf("failed to seed database: %w", err)
			}

			log.Info().
				Int("planets", result.Planets).
				Int("scientists", result.Scientists).
				Msg("database seeded")
			return nil
		},
	}
}
