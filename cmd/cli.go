package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	httpin "deliverytracking/internal/adapters/in/http"
	"deliverytracking/internal/adapters/out/postgres"
	"deliverytracking/internal/jobs"
	"deliverytracking/internal/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	var configDir string

	cmd := &cobra.Command{
		Use:           "delivery-tracking",
		Short:         "Prepare deliveries and track them to the recipient",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "directory holding the optional .env file")

	cmd.AddCommand(newServeCmd(&configDir))
	cmd.AddCommand(newMigrateCmd(&configDir))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// Execute runs the command line.
func Execute() error {
	err := newRootCmd().Execute()
	if err != nil {
		logger.Get().Error("command failed", zap.Error(err))
	}
	logger.Sync()
	return err
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "delivery-tracking %s (%s)\n", version, commit)
			return err
		},
	}
}

func newMigrateCmd(configDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := setup(*configDir)
			if err != nil {
				return err
			}

			db, err := openDatabase(cfg.Database)
			if err != nil {
				return err
			}

			if err = postgres.Migrate(db.WithContext(cmd.Context())); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			logger.Get().Info("Database schema is up to date")
			return nil
		},
	}
}

func newServeCmd(configDir *string) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the outbox relay",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := setup(*configDir)
			if err != nil {
				return err
			}

			db, err := openDatabase(cfg.Database)
			if err != nil {
				return err
			}
			if migrate {
				if err = postgres.Migrate(db); err != nil {
					return fmt.Errorf("migrate: %w", err)
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, db)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply the schema before serving")
	return cmd
}

func setup(configDir string) (Config, error) {
	cfg, err := LoadConfig(configDir)
	if err != nil {
		return Config{}, err
	}
	if err = logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		return Config{}, fmt.Errorf("init logger: %w", err)
	}
	return cfg, nil
}

func openDatabase(cfg DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(gormpostgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return db, nil
}

func serve(ctx context.Context, cfg Config, db *gorm.DB) error {
	log := logger.Get()

	app, err := NewCompositionRoot(cfg, db)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			log.Warn("failed to release resources", zap.Error(closeErr))
		}
	}()

	server := httpin.NewServer(
		app.CreateDeliveryPreparationService(),
		app.CreateDeliveryCheckpointService(),
		app.CreateGetDeliveryQueryHandler(),
		app.CreateListDeliveriesQueryHandler(),
	)
	e, err := httpin.NewRouter(server, httpin.RouterConfig{Gatherer: app.Registry(), Logger: log})
	if err != nil {
		return err
	}

	jobManager := jobs.NewJobManager(app.CreateRelayOutboxCommandHandler(), cfg.OutboxBatchSize, log)
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	serverErr := make(chan error, 1)
	go func() {
		address := fmt.Sprintf("0.0.0.0:%d", cfg.HTTPPort)
		log.Info("HTTP server listening", zap.String("address", address))
		serverErr <- e.Start(address)
	}()

	select {
	case err = <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
