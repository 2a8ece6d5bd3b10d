package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	mongodrv "go.mongodb.org/mongo-driver/mongo"

	"github.com/kzkiosk/kiosk-control/internal/api"
	"github.com/kzkiosk/kiosk-control/internal/core/domain"
	"github.com/kzkiosk/kiosk-control/internal/core/ports"
	"github.com/kzkiosk/kiosk-control/internal/core/service"
	"github.com/kzkiosk/kiosk-control/internal/core/skucodec"
	"github.com/kzkiosk/kiosk-control/internal/infrastructure/config"
	"github.com/kzkiosk/kiosk-control/internal/infrastructure/db/mongo"
	"github.com/kzkiosk/kiosk-control/internal/infrastructure/db/redis"
	"github.com/kzkiosk/kiosk-control/internal/infrastructure/kioskapi"
	"github.com/kzkiosk/kiosk-control/internal/infrastructure/queue"
	"github.com/kzkiosk/kiosk-control/pkg/logger"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the local control API",
		Long: `Starts the local control API used by the kiosk UI.

Configuration is read from the environment (and .env). MONGO_URI enables the
master-session journal, REDIS_ADDR enables the offline catalog cache.`,
		Example: `  # Start on the configured PORT (default 8080)
  kioskctl serve

  # Override the port
  kioskctl serve --port 9090`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := config.Load(ctx)
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}

			log := logger.Init(logger.Options{
				Level:   cfg.LogLevel,
				Pretty:  cfg.IsDevelopment(),
				Service: cfg.Kiosk.TerminalName,
			})

			return serve(ctx, cfg, log)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides PORT)")

	return cmd
}

func serve(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	client := kioskapi.NewClient(cfg.Kiosk.APIBaseURL, cfg.Kiosk.APITimeout, logger.Component("kioskapi"))

	// --- Session journal (MongoDB when configured, log otherwise) ---
	var (
		journal     ports.SessionJournal = service.NewLogJournal(logger.Component("journal"))
		stopJournal                      = func(context.Context) error { return nil }
		mongoDB     *mongodrv.Database
	)
	if cfg.Mongo.URI != "" {
		mc, db, err := mongo.Connect(ctx, mongo.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  cfg.Kiosk.TerminalName,
		})
		if err != nil {
			return err
		}
		defer func() { _ = mc.Disconnect(context.Background()) }()

		if err := mongo.EnsureJournalIndexes(ctx, db); err != nil {
			log.Warn().Err(err).Msg("journal indexes not created")
		}

		dispatcher := queue.NewDispatcher(cfg.Kiosk.JournalWorkers, mongo.NewJournalRepository(db), logger.Component("journal"))
		// Detached from ctx so the shutdown logout can still be journaled.
		dispatcher.Start(context.Background())
		journal = dispatcher
		stopJournal = dispatcher.Stop
		mongoDB = db
		log.Info().Str("database", cfg.Mongo.Database).Msg("session journal enabled")
	}

	// --- Catalog cache (Redis, optional) ---
	var (
		cache ports.CatalogCache
		rdb   *goredis.Client
	)
	if cfg.Redis.Addr != "" {
		c, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer func() { _ = c.Close() }()

		rdb = c
		cache = redis.NewCatalogCache(c)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("catalog cache enabled")
	}

	// --- Core ---
	sessions := service.NewSessionController(client, journal, nil, logger.Component("session"))
	gate := service.NewPermissionGate(client, sessions, logger.Component("permissions"))
	codec := skucodec.New(cfg.Kiosk.SkuPrefix)
	catalog := service.NewCatalogService(client, service.NewCatalogIndex(codec), codec, gate, cache, logger.Component("catalog"))
	reports := service.NewReportService(client, gate, logger.Component("reports"))
	shiftPlan := service.NewShiftPlanService(client, gate, logger.Component("reports"))

	gate.OnTransition(catalog.Refresh)
	gate.RegisterConsumer(func(s domain.PermissionSnapshot) {
		log.Info().Interface("permissions", s.Map()).Msg("operator permissions changed")
	})

	if err := catalog.Seed(ctx); err != nil {
		log.Warn().Err(err).Msg("catalog not loaded, will retry on refresh")
	}
	go service.NewRefresher(gate, cfg.Kiosk.RefreshInterval, logger.Component("refresher")).Run(ctx)

	secret := cfg.Kiosk.UITokenSecret
	if secret == "" {
		secret = uuid.NewString()
		log.Warn().Msg("KIOSK_UI_TOKEN_SECRET not set, using an ephemeral secret")
	}

	e := api.NewRouter(api.Deps{
		Sessions:    sessions,
		Permissions: gate,
		Catalog:     catalog,
		Reports:     reports,
		ShiftPlan:   shiftPlan,
		Tokens:      service.NewUITokenIssuer(secret),
		Mongo:       mongoDB,
		Redis:       rdb,
		Log:         log,
	})

	addr := ":" + cfg.Port
	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Str("kiosk_api", cfg.Kiosk.APIBaseURL).Msg("control API listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		// Leave master mode so the next operator does not inherit it.
		if sessions.IsActive() {
			sessions.Logout(shutdownCtx, domain.LogoutManual)
		}
		if err := stopJournal(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("journal not drained before shutdown")
		}
		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown failed")
			return err
		}
		log.Info().Msg("server stopped")
		return nil
	case err := <-serverErr:
		return err
	}
}
