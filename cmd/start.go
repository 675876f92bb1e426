package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"prunderground/core/loader"
	"prunderground/core/logger"
	"prunderground/core/middleware/auth"
	"prunderground/core/middleware/rayid"
	"prunderground/feature/catalog"
	"prunderground/feature/exchange"
	"prunderground/feature/inventory"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "prunderground/docs/swagger"
)

// @title Prunderground Sync API
// @version 1.0
// @description Operations API for FIO inventory sync, CX prices and the planet catalog.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the sync server",
	Long:  `Starts the ops HTTP server and the scheduled CX price sync.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		svc, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer svc.close()
		logg := svc.logger
		zap.ReplaceGlobals(logg)

		if err := svc.migrate(); err != nil {
			return err
		}

		// Seed the station registry so the first syncs can classify CX stations
		go func() {
			if _, err := svc.catalog.SyncPlanets(ctx, false); err != nil {
				logg.Warn("Initial planet sync failed", zap.Error(err))
			}
		}()

		scheduler := exchange.NewScheduler(svc.job, svc.cfg.Exchange, logg)
		if err := scheduler.Start(); err != nil {
			return err
		}
		defer scheduler.Stop()

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		mgr := loader.NewManager()
		mgr.Register(inventory.NewFeature(svc.inventory))
		mgr.Register(exchange.NewFeature(exchange.NewHandler(svc.prices, svc.job, scheduler, svc.archive, logg)))
		mgr.Register(catalog.NewFeature(svc.catalog))

		// RayID first so every log line can be traced
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Debug("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		app.Get("/health", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"status": "ok", "breaker": svc.client.BreakerState().String()})
		})
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{
			ApiKey: svc.cfg.Server.ApiKey,
			Skip:   []string{"/health", "/metrics", "/swagger"},
		}))
		if !svc.cfg.Server.AuthEnabled() {
			logg.Warn("No API key configured, ops API is unprotected")
		}

		if err := mgr.LoadAll(app); err != nil {
			return err
		}

		go func() {
			logg.Info("Starting server", zap.String("port", svc.cfg.Server.Port))
			if err := app.Listen(svc.cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		logg.Info("Shutting down server...")
		return app.ShutdownWithTimeout(svc.cfg.Server.ShutdownTimeout)
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
