package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"nft-toolkit/core/loader"
	"nft-toolkit/core/logger"
	"nft-toolkit/core/middleware/auth"
	"nft-toolkit/core/middleware/rayid"
	"nft-toolkit/feature/collection"
	"nft-toolkit/feature/integrity"
	"nft-toolkit/feature/integrity/checks"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "nft-toolkit/docs/swagger"
)

// @title NFT Toolkit API
// @version 1.0
// @description API for building and uploading Solana NFT collections.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the NFT toolkit server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Configuration, logger and state store
		rt, err := newRuntime()
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		defer rt.Close()
		cfg, logg := rt.cfg, rt.logger
		zap.ReplaceGlobals(logg)

		// 2. Storage and upload backend
		// The server still starts without one; upload endpoints then fail.
		ctx := context.Background()
		client, err := rt.storageClient()
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}
		uploader, err := rt.uploader(ctx)
		if err != nil {
			logg.Warn("Upload backend unavailable", zap.String("backend", cfg.Upload.Backend), zap.Error(err))
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             cfg.Server.BodyLimit(),
		})

		// 3. Features
		mgr := loader.NewManager(logg)
		collectionFeature := collection.NewFeature(rt.kv, uploader, cfg.Upload, logg)
		if client != nil {
			collectionFeature.Service().AttachStorage(client, cfg.Storage)
		}
		mgr.Register(collectionFeature)
		mgr.Register(integrity.NewFeature(client, cfg.Storage.Bucket, checks.RequiredFolders(cfg.Upload), rt.kv, logg))

		// 4. Middleware
		// RayID must be first to trace everything.
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
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

		// Public endpoints
		app.Get("/swagger/*", swagger.HandlerDefault)
		if cfg.Server.MetricsEnabled {
			app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
		}

		app.Use(auth.New(auth.Config{
			ApiKey: cfg.Server.ApiKey,
			Skip:   []string{"/swagger", "/metrics"},
		}))

		// 5. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 6. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 7. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
