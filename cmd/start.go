package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bom-merger/core/config"
	"bom-merger/core/database"
	"bom-merger/core/loader"
	"bom-merger/core/logger"
	"bom-merger/core/middleware/auth"
	"bom-merger/core/middleware/rayid"
	"bom-merger/core/storage"

	"bom-merger/feature/mapping"
	"bom-merger/feature/reconciliation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "bom-merger/docs/swagger"
)

// @title BOM Merger API
// @version 1.0
// @description API for reconciling PCB parts lists with pick-and-place data.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the reconciliation server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database (runs and profiles live here, so it is required)
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}
		logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver))

		profileRepo := mapping.NewRepository(db)
		runRepo := reconciliation.NewRepository(db)
		for _, m := range []interface{ Migrate() error }{profileRepo, runRepo} {
			if err := m.Migrate(); err != nil {
				logg.Fatal("Failed to migrate database", zap.Error(err))
			}
		}

		// 4. Initialize Storage (Optional)
		store := connectStorage(cmd.Context(), cfg.Storage, logg)

		// 5. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             cfg.Server.BodyLimit(),
			ReadTimeout:           cfg.Server.ReadTimeout(),
		})

		// 6. Initialize Feature Loader
		mgr := loader.NewManager(logg)

		profiles := mapping.NewService(profileRepo, cfg.Mapping, logg)
		mgr.Register(mapping.NewFeature(profiles))
		mgr.Register(reconciliation.NewFeature(
			reconciliation.NewService(runRepo, profiles, store, cfg.Storage.Bucket, logg),
		))

		// Middleware Registration
		// RayID must be first to trace everything
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			start := time.Now()
			err := c.Next()
			fields := []zap.Field{
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
				zap.Int("status", c.Response().StatusCode()),
				zap.Duration("duration", time.Since(start)),
			}
			if err != nil {
				l.Error("Request error", append(fields, zap.Error(err))...)
				return err
			}
			l.Info("Request completed", fields...)
			return nil
		})

		// Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		if cfg.Server.AuthEnabled() {
			app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))
		} else {
			logg.Warn("API key not set, requests are not authenticated")
		}

		// 7. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 8. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

// connectStorage returns a client with the bucket in place, or nil when
// storage cannot be reached. Without storage, runs are still recorded but
// inputs are not archived and reports cannot be exported.
func connectStorage(ctx context.Context, cfg storage.Config, logg *zap.Logger) storage.Client {
	if ctx == nil {
		ctx = context.Background()
	}
	client, err := storage.NewClient(cfg)
	if err != nil {
		logg.Warn("Optional storage client failed", zap.Error(err))
		return nil
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := storage.EnsureBucket(ctx, client, cfg.Bucket, cfg.Region); err != nil {
		logg.Warn("Optional storage unavailable, export disabled", zap.Error(err))
		return nil
	}
	logg.Info("Connected to storage", zap.String("bucket", cfg.Bucket))
	return client
}

func init() {
	RootCmd.AddCommand(startCmd)
}
