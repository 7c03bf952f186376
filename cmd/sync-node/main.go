package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/edutrack/edutrack-sync/api/swagger"
	"github.com/edutrack/edutrack-sync/internal/handler"
	"github.com/edutrack/edutrack-sync/internal/middleware"
	"github.com/edutrack/edutrack-sync/internal/service"
	"github.com/edutrack/edutrack-sync/internal/store"
	syncengine "github.com/edutrack/edutrack-sync/internal/sync"
	"github.com/edutrack/edutrack-sync/pkg/cache"
	"github.com/edutrack/edutrack-sync/pkg/config"
	"github.com/edutrack/edutrack-sync/pkg/logger"
	corsmiddleware "github.com/edutrack/edutrack-sync/pkg/middleware/cors"
	reqidmiddleware "github.com/edutrack/edutrack-sync/pkg/middleware/requestid"
	"github.com/edutrack/edutrack-sync/pkg/storage"
)

// @title EduTrack Sync API
// @version 0.1.0
// @description Offline-first school records node with cloud snapshot sync
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	docBlobs, err := storage.NewDiskStore(cfg.Store.Dir)
	if err != nil {
		logr.Fatal("document store unavailable", zap.Error(err))
	}
	exportBlobs, err := storage.NewDiskStore(cfg.Export.Dir)
	if err != nil {
		logr.Fatal("export directory unavailable", zap.Error(err))
	}

	documentStore := store.New(docBlobs, cfg.Store.Slot, logr)
	validate := validator.New()

	docs := service.NewDocumentService(documentStore.Load(), documentStore, validate, logr)
	fees := service.NewFeeService(docs, validate, logr)
	academics := service.NewAcademicService(docs, validate, logr)
	archives := service.NewArchiveService(docs, validate, logr)
	transfers := service.NewTransferService(docs, academics, exportBlobs, logr)
	metrics := service.NewMetricsService()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var engine *syncengine.Engine
	var snapshots *syncengine.BlobSnapshotStore
	if cfg.Sync.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, sync disabled", zap.Error(err))
		} else {
			snapshotBlobs, err := storage.NewDiskStore(cfg.Sync.SnapshotDir)
			if err != nil {
				logr.Fatal("snapshot store unavailable", zap.Error(err))
			}
			signer := storage.NewSignedURLSigner(cfg.Sync.SignedURLSecret, cfg.Sync.SignedURLTTL)
			snapshots = syncengine.NewBlobSnapshotStore(snapshotBlobs, signer, cfg.BaseURL+cfg.APIPrefix+"/sync/snapshots")
			bus := syncengine.NewRedisBus(redisClient, cfg.Sync.Channel)
			engine = syncengine.NewEngine(docs, snapshots, bus, metrics, logr, syncengine.EngineConfig{
				ProjectID:     cfg.Sync.ProjectID,
				SyncingFloor:  cfg.Sync.SyncingFloor,
				FetchTimeout:  cfg.Sync.FetchTimeout,
				WorkerRetries: cfg.Sync.WorkerRetries,
			})
			engine.Start(ctx)
		}
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handlers := handler.Handlers{
		Students:   handler.NewStudentHandler(docs),
		Staff:      handler.NewStaffHandler(docs),
		Fees:       handler.NewFeeHandler(fees),
		Academics:  handler.NewAcademicHandler(academics, docs),
		Timetables: handler.NewTimetableHandler(docs),
		Archives:   handler.NewArchiveHandler(archives),
		Settings:   handler.NewSettingsHandler(docs),
		Sync:       newSyncHandler(engine, snapshots),
		Transfers:  handler.NewTransferHandler(transfers),
	}
	handlers.RegisterRoutes(r.Group(cfg.APIPrefix))

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "sync", engine != nil)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	if engine != nil {
		engine.Close()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Warn("forced shutdown", zap.Error(err))
	}
}

// newSyncHandler keeps nil interfaces nil when sync is disabled so the
// handler reports the channel as unavailable instead of panicking.
func newSyncHandler(engine *syncengine.Engine, snapshots *syncengine.BlobSnapshotStore) *handler.SyncHandler {
	if engine == nil || snapshots == nil {
		return handler.NewSyncHandler(nil, nil)
	}
	return handler.NewSyncHandler(engine, snapshots)
}
