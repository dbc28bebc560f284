package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"ecotrivia/backend/internal/config"
	"ecotrivia/backend/internal/handler"
	"ecotrivia/backend/internal/presence"
	"ecotrivia/backend/internal/reconcile"
	"ecotrivia/backend/internal/session"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	// Swagger imports
	_ "ecotrivia/backend/docs"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.JWTSecret == "" {
				return errors.New("--jwt-secret (env: ECOTRIVIA_JWT_SECRET) is required")
			}
			return serve(cfg)
		},
	}
}

func serve(cfg *config.Config) error {
	b, err := openBackend(cfg)
	if err != nil {
		return err
	}
	opts, err := b.roomOptions(cfg)
	if err != nil {
		_ = b.Close()
		return err
	}

	tracker := presence.New(b.port, b.keys.OnlineUsers, nil, nil, slog.Default())
	sessions := session.NewManager(session.Deps{
		Port:     b.port,
		Bus:      b.bus,
		Hub:      b.hub,
		Presence: tracker,
		Room:     opts,
		Sync: reconcile.Config{
			PollInterval:  cfg.PollInterval,
			SweepInterval: cfg.SweepInterval,
		},
		Logger:      slog.Default(),
		IdleTimeout: cfg.SessionIdleTimeout,
	})

	bg, stopBackground := context.WithCancel(context.Background())
	go sessions.RunPresence(bg, cfg.PresenceInterval)
	go sessions.RunReaper(bg)

	level, _ := cfg.Level()
	if level > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	handler.New(sessions, tracker, cfg.JWTSecret, cfg.JWTTTL, slog.Default()).Register(router.Group("/api/v1"))

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}
	go func() {
		slog.Info("server is running", "addr", cfg.HTTPAddr, "swagger", "/swagger/index.html")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server failed", "err", err)
			os.Exit(1)
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"ecotrivia": func(ctx context.Context) error {
				slog.Info("graceful shutdown initiated")
				stopBackground()
				return errors.Join(
					srv.Shutdown(ctx),
					sessions.Shutdown(ctx),
					b.Close(),
				)
			},
		},
	)

	if code := <-wait; code != 0 {
		return fmt.Errorf("shutdown finished with exit code %d", code)
	}
	return nil
}
