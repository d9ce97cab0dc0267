// Package server wires configuration, storage, queues and modules into one
// running HTTP service.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"yildizli-agac-api/core/cache"
	"yildizli-agac-api/core/config"
	"yildizli-agac-api/core/database"
	"yildizli-agac-api/core/logger"
	"yildizli-agac-api/core/middleware"
	"yildizli-agac-api/core/queue"
	"yildizli-agac-api/core/realtime"
	"yildizli-agac-api/core/upstream"
	"yildizli-agac-api/modules/account"
	accountService "yildizli-agac-api/modules/account/service"
	"yildizli-agac-api/modules/interest"
	"yildizli-agac-api/modules/match"
	"yildizli-agac-api/modules/notification"
	"yildizli-agac-api/modules/proposal"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

// Run starts the service and blocks until SIGINT or SIGTERM. Only startup
// failures are returned.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Init(cfg.Log.Level)

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := db.CreateSchema(ctx); err != nil {
		return err
	}

	c, err := cache.NewRedisCache(cfg.Redis)
	if err != nil {
		return err
	}
	defer c.Close()

	queueClient := queue.NewClient(cfg.Redis)
	defer queueClient.Close()
	queueServer := queue.NewServer(cfg.Redis, cfg.Queue)

	hub := realtime.NewHub()
	go hub.Run(ctx)

	client := upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout)
	accounts := accountService.NewAccountService(client, c, accountService.Settings{
		UserCacheTTL: cfg.Upstream.UserCacheTTL,
	})
	mw := middleware.NewMiddleware(accounts, c, middleware.Options{
		JWTSecret:   cfg.Auth.JWTSecret,
		InternalKey: cfg.Auth.InternalKey,
		CookieName:  cfg.Auth.CookieName,
	})

	e := newEcho(cfg.Server)
	e.GET("/health", health(db, c))
	e.GET("/api/v1/private/ws", realtime.Handler(hub, cfg.Server.AllowedOrigins), mw.AuthMiddleware())

	account.Init(e, accounts, cfg.Auth.CookieName, mw)
	interest.Init(e, client, c)
	matches := match.Init(e, db, mw)
	notifications := notification.Init(e, db, hub, mw)
	proposal.Init(e, db, c, queueClient, matches, mw)
	proposal.InitWorker(queueServer, db, matches, notifications, hub)

	if err := queueServer.Start(); err != nil {
		return fmt.Errorf("failed to start queue server: %w", err)
	}
	defer queueServer.Shutdown()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}

	logger.Info("Shutting down server...")
	timeout := cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server:Shutdown", err)
	}
	return nil
}

func newEcho(cfg config.ServerConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echoMiddleware.Recover())
	e.Use(middleware.RequestLogger())
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization, middleware.HeaderRequestID},
		AllowCredentials: true,
	}))
	return e
}

type pinger interface {
	Ping(ctx context.Context) error
}

func health(db, c pinger) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		reqCtx, cancel := context.WithTimeout(ctx.Request().Context(), 2*time.Second)
		defer cancel()

		status := map[string]string{"database": "ok", "redis": "ok"}
		code := http.StatusOK
		if err := db.Ping(reqCtx); err != nil {
			status["database"] = "down"
			code = http.StatusServiceUnavailable
		}
		if err := c.Ping(reqCtx); err != nil {
			status["redis"] = "down"
			code = http.StatusServiceUnavailable
		}
		return ctx.JSON(code, status)
	}
}
