package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v9"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/umalmyha/customer-records/internal/cache"
	"github.com/umalmyha/customer-records/internal/config"
	"github.com/umalmyha/customer-records/internal/flash"
	"github.com/umalmyha/customer-records/internal/handlers"
	"github.com/umalmyha/customer-records/internal/infra"
	"github.com/umalmyha/customer-records/internal/metrics"
	"github.com/umalmyha/customer-records/internal/service"
	"github.com/umalmyha/customer-records/internal/session"
	"github.com/umalmyha/customer-records/internal/validation"
	"github.com/umalmyha/customer-records/internal/views"
	"google.golang.org/grpc"
)

const defaultConnectTimeout = 5 * time.Second

const envFile = ".env"

// @title       Customer records API
// @version     1.0
// @description Customer records management: listing, search and validated writes.
// @BasePath    /
func main() {
	if err := run(); err != nil {
		logrus.Fatal(err)
	}
}

func run() error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	if err := setupLogger(cfg.LogCfg); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultConnectTimeout)
	defer cancel()

	storage, err := infra.OpenStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := storage.Close(context.Background()); err != nil {
			logrus.Errorf("failed to close storage - %v", err)
		}
	}()

	var redisClient *redis.Client
	if cfg.RedisCfg.Enabled() {
		redisClient, err = infra.Redis(ctx, cfg.RedisCfg)
		if err != nil {
			return err
		}
		defer redisClient.Close()
	}

	e, grpcServer, err := app(cfg, storage, redisClient)
	if err != nil {
		return err
	}

	return start(e, grpcServer, cfg)
}

func buildConfig() (config.Config, error) {
	if _, err := os.Stat(envFile); err == nil {
		return config.Build(envFile)
	}
	return config.Build()
}

func setupLogger(cfg config.LogCfg) error {
	lvl, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("failed to parse log level - %w", err)
	}
	logrus.SetLevel(lvl)

	if cfg.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return nil
}

func app(cfg config.Config, storage *infra.Storage, redisClient *redis.Client) (*echo.Echo, *grpc.Server, error) {
	// Cache and flash storage
	var (
		customerCache cache.CustomerCacheRepository
		flashStore    flash.Store
	)
	if redisClient != nil {
		customerCache = cache.NewRedisCustomerCache(redisClient, cfg.CustomerCfg.CacheTTL)
		flashStore = cache.NewRedisFlashStore(redisClient, cfg.SessionCfg.FlashTTL)
	} else {
		logrus.Info("redis is not configured, customers aren't cached and flash messages are kept in memory")
		customerCache = cache.NewNoopCustomerCache()
		flashStore = flash.NewMemoryStore(cfg.SessionCfg.FlashTTL)
	}

	// Validation
	validate, err := validation.New(cfg.CustomerCfg.EmailSuffix)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to register customer validation rules - %w", err)
	}

	trans, err := validation.EnglishTranslator(validate)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to register validation translations - %w", err)
	}

	// Services
	gate := service.NewGate(storage.CustomerRps, validate, metrics.Recorder(), service.GateCfg{
		EmailSuffix:  cfg.CustomerCfg.EmailSuffix,
		StrictUpdate: cfg.CustomerCfg.StrictUpdate,
	})
	customerSvc := service.NewCustomerService(storage.CustomerRps, customerCache, gate, cfg.CustomerCfg.PageSize)

	renderer, err := handlers.NewTemplateRenderer(views.FS)
	if err != nil {
		return nil, nil, err
	}
	validator := validation.Echo(validate, trans)

	e := infra.Router(infra.RouterCfg{
		CustomerSvc: customerSvc,
		Flasher:     flash.NewFlasher(flashStore),
		Renderer:    renderer,
		Validator:   validator,
		SessionCfg: session.Cfg{
			CookieName: cfg.SessionCfg.CookieName,
			TimeToLive: cfg.SessionCfg.TimeToLive,
			Secure:     cfg.SessionCfg.Secure,
		},
		Swagger: cfg.HTTPCfg.Swagger,
	})
	return e, infra.GrpcServer(customerSvc, validator), nil
}

func start(e *echo.Echo, grpcServer *grpc.Server, cfg config.Config) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GrpcCfg.Port))
	if err != nil {
		return fmt.Errorf("failed to listen gRPC port - %w", err)
	}

	shutdownCh := make(chan os.Signal, 1)
	errorCh := make(chan error, 2)
	signal.Notify(shutdownCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		errorCh <- e.Start(fmt.Sprintf(":%d", cfg.HTTPCfg.Port))
	}()

	go func() {
		errorCh <- grpcServer.Serve(lis)
	}()

	var serveErr error
	select {
	case <-shutdownCh:
		logrus.Info("shutdown signal has been sent, stopping the servers...")
	case err := <-errorCh:
		if !errors.Is(err, http.ErrServerClosed) && !errors.Is(err, grpc.ErrServerStopped) {
			serveErr = fmt.Errorf("shutting down the servers, unexpected error occurred - %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPCfg.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logrus.Errorf("failed to stop http server gracefully - %v", err)
	}
	grpcServer.GracefulStop()

	return serveErr
}
