package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/DillanMilo/angus-biltong-sub000/auth"
	"github.com/DillanMilo/angus-biltong-sub000/backup"
	"github.com/DillanMilo/angus-biltong-sub000/cart"
	"github.com/DillanMilo/angus-biltong-sub000/catalog"
	"github.com/DillanMilo/angus-biltong-sub000/checkout"
	"github.com/DillanMilo/angus-biltong-sub000/commerce"
	"github.com/DillanMilo/angus-biltong-sub000/config"
	"github.com/DillanMilo/angus-biltong-sub000/giftcert"
	"github.com/DillanMilo/angus-biltong-sub000/logger"
	"github.com/DillanMilo/angus-biltong-sub000/middleware"
	"github.com/DillanMilo/angus-biltong-sub000/pages"
	"github.com/DillanMilo/angus-biltong-sub000/routes"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the storefront HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(parent context.Context) error {
	cfg, loadErr := config.Load()

	log, err := logger.New(logger.Options{Service: "angus-biltong", Env: cfg.AppEnv, Level: cfg.LogLevel, Dev: cfg.IsDev()})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	if err := errors.Join(loadErr, cfg.Validate()); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := newCommerceClient(cfg)
	if err != nil {
		return err
	}
	storage, err := openStorage(cfg, log)
	if err != nil {
		return err
	}
	lib, err := pages.Load()
	if err != nil {
		return err
	}

	sessions := cart.NewSessions(storage, log.Named("cart")).WithIdleTTL(time.Duration(cfg.CartIdleMins) * time.Minute)
	go sessions.Run(ctx, time.Minute)

	policy := checkout.Policy{FreeShippingThreshold: cfg.FreeShippingThreshold, FlatRate: cfg.FlatShippingRate}
	deps := routes.Deps{
		Catalog:        catalog.NewService(client, catalog.DefaultResolver()),
		Sessions:       sessions,
		HandOff:        checkout.NewHandOff(client, policy),
		Accounts:       auth.NewAccounts(client, cfg.JWTSecret),
		GiftCerts:      giftcert.NewService(client),
		Pages:          lib,
		AdminAPIKey:    cfg.AdminAPIKey,
		AllowedOrigins: cfg.CORSOrigins,
		SecureCookies:  !cfg.IsDev(),
	}

	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log.Named("http")), cors.New(corsConfig(cfg.CORSOrigins)))
	routes.SetupRoutes(r, deps)

	if cfg.CartBackupDir != "" {
		daily := &backup.Daily{
			Src:       cfg.CartStorageDir,
			Dest:      cfg.CartBackupDir,
			Retention: time.Duration(cfg.CartBackupRetention) * 24 * time.Hour,
			Hour:      cfg.CartBackupHour,
			Log:       log.Named("backup"),
		}
		go daily.Run(ctx)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr), zap.String("cart_storage", cfg.CartStorage))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newCommerceClient(cfg config.Config) (*commerce.Client, error) {
	return commerce.New(commerce.Config{
		BaseURL:   cfg.CommerceAPIURL,
		StoreHash: cfg.CommerceStoreHash,
		Token:     cfg.CommerceToken,
		ChannelID: cfg.CommerceChannelID,
	})
}

func openStorage(cfg config.Config, log *zap.Logger) (cart.Storage, error) {
	switch cfg.CartStorage {
	case config.StorageMemory:
		log.Warn("cart snapshots kept in memory only")
		return cart.NewMemoryStorage(), nil
	case config.StorageFile:
		return cart.NewFileStorage(cfg.CartStorageDir)
	case config.StoragePostgres:
		db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		st := cart.NewGormStorage(db)
		if err := st.Migrate(); err != nil {
			return nil, fmt.Errorf("migrate cart snapshots: %w", err)
		}
		return st, nil
	}
	return nil, fmt.Errorf("unknown cart storage %q", cfg.CartStorage)
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		// Any site may read the public API, but without credentials, so a
		// foreign page can never act on a visitor's cart cookie.
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}
