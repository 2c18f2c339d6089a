package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexandru1c/refeelv2/configs"
	"github.com/alexandru1c/refeelv2/middlewares"
	"github.com/alexandru1c/refeelv2/pkg/cart"
	"github.com/alexandru1c/refeelv2/pkg/guard"
	"github.com/alexandru1c/refeelv2/pkg/identity"
	"github.com/alexandru1c/refeelv2/routes"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg := configs.LoadConfig()

	logger, err := configs.NewLogger(cfg)
	if err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	defer logger.Sync()

	// DB
	if err := configs.ConnectionDB(cfg); err != nil {
		logger.Fatal("connect db failed", zap.Error(err))
	}
	db := configs.DB()

	// migrate
	if err := configs.SetupDatabase(db); err != nil {
		logger.Fatal("migrate failed", zap.Error(err))
	}
	if cfg.SeedDemo {
		if err := configs.SeedDemo(db, logger); err != nil {
			logger.Fatal("seed demo failed", zap.Error(err))
		}
	}

	ctx := context.Background()
	deps := routes.Deps{
		DB:       db,
		Config:   cfg,
		Log:      logger,
		Sessions: cart.NewSessionsWithIdle(cfg.CartIdleTTL),
	}

	// Identity: OIDC ถ้าตั้ง issuer ไว้ ไม่งั้นออก token เอง
	if cfg.OIDCIssuer != "" {
		v, err := identity.NewOIDCVerifier(ctx, cfg.OIDCIssuer, cfg.OIDCClientID)
		if err != nil {
			logger.Fatal("oidc discovery failed", zap.String("issuer", cfg.OIDCIssuer), zap.Error(err))
		}
		deps.Verifier = v
	} else {
		issuer := identity.NewHMACVerifier(cfg.JWTSecret, cfg.JWTTTL)
		deps.Verifier = issuer
		deps.Issuer = issuer
	}

	// Checkout lock
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Fatal("redis ping failed", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		defer rdb.Close()
		deps.Guard = guard.NewRedis(rdb, logger)
	} else {
		deps.Guard = guard.NewMemory()
	}

	// HTTP
	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middlewares.RequestLogger(logger))
	routes.RegisterRoutes(r, deps)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
