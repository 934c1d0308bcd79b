package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"macromind-server/internal/config"
	apphttp "macromind-server/internal/http"
	"macromind-server/internal/repository/sqlite"
	"macromind-server/internal/service"
	"macromind-server/internal/token"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	if strings.TrimSpace(cfg.Auth.AccessSecret) == "" {
		logger.Fatalf("auth access secret is required")
	}
	if strings.TrimSpace(cfg.Auth.RefreshSecret) == "" {
		logger.Fatalf("auth refresh secret is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	authRepo := sqlite.NewAuthRepository(db)
	profileRepo := sqlite.NewProfileRepository(db)
	cardRepo := sqlite.NewCardRepository(db)

	if err := authRepo.Init(ctx); err != nil {
		logger.Fatalf("init auth repository: %v", err)
	}
	if err := profileRepo.Init(ctx); err != nil {
		logger.Fatalf("init profile repository: %v", err)
	}
	if err := cardRepo.Init(ctx); err != nil {
		logger.Fatalf("init card repository: %v", err)
	}

	tokens := token.NewService(cfg.Auth.AccessSecret, cfg.Auth.RefreshSecret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)
	authService := service.NewAuthService(authRepo, profileRepo, tokens, logger)
	profileService := service.NewProfileService(profileRepo, authRepo)
	cardService := service.NewCardService(cardRepo)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(authService, profileService, cardService, tokens, authRepo, logger)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}
