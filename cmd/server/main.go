package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"holdings/internal/config"
	"holdings/internal/handlers"
	"holdings/internal/portfolio"
	"holdings/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()

	cfg := config.MustLoad(logger)
	lvl, _ := cfg.Level()
	logger.SetLevel(lvl)
	gin.SetMode(cfg.GinMode)

	desk := service.NewDesk(portfolio.New(os.Stdout, logger), logger)
	h := handlers.NewHandler(desk, logger)

	rg := gin.New()
	rg.Use(gin.Logger(), gin.Recovery())
	h.Register(rg)

	srv := &http.Server{Addr: cfg.Addr(), Handler: rg}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Infof("server starting on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("shutdown: %v", err)
	}
	desk.Print()
}
