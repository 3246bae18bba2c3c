package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"encryption-service/internal/api"
	"encryption-service/internal/pkg/logger"
	"encryption-service/internal/service"
	"encryption-service/internal/storage"
)

const shutdownTimeout = 5 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := initService(ctx, os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

// SetupRouter собирает хранилище, сервис и роутер.
func SetupRouter(store storage.Store, secretCost int, sugarLogger *zap.SugaredLogger) http.Handler {
	svc := service.New(store, secretCost)
	return api.NewRouter(api.New(svc), sugarLogger)
}

func initService(ctx context.Context, args []string) error {
	initValues, err := initFlags(args)
	if err != nil {
		return err
	}

	sugarLogger, err := logger.New(initValues.logLevel)
	if err != nil {
		return err
	}
	defer func() { _ = sugarLogger.Sync() }()

	store, err := storage.New(initValues.storage)
	if err != nil {
		return err
	}
	defer store.Close()

	server := &http.Server{
		Addr:              initValues.serverAddr,
		Handler:           SetupRouter(store, initValues.secretCost, sugarLogger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		sugarLogger.Infof("listening on %s, storage %s", initValues.serverAddr, initValues.storage)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	sugarLogger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
