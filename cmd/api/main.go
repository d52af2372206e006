package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	backendclient "expomall/internal/client/backend"
	cartsvc "expomall/internal/cart"
	checkoutsvc "expomall/internal/checkout"
	"expomall/internal/config"
	"expomall/internal/db"
	"expomall/internal/events"
	"expomall/internal/httpserver"
	ordersvc "expomall/internal/order"
	snapshotrepo "expomall/internal/repository/snapshot"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	snapshotRepo := snapshotrepo.NewPostgres(dbpool)
	cartService := cartsvc.New(snapshotRepo, logger)
	backend := backendclient.New(cfg.BackendBaseURL)
	builder := ordersvc.NewBuilder(cfg.SplitOrders)

	var publisher *events.Publisher
	if cfg.RabbitMQURL != "" {
		pool, err := events.NewChannelPool(cfg.RabbitMQURL, cfg.RabbitMQQueue, cfg.ChannelPoolSize)
		if err != nil {
			logger.Fatalf("connect to rabbitmq: %v", err)
		}
		defer pool.Close()
		publisher = events.NewPublisher(pool, cfg.RabbitMQQueue)
	}

	checkoutService := newCheckoutService(cartService, backend, builder, publisher, cfg, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CartSvc:      cartService,
		CheckoutSvc:  checkoutService,
		AllowOrigins: cfg.AllowOrigins,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}

// newCheckoutService keeps the nil-publisher case out of the interface value.
func newCheckoutService(carts *cartsvc.Service, backend *backendclient.Client, builder *ordersvc.Builder, publisher *events.Publisher, cfg config.Config, logger *log.Logger) *checkoutsvc.Service {
	if publisher == nil {
		return checkoutsvc.New(carts, backend, builder, nil, cfg.FallbackDeliveryFee, logger)
	}
	return checkoutsvc.New(carts, backend, builder, publisher, cfg.FallbackDeliveryFee, logger)
}
