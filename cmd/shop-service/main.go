package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/flappshop/shop-service/internal/cart"
	"github.com/flappshop/shop-service/internal/catalog"
	"github.com/flappshop/shop-service/internal/checkout"
	"github.com/flappshop/shop-service/internal/config"
	"github.com/flappshop/shop-service/internal/db"
	"github.com/flappshop/shop-service/internal/events"
	httpapi "github.com/flappshop/shop-service/internal/http"
	"github.com/flappshop/shop-service/internal/quoting"
	"github.com/flappshop/shop-service/internal/shipping"
)

func main() {
	logger := log.New(os.Stdout, "[shop-service] ", log.LstdFlags|log.Lshortfile)

	cfg := config.Load()

	dsn := db.GetDSN()
	if err := db.RunMigrations(dsn, logger); err != nil {
		logger.Fatalf("run migrations: %v", err)
	}

	database := db.MustOpen(dsn)
	defer database.Close()

	store := cart.NewPostgresStore(database, logger)

	upstream := &http.Client{Timeout: cfg.UpstreamTimeout}
	catalogClient := catalog.NewClient(cfg.CatalogURL, upstream)

	couriers := make([]*quoting.Courier, 0, len(cfg.Couriers))
	for _, cc := range cfg.Couriers {
		couriers = append(couriers, quoting.NewCourier(cc.Name, cc.URL, cc.Credential, upstream))
	}
	quoteService := quoting.NewService(catalogClient, couriers, logger)

	// The quote client has no timeout of its own; it rides on the transport's.
	quoteClient := shipping.NewClient(cfg.QuoteAPIURL, upstream)

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.RabbitURL != "" {
		conn, err := events.Dial(cfg.RabbitURL)
		if err != nil {
			logger.Fatalf("dial rabbit: %v", err)
		}
		defer conn.Close()

		publisher, err = events.NewRabbitPublisher(conn)
		if err != nil {
			logger.Fatalf("create publisher: %v", err)
		}
	}

	session := httpapi.NewSession(func() *checkout.Orchestrator {
		return checkout.New(store, quoteClient, publisher, logger)
	})

	router := httpapi.NewRouter(
		httpapi.NewQuoteHandler(quoteService, logger),
		httpapi.NewCartHandler(store, catalogClient, session, logger),
		httpapi.NewCheckoutHandler(session, logger),
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("shop-service listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Printf("shutdown signal received")
	case err := <-errCh:
		logger.Fatalf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown error: %v", err)
	}
	if err := publisher.Close(); err != nil {
		logger.Printf("publisher close error: %v", err)
	}
}
