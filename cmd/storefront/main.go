// Package main boots the storefront HTTP server.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wuwei-shop/storefront/internal/catalog"
	"github.com/wuwei-shop/storefront/internal/config"
	"github.com/wuwei-shop/storefront/internal/httpapi"
	"github.com/wuwei-shop/storefront/internal/obs"
	"github.com/wuwei-shop/storefront/internal/payment"
	"github.com/wuwei-shop/storefront/internal/port"
	"github.com/wuwei-shop/storefront/internal/pricing"
	"github.com/wuwei-shop/storefront/internal/repository/memory"
	"github.com/wuwei-shop/storefront/internal/repository/postgres"
	"github.com/wuwei-shop/storefront/internal/service"
)

func main() {
	cfg := config.Load()
	obs.InitLogger(slog.LevelInfo)
	obs.Logger.Info("service_starting")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		catalogRepo port.CatalogRepository
		cartRepo    port.CartRepository
		orderRepo   port.OrderRepository
	)

	if cfg.PostgresDSN != "" {
		pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			obs.Logger.Error("pgxpool_new_error", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		if err := postgres.Migrate(ctx, pool); err != nil {
			obs.Logger.Error("migrate_error", "error", err)
			os.Exit(1)
		}

		catalogRepo = postgres.NewCatalog(pool)
		cartRepo = postgres.NewCart(pool)
		orderRepo = postgres.NewOrders(pool)
		obs.Logger.Info("backend_selected", "backend", "postgres")
	} else {
		catalogRepo = memory.NewCatalog()
		cartRepo = memory.NewCart()
		orderRepo = memory.NewOrders()
		obs.Logger.Info("backend_selected", "backend", "memory")
	}

	if err := catalog.Seed(ctx, catalogRepo); err != nil {
		obs.Logger.Error("catalog_seed_error", "error", err)
		os.Exit(1)
	}

	if cfg.FourGeeksToken == "" {
		obs.Logger.Warn("fourgeeks_token_missing", "hint", "payment-link requests will be rejected upstream")
	}
	paymentProvider := payment.NewClient(cfg.FourGeeksAPIBase, cfg.FourGeeksToken, cfg.FourGeeksTest)

	engine := pricing.NewEngine(cfg.Pricing())
	cartSvc := service.NewCartService(cartRepo, catalogRepo, engine)
	checkoutSvc := service.NewCheckoutService(cartSvc, orderRepo, paymentProvider)

	app := httpapi.NewApp(cfg, catalogRepo, cartSvc, checkoutSvc)
	mux := httpapi.NewRouter(app)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		obs.Logger.Info("http_listen", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			obs.Logger.Error("http_server_error", "error", err)
			os.Exit(1)
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	s := <-sigc
	obs.Logger.Info("shutdown_signal", "signal", s.String())

	ctxSrv, cancelSrv := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelSrv()
	if err := srv.Shutdown(ctxSrv); err != nil {
		obs.Logger.Error("http_shutdown_error", "error", err)
	}
	obs.Logger.Info("service_stopped")
}
