package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/tienda-online/internal/config"
	"example.com/tienda-online/internal/domain/catalog"
	filestore "example.com/tienda-online/internal/infra/persistence/file"
	mysqlstore "example.com/tienda-online/internal/infra/persistence/mysql"
	pgstore "example.com/tienda-online/internal/infra/persistence/postgres"
	"example.com/tienda-online/internal/infra/security"
	httpapi "example.com/tienda-online/internal/interface/http"
	"example.com/tienda-online/internal/obs"
	authuc "example.com/tienda-online/internal/usecase/auth"
	checkoutuc "example.com/tienda-online/internal/usecase/checkout"
)

func main() {
	cfg := config.Load()
	obs.InitLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, cleanup, err := newCatalogStore(ctx, cfg)
	if err != nil {
		obs.Logger.Error("catalog store init failed", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer cleanup()

	users := filestore.NewUserStore(cfg.UsersPath)
	checker := security.NewBcryptService(0)
	tokens := newTokenService(cfg)

	authSvc := authuc.NewService(users, checker, tokens, store)
	checkoutSvc := checkoutuc.NewService(store, cfg.StrictCartIDs)

	api := httpapi.NewAPI(httpapi.Dependencies{
		AuthService:     authSvc,
		CheckoutService: checkoutSvc,
		TokenService:    tokens,
	})

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: api.Router(),
	}

	go func() {
		obs.Logger.Info("listening", "addr", cfg.HTTPAddr, "store", cfg.StoreDriver, "auth", cfg.AuthMode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			obs.Logger.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		obs.Logger.Error("shutdown failed", "error", err)
	}
}

func newCatalogStore(ctx context.Context, cfg config.Config) (catalog.Store, func(), error) {
	switch cfg.StoreDriver {
	case "file":
		return filestore.NewCatalogStore(cfg.CatalogPath), func() {}, nil
	case "mysql":
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			return nil, nil, err
		}
		st := mysqlstore.NewCatalogStore(db)
		if err := st.Init(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return st, func() { db.Close() }, nil
	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		st := pgstore.NewCatalogStore(pool)
		if err := st.Init(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return st, pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func newTokenService(cfg config.Config) authuc.TokenService {
	if cfg.AuthMode == "jwt" {
		return security.NewJWTService(cfg.SecretToken, cfg.TokenTTL)
	}
	return security.NewStaticTokenService(cfg.SecretToken)
}
