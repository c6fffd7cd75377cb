package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/zeenatstore/zeenat-store/internal/application/auth"
	"github.com/zeenatstore/zeenat-store/internal/application/catalog"
	"github.com/zeenatstore/zeenat-store/internal/application/report"
	"github.com/zeenatstore/zeenat-store/internal/application/sales"
	"github.com/zeenatstore/zeenat-store/internal/domain/access"
	"github.com/zeenatstore/zeenat-store/internal/domain/repository"
	"github.com/zeenatstore/zeenat-store/internal/infrastructure/memory"
	infrapdf "github.com/zeenatstore/zeenat-store/internal/infrastructure/pdf"
	"github.com/zeenatstore/zeenat-store/internal/infrastructure/postgres"
	"github.com/zeenatstore/zeenat-store/internal/infrastructure/redisstore"
	"github.com/zeenatstore/zeenat-store/internal/infrastructure/spreadsheet"
	httpRouter "github.com/zeenatstore/zeenat-store/internal/interfaces/http"
	"github.com/zeenatstore/zeenat-store/pkg/config"
	"github.com/zeenatstore/zeenat-store/pkg/logger"
)

// storage agrupa los repositorios y runners de transacción que ofrece un driver.
type storage struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
	sales      repository.SaleRepository
	movements  repository.InventoryMovementRepository
	users      repository.UserRepository
	reports    repository.ReportRepository
	tx         catalog.TxRunner
	saleTx     sales.SaleTxRunner
	ping       func(ctx context.Context) error
	close      func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load config: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.DB.Driver).
		Msg("starting")

	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = uuid.NewString()
		log.Warn().Msg("JWT_SECRET not set, using a random secret; sessions end on restart")
	}

	ctx := context.Background()
	store, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("open storage")
	}
	defer store.close()

	authUC := auth.NewAuthUseCase(store.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// El driver en memoria arranca vacío: se le crean las cuentas semilla en cada arranque.
	if cfg.DB.Driver == config.DriverMemory {
		accounts := auth.DefaultAccounts(cfg.Seed.AdminUsername, cfg.Seed.AdminPassword, cfg.Seed.ManagerPassword, cfg.Seed.CashierPassword)
		if len(accounts) == 0 {
			log.Warn().Msg("memory storage without SEED_*_PASSWORD: nobody can log in")
		}
		res, err := authUC.EnsureAccounts(ctx, accounts)
		if err != nil {
			log.Fatal().Err(err).Msg("seed accounts")
		}
		for _, r := range res {
			log.Info().Str("username", r.Username).Bool("created", r.Created).Msg("seed account")
		}
	}

	var sessionStorage fiber.Storage
	if cfg.Redis.Enabled() {
		rs := redisstore.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := rs.Ping(ctx); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("connect to Redis")
		}
		defer rs.Close()
		sessionStorage = rs
		log.Info().Str("addr", cfg.Redis.Addr).Msg("sessions stored in Redis")
	}

	deps := httpRouter.RouterDeps{
		AuthUC:     authUC,
		ProductUC:  catalog.NewProductUseCase(store.tx, store.products, store.categories, store.movements),
		CartUC:     sales.NewCartUseCase(store.products),
		CheckoutUC: sales.NewCheckoutUseCase(store.saleTx),
		SaleUC:     sales.NewSaleUseCase(store.sales, infrapdf.NewInvoiceGenerator(cfg.App.StoreName)),
		ReportUC: report.NewReportUseCase(
			store.reports, store.products, store.sales,
			spreadsheet.NewExporter(), cfg.App.LowStockThreshold,
		),
		Authorizer:    access.DefaultPolicy(),
		Sessions:      httpRouter.NewSessions(sessionStorage, time.Duration(cfg.Session.ExpirationHours)*time.Hour, cfg.App.IsProduction()),
		JWTSecret:     cfg.JWT.Secret,
		TokenTTL:      time.Duration(cfg.JWT.Expiration) * time.Minute,
		SecureCookie:  cfg.App.IsProduction(),
		StoreName:     cfg.App.StoreName,
		StorageDriver: cfg.DB.Driver,
		Ping:          store.ping,
	}

	app := httpRouter.NewServer(httpRouter.ServerConfig{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	}, log, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("stopped")
}

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	if cfg.DB.Driver == config.DriverMemory {
		m := memory.New()
		return &storage{
			categories: m.Categories(),
			products:   m.Products(),
			sales:      m.Sales(),
			movements:  m.Movements(),
			users:      m.Users(),
			reports:    m.Reports(),
			tx:         m,
			saleTx:     m,
			close:      func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	runner := postgres.NewTxRunner(pool)
	return &storage{
		categories: postgres.NewCategoryRepository(pool),
		products:   postgres.NewProductRepository(pool),
		sales:      postgres.NewSaleRepository(pool),
		movements:  postgres.NewInventoryMovementRepository(pool),
		users:      postgres.NewUserRepository(pool),
		reports:    postgres.NewReportRepository(pool),
		tx:         runner,
		saleTx:     runner,
		ping:       pool.Ping,
		close:      pool.Close,
	}, nil
}
