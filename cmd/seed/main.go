// seed crea las cuentas iniciales del personal (admin, manager, cashier) en PostgreSQL.
// No toca los usernames que ya existen, así que puede correr en cada despliegue.
//
// Uso: SEED_ADMIN_PASSWORD=... SEED_MANAGER_PASSWORD=... SEED_CASHIER_PASSWORD=... go run ./cmd/seed
package main

import (
	"context"
	"time"

	"github.com/zeenatstore/zeenat-store/internal/application/auth"
	"github.com/zeenatstore/zeenat-store/internal/infrastructure/postgres"
	"github.com/zeenatstore/zeenat-store/pkg/config"
	"github.com/zeenatstore/zeenat-store/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load config: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	if cfg.DB.Driver != config.DriverPostgres {
		log.Fatal().Str("storage", cfg.DB.Driver).Msg("seed only works against PostgreSQL; the memory driver seeds itself on start")
	}

	accounts := auth.DefaultAccounts(cfg.Seed.AdminUsername, cfg.Seed.AdminPassword, cfg.Seed.ManagerPassword, cfg.Seed.CashierPassword)
	if len(accounts) == 0 {
		log.Fatal().Msg("no SEED_*_PASSWORD set, nothing to seed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	// La config JWT no importa aquí: solo se usa EnsureUser.
	authUC := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{})
	res, err := authUC.EnsureAccounts(ctx, accounts)
	for _, r := range res {
		if r.Created {
			log.Info().Str("username", r.Username).Msg("account created")
		} else {
			log.Info().Str("username", r.Username).Msg("account exists, skipped")
		}
	}
	if err != nil {
		log.Fatal().Err(err).Msg("seed accounts")
	}
}
