// Package main provides a CLI tool for preparing the database: it applies
// the schema and optionally loads demo products.
package main

import (
	"context"
	"fmt"
	"os"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/types"
	"stockroom/internal/domain/auth"
	"stockroom/internal/domain/catalogs/product"
	"stockroom/internal/domain/inventory"
	"stockroom/internal/infrastructure/storage/postgres"
	"stockroom/internal/infrastructure/storage/postgres/catalog_repo"
	"stockroom/internal/infrastructure/storage/postgres/register_repo"
	"stockroom/pkg/config"
	"stockroom/pkg/logger"
)

func main() {
	// seed hash-password <password> prints a value for AUTH_PASSWORD_HASH.
	if len(os.Args) == 3 && os.Args[1] == "hash-password" {
		hash, err := auth.HashPassword(os.Args[2])
		if err != nil {
			fmt.Printf("failed to hash password: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}
	logger.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalw("failed to load config", "error", err)
	}

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.DB.Settings()))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)

	if err := postgres.EnsureSchema(ctx, txManager); err != nil {
		log.Fatalw("failed to apply schema", "error", err)
	}

	if cfg.Seed.DemoData {
		service := inventory.NewService(
			catalog_repo.NewProductRepo(txManager),
			register_repo.NewMovementRepo(txManager),
			inventory.WithTxManager(txManager),
		)
		if err := seedDemoData(ctx, service, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed")
}

// seedDemoData creates a handful of products. Each one gets its
// initial-stock movement. Products that already exist are skipped.
func seedDemoData(ctx context.Context, service *inventory.Service, log *logger.Logger) error {
	demo := []*product.Product{
		product.NewProduct("Screwdriver", "Flat head, 6 mm", 40, 10, types.MustMoney("2.10"), types.MustMoney("3.90")),
		product.NewProduct("Hammer", "Claw hammer, 500 g", 12, 5, types.MustMoney("7.50"), types.MustMoney("12.90")),
		product.NewProduct("Wood screws", "Box of 200, 4x40", 3, 8, types.MustMoney("4.20"), types.MustMoney("6.50")),
		product.NewProduct("Tape measure", "5 m, metric", 0, 4, types.MustMoney("3.30"), types.MustMoney("5.90")),
		product.NewProduct("Work gloves", "Nitrile coated, size L", 25, 10, types.MustMoney("1.80"), types.MustMoney("3.20")),
	}

	created := 0
	for _, p := range demo {
		if _, err := service.CreateProduct(ctx, p); err != nil {
			if apperror.IsDuplicate(err) {
				log.Infow("demo product exists, skipping", "name", p.Name)
				continue
			}
			return fmt.Errorf("create %s: %w", p.Name, err)
		}
		created++
	}

	log.Infow("demo data seeded", "created", created, "total", len(demo))
	return nil
}
