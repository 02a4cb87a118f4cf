// Package storage abre el backend de persistencia según DB_DRIVER.
package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Produccion-api/internal/application/inventory"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
	"github.com/jhoicas/Produccion-api/internal/infrastructure/memory"
	"github.com/jhoicas/Produccion-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Produccion-api/pkg/config"
)

// Backend repositorios y TxRunner listos para inyectar en los casos de uso.
type Backend struct {
	Driver     string
	TxRunner   inventory.TxRunner
	Repos      repository.TxRepos
	Categories repository.CategoryRepository
	Analytics  repository.ProductionAnalyticsRepository

	// Pool es nil con el driver memory.
	Pool *pgxpool.Pool
	// Store es nil con el driver postgres.
	Store *memory.Store
}

// Open conecta el backend. Con DB_AUTO_MIGRATE aplica las migraciones pendientes.
func Open(ctx context.Context, cfg config.DBConfig, log zerolog.Logger) (*Backend, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		store := memory.New()
		log.Warn().Msg("usando store en memoria: los datos se pierden al reiniciar")
		return &Backend{
			Driver:     config.DriverMemory,
			TxRunner:   store,
			Repos:      store.Repos(),
			Categories: store.Categories(),
			Analytics:  store.Analytics(),
			Store:      store,
		}, nil
	case config.DriverPostgres, "":
		pool, err := postgres.NewPool(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		if cfg.AutoMigrate {
			n, err := postgres.Migrate(ctx, pool, log)
			if err != nil {
				pool.Close()
				return nil, fmt.Errorf("migrar: %w", err)
			}
			log.Info().Int("applied", n).Msg("migraciones al día")
		}
		return &Backend{
			Driver:     config.DriverPostgres,
			TxRunner:   postgres.NewTxRunner(pool),
			Repos:      postgres.ReposFor(pool),
			Categories: postgres.NewCategoryRepository(pool),
			Analytics:  postgres.NewAnalyticsRepository(pool),
			Pool:       pool,
		}, nil
	default:
		return nil, fmt.Errorf("storage: driver %q no soportado", cfg.Driver)
	}
}

// Close libera el pool si existe.
func (b *Backend) Close() {
	if b != nil && b.Pool != nil {
		b.Pool.Close()
	}
}
