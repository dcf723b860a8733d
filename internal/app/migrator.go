package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

// Migrator применяет goose-миграции поверх пула приложения.
type Migrator struct {
	db             *sql.DB
	migrationsPath string
	logger         *zap.Logger
}

func NewMigrator(pool *pgxpool.Pool, migrationsPath string, logger *zap.Logger) (*Migrator, error) {
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}

	// Goose работает с *sql.DB, поэтому создаём его из пула
	return &Migrator{
		db:             stdlib.OpenDBFromPool(pool),
		migrationsPath: migrationsPath,
		logger:         logger,
	}, nil
}

// Run применяет все pending миграции и логирует итоговую версию схемы
func (mg *Migrator) Run(ctx context.Context) error {
	if err := goose.UpContext(ctx, mg.db, mg.migrationsPath); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, mg.db)
	if err != nil {
		return fmt.Errorf("get schema version: %w", err)
	}

	mg.logger.Info("Migrations applied", zap.Int64("schema_version", version))
	return nil
}

// Close закрывает соединение мигратора, но не пул (им владеет main)
func (mg *Migrator) Close() error {
	if mg.db != nil {
		return mg.db.Close()
	}
	return nil
}
