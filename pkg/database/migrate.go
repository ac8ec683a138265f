package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ErrDirtyMigration yarım kalmış migration; elle düzeltilmeden sunucu başlatılmaz
var ErrDirtyMigration = errors.New("veritabanı şeması yarım kalmış bir migration içeriyor")

// RunMigrations gömülü şemayı son sürüme taşır.
// Şema dirty ise hiçbir şey uygulanmaz ve ErrDirtyMigration döner.
func RunMigrations(db *sql.DB, logger *zap.Logger) error {
	m, err := newMigrator(db)
	if err != nil {
		return err
	}

	before, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		before = 0
	case err != nil:
		return fmt.Errorf("şema sürümü okunamadı: %w", err)
	case dirty:
		return fmt.Errorf("%w (sürüm %d)", ErrDirtyMigration, before)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("şema güncellenemedi: %w", err)
	}

	after, _, _ := m.Version()
	if after == before {
		logger.Info("şema güncel", zap.Uint("version", after))
	} else {
		logger.Info("şema güncellendi", zap.Uint("from", before), zap.Uint("to", after))
	}
	return nil
}

func newMigrator(db *sql.DB) (*migrate.Migrate, error) {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("gömülü migration dosyaları okunamadı: %w", err)
	}
	driver, err := postgres.WithInstance(db, &postgres.Config{MigrationsTable: "ik_schema_migrations"})
	if err != nil {
		return nil, fmt.Errorf("migration sürücüsü kurulamadı: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("migrator kurulamadı: %w", err)
	}
	return m, nil
}
