package migration

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	// драйвер postgres и источник file регистрируются через blank import
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"windkey/internal/app/server/config"
)

// Migrator - то, что нам нужно от migrate.Migrate
type Migrator interface {
	Up() error
	Close() (error, error)
}

// MigrationEngine создаёт мигратор; в тестах подменяется моком
type MigrationEngine func(sourceURL, databaseURL string) (Migrator, error)

type Migration struct {
	db     config.DB
	engine MigrationEngine
}

func NewMigration(conf *config.Config, engine MigrationEngine) *Migration {
	if engine == nil {
		engine = DefaultEngine
	}
	return &Migration{
		db:     conf.DB,
		engine: engine,
	}
}

func DefaultEngine(sourceURL, databaseURL string) (Migrator, error) {
	return migrate.New(sourceURL, databaseURL)
}

func (mg *Migration) Up() (err error) {
	m, err := mg.engine("file://"+mg.db.Migrations, mg.db.DatabaseURI)
	if err != nil {
		return err
	}
	defer func() {
		serr, dberr := m.Close()
		if serr != nil {
			err = errors.Join(err, fmt.Errorf("migration source: %w", serr))
		}
		if dberr != nil {
			err = errors.Join(err, fmt.Errorf("migration database: %w", dberr))
		}
	}()

	if upErr := m.Up(); upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("migration up: %w", upErr)
	}
	return nil
}
