// Package migration накатывает встроенные SQL-миграции: клиентскую базу SQLite
// и базу dev-сервера в Postgres.
package migration

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/hashicorp/go-multierror"
)

// Migrator - часть migrate.Migrate, которая нужна для наката
type Migrator interface {
	Up() error
	Close() (source error, database error)
}

// Engine открывает мигратор; в тестах подменяется, чтобы не трогать БД
type Engine func(src fs.FS, dir, databaseURL string) (Migrator, error)

type Migration struct {
	src         fs.FS
	dir         string
	databaseURL string
	engine      Engine
}

// NewMigration готовит накат миграций из каталога dir встроенной ФС.
// engine == nil - настоящий golang-migrate.
func NewMigration(src fs.FS, dir, databaseURL string, engine Engine) *Migration {
	if engine == nil {
		engine = openMigrator
	}
	return &Migration{
		src:         src,
		dir:         dir,
		databaseURL: databaseURL,
		engine:      engine,
	}
}

func openMigrator(src fs.FS, dir, databaseURL string) (Migrator, error) {
	source, err := iofs.New(src, dir)
	if err != nil {
		return nil, fmt.Errorf("read embedded migrations: %w", err)
	}
	return migrate.NewWithSourceInstance("iofs", source, databaseURL)
}

// Up накатывает все новые миграции. Отсутствие изменений ошибкой не считается.
// Ошибки закрытия источника и базы добавляются к основной.
func (mg *Migration) Up() (err error) {
	m, err := mg.engine(mg.src, mg.dir, mg.databaseURL)
	if err != nil {
		return fmt.Errorf("open migrator for %s: %w", mg.dir, err)
	}

	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr == nil && dbErr == nil {
			return
		}
		err = multierror.Append(err, closeError("source", srcErr), closeError("database", dbErr)).ErrorOrNil()
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply %s: %w", mg.dir, err)
	}
	return nil
}

func closeError(what string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("close migration %s: %w", what, err)
}
