package storage

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"parsedash/internal/domain/class"
	"parsedash/internal/infrastructure/storage/memory"
	"parsedash/internal/infrastructure/storage/postgres"
)

// Storage - хранилище dev-сервера
type Storage interface {
	class.Repository
	Ping(ctx context.Context) error
	Close() error
}

var (
	_ Storage = (*memory.Storage)(nil)
	_ Storage = (*postgres.Storage)(nil)
)

// New открывает Postgres по databaseURI или, если он пуст, хранилище в памяти
func New(ctx context.Context, databaseURI string, log *slog.Logger) (Storage, error) {
	if databaseURI == "" {
		log.Warn("DATABASE_URI is empty, objects are kept in memory")
		return memory.New(), nil
	}

	s, err := postgres.New(ctx, databaseURI, log)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return s, nil
}
