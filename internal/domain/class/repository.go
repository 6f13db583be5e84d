package class

import (
	"context"

	"parsedash/internal/domain/object"
	"parsedash/internal/domain/schema"
)

// Repository хранит схемы, объекты и файлы.
// Отсутствующие записи возвращаются как schema.ErrNotFound,
// object.ErrNotFound и ErrFileNotFound.
type Repository interface {
	// Схемы
	Schemas(ctx context.Context) ([]schema.Schema, error)
	Schema(ctx context.Context, className string) (*schema.Schema, error)
	SaveSchema(ctx context.Context, s *schema.Schema) error
	DeleteSchema(ctx context.Context, className string) error

	// Объекты
	Objects(ctx context.Context, className string) ([]*object.Object, error)
	Object(ctx context.Context, className, id string) (*object.Object, error)
	SaveObject(ctx context.Context, obj *object.Object) error
	DeleteObject(ctx context.Context, className, id string) error
	CountObjects(ctx context.Context, className string) (int, error)

	// Файлы
	SaveFile(ctx context.Context, f *File) error
	File(ctx context.Context, name string) (*File, error)
}
