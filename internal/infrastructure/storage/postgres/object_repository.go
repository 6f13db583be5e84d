package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"parsedash/internal/domain/class"
	"parsedash/internal/domain/object"
	"parsedash/internal/domain/schema"
)

// ==================== Схемы ====================

func (s *Storage) Schemas(ctx context.Context) ([]schema.Schema, error) {
	query, args, err := psql.Select("definition").From("schemas").OrderBy("class_name").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		s.log.Error("failed to list schemas", "error", err)
		return nil, fmt.Errorf("list schemas: %w", err)
	}
	defer rows.Close()

	var out []schema.Schema
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan schema: %w", err)
		}
		var sc schema.Schema
		if err := json.Unmarshal(raw, &sc); err != nil {
			return nil, fmt.Errorf("decode schema: %w", err)
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

func (s *Storage) Schema(ctx context.Context, className string) (*schema.Schema, error) {
	query, args, err := psql.Select("definition").From("schemas").
		Where(sq.Eq{"class_name": className}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var raw []byte
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, schema.ErrNotFound
		}
		s.log.Error("failed to get schema", "class", className, "error", err)
		return nil, fmt.Errorf("get schema: %w", err)
	}

	var sc schema.Schema
	if err := json.Unmarshal(raw, &sc); err != nil {
		return nil, fmt.Errorf("decode schema: %w", err)
	}
	return &sc, nil
}

func (s *Storage) SaveSchema(ctx context.Context, sc *schema.Schema) error {
	query, args, err := saveSchemaQuery(sc)
	if err != nil {
		return err
	}
	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		s.log.Error("failed to save schema", "class", sc.ClassName, "error", err)
		return fmt.Errorf("save schema: %w", err)
	}
	return nil
}

func saveSchemaQuery(sc *schema.Schema) (string, []any, error) {
	definition, err := json.Marshal(sc)
	if err != nil {
		return "", nil, fmt.Errorf("encode schema: %w", err)
	}
	return psql.Insert("schemas").
		Columns("class_name", "definition", "updated_at").
		Values(sc.ClassName, definition, time.Now().UTC()).
		Suffix("ON CONFLICT (class_name) DO UPDATE SET definition = EXCLUDED.definition, updated_at = EXCLUDED.updated_at").
		ToSql()
}

// DeleteSchema удаляет схему вместе с объектами класса
func (s *Storage) DeleteSchema(ctx context.Context, className string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	query, args, err := psql.Delete("objects").Where(sq.Eq{"class_name": className}).ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("delete objects: %w", err)
	}

	query, args, err = psql.Delete("schemas").Where(sq.Eq{"class_name": className}).ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		s.log.Error("failed to delete schema", "class", className, "error", err)
		return fmt.Errorf("delete schema: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return schema.ErrNotFound
	}

	return tx.Commit(ctx)
}

// ==================== Объекты ====================

var objectColumns = []string{"class_name", "object_id", "fields", "created_at", "updated_at"}

func (s *Storage) Objects(ctx context.Context, className string) ([]*object.Object, error) {
	query, args, err := psql.Select(objectColumns...).From("objects").
		Where(sq.Eq{"class_name": className}).
		OrderBy("created_at", "object_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		s.log.Error("failed to list objects", "class", className, "error", err)
		return nil, fmt.Errorf("list objects: %w", err)
	}
	defer rows.Close()

	var out []*object.Object
	for rows.Next() {
		obj, err := scanObject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, obj)
	}
	return out, rows.Err()
}

func (s *Storage) Object(ctx context.Context, className, id string) (*object.Object, error) {
	query, args, err := psql.Select(objectColumns...).From("objects").
		Where(sq.Eq{"class_name": className, "object_id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	obj, err := scanObject(s.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, object.ErrNotFound
	}
	if err != nil {
		s.log.Error("failed to get object", "class", className, "id", id, "error", err)
		return nil, err
	}
	return obj, nil
}

func (s *Storage) SaveObject(ctx context.Context, obj *object.Object) error {
	query, args, err := saveObjectQuery(obj)
	if err != nil {
		return err
	}
	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		s.log.Error("failed to save object", "class", obj.ClassName, "id", obj.ID, "error", err)
		return fmt.Errorf("save object: %w", err)
	}
	return nil
}

func saveObjectQuery(obj *object.Object) (string, []any, error) {
	fields, err := json.Marshal(obj.Fields)
	if err != nil {
		return "", nil, fmt.Errorf("encode fields: %w", err)
	}
	return psql.Insert("objects").
		Columns(objectColumns...).
		Values(obj.ClassName, obj.ID, fields, obj.CreatedAt, obj.UpdatedAt).
		Suffix("ON CONFLICT (class_name, object_id) DO UPDATE SET fields = EXCLUDED.fields, updated_at = EXCLUDED.updated_at").
		ToSql()
}

func (s *Storage) DeleteObject(ctx context.Context, className, id string) error {
	query, args, err := psql.Delete("objects").
		Where(sq.Eq{"class_name": className, "object_id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		s.log.Error("failed to delete object", "class", className, "id", id, "error", err)
		return fmt.Errorf("delete object: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return object.ErrNotFound
	}
	return nil
}

func (s *Storage) CountObjects(ctx context.Context, className string) (int, error) {
	query, args, err := psql.Select("COUNT(*)").From("objects").
		Where(sq.Eq{"class_name": className}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var n int
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count objects: %w", err)
	}
	return n, nil
}

func scanObject(row pgx.Row) (*object.Object, error) {
	var (
		obj    object.Object
		fields []byte
	)
	if err := row.Scan(&obj.ClassName, &obj.ID, &fields, &obj.CreatedAt, &obj.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan object: %w", err)
	}
	obj.CreatedAt = obj.CreatedAt.UTC()
	obj.UpdatedAt = obj.UpdatedAt.UTC()

	obj.Fields = make(map[string]any)
	if err := json.Unmarshal(fields, &obj.Fields); err != nil {
		return nil, fmt.Errorf("decode fields: %w", err)
	}
	return &obj, nil
}

// ==================== Файлы ====================

func (s *Storage) SaveFile(ctx context.Context, f *class.File) error {
	query, args, err := psql.Insert("files").
		Columns("name", "content_type", "data", "created_at").
		Values(f.Name, f.ContentType, f.Data, f.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		s.log.Error("failed to save file", "name", f.Name, "error", err)
		return fmt.Errorf("save file: %w", err)
	}
	return nil
}

func (s *Storage) File(ctx context.Context, name string) (*class.File, error) {
	query, args, err := psql.Select("name", "content_type", "data", "created_at").
		From("files").Where(sq.Eq{"name": name}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var f class.File
	err = s.pool.QueryRow(ctx, query, args...).Scan(&f.Name, &f.ContentType, &f.Data, &f.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, class.ErrFileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}
	return &f, nil
}
