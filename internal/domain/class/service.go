package class

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"parsedash/internal/domain/object"
	"parsedash/internal/domain/schema"
)

type Servicer interface {
	Schemas(ctx context.Context) ([]schema.Schema, error)
	Schema(ctx context.Context, className string) (*schema.Schema, error)
	CreateClass(ctx context.Context, s *schema.Schema) (*schema.Schema, error)
	DropClass(ctx context.Context, className string) error

	Find(ctx context.Context, className string, q Query) (*FindResult, error)
	Get(ctx context.Context, className, id string) (*object.Object, error)
	Create(ctx context.Context, className string, fields map[string]any) (*object.Object, error)
	Update(ctx context.Context, className, id string, changes map[string]any) (*object.Object, error)
	Delete(ctx context.Context, className, id string) error

	UploadFile(ctx context.Context, name, contentType string, data []byte) (*File, error)
	File(ctx context.Context, name string) (*File, error)
}

// Service реализует классы, объекты и файлы поверх Repository
type Service struct {
	repo Repository
	log  *slog.Logger

	// сериализует изменения схемы вместе с записью объектов
	mu sync.Mutex

	now   func() time.Time
	newID func() string
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		log:   log.With("component", "class_service"),
		now:   func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		newID: newObjectID,
	}
}

// newObjectID возвращает идентификатор длиной 10 символов, как у Parse
func newObjectID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
}

// ==================== Схемы ====================

func (s *Service) Schemas(ctx context.Context) ([]schema.Schema, error) {
	list, err := s.repo.Schemas(ctx)
	if err != nil {
		return nil, fmt.Errorf("list schemas: %w", err)
	}
	slices.SortFunc(list, func(a, b schema.Schema) int {
		return strings.Compare(a.ClassName, b.ClassName)
	})
	return list, nil
}

func (s *Service) Schema(ctx context.Context, className string) (*schema.Schema, error) {
	sc, err := s.repo.Schema(ctx, className)
	if errors.Is(err, schema.ErrNotFound) {
		return nil, newError(ErrClassNotFound, "Class %s does not exist.", className)
	}
	if err != nil {
		return nil, fmt.Errorf("get schema: %w", err)
	}
	return sc, nil
}

func (s *Service) CreateClass(ctx context.Context, in *schema.Schema) (*schema.Schema, error) {
	if !ValidClassName(in.ClassName) {
		return nil, invalidClassName(in.ClassName)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.repo.Schema(ctx, in.ClassName)
	if err == nil {
		return nil, newError(ErrClassExists, "Class %s already exists.", in.ClassName)
	}
	if !errors.Is(err, schema.ErrNotFound) {
		return nil, fmt.Errorf("get schema: %w", err)
	}

	sc := schema.New(in.ClassName)
	for name, f := range in.Fields {
		if _, system := sc.Fields[name]; system {
			continue
		}
		if !ValidFieldName(name) {
			return nil, newError(ErrInvalidKey, "invalid field name: %s", name)
		}
		if !f.Type.IsValid() {
			return nil, newError(ErrIncorrectType, "invalid field type: %s", f.Type)
		}
		if (f.Type == schema.TypePointer || f.Type == schema.TypeRelation) && f.TargetClass == "" {
			return nil, newError(ErrIncorrectType, "type %s needs a class name", f.Type)
		}
		sc.Fields[name] = f
	}
	sc.ClassLevelPermissions = in.ClassLevelPermissions
	sc.Indexes = in.Indexes

	if err := s.repo.SaveSchema(ctx, sc); err != nil {
		return nil, fmt.Errorf("save schema: %w", err)
	}

	s.log.Info("class created", "class", sc.ClassName, "fields", sc.CustomFieldCount())
	return sc, nil
}

// DropClass удаляет пустой класс. Удаление несуществующего класса не ошибка.
func (s *Service) DropClass(ctx context.Context, className string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.repo.Schema(ctx, className); err != nil {
		if errors.Is(err, schema.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("get schema: %w", err)
	}

	n, err := s.repo.CountObjects(ctx, className)
	if err != nil {
		return fmt.Errorf("count objects: %w", err)
	}
	if n > 0 {
		return newError(ErrClassNotEmpty,
			"Class %s is not empty, contains %d objects, cannot drop schema.", className, n)
	}

	if err := s.repo.DeleteSchema(ctx, className); err != nil {
		return fmt.Errorf("delete schema: %w", err)
	}

	s.log.Info("class dropped", "class", className)
	return nil
}

// ==================== Объекты ====================

// Find возвращает страницу объектов класса. У неизвестного класса объектов нет.
func (s *Service) Find(ctx context.Context, className string, q Query) (*FindResult, error) {
	if q.Limit < 0 || q.Skip < 0 {
		return nil, newError(ErrInvalidQuery, "limit and skip must not be negative")
	}

	all, err := s.repo.Objects(ctx, className)
	if err != nil {
		return nil, fmt.Errorf("list objects: %w", err)
	}

	matched := make([]*object.Object, 0, len(all))
	for _, obj := range all {
		ok, err := Match(obj, q.Where)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, obj)
		}
	}

	order := q.Order
	if len(order) == 0 {
		order = []string{schema.FieldCreatedAt, schema.FieldObjectID}
	}
	Sort(matched, order)

	res := &FindResult{}
	if q.Count {
		n := len(matched)
		res.Count = &n
	}

	if q.Skip >= len(matched) {
		res.Results = []*object.Object{}
		return res, nil
	}
	page := matched[q.Skip:]
	if q.Limit < len(page) {
		page = page[:q.Limit]
	}

	res.Results = make([]*object.Object, 0, len(page))
	for _, obj := range page {
		res.Results = append(res.Results, Project(obj, q.Keys))
	}
	return res, nil
}

func (s *Service) Get(ctx context.Context, className, id string) (*object.Object, error) {
	obj, err := s.repo.Object(ctx, className, id)
	if errors.Is(err, object.ErrNotFound) {
		return nil, objectNotFound()
	}
	if err != nil {
		return nil, fmt.Errorf("get object: %w", err)
	}
	return obj, nil
}

// Create сохраняет новый объект. Класс и новые поля схемы создаются по первому объекту.
func (s *Service) Create(ctx context.Context, className string, fields map[string]any) (*object.Object, error) {
	if !ValidClassName(className) {
		return nil, invalidClassName(className)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sc, err := s.repo.Schema(ctx, className)
	switch {
	case errors.Is(err, schema.ErrNotFound):
		sc = schema.New(className)
	case err != nil:
		return nil, fmt.Errorf("get schema: %w", err)
	}

	now := s.now()
	obj := &object.Object{
		ID:        s.newID(),
		ClassName: className,
		CreatedAt: now,
		UpdatedAt: now,
		Fields:    make(map[string]any, len(fields)),
	}

	if _, err := applyChanges(sc, obj.Fields, fields); err != nil {
		return nil, err
	}

	// схема сохраняется всегда: класс мог появиться только что
	if err := s.repo.SaveSchema(ctx, sc); err != nil {
		return nil, fmt.Errorf("save schema: %w", err)
	}
	if err := s.repo.SaveObject(ctx, obj); err != nil {
		return nil, fmt.Errorf("save object: %w", err)
	}

	s.log.Debug("object created", "class", className, "id", obj.ID)
	return obj, nil
}

// Update применяет частичное обновление. {"__op":"Delete"} снимает значение поля.
func (s *Service) Update(ctx context.Context, className, id string, changes map[string]any) (*object.Object, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc, err := s.repo.Schema(ctx, className)
	if errors.Is(err, schema.ErrNotFound) {
		return nil, objectNotFound()
	}
	if err != nil {
		return nil, fmt.Errorf("get schema: %w", err)
	}

	obj, err := s.repo.Object(ctx, className, id)
	if errors.Is(err, object.ErrNotFound) {
		return nil, objectNotFound()
	}
	if err != nil {
		return nil, fmt.Errorf("get object: %w", err)
	}

	schemaChanged, err := applyChanges(sc, obj.Fields, changes)
	if err != nil {
		return nil, err
	}
	obj.UpdatedAt = s.now()

	if schemaChanged {
		if err := s.repo.SaveSchema(ctx, sc); err != nil {
			return nil, fmt.Errorf("save schema: %w", err)
		}
	}
	if err := s.repo.SaveObject(ctx, obj); err != nil {
		return nil, fmt.Errorf("save object: %w", err)
	}

	s.log.Debug("object updated", "class", className, "id", id, "fields", len(changes))
	return obj, nil
}

// Delete удаляет объект. Берет тот же мьютекс, что и Update: иначе удаление между
// чтением и записью в Update откатилось бы upsert-ом.
func (s *Service) Delete(ctx context.Context, className, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.repo.DeleteObject(ctx, className, id)
	if errors.Is(err, object.ErrNotFound) {
		return objectNotFound()
	}
	if err != nil {
		return fmt.Errorf("delete object: %w", err)
	}

	s.log.Debug("object deleted", "class", className, "id", id)
	return nil
}

// applyChanges переносит значения из тела запроса в поля объекта и дописывает
// в схему новые поля. Возвращает true, если схема изменилась.
func applyChanges(sc *schema.Schema, fields, changes map[string]any) (bool, error) {
	changed := false
	for name, v := range changes {
		switch name {
		case schema.FieldObjectID, schema.FieldCreatedAt, schema.FieldUpdatedAt:
			return false, newError(ErrInvalidKey, "%s is an invalid field name.", name)
		case schema.FieldACL:
			fields[name] = v
			continue
		}
		if !ValidFieldName(name) {
			return false, newError(ErrInvalidKey, "%s is an invalid field name.", name)
		}

		if op, args, ok := operation(v); ok {
			switch op {
			case "Delete":
				delete(fields, name)
				continue
			case "Increment":
				amount, ok := normalize(args["amount"]).(float64)
				if !ok {
					return false, newError(ErrInvalidQuery, "Increment needs a numeric amount")
				}
				current := 0.0
				if cur, exists := fields[name]; exists && cur != nil {
					if current, ok = cur.(float64); !ok {
						return false, newError(ErrIncorrectType, "cannot increment non-number field %s", name)
					}
				}
				v = current + amount
			default:
				return false, newError(ErrInvalidQuery, "The operation %s is not supported.", op)
			}
		}

		if v == nil {
			fields[name] = nil
			continue
		}

		inferred := inferField(v)
		if declared, exists := sc.Fields[name]; exists {
			if declared.Type != inferred.Type {
				return false, newError(ErrIncorrectType,
					"schema mismatch for %s.%s; expected %s but got %s",
					sc.ClassName, name, declared.Type, inferred.Type)
			}
		} else {
			sc.Fields[name] = inferred
			changed = true
		}
		fields[name] = v
	}
	return changed, nil
}

func operation(v any) (string, map[string]any, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return "", nil, false
	}
	op, ok := m["__op"].(string)
	return op, m, ok
}

// inferField определяет тип поля по первому записанному значению
func inferField(v any) schema.Field {
	switch x := normalize(v).(type) {
	case string:
		return schema.Field{Type: schema.TypeString}
	case float64:
		return schema.Field{Type: schema.TypeNumber}
	case bool:
		return schema.Field{Type: schema.TypeBoolean}
	case []any:
		return schema.Field{Type: schema.TypeArray}
	case time.Time:
		return schema.Field{Type: schema.TypeDate}
	case object.Pointer:
		return schema.Field{Type: schema.TypePointer, TargetClass: x.ClassName}
	case map[string]any:
		switch x["__type"] {
		case "File":
			return schema.Field{Type: schema.TypeFile}
		case "GeoPoint":
			return schema.Field{Type: schema.TypeGeoPoint}
		case "Bytes":
			return schema.Field{Type: schema.TypeBytes}
		case "Polygon":
			return schema.Field{Type: schema.TypePolygon}
		case "Relation":
			target, _ := x["className"].(string)
			return schema.Field{Type: schema.TypeRelation, TargetClass: target}
		}
	}
	return schema.Field{Type: schema.TypeObject}
}

// ==================== Файлы ====================

var fileNamePattern = regexp.MustCompile(`^[_a-zA-Z0-9][a-zA-Z0-9@. ~_-]*$`)

const maxFileNameLength = 128

// UploadFile сохраняет файл под уникальным именем
func (s *Service) UploadFile(ctx context.Context, name, contentType string, data []byte) (*File, error) {
	if len(name) > maxFileNameLength {
		return nil, newError(ErrInvalidFileName, "Filename too long.")
	}
	if !fileNamePattern.MatchString(name) {
		return nil, newError(ErrInvalidFileName, "Filename contains invalid characters.")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	f := &File{
		Name:        strings.ReplaceAll(uuid.NewString(), "-", "") + "_" + name,
		ContentType: contentType,
		Data:        data,
		CreatedAt:   s.now(),
	}
	if err := s.repo.SaveFile(ctx, f); err != nil {
		return nil, fmt.Errorf("save file: %w", err)
	}

	s.log.Debug("file stored", "name", f.Name, "size", len(data))
	return f, nil
}

func (s *Service) File(ctx context.Context, name string) (*File, error) {
	f, err := s.repo.File(ctx, name)
	if errors.Is(err, ErrFileNotFound) {
		return nil, newError(ErrFileNotFound, "File %s not found.", name)
	}
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}
	return f, nil
}

func objectNotFound() error {
	return newError(ErrObjectNotFound, "Object not found.")
}

func invalidClassName(name string) error {
	return newError(ErrInvalidClassName,
		"Invalid classname: %s, classnames can only have alphanumeric characters and _, and must start with an alpha character ", name)
}
