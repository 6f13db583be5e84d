package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"parsedash/internal/domain/class"
	"parsedash/internal/domain/object"
	"parsedash/internal/domain/schema"
)

// Storage хранит схемы, объекты и файлы в памяти процесса.
// Наружу отдаются копии, поэтому вызывающий код может их менять.
type Storage struct {
	mu      sync.RWMutex
	schemas map[string]*schema.Schema
	objects map[string]map[string]*object.Object
	files   map[string]*class.File
}

func New() *Storage {
	return &Storage{
		schemas: make(map[string]*schema.Schema),
		objects: make(map[string]map[string]*object.Object),
		files:   make(map[string]*class.File),
	}
}

func (s *Storage) Schemas(_ context.Context) ([]schema.Schema, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]schema.Schema, 0, len(s.schemas))
	for _, sc := range s.schemas {
		out = append(out, *cloneSchema(sc))
	}
	return out, nil
}

func (s *Storage) Schema(_ context.Context, className string) (*schema.Schema, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sc, ok := s.schemas[className]
	if !ok {
		return nil, schema.ErrNotFound
	}
	return cloneSchema(sc), nil
}

func (s *Storage) SaveSchema(_ context.Context, sc *schema.Schema) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.schemas[sc.ClassName] = cloneSchema(sc)
	return nil
}

func (s *Storage) DeleteSchema(_ context.Context, className string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.schemas[className]; !ok {
		return schema.ErrNotFound
	}
	delete(s.schemas, className)
	delete(s.objects, className)
	return nil
}

func (s *Storage) Objects(_ context.Context, className string) ([]*object.Object, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	objs := s.objects[className]
	out := make([]*object.Object, 0, len(objs))
	for _, obj := range objs {
		c, err := cloneObject(obj)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *Storage) Object(_ context.Context, className, id string) (*object.Object, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, ok := s.objects[className][id]
	if !ok {
		return nil, object.ErrNotFound
	}
	return cloneObject(obj)
}

func (s *Storage) SaveObject(_ context.Context, obj *object.Object) error {
	c, err := cloneObject(obj)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.objects[obj.ClassName] == nil {
		s.objects[obj.ClassName] = make(map[string]*object.Object)
	}
	s.objects[obj.ClassName][obj.ID] = c
	return nil
}

func (s *Storage) DeleteObject(_ context.Context, className, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.objects[className][id]; !ok {
		return object.ErrNotFound
	}
	delete(s.objects[className], id)
	return nil
}

func (s *Storage) CountObjects(_ context.Context, className string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects[className]), nil
}

func (s *Storage) SaveFile(_ context.Context, f *class.File) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := *f
	c.Data = append([]byte(nil), f.Data...)
	s.files[f.Name] = &c
	return nil
}

func (s *Storage) File(_ context.Context, name string) (*class.File, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.files[name]
	if !ok {
		return nil, class.ErrFileNotFound
	}
	c := *f
	c.Data = append([]byte(nil), f.Data...)
	return &c, nil
}

func (s *Storage) Ping(context.Context) error {
	return nil
}

func (s *Storage) Close() error {
	return nil
}

func cloneSchema(sc *schema.Schema) *schema.Schema {
	c := *sc
	c.Fields = make(map[string]schema.Field, len(sc.Fields))
	for k, v := range sc.Fields {
		c.Fields[k] = v
	}
	return &c
}

// cloneObject копирует поля через JSON, как это делает хранилище в базе:
// вложенные карты и массивы не разделяются между копиями
func cloneObject(obj *object.Object) (*object.Object, error) {
	data, err := json.Marshal(obj.Fields)
	if err != nil {
		return nil, fmt.Errorf("encode fields: %w", err)
	}
	c := *obj
	c.Fields = make(map[string]any)
	if err := json.Unmarshal(data, &c.Fields); err != nil {
		return nil, fmt.Errorf("decode fields: %w", err)
	}
	return &c, nil
}
