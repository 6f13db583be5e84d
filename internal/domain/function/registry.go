package function

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/exp/slog"
)

var (
	ErrNotFound = errors.New("invalid function")
	ErrFailed   = errors.New("script failed")
)

// Error - ошибка облачной функции с сообщением для клиента
type Error struct {
	Err     error
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Fail возвращает ошибку, которую функция отдает клиенту как есть
func Fail(message string) error {
	return &Error{Err: ErrFailed, Message: message}
}

// Func - облачная функция. Возвращаемое значение уходит клиенту в поле "result".
type Func func(ctx context.Context, params map[string]any) (any, error)

type Runner interface {
	Run(ctx context.Context, name string, params map[string]any) (any, error)
}

// Registry хранит облачные функции по имени
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]Func
	log   *slog.Logger
}

func NewRegistry(log *slog.Logger) *Registry {
	return &Registry{
		funcs: make(map[string]Func),
		log:   log.With("component", "functions"),
	}
}

// Register добавляет функцию, заменяя одноименную
func (r *Registry) Register(name string, fn Func) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.funcs[name] = fn
}

func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) Run(ctx context.Context, name string, params map[string]any) (any, error) {
	r.mu.RLock()
	fn, ok := r.funcs[name]
	r.mu.RUnlock()
	if !ok {
		return nil, &Error{Err: ErrNotFound, Message: fmt.Sprintf("Invalid function: %q", name)}
	}
	if params == nil {
		params = map[string]any{}
	}

	result, err := fn(ctx, params)
	if err != nil {
		r.log.Debug("function failed", "name", name, "error", err)
		var fnErr *Error
		if !errors.As(err, &fnErr) {
			err = &Error{Err: ErrFailed, Message: err.Error()}
		}
		return nil, err
	}

	r.log.Debug("function called", "name", name)
	return result, nil
}
