package snippet

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

var ErrNotFound = errors.New("snippet not found")

// Snippet - сохраненный вызов облачной функции
type Snippet struct {
	ID        int64           `json:"id" yaml:"id"`
	ProfileID int64           `json:"profile_id" yaml:"profile_id"`
	Name      string          `json:"name" yaml:"name"`
	Function  string          `json:"function" yaml:"function"`
	Params    json.RawMessage `json:"params,omitempty" yaml:"-"`
	UpdatedAt time.Time       `json:"updated_at" yaml:"updated_at"`
}

type Repository interface {
	Save(ctx context.Context, s *Snippet) error
	Get(ctx context.Context, profileID int64, name string) (*Snippet, error)
	List(ctx context.Context, profileID int64) ([]*Snippet, error)
	Delete(ctx context.Context, profileID int64, name string) error
}
