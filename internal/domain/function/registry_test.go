package function

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func newBuiltins() *Registry {
	r := NewRegistry(slog.Default())
	RegisterBuiltins(r)
	return r
}

func TestRegistry_Builtins(t *testing.T) {
	tests := []struct {
		name    string
		fn      string
		params  map[string]any
		want    any
		wantErr string
	}{
		{name: "hello", fn: "hello", want: "Hello world!"},
		{name: "hello with name", fn: "hello", params: map[string]any{"name": "Ann"}, want: "Hello Ann!"},
		{name: "echo", fn: "echo", params: map[string]any{"a": 1.0}, want: map[string]any{"a": 1.0}},
		{name: "even", fn: "isEven", params: map[string]any{"number": 4.0}, want: true},
		{name: "odd", fn: "isEven", params: map[string]any{"number": 3.0}, want: false},
		{name: "isEven without number", fn: "isEven", wantErr: `isEven needs an integer "number" parameter`},
		{name: "fail", fn: "fail", wantErr: "fail called"},
		{name: "fail with message", fn: "fail", params: map[string]any{"message": "boom"}, wantErr: "boom"},
		{name: "unknown", fn: "missing", wantErr: `Invalid function: "missing"`},
	}

	r := newBuiltins()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Run(context.Background(), tt.fn, tt.params)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegistry_ErrorKinds(t *testing.T) {
	r := newBuiltins()

	_, err := r.Run(context.Background(), "missing", nil)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = r.Run(context.Background(), "fail", nil)
	assert.ErrorIs(t, err, ErrFailed)
}

func TestRegistry_PlainErrorBecomesFailure(t *testing.T) {
	r := NewRegistry(slog.Default())
	r.Register("broken", func(context.Context, map[string]any) (any, error) {
		return nil, errors.New("db down")
	})

	_, err := r.Run(context.Background(), "broken", nil)
	assert.ErrorIs(t, err, ErrFailed)
	assert.Equal(t, "db down", err.Error())
	assert.Equal(t, []string{"broken"}, r.Names())
}
