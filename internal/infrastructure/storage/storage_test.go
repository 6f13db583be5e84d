package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"parsedash/internal/infrastructure/storage/memory"
)

func TestNew_EmptyURIUsesMemory(t *testing.T) {
	s, err := New(context.Background(), "", slog.Default())
	require.NoError(t, err)
	defer s.Close()

	assert.IsType(t, &memory.Storage{}, s)
}
