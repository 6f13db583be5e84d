package migration

import (
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMigrator struct {
	mock.Mock
}

func (m *MockMigrator) Up() error {
	return m.Called().Error(0)
}

func (m *MockMigrator) Close() (error, error) {
	args := m.Called()
	return args.Error(0), args.Error(1)
}

var embedded = fstest.MapFS{
	"migrations/000001_schemas.up.sql": {Data: []byte("CREATE TABLE schemas (class_name TEXT PRIMARY KEY);")},
}

func engineFor(m Migrator) Engine {
	return func(fs.FS, string, string) (Migrator, error) {
		return m, nil
	}
}

func TestMigration_Up(t *testing.T) {
	errSyntax := errors.New("syntax error at or near CREAT")
	errDBClose := errors.New("connection reset")

	tests := []struct {
		name      string
		upErr     error
		srcErr    error
		dbErr     error
		wantErrIs []error
		wantMsg   []string
	}{
		{name: "applied"},
		{name: "nothing to apply", upErr: migrate.ErrNoChange},
		{
			name:      "apply failed",
			upErr:     errSyntax,
			wantErrIs: []error{errSyntax},
			wantMsg:   []string{"apply migrations"},
		},
		{
			name:      "apply and close failed",
			upErr:     errSyntax,
			dbErr:     errDBClose,
			wantErrIs: []error{errSyntax, errDBClose},
			wantMsg:   []string{"close migration database"},
		},
		{
			name:      "only close failed",
			srcErr:    errDBClose,
			wantErrIs: []error{errDBClose},
			wantMsg:   []string{"close migration source"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(MockMigrator)
			m.On("Up").Return(tt.upErr)
			m.On("Close").Return(tt.srcErr, tt.dbErr)

			err := NewMigration(embedded, "migrations", "postgres://localhost/parse", engineFor(m)).Up()

			m.AssertExpectations(t)
			if len(tt.wantErrIs) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, target := range tt.wantErrIs {
				assert.ErrorIs(t, err, target)
			}
			for _, msg := range tt.wantMsg {
				assert.Contains(t, err.Error(), msg)
			}
		})
	}
}

func TestMigration_PassesSource(t *testing.T) {
	m := new(MockMigrator)
	m.On("Up").Return(nil)
	m.On("Close").Return(nil, nil)

	var gotDir, gotURL string
	engine := func(src fs.FS, dir, databaseURL string) (Migrator, error) {
		gotDir, gotURL = dir, databaseURL
		_, err := fs.Stat(src, dir+"/000001_schemas.up.sql")
		require.NoError(t, err)
		return m, nil
	}

	require.NoError(t, NewMigration(embedded, "migrations", "sqlite3:///tmp/parsedash.db", engine).Up())
	assert.Equal(t, "migrations", gotDir)
	assert.Equal(t, "sqlite3:///tmp/parsedash.db", gotURL)
}

func TestMigration_EngineError(t *testing.T) {
	engine := func(fs.FS, string, string) (Migrator, error) {
		return nil, errors.New("unknown driver")
	}

	err := NewMigration(embedded, "migrations", "mysql://x", engine).Up()

	require.Error(t, err)
	assert.Equal(t, "open migrator for migrations: unknown driver", err.Error())
}
