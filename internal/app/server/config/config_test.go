package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ID", "app")
	t.Setenv("MASTER_KEY", "master")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvLocal, cfg.Env)
	assert.Equal(t, "localhost:1337", cfg.Server.RunAddress)
	assert.Equal(t, "/parse", cfg.Server.MountPath)
	assert.Equal(t, "http://localhost:1337/parse", cfg.Server.PublicURL)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.InMemory())
}

func TestLoad_FromEnv(t *testing.T) {
	setRequired(t)
	t.Setenv("RUN_ADDRESS", "0.0.0.0:8080")
	t.Setenv("MOUNT_PATH", "api/")
	t.Setenv("PUBLIC_URL", "https://example.com/api/")
	t.Setenv("DATABASE_URI", "postgres://u:p@localhost/db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.RunAddress)
	assert.Equal(t, "/api", cfg.Server.MountPath)
	assert.Equal(t, "https://example.com/api", cfg.Server.PublicURL)
	assert.False(t, cfg.InMemory())
}

func TestLoad_Required(t *testing.T) {
	tests := []struct {
		name    string
		appID   string
		key     string
		wantErr error
	}{
		{name: "no app id", key: "master", wantErr: ErrNoAppID},
		{name: "no master key", appID: "app", wantErr: ErrNoMasterKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("APP_ID", tt.appID)
			t.Setenv("MASTER_KEY", tt.key)

			_, err := Load()
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNormalizeMountPath(t *testing.T) {
	tests := map[string]string{
		"":        "",
		"/":       "",
		"parse":   "/parse",
		"/parse/": "/parse",
		" /a/b/ ": "/a/b",
	}
	for in, want := range tests {
		assert.Equal(t, want, normalizeMountPath(in), "input %q", in)
	}
}
