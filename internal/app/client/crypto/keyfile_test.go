package crypto

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealer_RoundTrip(t *testing.T) {
	keyPath := filepath.Join(t.TempDir(), "profile.key")

	s, err := OpenSealer(keyPath, "correct horse")
	require.NoError(t, err)

	sealed, err := s.Seal("master-key-123")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "master-key-123")

	plain, err := s.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "master-key-123", plain)

	info, err := os.Stat(keyPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(keyFilePermissions), info.Mode().Perm())
}

func TestSealer_ReopenWithSamePassphrase(t *testing.T) {
	keyPath := filepath.Join(t.TempDir(), "profile.key")

	first, err := OpenSealer(keyPath, "pass")
	require.NoError(t, err)
	sealed, err := first.Seal("secret")
	require.NoError(t, err)
	first.Close()

	second, err := OpenSealer(keyPath, "pass")
	require.NoError(t, err)
	plain, err := second.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "secret", plain)
}

func TestSealer_WrongPassphrase(t *testing.T) {
	keyPath := filepath.Join(t.TempDir(), "profile.key")

	_, err := OpenSealer(keyPath, "pass")
	require.NoError(t, err)

	_, err = OpenSealer(keyPath, "other")
	assert.ErrorIs(t, err, ErrWrongPassphrase)
}

func TestSealer_EmptyPassphrase(t *testing.T) {
	_, err := OpenSealer(filepath.Join(t.TempDir(), "k"), "")
	assert.ErrorIs(t, err, ErrEmptyPassphrase)
}

func TestSealer_TamperedCiphertext(t *testing.T) {
	s, err := OpenSealer(filepath.Join(t.TempDir(), "k"), "pass")
	require.NoError(t, err)

	_, err = s.Open("zz")
	assert.Error(t, err)

	sealed, err := s.Seal("secret")
	require.NoError(t, err)
	tampered := sealed[:len(sealed)-2] + "00"
	if tampered == sealed {
		tampered = sealed[:len(sealed)-2] + "ff"
	}
	_, err = s.Open(tampered)
	assert.Error(t, err)
}
