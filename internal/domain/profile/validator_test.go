package profile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProfile() *Profile {
	return &Profile{
		Name:      "staging",
		AppID:     "app",
		MasterKey: "master",
		ServerURL: "https://example.com/parse",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(p *Profile)
		wantErr     bool
		expectedErr string
	}{
		{
			name:   "valid profile",
			mutate: func(p *Profile) {},
		},
		{
			name:        "empty name",
			mutate:      func(p *Profile) { p.Name = " " },
			wantErr:     true,
			expectedErr: "name is required",
		},
		{
			name:        "name with space",
			mutate:      func(p *Profile) { p.Name = "my server" },
			wantErr:     true,
			expectedErr: "name can only contain letters, digits, '_', '-', '.'",
		},
		{
			name:        "name too long",
			mutate:      func(p *Profile) { p.Name = strings.Repeat("a", MaxNameLen+1) },
			wantErr:     true,
			expectedErr: "name must be at most 64 characters",
		},
		{
			name:        "ftp url",
			mutate:      func(p *Profile) { p.ServerURL = "ftp://example.com" },
			wantErr:     true,
			expectedErr: "server url must start with http:// or https://",
		},
		{
			name:        "url without host",
			mutate:      func(p *Profile) { p.ServerURL = "https:///parse" },
			wantErr:     true,
			expectedErr: "server url must contain a host",
		},
		{
			name:        "missing app id",
			mutate:      func(p *Profile) { p.AppID = "" },
			wantErr:     true,
			expectedErr: "application id is required",
		},
		{
			name:        "missing master key",
			mutate:      func(p *Profile) { p.MasterKey = "" },
			wantErr:     true,
			expectedErr: "master key is required",
		},
		{
			name:        "icon too large",
			mutate:      func(p *Profile) { p.Icon = make([]byte, MaxIconSize+1) },
			wantErr:     true,
			expectedErr: "icon must be at most 524288 bytes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProfile()
			tt.mutate(p)

			err := Validate(p)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, tt.expectedErr, err.Error())
		})
	}
}

func TestNormalizeServerURL(t *testing.T) {
	assert.Equal(t, "https://example.com/parse", NormalizeServerURL(" https://example.com/parse/ "))
}
