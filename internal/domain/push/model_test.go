package push

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func TestNotification_Validate(t *testing.T) {
	tests := []struct {
		name    string
		n       Notification
		wantErr error
	}{
		{
			name: "channel and alert",
			n:    Notification{Channels: []string{"news"}, Data: Data{Alert: "hi"}},
		},
		{
			name: "where and extra data",
			n:    Notification{Where: map[string]any{}, Data: Data{Extra: map[string]any{"k": 1}}},
		},
		{
			name:    "no audience",
			n:       Notification{Data: Data{Alert: "hi"}},
			wantErr: ErrNoAudience,
		},
		{
			name:    "no message",
			n:       Notification{Channels: []string{"news"}, Data: Data{Alert: "  "}},
			wantErr: ErrNoMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.n.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestData_JSONKeepsExtraKeys(t *testing.T) {
	in := Data{Alert: "hello", Badge: "Increment", Extra: map[string]any{"uri": "app://x"}}

	b, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"alert":"hello","badge":"Increment","uri":"app://x"}`, string(b))

	var out Data
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, in, out)
}

func TestService_Send(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name    string
		n       Notification
		wantErr error
	}{
		{name: "accepted", n: Notification{Channels: []string{"news"}, Data: Data{Alert: "hi"}}},
		{name: "invalid", n: Notification{Data: Data{Alert: "hi"}}, wantErr: ErrNoAudience},
		{
			name:    "already expired",
			n:       Notification{Channels: []string{"news"}, Data: Data{Alert: "hi"}, ExpirationTime: &past},
			wantErr: ErrExpired,
		},
		{
			name:    "expires before push time",
			n:       Notification{Channels: []string{"news"}, Data: Data{Alert: "hi"}, PushTime: &future, ExpirationTime: &future},
			wantErr: ErrExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewService(slog.Default())
			s.now = func() time.Time { return now }

			err := s.Send(context.Background(), tt.n)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, s.Sent())
				return
			}
			require.NoError(t, err)
			assert.Len(t, s.Sent(), 1)
		})
	}
}
