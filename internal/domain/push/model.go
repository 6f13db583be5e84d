package push

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNoAudience = errors.New("push needs channels or a where query")
	ErrNoMessage  = errors.New("push needs an alert or a data payload")
	ErrExpired    = errors.New("push expires before it is sent")
)

// Notification - тело запроса POST /push
type Notification struct {
	Channels       []string       `json:"channels,omitempty"`
	Where          map[string]any `json:"where,omitempty"`
	Data           Data           `json:"data"`
	PushTime       *time.Time     `json:"push_time,omitempty"`
	ExpirationTime *time.Time     `json:"expiration_time,omitempty"`
}

// Data - содержимое уведомления
type Data struct {
	Alert string         `json:"alert,omitempty"`
	Title string         `json:"title,omitempty"`
	Badge string         `json:"badge,omitempty"`
	Sound string         `json:"sound,omitempty"`
	Extra map[string]any `json:"-"`
}

// Validate проверяет, что у уведомления есть адресаты и содержимое
func (n *Notification) Validate() error {
	if len(n.Channels) == 0 && n.Where == nil {
		return ErrNoAudience
	}
	if strings.TrimSpace(n.Data.Alert) == "" && len(n.Data.Extra) == 0 {
		return ErrNoMessage
	}
	return nil
}
