package push

import (
	"context"
	"sync"
	"time"

	"golang.org/x/exp/slog"
)

type Sender interface {
	Send(ctx context.Context, n Notification) error
}

// Service принимает уведомления и хранит их в журнале вместо реальной доставки
type Service struct {
	mu   sync.Mutex
	sent []Notification
	log  *slog.Logger
	now  func() time.Time
}

func NewService(log *slog.Logger) *Service {
	return &Service{
		log: log.With("component", "push"),
		now: time.Now,
	}
}

func (s *Service) Send(_ context.Context, n Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}
	if n.ExpirationTime != nil && n.PushTime != nil && !n.ExpirationTime.After(*n.PushTime) {
		return ErrExpired
	}
	if n.ExpirationTime != nil && n.ExpirationTime.Before(s.now()) {
		return ErrExpired
	}

	s.mu.Lock()
	s.sent = append(s.sent, n)
	s.mu.Unlock()

	s.log.Info("push accepted",
		slog.Any("channels", n.Channels),
		slog.Bool("has_where", n.Where != nil),
		slog.String("alert", n.Data.Alert),
	)
	return nil
}

// Sent возвращает копию журнала принятых уведомлений
func (s *Service) Sent() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Notification(nil), s.sent...)
}
