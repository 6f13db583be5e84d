package health

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"parsedash/internal/app/server/api/http/apierror"
)

// Pinger - хранилище, доступность которого входит в проверку
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	base       string
	storage    Pinger
	log        *slog.Logger
	middleware huma.Middlewares
}

// NewHandler создает обработчик; storage может быть nil, тогда проверяется только процесс
func NewHandler(base string, storage Pinger, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		base:       base,
		storage:    storage,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.statusOp(), h.status)
}

func (h *Handler) status(ctx context.Context, _ *struct{}) (*statusOutput, error) {
	if h.storage != nil {
		if err := h.storage.Ping(ctx); err != nil {
			h.log.Error("storage ping failed", "error", err)
			return nil, apierror.New(http.StatusServiceUnavailable, apierror.CodeInternal, "storage unavailable")
		}
	}
	return &statusOutput{Body: statusResponse{Status: "ok"}}, nil
}
