package push

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"parsedash/internal/app/server/api/http/apierror"
	"parsedash/internal/domain/push"
)

type Handler struct {
	base       string
	sender     push.Sender
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(base string, sender push.Sender, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		base:       base,
		sender:     sender,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.sendOp(), h.send)
}

// send разбирает тело вручную: в data кроме известных полей допускаются любые ключи
func (h *Handler) send(ctx context.Context, input *sendInput) (*sendOutput, error) {
	var n push.Notification
	if err := json.Unmarshal(input.RawBody, &n); err != nil {
		return nil, apierror.New(http.StatusBadRequest, apierror.CodeInvalidJSON, "invalid JSON: "+err.Error())
	}

	if err := h.sender.Send(ctx, n); err != nil {
		return nil, apierror.From(err)
	}
	return &sendOutput{Body: pushResponse{Result: true}}, nil
}
