package function

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"parsedash/internal/app/server/api/http/apierror"
	"parsedash/internal/domain/function"
)

type Handler struct {
	base       string
	runner     function.Runner
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(base string, runner function.Runner, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		base:       base,
		runner:     runner,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.runOp(), h.run)
}

func (h *Handler) run(ctx context.Context, input *runInput) (*runOutput, error) {
	result, err := h.runner.Run(ctx, input.Name, input.Body)
	if err != nil {
		return nil, apierror.From(err)
	}
	return &runOutput{Body: functionResponse{Result: result}}, nil
}
