package schema

import (
	"context"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"parsedash/internal/app/server/api/http/apierror"
	"parsedash/internal/domain/class"
	"parsedash/internal/domain/schema"
)

type Handler struct {
	base       string
	service    class.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(base string, service class.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		base:       base,
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.getOp(), h.get)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.dropOp(), h.drop)
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	schemas, err := h.service.Schemas(ctx)
	if err != nil {
		return nil, apierror.From(err)
	}
	if schemas == nil {
		schemas = []schema.Schema{}
	}
	return &listOutput{Body: schema.ListResponse{Results: schemas}}, nil
}

func (h *Handler) get(ctx context.Context, input *classInput) (*schemaOutput, error) {
	sc, err := h.service.Schema(ctx, input.ClassName)
	if err != nil {
		return nil, apierror.From(err)
	}
	return &schemaOutput{Body: sc}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*schemaOutput, error) {
	if input.Body.ClassName != "" && input.Body.ClassName != input.ClassName {
		return nil, apierror.New(http.StatusBadRequest, apierror.CodeInvalidClassName,
			fmt.Sprintf("Class name mismatch between %s and %s.", input.Body.ClassName, input.ClassName))
	}

	sc, err := h.service.CreateClass(ctx, &schema.Schema{
		ClassName:             input.ClassName,
		Fields:                input.Body.Fields,
		ClassLevelPermissions: input.Body.ClassLevelPermissions,
		Indexes:               input.Body.Indexes,
	})
	if err != nil {
		return nil, apierror.From(err)
	}
	return &schemaOutput{Body: sc}, nil
}

// drop удаляет класс. Для класса с объектами сервер отвечает кодом 255.
func (h *Handler) drop(ctx context.Context, input *classInput) (*emptyOutput, error) {
	if err := h.service.DropClass(ctx, input.ClassName); err != nil {
		h.log.Debug("drop class refused", "class", input.ClassName, "error", err)
		return nil, apierror.From(err)
	}
	return &emptyOutput{}, nil
}
