package object

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"parsedash/internal/app/server/api/http/apierror"
	"parsedash/internal/domain/class"
	"parsedash/internal/domain/schema"
)

type Handler struct {
	base       string
	publicURL  string
	service    class.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(base, publicURL string, service class.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		base:       base,
		publicURL:  publicURL,
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.getOp(), h.get)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) list(ctx context.Context, input *listInput) (*listOutput, error) {
	q, err := parseQuery(input)
	if err != nil {
		return nil, err
	}

	res, err := h.service.Find(ctx, input.ClassName, q)
	if err != nil {
		return nil, apierror.From(err)
	}

	out := &listOutput{Body: objectListResponse{
		Results: make([]map[string]any, 0, len(res.Results)),
		Count:   res.Count,
	}}
	for _, obj := range res.Results {
		out.Body.Results = append(out.Body.Results, obj.Map())
	}
	return out, nil
}

func parseQuery(input *listInput) (class.Query, error) {
	q := class.Query{
		Order: class.ParseOrder(input.Order),
		Limit: input.Limit,
		Skip:  input.Skip,
		Count: input.Count == 1,
	}

	if input.Where != "" {
		if err := json.Unmarshal([]byte(input.Where), &q.Where); err != nil {
			return q, apierror.New(http.StatusBadRequest, apierror.CodeInvalidJSON, "invalid JSON in where: "+err.Error())
		}
	}

	for _, k := range strings.Split(input.Keys, ",") {
		if k = strings.TrimSpace(k); k != "" {
			q.Keys = append(q.Keys, k)
		}
	}
	return q, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*createOutput, error) {
	obj, err := h.service.Create(ctx, input.ClassName, input.Body)
	if err != nil {
		return nil, apierror.From(err)
	}

	createdAt, _ := obj.Value(schema.FieldCreatedAt)
	return &createOutput{
		Location: h.publicURL + "/classes/" + url.PathEscape(obj.ClassName) + "/" + url.PathEscape(obj.ID),
		Body: objectCreateResponse{
			ObjectID:  obj.ID,
			CreatedAt: createdAt.(string),
		},
	}, nil
}

func (h *Handler) get(ctx context.Context, input *objectInput) (*getOutput, error) {
	obj, err := h.service.Get(ctx, input.ClassName, input.ObjectID)
	if err != nil {
		return nil, apierror.From(err)
	}
	return &getOutput{Body: obj.Map()}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*updateOutput, error) {
	obj, err := h.service.Update(ctx, input.ClassName, input.ObjectID, input.Body)
	if err != nil {
		return nil, apierror.From(err)
	}

	updatedAt, _ := obj.Value(schema.FieldUpdatedAt)
	return &updateOutput{Body: objectUpdateResponse{UpdatedAt: updatedAt.(string)}}, nil
}

func (h *Handler) delete(ctx context.Context, input *objectInput) (*deleteOutput, error) {
	if err := h.service.Delete(ctx, input.ClassName, input.ObjectID); err != nil {
		return nil, apierror.From(err)
	}
	return &deleteOutput{}, nil
}
