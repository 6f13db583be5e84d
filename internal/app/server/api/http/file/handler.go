package file

import (
	"context"
	"net/url"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"parsedash/internal/app/server/api/http/apierror"
	"parsedash/internal/domain/class"
)

type Handler struct {
	base       string
	publicURL  string
	service    class.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
	public     huma.Middlewares
}

// NewHandler принимает две цепочки мидлварей: загрузка требует ключей,
// скачивание по выданной ссылке - нет
func NewHandler(base, publicURL string, service class.Servicer, log *slog.Logger, mws, public huma.Middlewares) *Handler {
	return &Handler{
		base:       base,
		publicURL:  publicURL,
		service:    service,
		log:        log,
		middleware: mws,
		public:     public,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.uploadOp(), h.upload)
	huma.Register(api, h.downloadOp(), h.download)
}

func (h *Handler) upload(ctx context.Context, input *uploadInput) (*uploadOutput, error) {
	f, err := h.service.UploadFile(ctx, input.Name, input.ContentType, input.RawBody)
	if err != nil {
		return nil, apierror.From(err)
	}

	link := h.publicURL + "/files/" + url.PathEscape(f.Name)
	return &uploadOutput{
		Location: link,
		Body:     fileResponse{Name: f.Name, URL: link},
	}, nil
}

func (h *Handler) download(ctx context.Context, input *downloadInput) (*downloadOutput, error) {
	f, err := h.service.File(ctx, input.Name)
	if err != nil {
		return nil, apierror.From(err)
	}
	return &downloadOutput{ContentType: f.ContentType, Body: f.Data}, nil
}
