package file

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) uploadOp() huma.Operation {
	return huma.Operation{
		OperationID:   "files-upload",
		Method:        http.MethodPost,
		Path:          h.base + "/files/{name}",
		Summary:       "Загрузить файл",
		Description:   "Тело запроса - содержимое файла. Имя в ответе уникально.",
		Tags:          []string{"files"},
		DefaultStatus: http.StatusCreated,
		Security:      []map[string][]string{{"appId": {}, "masterKey": {}}},
		Middlewares:   h.middleware,
	}
}

func (h *Handler) downloadOp() huma.Operation {
	return huma.Operation{
		OperationID: "files-download",
		Method:      http.MethodGet,
		Path:        h.base + "/files/{name}",
		Summary:     "Скачать файл",
		Tags:        []string{"files"},
		Middlewares: h.public,
	}
}
