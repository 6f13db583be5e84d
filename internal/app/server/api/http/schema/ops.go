package schema

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "schemas-list",
		Method:      http.MethodGet,
		Path:        h.base + "/schemas",
		Summary:     "Схемы всех классов",
		Tags:        []string{"schemas"},
		Security:    security,
		Middlewares: h.middleware,
	}
}

func (h *Handler) getOp() huma.Operation {
	return huma.Operation{
		OperationID: "schemas-get",
		Method:      http.MethodGet,
		Path:        h.base + "/schemas/{className}",
		Summary:     "Схема класса",
		Tags:        []string{"schemas"},
		Security:    security,
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID: "schemas-create",
		Method:      http.MethodPost,
		Path:        h.base + "/schemas/{className}",
		Summary:     "Создать класс",
		Tags:        []string{"schemas"},
		Security:    security,
		Middlewares: h.middleware,
	}
}

func (h *Handler) dropOp() huma.Operation {
	return huma.Operation{
		OperationID: "schemas-drop",
		Method:      http.MethodDelete,
		Path:        h.base + "/schemas/{className}",
		Summary:     "Удалить пустой класс",
		Description: "Класс с объектами не удаляется: ответ содержит код 255",
		Tags:        []string{"schemas"},
		Security:    security,
		Middlewares: h.middleware,
	}
}

var security = []map[string][]string{{"appId": {}, "masterKey": {}}}
