package object

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "objects-list",
		Method:      http.MethodGet,
		Path:        h.base + "/classes/{className}",
		Summary:     "Поиск объектов класса",
		Description: "Поддерживает where, order, limit, skip, count и keys",
		Tags:        []string{"objects"},
		Security:    security,
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "objects-create",
		Method:        http.MethodPost,
		Path:          h.base + "/classes/{className}",
		Summary:       "Создать объект",
		Tags:          []string{"objects"},
		DefaultStatus: http.StatusCreated,
		Security:      security,
		Middlewares:   h.middleware,
	}
}

func (h *Handler) getOp() huma.Operation {
	return huma.Operation{
		OperationID: "objects-get",
		Method:      http.MethodGet,
		Path:        h.base + "/classes/{className}/{objectId}",
		Summary:     "Получить объект",
		Tags:        []string{"objects"},
		Security:    security,
		Middlewares: h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "objects-update",
		Method:      http.MethodPut,
		Path:        h.base + "/classes/{className}/{objectId}",
		Summary:     "Обновить поля объекта",
		Description: `{"field":{"__op":"Delete"}} снимает значение поля`,
		Tags:        []string{"objects"},
		Security:    security,
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "objects-delete",
		Method:      http.MethodDelete,
		Path:        h.base + "/classes/{className}/{objectId}",
		Summary:     "Удалить объект",
		Tags:        []string{"objects"},
		Security:    security,
		Middlewares: h.middleware,
	}
}

var security = []map[string][]string{{"appId": {}, "masterKey": {}}}
