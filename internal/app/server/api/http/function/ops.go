package function

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) runOp() huma.Operation {
	return huma.Operation{
		OperationID: "functions-run",
		Method:      http.MethodPost,
		Path:        h.base + "/functions/{name}",
		Summary:     "Вызвать облачную функцию",
		Description: "Тело запроса - параметры функции. Ошибка функции возвращается с кодом 141.",
		Tags:        []string{"functions"},
		Security:    []map[string][]string{{"appId": {}, "masterKey": {}}},
		Middlewares: h.middleware,
	}
}
