package push

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) sendOp() huma.Operation {
	return huma.Operation{
		OperationID: "push-send",
		Method:      http.MethodPost,
		Path:        h.base + "/push",
		Summary:     "Отправить push-уведомление",
		Description: "Нужны channels или where и alert или данные в data",
		Tags:        []string{"push"},
		Security:    []map[string][]string{{"appId": {}, "masterKey": {}}},
		Middlewares: h.middleware,
	}
}
