package apierror

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"parsedash/internal/domain/class"
	"parsedash/internal/domain/function"
	"parsedash/internal/domain/push"
)

// Коды ошибок Parse
const (
	CodeInternal          = 1
	CodeObjectNotFound    = 101
	CodeInvalidQuery      = 102
	CodeInvalidClassName  = 103
	CodeInvalidKeyName    = 105
	CodeInvalidJSON       = 107
	CodeIncorrectType     = 111
	CodePushMisconfigured = 115
	CodeInvalidFileName   = 122
	CodeScriptFailed      = 141
	CodeClassNotEmpty     = 255
)

// Error - тело ошибки в формате Parse: {"code":N,"error":"..."}
type Error struct {
	status  int
	Code    int    `json:"code,omitempty"`
	Message string `json:"error"`
}

func New(status, code int, message string) *Error {
	return &Error{status: status, Code: code, Message: message}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) GetStatus() int {
	return e.status
}

// Unauthorized - ответ на запрос без верных ключей
func Unauthorized() *Error {
	return New(http.StatusForbidden, 0, "unauthorized")
}

// From переводит ошибку домена в ответ с кодом Parse.
// Неизвестные ошибки становятся кодом 1 без подробностей.
func From(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}

	status, code := http.StatusBadRequest, 0
	switch {
	case errors.Is(err, class.ErrObjectNotFound), errors.Is(err, class.ErrFileNotFound):
		status, code = http.StatusNotFound, CodeObjectNotFound
	case errors.Is(err, class.ErrClassNotFound),
		errors.Is(err, class.ErrClassExists),
		errors.Is(err, class.ErrInvalidClassName):
		code = CodeInvalidClassName
	case errors.Is(err, class.ErrClassNotEmpty):
		code = CodeClassNotEmpty
	case errors.Is(err, class.ErrInvalidQuery):
		code = CodeInvalidQuery
	case errors.Is(err, class.ErrInvalidKey):
		code = CodeInvalidKeyName
	case errors.Is(err, class.ErrIncorrectType):
		code = CodeIncorrectType
	case errors.Is(err, class.ErrInvalidFileName):
		code = CodeInvalidFileName
	case errors.Is(err, function.ErrNotFound), errors.Is(err, function.ErrFailed):
		code = CodeScriptFailed
	case errors.Is(err, push.ErrNoAudience),
		errors.Is(err, push.ErrNoMessage),
		errors.Is(err, push.ErrExpired):
		code = CodePushMisconfigured
	default:
		return New(http.StatusInternalServerError, CodeInternal, "Internal server error.")
	}

	return New(status, code, err.Error())
}

// Install подменяет конструктор ошибок huma: ошибки валидации и разбора
// запроса тоже уходят клиенту в формате Parse
func Install() {
	huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
		code := CodeInternal
		switch status {
		case http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusRequestEntityTooLarge:
			code = CodeInvalidJSON
		case http.StatusUnauthorized, http.StatusForbidden:
			code = 0
		case http.StatusNotFound:
			code = CodeObjectNotFound
		}

		details := make([]string, 0, len(errs)+1)
		details = append(details, msg)
		for _, e := range errs {
			if e != nil {
				details = append(details, e.Error())
			}
		}
		return New(status, code, strings.Join(details, ": "))
	}
}

// Write пишет ошибку напрямую, минуя обработчик операции
func Write(ctx huma.Context, e *Error) error {
	ctx.SetHeader("Content-Type", "application/json")
	ctx.SetStatus(e.status)
	return json.NewEncoder(ctx.BodyWriter()).Encode(e)
}
