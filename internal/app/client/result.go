package client

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	msgInvalidServerURL   = "Invalid Server URL"
	msgNetworkUnavailable = "Network Connection Unavailable"

	msgRequestFailed  = "Request failed"
	msgPushFailed     = "Failed to send push"
	msgFunctionFailed = "Function returned false"
)

var (
	ErrInvalidServerURL   = errors.New(msgInvalidServerURL)
	ErrNetworkUnavailable = errors.New(msgNetworkUnavailable)
)

// Коды ошибок Parse, на которые опирается клиент
const (
	CodeObjectNotFound   = 101
	CodeInvalidClassName = 103
	CodeScriptFailed     = 141
	CodeClassNotEmpty    = 255
)

// Result - нормализованный итог одного запроса
type Result struct {
	Success    bool
	Error      string
	Payload    map[string]any
	Raw        json.RawMessage
	StatusCode int

	cause error
}

// Code возвращает числовой "code" из ответа или 0
func (r Result) Code() int {
	if f, ok := r.Payload["code"].(float64); ok {
		return int(f)
	}
	return 0
}

// Err превращает неуспешный результат в *APIError
func (r Result) Err() error {
	if r.Success {
		return nil
	}
	return &APIError{Code: r.Code(), Message: r.Error, Result: r}
}

// APIError - неуспешный вызов. Code - значение "code" из ответа (0, если его нет).
type APIError struct {
	Code    int
	Message string
	Result  Result
}

func (e *APIError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s (code %d)", e.Message, e.Code)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Result.cause
}

// IsCode сообщает, что err - ответ сервера с указанным кодом
func IsCode(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

func failure(cause error) Result {
	return Result{Error: cause.Error(), cause: cause}
}

// classify разбирает тело ответа. Правила применяются по порядку,
// первое сработавшее определяет результат.
func classify(status int, body []byte, falseMessage string) Result {
	res := Result{StatusCode: status, Raw: json.RawMessage(body)}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		res.Error = err.Error()
		res.cause = err
		return res
	}
	if payload == nil {
		res.Error = "empty response body"
		res.cause = errors.New(res.Error)
		return res
	}
	res.Payload = payload

	if msg, ok := payload["error"].(string); ok {
		res.Error = msg
		return res
	}

	if code, ok := payload["code"].(float64); ok && code == 1 {
		msg, _ := payload["message"].(string)
		if msg == "" {
			msg = msgRequestFailed
		}
		res.Error = msg
		return res
	}

	if result, ok := payload["result"].(bool); ok && !result {
		if falseMessage == "" {
			falseMessage = msgRequestFailed
		}
		res.Error = falseMessage
		return res
	}

	res.Success = true
	return res
}
