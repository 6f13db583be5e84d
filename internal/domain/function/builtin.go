package function

import (
	"context"
	"math"
)

// RegisterBuiltins добавляет функции, которые dev-сервер умеет без облачного кода
func RegisterBuiltins(r *Registry) {
	r.Register("hello", hello)
	r.Register("echo", echo)
	r.Register("fail", fail)
	r.Register("isEven", isEven)
}

func hello(_ context.Context, params map[string]any) (any, error) {
	if name, ok := params["name"].(string); ok && name != "" {
		return "Hello " + name + "!", nil
	}
	return "Hello world!", nil
}

func echo(_ context.Context, params map[string]any) (any, error) {
	return params, nil
}

func fail(_ context.Context, params map[string]any) (any, error) {
	if msg, ok := params["message"].(string); ok && msg != "" {
		return nil, Fail(msg)
	}
	return nil, Fail("fail called")
}

// isEven возвращает false для нечетного числа: так клиент видит result == false
func isEven(_ context.Context, params map[string]any) (any, error) {
	n, ok := params["number"].(float64)
	if !ok || n != math.Trunc(n) {
		return nil, Fail("isEven needs an integer \"number\" parameter")
	}
	return math.Mod(n, 2) == 0, nil
}
