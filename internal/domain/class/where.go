package class

import (
	"cmp"
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"strings"
	"time"

	"parsedash/internal/domain/object"
)

// Match сообщает, удовлетворяет ли объект where-выражению.
// Все ограничения объединяются через И.
func Match(obj *object.Object, where map[string]any) (bool, error) {
	for field, cond := range where {
		ok, err := matchField(obj, field, cond)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func matchField(obj *object.Object, field string, cond any) (bool, error) {
	actual, present := obj.Value(field)
	if present && (actual == object.Undefined || actual == nil) {
		actual, present = nil, false
	}

	ops, isOps := operators(cond)
	if !isOps {
		return present && equal(actual, cond), nil
	}

	for op, arg := range ops {
		ok, err := matchOp(op, ops, actual, present, arg)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// operators возвращает карту операторов, если все ключи начинаются с "$".
// Иначе значение сравнивается целиком: так записываются Pointer и Date.
func operators(cond any) (map[string]any, bool) {
	m, ok := cond.(map[string]any)
	if !ok || len(m) == 0 {
		return nil, false
	}
	for k := range m {
		if !strings.HasPrefix(k, "$") {
			return nil, false
		}
	}
	return m, true
}

func matchOp(op string, ops map[string]any, actual any, present bool, arg any) (bool, error) {
	switch op {
	case "$eq":
		return present && equal(actual, arg), nil

	case "$ne":
		return !present || !equal(actual, arg), nil

	case "$lt", "$lte", "$gt", "$gte":
		if !present {
			return false, nil
		}
		c, ok := compare(actual, arg)
		if !ok {
			return false, nil
		}
		switch op {
		case "$lt":
			return c < 0, nil
		case "$lte":
			return c <= 0, nil
		case "$gt":
			return c > 0, nil
		default:
			return c >= 0, nil
		}

	case "$in", "$nin":
		list, ok := arg.([]any)
		if !ok {
			return false, newError(ErrInvalidQuery, "bad %s value: expected an array", op)
		}
		found := false
		if present {
			for _, v := range list {
				if equal(actual, v) {
					found = true
					break
				}
			}
		}
		return found == (op == "$in"), nil

	case "$exists":
		want, ok := arg.(bool)
		if !ok {
			return false, newError(ErrInvalidQuery, "bad $exists value: expected a boolean")
		}
		return present == want, nil

	case "$regex":
		pattern, ok := arg.(string)
		if !ok {
			return false, newError(ErrInvalidQuery, "bad $regex value: expected a string")
		}
		if opts, _ := ops["$options"].(string); strings.Contains(opts, "i") {
			pattern = "(?i)" + pattern
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return false, newError(ErrInvalidQuery, "bad $regex: %v", err)
		}
		s, ok := actual.(string)
		return present && ok && re.MatchString(s), nil

	case "$options":
		return true, nil
	}

	return false, newError(ErrInvalidQuery, "bad constraint: %s", op)
}

// normalize приводит значения к сравнимому виду: Date - к time.Time,
// Pointer - к object.Pointer, целые и json.Number - к float64
func normalize(v any) any {
	if t, ok := object.AsDate(v); ok {
		return t
	}
	if p, ok := object.AsPointer(v); ok {
		return p
	}
	switch x := v.(type) {
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return f
		}
	}
	return v
}

// coerce нормализует пару значений. Строка сравнивается с датой как отметка времени.
func coerce(a, b any) (any, any) {
	a, b = normalize(a), normalize(b)
	if _, ok := b.(time.Time); ok {
		if s, isStr := a.(string); isStr {
			if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
				a = t
			}
		}
	}
	if _, ok := a.(time.Time); ok {
		if s, isStr := b.(string); isStr {
			if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
				b = t
			}
		}
	}
	return a, b
}

func equal(a, b any) bool {
	a, b = coerce(a, b)

	// поле-массив совпадает, если содержит искомое значение
	if arr, ok := a.([]any); ok {
		if _, bArr := b.([]any); !bArr {
			for _, e := range arr {
				if equal(e, b) {
					return true
				}
			}
			return false
		}
	}

	if x, ok := a.(time.Time); ok {
		y, ok := b.(time.Time)
		return ok && x.Equal(y)
	}
	return reflect.DeepEqual(a, b)
}

func compare(a, b any) (int, bool) {
	a, b = coerce(a, b)
	switch x := a.(type) {
	case float64:
		y, ok := b.(float64)
		return cmp.Compare(x, y), ok
	case string:
		y, ok := b.(string)
		return strings.Compare(x, y), ok
	case time.Time:
		y, ok := b.(time.Time)
		return x.Compare(y), ok
	case bool:
		y, ok := b.(bool)
		if !ok || x == y {
			return 0, ok
		}
		if !x {
			return -1, true
		}
		return 1, true
	}
	return 0, false
}

// rank задает порядок значений разных типов при сортировке
func rank(v any) int {
	switch normalize(v).(type) {
	case nil:
		return 0
	case bool:
		return 1
	case float64:
		return 2
	case string:
		return 3
	case time.Time:
		return 4
	}
	return 5
}

// ParseOrder разбирает параметр order: "score,-name"
func ParseOrder(s string) []string {
	var keys []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" && k != "-" {
			keys = append(keys, k)
		}
	}
	return keys
}

// Sort упорядочивает объекты по ключам order. Отсутствующие значения идут первыми.
func Sort(objs []*object.Object, order []string) {
	if len(order) == 0 {
		return
	}
	slices.SortStableFunc(objs, func(a, b *object.Object) int {
		for _, key := range order {
			field, desc := strings.CutPrefix(key, "-")
			av, _ := a.Value(field)
			bv, _ := b.Value(field)

			c, ok := compare(av, bv)
			if !ok {
				c = cmp.Compare(rank(av), rank(bv))
				if c == 0 {
					c = strings.Compare(fmt.Sprint(av), fmt.Sprint(bv))
				}
			}
			if desc {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})
}

// Project оставляет в объекте только перечисленные поля и системные
func Project(obj *object.Object, keys []string) *object.Object {
	if len(keys) == 0 {
		return obj
	}
	out := *obj
	out.Fields = make(map[string]any, len(keys))
	for _, k := range keys {
		if v, ok := obj.Fields[k]; ok {
			out.Fields[k] = v
		}
	}
	return &out
}
