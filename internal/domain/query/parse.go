package query

import (
	"fmt"
	"strings"
)

// ParseCondition разбирает выражение вида "score>=10" или "name=Ann".
// Оператор ищется по первому символу сравнения, двухсимвольные операторы
// имеют приоритет над односимвольными.
func ParseCondition(expr string) (field string, op Operator, value string, err error) {
	idx := strings.IndexAny(expr, "<>!=")
	if idx <= 0 {
		return "", 0, "", fmt.Errorf("%w: %q", ErrBadCondition, expr)
	}

	width := 1
	if idx+1 < len(expr) {
		switch expr[idx : idx+2] {
		case "<=", ">=", "!=", "==", "<>":
			width = 2
		}
	}
	if expr[idx] == '!' && width == 1 {
		return "", 0, "", fmt.Errorf("%w: %q", ErrBadCondition, expr)
	}

	op, err = ParseOperator(expr[idx : idx+width])
	if err != nil {
		return "", 0, "", err
	}

	field = strings.TrimSpace(expr[:idx])
	value = unquote(strings.TrimSpace(expr[idx+width:]))
	if field == "" {
		return "", 0, "", fmt.Errorf("%w: %q", ErrBadCondition, expr)
	}

	return field, op, value, nil
}

// unquote снимает парные внешние кавычки
func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
