package query

import (
	"fmt"
	"strings"
)

// Operator - оператор сравнения в ограничении
type Operator int

const (
	Equal Operator = iota
	NotEqual
	LessThan
	LessThanOrEqual
	GreaterThan
	GreaterThanOrEqual
)

var tokens = map[Operator]string{
	NotEqual:           "$ne",
	LessThan:           "$lt",
	LessThanOrEqual:    "$lte",
	GreaterThan:        "$gt",
	GreaterThanOrEqual: "$gte",
}

// Token возвращает оператор языка запросов. У равенства токена нет:
// оно записывается без обертки.
func (o Operator) Token() string {
	return tokens[o]
}

func (o Operator) IsValid() bool {
	return o >= Equal && o <= GreaterThanOrEqual
}

func (o Operator) String() string {
	switch o {
	case Equal:
		return "="
	case NotEqual:
		return "!="
	case LessThan:
		return "<"
	case LessThanOrEqual:
		return "<="
	case GreaterThan:
		return ">"
	case GreaterThanOrEqual:
		return ">="
	}
	return fmt.Sprintf("Operator(%d)", int(o))
}

// ParseOperator принимает символьную (">=") и словесную ("gte") запись
func ParseOperator(s string) (Operator, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "=", "==", "eq":
		return Equal, nil
	case "!=", "<>", "ne":
		return NotEqual, nil
	case "<", "lt":
		return LessThan, nil
	case "<=", "lte":
		return LessThanOrEqual, nil
	case ">", "gt":
		return GreaterThan, nil
	case ">=", "gte":
		return GreaterThanOrEqual, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOperator, s)
}

// Direction - направление сортировки
type Direction int

const (
	Ascending Direction = iota
	Descending
)
