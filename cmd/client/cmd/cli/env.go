package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"golang.org/x/exp/slog"

	"parsedash/internal/app/client"
)

// Format - формат вывода команд
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatTable, FormatJSON, FormatYAML:
		return Format(s), nil
	case "":
		return FormatTable, nil
	}
	return "", fmt.Errorf("неизвестный формат вывода %q (table, json, yaml)", s)
}

// Env - то, что корневая команда передает подкомандам через контекст
type Env struct {
	App    *client.App
	Log    *slog.Logger
	Out    io.Writer
	Err    io.Writer
	Format Format
}

type envKey struct{}

var ErrNoEnv = errors.New("приложение не инициализировано")

func WithEnv(ctx context.Context, env *Env) context.Context {
	return context.WithValue(ctx, envKey{}, env)
}

func FromContext(ctx context.Context) (*Env, error) {
	if ctx == nil {
		return nil, ErrNoEnv
	}
	env, ok := ctx.Value(envKey{}).(*Env)
	if !ok || env == nil || env.App == nil {
		return nil, ErrNoEnv
	}
	return env, nil
}
