package auth

import (
	"crypto/subtle"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"parsedash/internal/app/server/api/http/apierror"
)

const (
	HeaderApplicationID = "X-Parse-Application-Id"
	HeaderMasterKey     = "X-Parse-Master-Key"
)

// Auth пропускает только запросы с идентификатором приложения и мастер-ключом сервера
type Auth struct {
	appID     string
	masterKey string
	log       *slog.Logger
}

func New(appID, masterKey string, log *slog.Logger) *Auth {
	return &Auth{
		appID:     appID,
		masterKey: masterKey,
		log:       log.With("component", "auth_middleware"),
	}
}

// Middleware возвращает middleware для Huma с сигнатурой func(ctx Context, next func(Context))
func (a *Auth) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if !a.valid(ctx.Header(HeaderApplicationID), ctx.Header(HeaderMasterKey)) {
			a.log.Warn("rejected request",
				slog.String("method", ctx.Method()),
				slog.String("path", ctx.URL().Path),
				slog.String("remote_addr", ctx.RemoteAddr()),
			)
			if err := apierror.Write(ctx, apierror.Unauthorized()); err != nil {
				a.log.Error("write response", "error", err)
			}
			return
		}

		next(ctx)
	}
}

func (a *Auth) valid(appID, masterKey string) bool {
	appOK := subtle.ConstantTimeCompare([]byte(appID), []byte(a.appID)) == 1
	keyOK := subtle.ConstantTimeCompare([]byte(masterKey), []byte(a.masterKey)) == 1
	return appOK && keyOK
}
