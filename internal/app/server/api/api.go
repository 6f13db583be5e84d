// Dev-сервер с подмножеством REST API Parse:
//
//	GET    /health                      # Проверка (публичный)
//	GET    /schemas                     # Схемы классов
//	GET    /schemas/{className}         # Схема класса
//	POST   /schemas/{className}         # Создать класс
//	DELETE /schemas/{className}         # Удалить пустой класс (иначе код 255)
//	GET    /classes/{className}         # Поиск: where, order, limit, skip, count, keys
//	POST   /classes/{className}         # Создать объект
//	GET    /classes/{className}/{id}    # Получить объект
//	PUT    /classes/{className}/{id}    # Обновить поля, {"__op":"Delete"} снимает поле
//	DELETE /classes/{className}/{id}    # Удалить объект
//	POST   /functions/{name}            # Облачная функция
//	POST   /push                        # Push-уведомление
//	POST   /files/{name}                # Загрузить файл
//	GET    /files/{name}                # Скачать файл (публичный)
//
// Все пути, кроме публичных, требуют X-Parse-Application-Id и X-Parse-Master-Key.

package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"

	"parsedash/internal/app/server/api/http/apierror"
	fileAPI "parsedash/internal/app/server/api/http/file"
	functionAPI "parsedash/internal/app/server/api/http/function"
	healthAPI "parsedash/internal/app/server/api/http/health"
	"parsedash/internal/app/server/api/http/middleware"
	"parsedash/internal/app/server/api/http/middleware/auth"
	"parsedash/internal/app/server/api/http/middleware/logger"
	objectAPI "parsedash/internal/app/server/api/http/object"
	pushAPI "parsedash/internal/app/server/api/http/push"
	schemaAPI "parsedash/internal/app/server/api/http/schema"
	"parsedash/internal/app/server/config"
	"parsedash/internal/domain/class"
	"parsedash/internal/domain/function"
	"parsedash/internal/domain/push"
)

type Handlers struct {
	Health   *healthAPI.Handler
	Schema   *schemaAPI.Handler
	Object   *objectAPI.Handler
	Function *functionAPI.Handler
	Push     *pushAPI.Handler
	File     *fileAPI.Handler
}

// Services - доменные сервисы, на которые опираются обработчики
type Services struct {
	Class     *class.Service
	Functions *function.Registry
	Push      *push.Service
	// Storage проверяется в /health, nil - хранилище не умеет Ping
	Storage healthAPI.Pinger
}

// New создает *chi.Mux с ВСЕМИ операциями через huma.Register
func New(cfg *config.Config, repo class.Repository, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()
	API := humachi.New(mux, Config())
	Register(API, cfg, NewServices(repo, log), log)
	return mux
}

// Config - настройки huma для dev-сервера. Ошибки уходят в формате Parse,
// ссылки $schema в ответы не добавляются.
func Config() huma.Config {
	apierror.Install()

	hc := huma.DefaultConfig("parsedash dev server", "1.0.0")
	hc.CreateHooks = nil
	hc.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"appId":     {Type: "apiKey", In: "header", Name: auth.HeaderApplicationID},
		"masterKey": {Type: "apiKey", In: "header", Name: auth.HeaderMasterKey},
	}
	return hc
}

func NewServices(repo class.Repository, log *slog.Logger) *Services {
	functions := function.NewRegistry(log)
	function.RegisterBuiltins(functions)

	pinger, _ := repo.(healthAPI.Pinger)
	return &Services{
		Class:     class.NewService(repo, log),
		Functions: functions,
		Push:      push.NewService(log),
		Storage:   pinger,
	}
}

// Register добавляет все операции в api
func Register(api huma.API, cfg *config.Config, svc *Services, log *slog.Logger) *Handlers {
	h := handlers(cfg, svc, log)
	h.Health.SetupRoutes(api)
	h.Schema.SetupRoutes(api)
	h.Object.SetupRoutes(api)
	h.Function.SetupRoutes(api)
	h.Push.SetupRoutes(api)
	h.File.SetupRoutes(api)
	return h
}

func handlers(cfg *config.Config, svc *Services, log *slog.Logger) *Handlers {
	base := cfg.Server.MountPath
	authMW := auth.New(cfg.Parse.AppID, cfg.Parse.MasterKey, log)
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(base, svc.Storage, log, middlewares.GetAllAndClear())

	middlewares.Add(loggerMW.Middleware(), authMW.Middleware())
	schemaHandler := schemaAPI.NewHandler(base, svc.Class, log, middlewares.GetAllAndClear())

	middlewares.Add(loggerMW.Middleware(), authMW.Middleware())
	objectHandler := objectAPI.NewHandler(base, cfg.Server.PublicURL, svc.Class, log, middlewares.GetAllAndClear())

	middlewares.Add(loggerMW.Middleware(), authMW.Middleware())
	functionHandler := functionAPI.NewHandler(base, svc.Functions, log, middlewares.GetAllAndClear())

	middlewares.Add(loggerMW.Middleware(), authMW.Middleware())
	pushHandler := pushAPI.NewHandler(base, svc.Push, log, middlewares.GetAllAndClear())

	middlewares.Add(loggerMW.Middleware(), authMW.Middleware())
	protected := middlewares.GetAllAndClear()
	middlewares.Add(loggerMW.Middleware())
	fileHandler := fileAPI.NewHandler(base, cfg.Server.PublicURL, svc.Class, log, protected, middlewares.GetAllAndClear())

	return &Handlers{
		Health:   healthHandler,
		Schema:   schemaHandler,
		Object:   objectHandler,
		Function: functionHandler,
		Push:     pushHandler,
		File:     fileHandler,
	}
}
