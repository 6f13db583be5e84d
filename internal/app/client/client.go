package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/exp/slog"

	"parsedash/internal/app/client/config"
	"parsedash/internal/app/client/crypto"
	"parsedash/internal/domain/object"
	"parsedash/internal/domain/profile"
	"parsedash/internal/domain/push"
	"parsedash/internal/domain/schema"
	"parsedash/internal/domain/snippet"
)

// API - вызовы REST API от имени активного профиля
type API interface {
	Do(ctx context.Context, req Request) Result
	Go(ctx context.Context, req Request) <-chan Result

	Health(ctx context.Context) error
	ListSchemas(ctx context.Context) ([]schema.Schema, error)
	GetSchema(ctx context.Context, className string) (*schema.Schema, error)
	DeleteSchema(ctx context.Context, className string) error
	ListObjects(ctx context.Context, className string, s *schema.Schema, query string) ([]*object.Object, error)
	CountObjects(ctx context.Context, className, where string) (int, error)
	GetObject(ctx context.Context, className, id string, s *schema.Schema) (*object.Object, error)
	CreateObject(ctx context.Context, className string, fields map[string]any) (*object.Object, error)
	UpdateObject(ctx context.Context, className, id string, fields map[string]any) error
	DeleteObject(ctx context.Context, className, id string) error
	RunFunction(ctx context.Context, name string, params json.RawMessage) (any, error)
	SendPush(ctx context.Context, n push.Notification) error
	UploadFile(ctx context.Context, up FileUpload) (object.File, Result)
}

var _ API = (*apiClient)(nil)

// session связывает профиль и клиент, созданный для него
type session struct {
	profile *profile.Profile
	api     *apiClient
}

type App struct {
	config   *config.Config
	log      *slog.Logger
	storage  *SQLiteStorage
	snippets snippet.Repository
	sealer   *crypto.Sealer

	current atomic.Pointer[session]

	mu    sync.Mutex
	state *AppState
}

// AppState хранит состояние между запусками
type AppState struct {
	ActiveProfile string    `json:"active_profile"`
	LastUsed      time.Time `json:"last_used"`
}

func New(cfg *config.Config, log *slog.Logger, passphrase string) (*App, error) {
	sealer, err := crypto.OpenSealer(cfg.KeyPath, passphrase)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия ключа профилей: %w", err)
	}

	storage, err := NewSQLiteStorage(cfg.DataPath, sealer)
	if err != nil {
		sealer.Close()
		return nil, fmt.Errorf("ошибка инициализации хранилища: %w", err)
	}

	app := newApp(cfg, log, storage)
	app.sealer = sealer
	return app, nil
}

func newApp(cfg *config.Config, log *slog.Logger, storage *SQLiteStorage) *App {
	state, err := loadAppState(cfg.StatePath)
	if err != nil {
		log.Warn("Не удалось загрузить состояние приложения", "error", err)
		state = &AppState{}
	}

	return &App{
		config:   cfg,
		log:      log,
		storage:  storage,
		snippets: storage.Snippets(),
		state:    state,
	}
}

func loadAppState(path string) (*AppState, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &AppState{}, nil
	}
	if err != nil {
		return nil, err
	}

	var state AppState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// saveAppState вызывается под a.mu
func (a *App) saveAppState() error {
	data, err := json.MarshalIndent(a.state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(a.config.StatePath, data, 0600)
}

func (a *App) Close() error {
	if a.sealer != nil {
		a.sealer.Close()
	}
	return a.storage.Close()
}

// AddProfile проверяет и сохраняет новый профиль
func (a *App) AddProfile(ctx context.Context, p *profile.Profile) error {
	p.ServerURL = profile.NormalizeServerURL(p.ServerURL)
	p.Name = strings.TrimSpace(p.Name)
	if err := profile.Validate(p); err != nil {
		return err
	}

	if _, err := a.storage.Create(ctx, p); err != nil {
		return err
	}

	a.log.Info("Профиль добавлен", "profile", p.Name, "server", p.ServerURL)
	return nil
}

// UpdateProfile сохраняет изменения профиля. Если профиль активен,
// для него создается новый клиент; уже начатые запросы это не затрагивает.
func (a *App) UpdateProfile(ctx context.Context, p *profile.Profile) error {
	p.ServerURL = profile.NormalizeServerURL(p.ServerURL)
	if err := profile.Validate(p); err != nil {
		return err
	}
	if err := a.storage.Update(ctx, p); err != nil {
		return err
	}

	if cur := a.current.Load(); cur != nil && cur.profile.ID == p.ID {
		a.activate(p)
	}
	return nil
}

func (a *App) GetProfile(ctx context.Context, name string) (*profile.Profile, error) {
	return a.storage.GetByName(ctx, name)
}

func (a *App) ListProfiles(ctx context.Context) ([]*profile.Profile, error) {
	return a.storage.List(ctx)
}

// RemoveProfile удаляет профиль вместе с его сниппетами
func (a *App) RemoveProfile(ctx context.Context, name string) error {
	if err := a.storage.Delete(ctx, name); err != nil {
		return err
	}

	if cur := a.current.Load(); cur != nil && cur.profile.Name == name {
		a.current.CompareAndSwap(cur, nil)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state.ActiveProfile == name {
		a.state.ActiveProfile = ""
		if err := a.saveAppState(); err != nil {
			return fmt.Errorf("ошибка сохранения состояния: %w", err)
		}
	}

	a.log.Info("Профиль удален", "profile", name)
	return nil
}

// UseProfile делает профиль активным и запоминает выбор
func (a *App) UseProfile(ctx context.Context, name string) error {
	p, err := a.storage.GetByName(ctx, name)
	if err != nil {
		return err
	}
	a.activate(p)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.state.ActiveProfile = p.Name
	a.state.LastUsed = time.Now().UTC()
	if err := a.saveAppState(); err != nil {
		return fmt.Errorf("ошибка сохранения состояния: %w", err)
	}
	return nil
}

// Activate выбирает профиль на время запуска: override (флаг --server)
// или сохраненный активный профиль. Выбор не сохраняется.
func (a *App) Activate(ctx context.Context, override string) error {
	name := override
	if name == "" {
		name = a.config.Profile
	}
	if name == "" {
		a.mu.Lock()
		name = a.state.ActiveProfile
		a.mu.Unlock()
	}
	if name == "" {
		return profile.ErrNoActive
	}

	p, err := a.storage.GetByName(ctx, name)
	if err != nil {
		return err
	}
	a.activate(p)
	return nil
}

func (a *App) activate(p *profile.Profile) {
	a.current.Store(&session{
		profile: p,
		api:     newAPIClient(p.Name, p.Credentials(), a.config.RequestTimeout, a.log),
	})
	a.log.Debug("Активный профиль", "profile", p.Name)
}

// Client возвращает клиент активного профиля. Без профиля возвращается
// клиент с пустыми учетными данными: любой вызов завершится
// "Invalid Server URL" без обращения к сети.
func (a *App) Client() API {
	if cur := a.current.Load(); cur != nil {
		return cur.api
	}
	return newAPIClient("", profile.Credentials{}, a.config.RequestTimeout, a.log)
}

// ActiveProfile возвращает активный профиль или ErrNoActive
func (a *App) ActiveProfile() (*profile.Profile, error) {
	cur := a.current.Load()
	if cur == nil {
		return nil, profile.ErrNoActive
	}
	return cur.profile, nil
}

// CheckProfile проверяет доступность сервера профиля через /health
func (a *App) CheckProfile(ctx context.Context, name string) error {
	p, err := a.storage.GetByName(ctx, name)
	if err != nil {
		return err
	}
	return newAPIClient(p.Name, p.Credentials(), a.config.RequestTimeout, a.log).Health(ctx)
}

// ProfileStatus - результат проверки одного профиля
type ProfileStatus struct {
	Name      string `json:"name" yaml:"name"`
	ServerURL string `json:"serverURL" yaml:"serverURL"`
	Err       error  `json:"-" yaml:"-"`
	Error     string `json:"error,omitempty" yaml:"error,omitempty"`
}

// CheckAll опрашивает /health всех профилей одновременно.
// Порядок результатов совпадает с порядком ListProfiles.
func (a *App) CheckAll(ctx context.Context) ([]ProfileStatus, error) {
	profiles, err := a.storage.List(ctx)
	if err != nil {
		return nil, err
	}

	pending := make([]<-chan Result, len(profiles))
	for i, p := range profiles {
		c := newAPIClient(p.Name, p.Credentials(), a.config.RequestTimeout, a.log)
		pending[i] = c.Go(ctx, Request{Method: http.MethodGet, Path: "/health"})
	}

	out := make([]ProfileStatus, len(profiles))
	for i, p := range profiles {
		out[i] = ProfileStatus{Name: p.Name, ServerURL: p.ServerURL}
		if err := (<-pending[i]).Err(); err != nil {
			out[i].Err = err
			out[i].Error = err.Error()
		}
	}
	return out, nil
}

// NewPurgeJob готовит удаление класса на активном профиле
func (a *App) NewPurgeJob(force bool) *PurgeJob {
	job := newPurgeJob(a.Client(), a.log, a.config.PurgeConcurrency, a.config.PageSize)
	job.Force = force
	return job
}

// SaveSnippet сохраняет вызов функции для активного профиля
func (a *App) SaveSnippet(ctx context.Context, name, function string, params json.RawMessage) error {
	p, err := a.ActiveProfile()
	if err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" || strings.TrimSpace(function) == "" {
		return fmt.Errorf("имя сниппета и функции обязательны")
	}
	if len(params) > 0 && !json.Valid(params) {
		return fmt.Errorf("параметры должны быть JSON-объектом")
	}

	return a.snippets.Save(ctx, &snippet.Snippet{
		ProfileID: p.ID,
		Name:      name,
		Function:  function,
		Params:    params,
	})
}

func (a *App) GetSnippet(ctx context.Context, name string) (*snippet.Snippet, error) {
	p, err := a.ActiveProfile()
	if err != nil {
		return nil, err
	}
	return a.snippets.Get(ctx, p.ID, name)
}

func (a *App) ListSnippets(ctx context.Context) ([]*snippet.Snippet, error) {
	p, err := a.ActiveProfile()
	if err != nil {
		return nil, err
	}
	return a.snippets.List(ctx, p.ID)
}

func (a *App) DeleteSnippet(ctx context.Context, name string) error {
	p, err := a.ActiveProfile()
	if err != nil {
		return err
	}
	return a.snippets.Delete(ctx, p.ID, name)
}
