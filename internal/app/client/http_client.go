package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/exp/slog"

	"parsedash/internal/domain/object"
	"parsedash/internal/domain/profile"
	"parsedash/internal/domain/push"
	"parsedash/internal/domain/schema"
)

const (
	headerAppID     = "X-Parse-Application-Id"
	headerMasterKey = "X-Parse-Master-Key"

	contentTypeJSON = "application/json"
	whereMarker     = "where="

	maxResponseSize = 32 << 20
)

// Request описывает один вызов REST API
type Request struct {
	Method string
	Path   string
	// Query - готовая строка запроса без "?"
	Query string
	// Body сериализуется в JSON; RawBody отправляется как есть
	Body        any
	RawBody     []byte
	ContentType string
	// FalseMessage - текст ошибки для ответа {"result": false}
	FalseMessage string
}

// apiClient выполняет запросы от имени одного профиля.
// После создания не меняется, поэтому безопасен для параллельных вызовов.
type apiClient struct {
	http    *http.Client
	log     *slog.Logger
	creds   profile.Credentials
	profile string

	baseURL   string
	host      string
	configErr error

	checkNetwork func(host string) error
}

func newAPIClient(name string, creds profile.Credentials, timeout time.Duration, log *slog.Logger) *apiClient {
	c := &apiClient{
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConnsPerHost: 10,
			},
		},
		log:          log.With(slog.String("component", "api"), slog.String("profile", name)),
		creds:        creds,
		profile:      name,
		checkNetwork: hasNetworkPath,
	}

	c.baseURL, c.host, c.configErr = validateCredentials(creds)
	return c
}

func validateCredentials(creds profile.Credentials) (string, string, error) {
	if creds.AppID == "" || creds.MasterKey == "" {
		return "", "", ErrInvalidServerURL
	}
	base := profile.NormalizeServerURL(creds.ServerURL)
	u, err := url.Parse(base)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", "", ErrInvalidServerURL
	}
	return base, u.Hostname(), nil
}

// hasNetworkPath проверяет, что в системе есть поднятый не-loopback интерфейс.
// Для локальных адресов проверка не нужна.
func hasNetworkPath(host string) error {
	if isLoopbackHost(host) {
		return nil
	}

	ifaces, err := net.Interfaces()
	if err != nil {
		// Не смогли определить - пусть решает транспорт
		return nil
	}
	for _, ifc := range ifaces {
		if ifc.Flags&net.FlagUp == 0 || ifc.Flags&net.FlagLoopback != 0 {
			continue
		}
		if addrs, err := ifc.Addrs(); err == nil && len(addrs) > 0 {
			return nil
		}
	}
	return ErrNetworkUnavailable
}

func isLoopbackHost(host string) bool {
	if strings.EqualFold(host, "localhost") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// encodeQuery кодирует часть до "where=" как путь, а JSON после маркера - как значение запроса
func encodeQuery(query string) string {
	idx := strings.Index(query, whereMarker)
	if idx < 0 {
		return url.PathEscape(query)
	}
	split := idx + len(whereMarker)
	return url.PathEscape(query[:split]) + url.QueryEscape(query[split:])
}

func (c *apiClient) target(path, query string) string {
	target := c.baseURL + path
	if query != "" {
		target += "?" + encodeQuery(query)
	}
	return target
}

// precheck отсекает вызовы без сетевого обмена
func (c *apiClient) precheck(req Request) (Result, bool) {
	if c.configErr != nil {
		c.log.Warn("Запрос отклонен", slog.String("method", req.Method), slog.String("path", req.Path), slog.String("error", msgInvalidServerURL))
		return failure(ErrInvalidServerURL), false
	}
	if err := c.checkNetwork(c.host); err != nil {
		c.log.Warn("Запрос отклонен", slog.String("method", req.Method), slog.String("path", req.Path), slog.String("error", msgNetworkUnavailable))
		return failure(ErrNetworkUnavailable), false
	}
	return Result{}, true
}

// Do выполняет запрос и блокируется до результата
func (c *apiClient) Do(ctx context.Context, req Request) Result {
	if res, ok := c.precheck(req); !ok {
		return res
	}
	return c.send(ctx, req)
}

// Go выполняет запрос в отдельной горутине. Канал получит ровно один результат.
// Ошибки конфигурации доставляются сразу, без запуска горутины.
func (c *apiClient) Go(ctx context.Context, req Request) <-chan Result {
	ch := make(chan Result, 1)
	if res, ok := c.precheck(req); !ok {
		ch <- res
		close(ch)
		return ch
	}
	go func() {
		defer close(ch)
		ch <- c.send(ctx, req)
	}()
	return ch
}

func (c *apiClient) send(ctx context.Context, req Request) Result {
	body, contentType, err := encodeBody(req)
	if err != nil {
		c.log.Error("Ошибка подготовки запроса", slog.String("method", req.Method), slog.String("path", req.Path), slog.String("error", err.Error()))
		return failure(err)
	}

	target := c.target(req.Path, req.Query)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, reader)
	if err != nil {
		c.log.Error("Ошибка создания запроса", slog.String("method", req.Method), slog.String("target", target), slog.String("error", err.Error()))
		return failure(err)
	}

	httpReq.Header.Set(headerAppID, c.creds.AppID)
	httpReq.Header.Set(headerMasterKey, c.creds.MasterKey)
	httpReq.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.log.Error("Ошибка выполнения запроса", slog.String("method", req.Method), slog.String("target", target), slog.String("error", err.Error()))
		return failure(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		c.log.Error("Ошибка чтения ответа", slog.String("method", req.Method), slog.String("target", target), slog.String("error", err.Error()))
		res := failure(err)
		res.StatusCode = resp.StatusCode
		return res
	}

	res := classify(resp.StatusCode, data, req.FalseMessage)

	attrs := []any{
		slog.String("method", req.Method),
		slog.String("target", target),
		slog.Int("status", resp.StatusCode),
		slog.Int("sent", len(body)),
		slog.Int("received", len(data)),
	}
	if res.Success {
		c.log.Debug("Запрос выполнен", attrs...)
	} else {
		c.log.Info("Запрос завершился ошибкой", append(attrs, slog.String("error", res.Error))...)
	}

	return res
}

func encodeBody(req Request) ([]byte, string, error) {
	contentType := contentTypeJSON
	if req.ContentType != "" {
		contentType = req.ContentType
	}

	if req.RawBody != nil {
		return req.RawBody, contentType, nil
	}
	if req.Body == nil {
		return nil, contentType, nil
	}

	data, err := json.Marshal(req.Body)
	if err != nil {
		return nil, "", fmt.Errorf("ошибка маршалинга тела запроса: %w", err)
	}
	return data, contentType, nil
}

// Get, Post, Put и Delete - нетипизированные вызовы поверх Do

func (c *apiClient) Get(ctx context.Context, path, query string) Result {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query})
}

func (c *apiClient) Post(ctx context.Context, path string, body any) Result {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body})
}

func (c *apiClient) Put(ctx context.Context, path string, body any) Result {
	return c.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: body})
}

func (c *apiClient) Delete(ctx context.Context, path string) Result {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path})
}

func classPath(className string) string {
	return "/classes/" + url.PathEscape(className)
}

func objectPath(className, id string) string {
	return classPath(className) + "/" + url.PathEscape(id)
}

func schemaPath(className string) string {
	return "/schemas/" + url.PathEscape(className)
}

func decodeRaw(res Result, v any) error {
	if err := res.Err(); err != nil {
		return err
	}
	if err := json.Unmarshal(res.Raw, v); err != nil {
		return fmt.Errorf("ошибка парсинга ответа: %w", err)
	}
	return nil
}

// Health проверяет доступность сервера
func (c *apiClient) Health(ctx context.Context) error {
	return c.Get(ctx, "/health", "").Err()
}

// ListSchemas возвращает схемы всех классов
func (c *apiClient) ListSchemas(ctx context.Context) ([]schema.Schema, error) {
	var out schema.ListResponse
	if err := decodeRaw(c.Get(ctx, "/schemas", ""), &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// GetSchema возвращает схему одного класса
func (c *apiClient) GetSchema(ctx context.Context, className string) (*schema.Schema, error) {
	var out schema.Schema
	if err := decodeRaw(c.Get(ctx, schemaPath(className), ""), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteSchema удаляет класс. Для непустого класса сервер вернет код 255.
func (c *apiClient) DeleteSchema(ctx context.Context, className string) error {
	return c.Delete(ctx, schemaPath(className)).Err()
}

// ListObjects читает объекты класса. Поля схемы, которых нет в ответе,
// заполняются object.Undefined.
func (c *apiClient) ListObjects(ctx context.Context, className string, s *schema.Schema, query string) ([]*object.Object, error) {
	var out object.ListResponse
	if err := decodeRaw(c.Get(ctx, classPath(className), query), &out); err != nil {
		return nil, err
	}

	objects := make([]*object.Object, 0, len(out.Results))
	for _, raw := range out.Results {
		obj, err := object.FromPayload(className, raw, s)
		if err != nil {
			return nil, err
		}
		objects = append(objects, obj)
	}
	return objects, nil
}

// CountObjects возвращает количество объектов, подходящих под where
func (c *apiClient) CountObjects(ctx context.Context, className, where string) (int, error) {
	query := "limit=0&count=1"
	if where != "" {
		query += "&" + whereMarker + where
	}

	var out object.ListResponse
	if err := decodeRaw(c.Get(ctx, classPath(className), query), &out); err != nil {
		return 0, err
	}
	if out.Count == nil {
		return 0, fmt.Errorf("в ответе нет поля count")
	}
	return *out.Count, nil
}

// GetObject читает один объект
func (c *apiClient) GetObject(ctx context.Context, className, id string, s *schema.Schema) (*object.Object, error) {
	res := c.Get(ctx, objectPath(className, id), "")
	if err := res.Err(); err != nil {
		return nil, err
	}
	return object.FromPayload(className, res.Payload, s)
}

// CreateObject создает объект и возвращает его id и время создания
func (c *apiClient) CreateObject(ctx context.Context, className string, fields map[string]any) (*object.Object, error) {
	res := c.Post(ctx, classPath(className), fields)
	if err := res.Err(); err != nil {
		return nil, err
	}

	obj, err := object.FromPayload(className, res.Payload, nil)
	if err != nil {
		return nil, err
	}
	for name, v := range fields {
		obj.Fields[name] = v
	}
	return obj, nil
}

// UpdateObject выполняет частичное обновление полей
func (c *apiClient) UpdateObject(ctx context.Context, className, id string, fields map[string]any) error {
	return c.Put(ctx, objectPath(className, id), fields).Err()
}

// DeleteObject удаляет объект
func (c *apiClient) DeleteObject(ctx context.Context, className, id string) error {
	return c.Delete(ctx, objectPath(className, id)).Err()
}

// RunFunction вызывает облачную функцию и возвращает поле "result"
func (c *apiClient) RunFunction(ctx context.Context, name string, params json.RawMessage) (any, error) {
	req := Request{
		Method:       http.MethodPost,
		Path:         "/functions/" + url.PathEscape(name),
		FalseMessage: msgFunctionFailed,
	}
	if len(params) > 0 {
		req.RawBody = params
	} else {
		req.RawBody = []byte("{}")
	}

	res := c.Do(ctx, req)
	if err := res.Err(); err != nil {
		return nil, err
	}
	return res.Payload["result"], nil
}

// SendPush отправляет уведомление
func (c *apiClient) SendPush(ctx context.Context, n push.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}
	return c.Do(ctx, Request{
		Method:       http.MethodPost,
		Path:         "/push",
		Body:         n,
		FalseMessage: msgPushFailed,
	}).Err()
}

// FileUpload - файл, который нужно загрузить и привязать к полю объекта
type FileUpload struct {
	ClassName   string
	ObjectID    string
	Field       string
	Name        string
	ContentType string
	Data        []byte
}

// UploadFile загружает файл, затем записывает ссылку на него в поле объекта.
// Возвращается результат второго запроса.
func (c *apiClient) UploadFile(ctx context.Context, up FileUpload) (object.File, Result) {
	contentType := up.ContentType
	if contentType == "" {
		contentType = http.DetectContentType(up.Data)
	}

	res := c.Do(ctx, Request{
		Method:      http.MethodPost,
		Path:        "/files/" + url.PathEscape(up.Name),
		RawBody:     up.Data,
		ContentType: contentType,
	})
	if !res.Success {
		return object.File{}, res
	}

	name, _ := res.Payload["name"].(string)
	fileURL, _ := res.Payload["url"].(string)
	file := object.File{Name: name, URL: fileURL}

	return file, c.Put(ctx, objectPath(up.ClassName, up.ObjectID), map[string]any{
		up.Field: file.JSON(),
	})
}
