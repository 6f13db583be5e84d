package client

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parsedash/internal/app/server/api"
	"parsedash/internal/app/server/config"
	"parsedash/internal/domain/object"
	"parsedash/internal/domain/profile"
	"parsedash/internal/domain/push"
	"parsedash/internal/domain/query"
	"parsedash/internal/infrastructure/storage/memory"
	"parsedash/internal/utils/logger"
)

// newDevServerClient поднимает dev-сервер в памяти и клиента к нему
func newDevServerClient(t *testing.T) *apiClient {
	t.Helper()

	cfg := &config.Config{}
	cfg.Server.MountPath = "/parse"
	cfg.Parse.AppID = "app"
	cfg.Parse.MasterKey = "master"

	srv := httptest.NewServer(api.New(cfg, memory.New(), logger.Discard()))
	t.Cleanup(srv.Close)
	cfg.Server.PublicURL = srv.URL + "/parse"

	return newAPIClient("dev", profile.Credentials{
		ServerURL: srv.URL + "/parse",
		AppID:     "app",
		MasterKey: "master",
	}, 5*time.Second, logger.Discard())
}

func TestDevServer_ObjectRoundTrip(t *testing.T) {
	c := newDevServerClient(t)
	ctx := context.Background()

	require.NoError(t, c.Health(ctx))

	created, err := c.CreateObject(ctx, "Game", map[string]any{"title": "Chess", "score": 10.0})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	sc, err := c.GetSchema(ctx, "Game")
	require.NoError(t, err)

	b := query.NewBuilder(sc)
	require.NoError(t, b.Where("score", query.GreaterThanOrEqual, "10"))
	objs, err := c.ListObjects(ctx, "Game", sc, b.Encode())
	require.NoError(t, err)
	require.Len(t, objs, 1)
	assert.Equal(t, "Chess", objs[0].Fields["title"])

	require.NoError(t, c.UpdateObject(ctx, "Game", created.ID, map[string]any{"title": object.DeleteOp()}))

	got, err := c.GetObject(ctx, "Game", created.ID, sc)
	require.NoError(t, err)
	assert.True(t, got.IsUndefined("title"))

	n, err := c.CountObjects(ctx, "Game", b.WhereJSON())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestDevServer_WrongKey(t *testing.T) {
	c := newDevServerClient(t)
	c.creds.MasterKey = "wrong"

	_, err := c.ListSchemas(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "unauthorized", apiErr.Message)
}

func TestDevServer_PurgeNonEmptyClass(t *testing.T) {
	c := newDevServerClient(t)
	ctx := context.Background()

	for i := 0; i < 23; i++ {
		_, err := c.CreateObject(ctx, "Trash", map[string]any{"n": float64(i)})
		require.NoError(t, err)
	}

	err := c.DeleteSchema(ctx, "Trash")
	require.True(t, IsCode(err, CodeClassNotEmpty), "got %v", err)

	job := newPurgeJob(c, logger.Discard(), 4, 10)
	job.Force = true
	report, err := job.Run(ctx, "Trash")
	require.NoError(t, err)

	assert.True(t, report.SchemaDeleted)
	assert.Equal(t, 23, report.Initial)
	assert.EqualValues(t, 23, report.DeleteCalls)

	_, err = c.GetSchema(ctx, "Trash")
	assert.True(t, IsCode(err, CodeInvalidClassName), "got %v", err)
}

func TestDevServer_FunctionsAndPush(t *testing.T) {
	c := newDevServerClient(t)
	ctx := context.Background()

	result, err := c.RunFunction(ctx, "hello", nil)
	require.NoError(t, err)
	assert.Equal(t, "Hello world!", result)

	_, err = c.RunFunction(ctx, "isEven", []byte(`{"number":3}`))
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, msgFunctionFailed, apiErr.Message)

	_, err = c.RunFunction(ctx, "fail", nil)
	assert.True(t, IsCode(err, CodeScriptFailed), "got %v", err)

	require.NoError(t, c.SendPush(ctx, push.Notification{
		Channels: []string{"news"},
		Data:     push.Data{Alert: "hello"},
	}))
}

func TestDevServer_UploadFile(t *testing.T) {
	c := newDevServerClient(t)
	ctx := context.Background()

	obj, err := c.CreateObject(ctx, "Player", map[string]any{"name": "Ann"})
	require.NoError(t, err)

	file, res := c.UploadFile(ctx, FileUpload{
		ClassName: "Player",
		ObjectID:  obj.ID,
		Field:     "avatar",
		Name:      "avatar.txt",
		Data:      []byte("hello"),
	})
	require.True(t, res.Success, res.Error)
	assert.Contains(t, file.Name, "avatar.txt")

	got, err := c.GetObject(ctx, "Player", obj.ID, nil)
	require.NoError(t, err)
	stored, ok := got.File("avatar")
	require.True(t, ok)
	assert.Equal(t, file.Name, stored.Name)
}
