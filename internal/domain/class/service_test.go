package class_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"parsedash/internal/domain/class"
	"parsedash/internal/domain/object"
	"parsedash/internal/domain/schema"
	"parsedash/internal/infrastructure/storage/memory"
)

func newService(t *testing.T) *class.Service {
	t.Helper()
	return class.NewService(memory.New(), slog.Default())
}

func seed(t *testing.T, s *class.Service, className string, rows ...map[string]any) []*object.Object {
	t.Helper()
	out := make([]*object.Object, 0, len(rows))
	for _, fields := range rows {
		obj, err := s.Create(context.Background(), className, fields)
		require.NoError(t, err)
		out = append(out, obj)
	}
	return out
}

func TestService_CreateInfersSchema(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	obj, err := s.Create(ctx, "Game", map[string]any{
		"title": "Chess",
		"score": 10.0,
		"owner": object.Pointer{ClassName: "_User", ObjectID: "u1"}.JSON(),
	})
	require.NoError(t, err)
	assert.Len(t, obj.ID, 10)
	assert.False(t, obj.CreatedAt.IsZero())

	sc, err := s.Schema(ctx, "Game")
	require.NoError(t, err)
	assert.Equal(t, schema.TypeString, sc.Fields["title"].Type)
	assert.Equal(t, schema.TypeNumber, sc.Fields["score"].Type)
	assert.Equal(t, schema.Field{Type: schema.TypePointer, TargetClass: "_User"}, sc.Fields["owner"])
	assert.True(t, sc.HasField(schema.FieldObjectID))
}

func TestService_CreateRejects(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	seed(t, s, "Game", map[string]any{"score": 1.0})

	tests := []struct {
		name      string
		className string
		fields    map[string]any
		wantErr   error
	}{
		{name: "bad class name", className: "1Game", fields: map[string]any{}, wantErr: class.ErrInvalidClassName},
		{name: "type mismatch", className: "Game", fields: map[string]any{"score": "high"}, wantErr: class.ErrIncorrectType},
		{name: "reserved key", className: "Game", fields: map[string]any{"objectId": "x"}, wantErr: class.ErrInvalidKey},
		{name: "bad field name", className: "Game", fields: map[string]any{"$x": 1.0}, wantErr: class.ErrInvalidKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Create(ctx, tt.className, tt.fields)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_UpdateAndDeleteOp(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	objs := seed(t, s, "Game", map[string]any{"title": "Chess", "score": 10.0})

	updated, err := s.Update(ctx, "Game", objs[0].ID, map[string]any{
		"title": object.DeleteOp(),
		"score": map[string]any{"__op": "Increment", "amount": 5.0},
		"done":  true,
	})
	require.NoError(t, err)
	assert.False(t, updated.UpdatedAt.Before(objs[0].UpdatedAt))

	got, err := s.Get(ctx, "Game", objs[0].ID)
	require.NoError(t, err)
	_, hasTitle := got.Fields["title"]
	assert.False(t, hasTitle)
	assert.Equal(t, 15.0, got.Fields["score"])
	assert.Equal(t, true, got.Fields["done"])

	sc, err := s.Schema(ctx, "Game")
	require.NoError(t, err)
	assert.Equal(t, schema.TypeBoolean, sc.Fields["done"].Type)
}

// hookedStorage вызывает onRead один раз при чтении объекта
type hookedStorage struct {
	*memory.Storage
	once   sync.Once
	onRead func()
}

func (h *hookedStorage) Object(ctx context.Context, className, id string) (*object.Object, error) {
	obj, err := h.Storage.Object(ctx, className, id)
	if h.onRead != nil {
		h.once.Do(h.onRead)
	}
	return obj, err
}

func TestService_DeleteDuringUpdateStaysDeleted(t *testing.T) {
	repo := &hookedStorage{Storage: memory.New()}
	s := class.NewService(repo, slog.Default())
	ctx := context.Background()
	objs := seed(t, s, "Game", map[string]any{"title": "Chess"})
	id := objs[0].ID

	deleted := make(chan error, 1)
	repo.onRead = func() {
		go func() { deleted <- s.Delete(ctx, "Game", id) }()
		// даем удалению шанс вклиниться между чтением и записью
		time.Sleep(50 * time.Millisecond)
	}

	_, err := s.Update(ctx, "Game", id, map[string]any{"title": "Go"})
	require.NoError(t, err)
	require.NoError(t, <-deleted)

	_, err = s.Get(ctx, "Game", id)
	assert.ErrorIs(t, err, class.ErrObjectNotFound)

	res, err := s.Find(ctx, "Game", class.Query{Limit: class.DefaultLimit, Count: true})
	require.NoError(t, err)
	require.NotNil(t, res.Count)
	assert.Zero(t, *res.Count)
}

func TestService_UpdateMissing(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	_, err := s.Update(ctx, "Nope", "x", map[string]any{"a": 1.0})
	assert.ErrorIs(t, err, class.ErrObjectNotFound)

	seed(t, s, "Game", map[string]any{"a": 1.0})
	_, err = s.Update(ctx, "Game", "missing", map[string]any{"a": 2.0})
	assert.ErrorIs(t, err, class.ErrObjectNotFound)
	assert.Equal(t, "Object not found.", err.Error())
}

func TestService_Find(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	seed(t, s, "Game",
		map[string]any{"title": "a", "score": 5.0},
		map[string]any{"title": "b", "score": 15.0},
		map[string]any{"title": "c", "score": 25.0},
		map[string]any{"title": "d", "score": 35.0},
	)

	res, err := s.Find(ctx, "Game", class.Query{
		Where: map[string]any{"score": map[string]any{"$gt": 10.0}},
		Order: []string{"-score"},
		Limit: 2,
		Skip:  1,
		Count: true,
		Keys:  []string{"title"},
	})
	require.NoError(t, err)
	require.NotNil(t, res.Count)
	assert.Equal(t, 3, *res.Count)
	require.Len(t, res.Results, 2)
	assert.Equal(t, map[string]any{"title": "c"}, res.Results[0].Fields)
	assert.Equal(t, map[string]any{"title": "b"}, res.Results[1].Fields)
}

func TestService_FindCountOnly(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	seed(t, s, "Game", map[string]any{"a": 1.0}, map[string]any{"a": 2.0})

	res, err := s.Find(ctx, "Game", class.Query{Limit: 0, Count: true})
	require.NoError(t, err)
	assert.Empty(t, res.Results)
	assert.Equal(t, 2, *res.Count)

	res, err = s.Find(ctx, "Unknown", class.Query{Limit: class.DefaultLimit})
	require.NoError(t, err)
	assert.Empty(t, res.Results)
	assert.Nil(t, res.Count)

	_, err = s.Find(ctx, "Game", class.Query{Limit: -1})
	assert.ErrorIs(t, err, class.ErrInvalidQuery)
}

func TestService_DropClass(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	objs := seed(t, s, "Game", map[string]any{"a": 1.0}, map[string]any{"a": 2.0})

	err := s.DropClass(ctx, "Game")
	require.ErrorIs(t, err, class.ErrClassNotEmpty)
	assert.Equal(t, "Class Game is not empty, contains 2 objects, cannot drop schema.", err.Error())

	for _, o := range objs {
		require.NoError(t, s.Delete(ctx, "Game", o.ID))
	}
	require.NoError(t, s.DropClass(ctx, "Game"))

	_, err = s.Schema(ctx, "Game")
	assert.ErrorIs(t, err, class.ErrClassNotFound)

	// повторное удаление не ошибка
	assert.NoError(t, s.DropClass(ctx, "Game"))
}

func TestService_CreateClass(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	in := &schema.Schema{ClassName: "Team", Fields: map[string]schema.Field{
		"name":  {Type: schema.TypeString},
		"owner": {Type: schema.TypePointer, TargetClass: "_User"},
	}}
	sc, err := s.CreateClass(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, []string{"objectId", "createdAt", "updatedAt", "ACL", "name", "owner"}, sc.FieldNames())

	_, err = s.CreateClass(ctx, in)
	assert.ErrorIs(t, err, class.ErrClassExists)

	_, err = s.CreateClass(ctx, &schema.Schema{ClassName: "Bad", Fields: map[string]schema.Field{"x": {Type: "Money"}}})
	assert.ErrorIs(t, err, class.ErrIncorrectType)

	list, err := s.Schemas(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Team", list[0].ClassName)
}

func TestService_Files(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	f, err := s.UploadFile(ctx, "avatar.png", "image/png", []byte{1, 2, 3})
	require.NoError(t, err)
	assert.Contains(t, f.Name, "_avatar.png")

	got, err := s.File(ctx, f.Name)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got.Data)
	assert.Equal(t, "image/png", got.ContentType)

	_, err = s.UploadFile(ctx, "../etc/passwd", "", nil)
	assert.ErrorIs(t, err, class.ErrInvalidFileName)

	_, err = s.File(ctx, "nope")
	assert.ErrorIs(t, err, class.ErrFileNotFound)
}
