package class

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parsedash/internal/domain/object"
)

func player() *object.Object {
	return &object.Object{
		ID:        "p1",
		ClassName: "Player",
		CreatedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC),
		Fields: map[string]any{
			"name":  "Ann",
			"score": 42.0,
			"done":  true,
			"tags":  []any{"pro", "eu"},
			"team":  object.Pointer{ClassName: "Team", ObjectID: "t1"}.JSON(),
			"born":  object.DateValue(time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)),
		},
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name  string
		where map[string]any
		want  bool
	}{
		{name: "empty", where: nil, want: true},
		{name: "equal string", where: map[string]any{"name": "Ann"}, want: true},
		{name: "equal mismatch", where: map[string]any{"name": "Bob"}, want: false},
		{name: "missing field", where: map[string]any{"nick": "Ann"}, want: false},
		{name: "gte", where: map[string]any{"score": map[string]any{"$gte": 42.0}}, want: true},
		{name: "gt", where: map[string]any{"score": map[string]any{"$gt": 42.0}}, want: false},
		{name: "range", where: map[string]any{"score": map[string]any{"$gt": 10.0, "$lt": 50.0}}, want: true},
		{name: "ne", where: map[string]any{"done": map[string]any{"$ne": false}}, want: true},
		{name: "ne on missing", where: map[string]any{"nick": map[string]any{"$ne": "x"}}, want: true},
		{name: "array contains", where: map[string]any{"tags": "eu"}, want: true},
		{name: "in", where: map[string]any{"name": map[string]any{"$in": []any{"Bob", "Ann"}}}, want: true},
		{name: "nin", where: map[string]any{"name": map[string]any{"$nin": []any{"Ann"}}}, want: false},
		{name: "exists", where: map[string]any{"score": map[string]any{"$exists": true}}, want: true},
		{name: "not exists", where: map[string]any{"nick": map[string]any{"$exists": false}}, want: true},
		{name: "regex", where: map[string]any{"name": map[string]any{"$regex": "^a", "$options": "i"}}, want: true},
		{name: "pointer", where: map[string]any{"team": object.Pointer{ClassName: "Team", ObjectID: "t1"}.JSON()}, want: true},
		{name: "pointer other", where: map[string]any{"team": object.Pointer{ClassName: "Team", ObjectID: "t2"}.JSON()}, want: false},
		{
			name:  "date field",
			where: map[string]any{"born": map[string]any{"$lt": object.DateValue(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))}},
			want:  true,
		},
		{
			name:  "createdAt against date",
			where: map[string]any{"createdAt": map[string]any{"$gte": object.DateValue(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))}},
			want:  true,
		},
		{name: "objectId", where: map[string]any{"objectId": "p1"}, want: true},
		{name: "type mismatch never matches", where: map[string]any{"score": map[string]any{"$lt": "zzz"}}, want: false},
		{name: "all constraints", where: map[string]any{"name": "Ann", "score": 41.0}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Match(player(), tt.where)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatch_InvalidOperators(t *testing.T) {
	tests := []map[string]any{
		{"score": map[string]any{"$near": 1.0}},
		{"name": map[string]any{"$in": "Ann"}},
		{"name": map[string]any{"$exists": "yes"}},
		{"name": map[string]any{"$regex": "("}},
	}

	for _, where := range tests {
		_, err := Match(player(), where)
		assert.ErrorIs(t, err, ErrInvalidQuery)
	}
}

func TestSort(t *testing.T) {
	mk := func(id string, score any) *object.Object {
		fields := map[string]any{}
		if score != nil {
			fields["score"] = score
		}
		return &object.Object{ID: id, Fields: fields}
	}
	objs := []*object.Object{mk("a", 3.0), mk("b", nil), mk("c", 1.0), mk("d", 3.0)}

	Sort(objs, []string{"-score", "objectId"})

	ids := make([]string, 0, len(objs))
	for _, o := range objs {
		ids = append(ids, o.ID)
	}
	assert.Equal(t, []string{"a", "d", "c", "b"}, ids)
}

func TestParseOrder(t *testing.T) {
	assert.Equal(t, []string{"score", "-name"}, ParseOrder(" score , -name,,"))
	assert.Nil(t, ParseOrder(""))
}

func TestProject(t *testing.T) {
	p := Project(player(), []string{"name", "nick"})

	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, map[string]any{"name": "Ann"}, p.Fields)
}
