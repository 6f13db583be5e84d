package object

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parsedash/internal/domain/schema"
)

func testSchema() *schema.Schema {
	s := schema.New("Player")
	s.Fields["name"] = schema.Field{Type: schema.TypeString}
	s.Fields["score"] = schema.Field{Type: schema.TypeNumber}
	s.Fields["team"] = schema.Field{Type: schema.TypePointer, TargetClass: "Team"}
	s.Fields["avatar"] = schema.Field{Type: schema.TypeFile}
	return s
}

func TestFromPayload_FillsUndefinedFromSchema(t *testing.T) {
	raw := map[string]any{
		"objectId":  "abc123",
		"createdAt": "2024-03-01T10:00:00.000Z",
		"updatedAt": "2024-03-02T11:30:00.000Z",
		"name":      "Ann",
		"team":      map[string]any{"__type": "Pointer", "className": "Team", "objectId": "t1"},
	}

	obj, err := FromPayload("Player", raw, testSchema())
	require.NoError(t, err)

	assert.Equal(t, "abc123", obj.ID)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), obj.CreatedAt)
	assert.Equal(t, "Ann", obj.Fields["name"])
	assert.True(t, obj.IsUndefined("score"))
	assert.True(t, obj.IsUndefined("avatar"))
	assert.True(t, obj.IsUndefined("ACL"))
	assert.False(t, obj.IsUndefined("name"))
	_, hasID := obj.Fields["objectId"]
	assert.False(t, hasID)

	p, ok := obj.Pointer("team")
	require.True(t, ok)
	assert.Equal(t, Pointer{ClassName: "Team", ObjectID: "t1"}, p)
}

func TestFromPayload_KeepsFieldsMissingFromSchema(t *testing.T) {
	raw := map[string]any{"objectId": "x", "extra": 1.5}

	obj, err := FromPayload("Player", raw, nil)
	require.NoError(t, err)
	assert.Equal(t, 1.5, obj.Fields["extra"])
}

func TestFromPayload_BadTimestamp(t *testing.T) {
	_, err := FromPayload("Player", map[string]any{"createdAt": "yesterday"}, nil)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestObject_MarshalJSONSkipsUndefined(t *testing.T) {
	obj, err := FromPayload("Player", map[string]any{"objectId": "abc", "name": "Ann"}, testSchema())
	require.NoError(t, err)

	data, err := json.Marshal(obj)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, map[string]any{"objectId": "abc", "name": "Ann"}, out)
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		name    string
		field   schema.Field
		raw     string
		want    any
		wantErr bool
	}{
		{name: "string", field: schema.Field{Type: schema.TypeString}, raw: " Ann ", want: " Ann "},
		{name: "number", field: schema.Field{Type: schema.TypeNumber}, raw: "42.5", want: 42.5},
		{name: "bad number", field: schema.Field{Type: schema.TypeNumber}, raw: "four", wantErr: true},
		{name: "boolean upper", field: schema.Field{Type: schema.TypeBoolean}, raw: " TRUE ", want: true},
		{name: "bad boolean", field: schema.Field{Type: schema.TypeBoolean}, raw: "yes please", wantErr: true},
		{
			name:  "date",
			field: schema.Field{Type: schema.TypeDate},
			raw:   "2024-01-02T03:04:05Z",
			want:  map[string]any{"__type": "Date", "iso": "2024-01-02T03:04:05.000Z"},
		},
		{
			name:  "pointer by id",
			field: schema.Field{Type: schema.TypePointer, TargetClass: "Team"},
			raw:   "t1",
			want:  map[string]any{"__type": "Pointer", "className": "Team", "objectId": "t1"},
		},
		{name: "pointer without class", field: schema.Field{Type: schema.TypePointer}, raw: "t1", wantErr: true},
		{name: "array", field: schema.Field{Type: schema.TypeArray}, raw: `[1,"a"]`, want: []any{1.0, "a"}},
		{name: "bad object", field: schema.Field{Type: schema.TypeObject}, raw: `{nope`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseValue(tt.field, tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidValue)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "undefined", Format(Undefined))
	assert.Equal(t, "null", Format(nil))
	assert.Equal(t, "3", Format(3.0))
	assert.Equal(t, "false", Format(false))
	assert.Equal(t, "Team:t1", Format(Pointer{ClassName: "Team", ObjectID: "t1"}.JSON()))
	assert.Equal(t, "a.png", Format(File{Name: "a.png", URL: "http://x/a.png"}.JSON()))
	assert.Equal(t, `["a"]`, Format([]any{"a"}))
}
