package query

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parsedash/internal/domain/schema"
)

func playerSchema() *schema.Schema {
	s := schema.New("Player")
	s.Fields["name"] = schema.Field{Type: schema.TypeString}
	s.Fields["score"] = schema.Field{Type: schema.TypeNumber}
	s.Fields["active"] = schema.Field{Type: schema.TypeBoolean}
	s.Fields["tags"] = schema.Field{Type: schema.TypeArray}
	s.Fields["team"] = schema.Field{Type: schema.TypePointer, TargetClass: "Team"}
	return s
}

func TestRender_Operators(t *testing.T) {
	tests := []struct {
		op   Operator
		want string
	}{
		{Equal, `"score":5`},
		{NotEqual, `"score":{"$ne":5}`},
		{LessThan, `"score":{"$lt":5}`},
		{LessThanOrEqual, `"score":{"$lte":5}`},
		{GreaterThan, `"score":{"$gt":5}`},
		{GreaterThanOrEqual, `"score":{"$gte":5}`},
	}

	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			got := Render(Constraint{Field: "score", Op: tt.op, Value: "5", Type: schema.TypeNumber})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRender_ValuesByType(t *testing.T) {
	tests := []struct {
		name string
		c    Constraint
		want string
	}{
		{
			name: "string is quoted",
			c:    Constraint{Field: "name", Op: Equal, Value: "Ann", Type: schema.TypeString},
			want: `"name":"Ann"`,
		},
		{
			name: "string with quote is escaped",
			c:    Constraint{Field: "name", Op: NotEqual, Value: `say "hi"`, Type: schema.TypeString},
			want: `"name":{"$ne":"say \"hi\""}`,
		},
		{
			name: "boolean lower-cased and trimmed",
			c:    Constraint{Field: "active", Op: Equal, Value: " TRUE ", Type: schema.TypeBoolean},
			want: `"active":true`,
		},
		{
			name: "array literal",
			c:    Constraint{Field: "tags", Op: Equal, Value: `["a"]`, Type: schema.TypeArray},
			want: `"tags":["a"]`,
		},
		{
			name: "missing type renders empty",
			c:    Constraint{Field: "name", Op: Equal, Value: "Ann"},
			want: "",
		},
		{
			name: "missing value renders empty",
			c:    Constraint{Field: "name", Op: Equal, Type: schema.TypeString},
			want: "",
		},
		{
			name: "missing field renders empty",
			c:    Constraint{Op: Equal, Value: "Ann", Type: schema.TypeString},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.c))
		})
	}
}

func TestBuilder_EmptyQuery(t *testing.T) {
	assert.Equal(t, "", NewBuilder(playerSchema()).Encode())
}

func TestBuilder_LimitOnly(t *testing.T) {
	b := NewBuilder(playerSchema())
	require.NoError(t, b.Limit(10))

	assert.Equal(t, "limit=10", b.Encode())
}

func TestBuilder_SkipOnlyHasNoLeadingAmpersand(t *testing.T) {
	b := NewBuilder(playerSchema())
	require.NoError(t, b.Skip(20))

	assert.Equal(t, "skip=20", b.Encode())
}

func TestBuilder_FullQuery(t *testing.T) {
	b := NewBuilder(playerSchema())
	require.NoError(t, b.Limit(5))
	require.NoError(t, b.OrderBy("updatedAt", Descending))
	require.NoError(t, b.Where("name", Equal, "Ann"))

	want := `limit=5&order=-updatedAt&where={"name":"Ann"}`
	if diff := cmp.Diff(want, b.Encode()); diff != "" {
		t.Errorf("Encode() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilder_AllPartsInFixedOrder(t *testing.T) {
	b := NewBuilder(playerSchema())
	// порядок вызовов не влияет на порядок частей
	require.NoError(t, b.Where("score", GreaterThanOrEqual, "10"))
	require.NoError(t, b.OrderBy("name", Ascending))
	require.NoError(t, b.Skip(40))
	require.NoError(t, b.Limit(20))
	require.NoError(t, b.Where("active", Equal, "False"))

	want := `limit=20&skip=40&order=name&where={"score":{"$gte":10},"active":false}`
	if diff := cmp.Diff(want, b.Encode()); diff != "" {
		t.Errorf("Encode() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilder_RepeatedFieldKeepsInsertionOrder(t *testing.T) {
	b := NewBuilder(playerSchema())
	require.NoError(t, b.Where("score", GreaterThan, "1"))
	require.NoError(t, b.Where("score", LessThan, "9"))

	assert.Equal(t, `where={"score":{"$gt":1},"score":{"$lt":9}}`, b.Encode())
	assert.Len(t, b.Constraints(), 2)
}

func TestBuilder_WhereRejectsInvalidConstraints(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		op      Operator
		value   string
		wantErr error
	}{
		{name: "empty field", field: "", op: Equal, value: "x", wantErr: ErrEmptyField},
		{name: "empty value", field: "name", op: Equal, value: "", wantErr: ErrEmptyValue},
		{name: "unknown field", field: "nickname", op: Equal, value: "x", wantErr: ErrUnknownField},
		{name: "bad boolean", field: "active", op: Equal, value: "yes", wantErr: ErrInvalidValue},
		{name: "bad number", field: "score", op: LessThan, value: "ten", wantErr: ErrInvalidValue},
		{name: "bad array literal", field: "tags", op: Equal, value: "[a", wantErr: ErrInvalidValue},
		{name: "bad operator", field: "name", op: Operator(42), value: "x", wantErr: ErrUnknownOperator},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder(playerSchema())
			err := b.Where(tt.field, tt.op, tt.value)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, b.Constraints())
			assert.Equal(t, "", b.Encode())
		})
	}
}

func TestBuilder_NormalizesDateAndPointer(t *testing.T) {
	b := NewBuilder(playerSchema())
	require.NoError(t, b.Where("createdAt", GreaterThan, "2024-01-01T00:00:00Z"))
	require.NoError(t, b.Where("team", Equal, "t1"))

	want := `{"createdAt":{"$gt":{"__type":"Date","iso":"2024-01-01T00:00:00.000Z"}},` +
		`"team":{"__type":"Pointer","className":"Team","objectId":"t1"}}`
	assert.Equal(t, want, b.WhereJSON())
}

func TestBuilder_OrderByUnknownField(t *testing.T) {
	b := NewBuilder(playerSchema())

	assert.ErrorIs(t, b.OrderBy("nickname", Ascending), ErrUnknownField)
	assert.Equal(t, "", b.Encode())
}

func TestBuilder_SystemFieldsWithoutSchema(t *testing.T) {
	b := NewBuilder(nil)
	require.NoError(t, b.Limit(100))
	require.NoError(t, b.OrderBy("objectId", Ascending))

	assert.Equal(t, "limit=100&order=objectId", b.Encode())
	assert.ErrorIs(t, b.Where("name", Equal, "Ann"), ErrUnknownField)
}

func TestBuilder_NegativeLimitAndSkip(t *testing.T) {
	b := NewBuilder(nil)

	assert.ErrorIs(t, b.Limit(-1), ErrNegative)
	assert.ErrorIs(t, b.Skip(-5), ErrNegative)
	assert.Equal(t, "", b.Encode())
}

func TestBuilder_Remove(t *testing.T) {
	b := NewBuilder(playerSchema())
	require.NoError(t, b.Where("name", Equal, "Ann"))
	require.NoError(t, b.Where("score", Equal, "3"))

	require.NoError(t, b.Remove(0))
	assert.Equal(t, `where={"score":3}`, b.Encode())

	require.NoError(t, b.Remove(0))
	assert.Equal(t, "", b.Encode())
	assert.Error(t, b.Remove(0))
}
