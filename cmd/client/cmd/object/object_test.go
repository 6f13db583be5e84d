package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parsedash/internal/domain/object"
	"parsedash/internal/domain/query"
	"parsedash/internal/domain/schema"
)

func gameSchema() *schema.Schema {
	s := schema.New("Game")
	s.Fields["title"] = schema.Field{Type: schema.TypeString}
	s.Fields["score"] = schema.Field{Type: schema.TypeNumber}
	s.Fields["done"] = schema.Field{Type: schema.TypeBoolean}
	s.Fields["owner"] = schema.Field{Type: schema.TypePointer, TargetClass: "_User"}
	return s
}

func TestAddConditions(t *testing.T) {
	b := query.NewBuilder(gameSchema())

	require.NoError(t, addConditions(b, []string{"score>=10", "done=TRUE", "title!=Chess"}))
	assert.Equal(t, `{"score":{"$gte":10},"done":true,"title":{"$ne":"Chess"}}`, b.WhereJSON())
}

func TestAddConditions_Errors(t *testing.T) {
	tests := []struct {
		expr    string
		wantErr error
	}{
		{"score", query.ErrBadCondition},
		{"nickname=x", query.ErrUnknownField},
		{"score>ten", query.ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			err := addConditions(query.NewBuilder(gameSchema()), []string{tt.expr})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseAssignments(t *testing.T) {
	fields, err := parseAssignments(gameSchema(), []string{"score=12.5", "done=false", "owner=u1", "title=a=b"})
	require.NoError(t, err)

	assert.Equal(t, 12.5, fields["score"])
	assert.Equal(t, false, fields["done"])
	assert.Equal(t, "a=b", fields["title"])

	p, ok := object.AsPointer(fields["owner"])
	require.True(t, ok)
	assert.Equal(t, "_User", p.ClassName)
	assert.Equal(t, "u1", p.ObjectID)
}

func TestParseAssignments_Errors(t *testing.T) {
	_, err := parseAssignments(gameSchema(), []string{"score"})
	assert.Error(t, err)

	_, err = parseAssignments(gameSchema(), []string{"missing=1"})
	assert.ErrorIs(t, err, query.ErrUnknownField)

	_, err = parseAssignments(gameSchema(), []string{"score=abc"})
	assert.Error(t, err)
}

func TestColumns(t *testing.T) {
	cols := columns(gameSchema(), 4)
	assert.Equal(t, []string{"objectId", "updatedAt", "done", "owner"}, cols)
}
