package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parsedash/internal/domain/object"
)

func init() {
	color.NoColor = true
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"", "table", "json", "yaml"} {
		_, err := ParseFormat(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestFromContext_Missing(t *testing.T) {
	_, err := FromContext(context.Background())
	assert.ErrorIs(t, err, ErrNoEnv)
}

func TestFieldLines(t *testing.T) {
	got := FieldLines(map[string]any{
		"score": float64(10),
		"name":  "Ann",
		"team":  object.Pointer{ClassName: "Team", ObjectID: "t1"}.JSON(),
	})
	assert.Equal(t, "name: Ann\nscore: 10\nteam: Team:t1\n", got)
}

func TestLineDiff(t *testing.T) {
	before := "name: Ann\nscore: 10\n"
	after := "name: Ann\nscore: 12\n"

	assert.Equal(t, []string{"  name: Ann", "- score: 10", "+ score: 12"}, LineDiff(before, after))
}

func TestPrintYAML_Object(t *testing.T) {
	obj := &object.Object{ID: "a1", Fields: map[string]any{"name": "Ann", "score": object.Undefined}}

	var buf bytes.Buffer
	require.NoError(t, PrintYAML(&buf, obj))
	assert.Equal(t, "name: Ann\nobjectId: a1\n", buf.String())
}

func TestPrintJSON_NoHTMLEscape(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintJSON(&buf, map[string]string{"q": "a<b"}))
	assert.Equal(t, "{\n  \"q\": \"a<b\"\n}\n", buf.String())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcd...", Truncate("abcdefghij", 7))
}
