package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
	"gopkg.in/yaml.v3"

	"parsedash/internal/domain/object"
)

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	failColor = color.New(color.FgRed, color.Bold)
	addColor  = color.New(color.FgGreen)
	delColor  = color.New(color.FgRed)
	headColor = color.New(color.Bold)
)

// Print выводит значение в структурированном формате
func (e *Env) Print(v any) error {
	switch e.Format {
	case FormatYAML:
		return PrintYAML(e.Out, v)
	default:
		return PrintJSON(e.Out, v)
	}
}

// Structured сообщает, что вывод нужен в json или yaml
func (e *Env) Structured() bool {
	return e.Format == FormatJSON || e.Format == FormatYAML
}

func (e *Env) Success(format string, args ...any) {
	okColor.Fprintf(e.Out, "✓ "+format+"\n", args...)
}

func (e *Env) Warn(format string, args ...any) {
	warnColor.Fprintf(e.Err, "⚠️  "+format+"\n", args...)
}

func PrintJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func PrintYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toYAMLValue(v)); err != nil {
		return err
	}
	return enc.Close()
}

// toYAMLValue приводит объекты к форме ответа сервера
func toYAMLValue(v any) any {
	switch t := v.(type) {
	case *object.Object:
		return t.Map()
	case []*object.Object:
		out := make([]map[string]any, 0, len(t))
		for _, obj := range t {
			out = append(out, obj.Map())
		}
		return out
	}
	return v
}

// PrintError выводит ошибку в stderr
func PrintError(w io.Writer, err error) {
	failColor.Fprintf(w, "Ошибка: %v\n", err)
}

func NewTable(w io.Writer, headers ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	headColor.Fprintln(tw, strings.Join(headers, "\t")+"\t")
	return tw
}

func Truncate(s string, length int) string {
	r := []rune(s)
	if len(r) <= length {
		return s
	}
	return string(r[:length-3]) + "..."
}

// FieldLines - построчное представление полей для сравнения
func FieldLines(fields map[string]any) string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "%s: %s\n", name, object.Format(fields[name]))
	}
	return b.String()
}

// LineDiff строит построчный diff: "-" для удаленных строк, "+" для новых
func LineDiff(before, after string) []string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out []string
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out = append(out, prefix+strings.TrimSuffix(line, "\n"))
		}
	}
	return out
}

// PrintDiff выводит LineDiff с подсветкой
func PrintDiff(w io.Writer, before, after string) {
	for _, line := range LineDiff(before, after) {
		switch {
		case strings.HasPrefix(line, "+ "):
			addColor.Fprintln(w, line)
		case strings.HasPrefix(line, "- "):
			delColor.Fprintln(w, line)
		default:
			fmt.Fprintln(w, line)
		}
	}
}
