package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/rentdesk/rentdesk/pkg/cli/internal/output"
	"github.com/rentdesk/rentdesk/pkg/entity"
)

// column is one printed attribute of an entity.
type column[T any] struct {
	name  string
	value func(*T) string
}

var (
	titleCase = cases.Title(language.English)
	upperCase = cases.Upper(language.English)
)

// printEntity prints e as JSON or as an aligned "Label: value" listing.
func printEntity[T any](w io.Writer, asJSON bool, e *T, cols []column[T]) error {
	if asJSON {
		return output.JSON(w, e)
	}
	tw := output.Table(w)
	for _, c := range cols {
		_, _ = fmt.Fprintf(tw, "%s:\t%s\n", titleCase.String(c.name), orDash(c.value(e)))
	}
	return tw.Flush()
}

// printTable prints items as a table with upper-cased headers.
func printTable[T any](w io.Writer, items []*T, cols []column[T]) error {
	tw := output.Table(w)
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = upperCase.String(c.name)
	}
	_, _ = fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, item := range items {
		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = orDash(c.value(item))
		}
		_, _ = fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

// toGeneric converts v into plain maps and slices via its JSON form.
func toGeneric(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return oj.ParseString(string(data))
}

// printJSONPath prints the values the JSONPath expression selects from v.
func printJSONPath(w io.Writer, v any, path string) error {
	x, err := jp.ParseString(path)
	if err != nil {
		return fmt.Errorf("invalid --jsonpath %q: %w", path, err)
	}
	data, err := toGeneric(v)
	if err != nil {
		return err
	}
	results := x.Get(data)
	if results == nil {
		results = []any{}
	}
	return output.JSON(w, results)
}

// whereFilter keeps the entities for which a boolean expression holds.
// Fields are addressed by their JSON names, e.g. `returnDate == nil && patron.id == 5`.
type whereFilter struct {
	source  string
	program *vm.Program
}

func compileWhere(source string) (*whereFilter, error) {
	if strings.TrimSpace(source) == "" {
		return nil, nil
	}
	program, err := expr.Compile(source, expr.AsBool(), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("invalid --where expression: %w", err)
	}
	return &whereFilter{source: source, program: program}, nil
}

func filterWhere[T any](f *whereFilter, items []*T) ([]*T, error) {
	if f == nil {
		return items, nil
	}
	kept := make([]*T, 0, len(items))
	for _, item := range items {
		env, err := toGeneric(item)
		if err != nil {
			return nil, err
		}
		fields, _ := env.(map[string]any)
		if fields == nil {
			fields = map[string]any{}
		}
		ok, err := expr.Run(f.program, fields)
		if err != nil {
			return nil, fmt.Errorf("eval %q: %w", f.source, err)
		}
		if matched, _ := ok.(bool); matched {
			kept = append(kept, item)
		}
	}
	return kept, nil
}

func formatID(id *int64) string {
	if id == nil {
		return ""
	}
	return strconv.FormatInt(*id, 10)
}

func formatDate(d *entity.Date) string {
	if d == nil || d.IsZero() {
		return ""
	}
	return d.String()
}

func bookLabel(b *entity.Book) string {
	if b == nil {
		return ""
	}
	if b.Title == "" {
		return "#" + formatID(b.ID)
	}
	return fmt.Sprintf("%s (#%s)", b.Title, formatID(b.ID))
}

func patronLabel(p *entity.Patron) string {
	if p == nil {
		return ""
	}
	if p.Name == "" {
		return "#" + formatID(p.ID)
	}
	return fmt.Sprintf("%s (#%s)", p.Name, formatID(p.ID))
}

func inventoryLabel(i *entity.Inventory) string {
	if i == nil {
		return ""
	}
	if i.Book == nil {
		return "#" + formatID(i.ID)
	}
	return fmt.Sprintf("#%s: %s", formatID(i.ID), bookLabel(i.Book))
}
