// Package render turns a tabular query result into the text shown in a
// notebook cell: tab-separated columns, newline-terminated rows, prefixed with
// the table marker unless the query asked for a plan.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"cougardb/cli/internal/jsonrpc"
)

// TableMarker tells the rendering surface to draw the following text as a grid.
const TableMarker = "%table "

// explainKeyword marks queries whose output is shown as plain text.
const explainKeyword = "explain "

// IsExplain reports whether query contains "EXPLAIN " in any case.
func IsExplain(query string) bool {
	return strings.Contains(strings.ToLower(query), explainKeyword)
}

// Render formats res for query.
func Render(query string, res *jsonrpc.Result) string {
	var b strings.Builder
	if !IsExplain(query) {
		b.WriteString(TableMarker)
	}
	b.WriteString(strings.Join(res.Columns, "\t"))
	b.WriteByte('\n')
	for _, row := range res.Series {
		for i, v := range row {
			if i > 0 {
				b.WriteByte('\t')
			}
			b.WriteString(Value(v))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Value returns the natural string form of a decoded JSON scalar. Nested
// arrays and objects come back as compact JSON.
func Value(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "true"
		}
		return "false"
	case []any, map[string]any:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	default:
		return fmt.Sprint(t)
	}
}
