package querybuilder

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
)

// Statement is implemented by every built entity that can be rendered to SQL.
type Statement interface {
	SQL() string
}

var stringEscaper = strings.NewReplacer(`\`, `\\`, `'`, `''`, `"`, `""`)

// EscapeString doubles backslashes, single quotes and double quotes so the value
// can be embedded in a single-quoted SQL literal.
func EscapeString(s string) string {
	return stringEscaper.Replace(s)
}

// QuoteString wraps the escaped value in single quotes.
func QuoteString(s string) string {
	return "'" + EscapeString(s) + "'"
}

// EscapeComment escapes single quotes with a backslash. Double quotes and
// backslashes are left untouched.
func EscapeComment(s string) string {
	return strings.ReplaceAll(s, "'", `\'`)
}

// QuoteComment wraps the comment-escaped value in single quotes.
func QuoteComment(s string) string {
	return "'" + EscapeComment(s) + "'"
}

func FormatBool(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

// FormatList renders values as a parenthesized list of quoted strings.
func FormatList(values []string) string {
	return "(" + strings.Join(lo.Map(values, func(v string, _ int) string {
		return QuoteString(v)
	}), ", ") + ")"
}

// FormatValue renders a scalar: nil as NULL, booleans as TRUE/FALSE, numbers as
// decimal text and anything else as a quoted string.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case bool:
		return FormatBool(val)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprint(val)
	case string:
		return QuoteString(val)
	default:
		return QuoteString(fmt.Sprint(val))
	}
}

// FormatMap renders m as ('key' = value, ...) with keys in sorted order.
func FormatMap(m map[string]any) string {
	keys := sortedKeys(m)
	return "(" + strings.Join(lo.Map(keys, func(k string, _ int) string {
		return QuoteString(k) + " = " + FormatValue(m[k])
	}), ", ") + ")"
}

func sortedKeys[V any](m map[string]V) []string {
	keys := lo.Keys(m)
	sort.Strings(keys)
	return keys
}

// formatParams renders KEY = 'value' pairs joined by sep, keys sorted.
func formatParams(m map[string]string, sep string) string {
	return strings.Join(lo.Map(sortedKeys(m), func(k string, _ int) string {
		return k + " = " + QuoteString(m[k])
	}), sep)
}

// formatTags renders the WITH TAG clause, or "" when there are no tags.
func formatTags(tags map[string]string) string {
	if len(tags) == 0 {
		return ""
	}
	return "WITH TAG (" + formatParams(tags, ", ") + ")"
}

// createClause renders CREATE [OR REPLACE] [kind] object [IF NOT EXISTS].
func createClause(mode CreateMode, kind string, object string) string {
	var sb strings.Builder
	sb.WriteString("CREATE ")
	if mode.OrReplace {
		sb.WriteString("OR REPLACE ")
	}
	if kind != "" {
		sb.WriteString(kind)
		sb.WriteString(" ")
	}
	sb.WriteString(object)
	if mode.IfNotExists && !mode.OrReplace {
		sb.WriteString(" IF NOT EXISTS")
	}
	return sb.String()
}

// Ptr returns a pointer to v. Useful for populating optional option fields.
func Ptr[T any](v T) *T {
	return &v
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
