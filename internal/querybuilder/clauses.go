package querybuilder

import (
	"strconv"
	"strings"
)

// clauses accumulates rendered SQL fragments, skipping unset values.
type clauses []string

func (c *clauses) add(fragment string) {
	if fragment != "" {
		*c = append(*c, fragment)
	}
}

func (c *clauses) addString(name string, v *string) {
	if v != nil && *v != "" {
		*c = append(*c, name+" = "+QuoteString(*v))
	}
}

func (c *clauses) addComment(v *string) {
	if v != nil && *v != "" {
		*c = append(*c, "COMMENT = "+QuoteComment(*v))
	}
}

func (c *clauses) addBool(name string, v *bool) {
	if v != nil {
		*c = append(*c, name+" = "+FormatBool(*v))
	}
}

// addFlag renders NAME = TRUE only when v is true.
func (c *clauses) addFlag(name string, v bool) {
	if v {
		*c = append(*c, name+" = TRUE")
	}
}

func (c *clauses) addInt(name string, v *int) {
	if v != nil {
		*c = append(*c, name+" = "+strconv.Itoa(*v))
	}
}

func (c *clauses) addEnum(name string, v string) {
	if v != "" {
		*c = append(*c, name+" = "+v)
	}
}

func (c *clauses) addIdent(name string, v *string) {
	if v != nil && *v != "" {
		*c = append(*c, name+" = "+*v)
	}
}

func (c *clauses) addList(name string, values []string) {
	if len(values) > 0 {
		*c = append(*c, name+" = "+FormatList(values))
	}
}

func (c clauses) join(sep string) string {
	return strings.Join(c, sep)
}
