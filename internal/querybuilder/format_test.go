package querybuilder

import (
	"strings"
	"testing"
)

func stringPtr(s string) *string {
	return &s
}

func TestQuoteString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "hello", want: "'hello'"},
		{name: "single quote", input: "O'Brien", want: "'O''Brien'"},
		{name: "double quote", input: `say "hi"`, want: `'say ""hi""'`},
		{name: "backslash", input: `C:\tmp`, want: `'C:\\tmp'`},
		{name: "all three", input: `'"\`, want: `'''""\\'`},
		{name: "empty", input: "", want: "''"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := QuoteString(tt.input); got != tt.want {
				t.Errorf("QuoteString() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQuoteString_DoublesEachSpecialCharacterOnce(t *testing.T) {
	inputs := []string{`a'b`, `"x"`, `\\`, `it's a "test" \ ok`, `''''`}
	for _, in := range inputs {
		quoted := QuoteString(in)
		inner := quoted[1 : len(quoted)-1]
		for _, ch := range []string{`'`, `"`, `\`} {
			if got, want := strings.Count(inner, ch), 2*strings.Count(in, ch); got != want {
				t.Errorf("QuoteString(%q): %q appears %d times, want %d", in, ch, got, want)
			}
		}
	}
}

func TestQuoteComment(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "nightly load", want: "'nightly load'"},
		{name: "single quote escaped with backslash", input: "it's", want: `'it\'s'`},
		{name: "double quote untouched", input: `a "b"`, want: `'a "b"'`},
		{name: "backslash untouched", input: `a\b`, want: `'a\b'`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := QuoteComment(tt.input); got != tt.want {
				t.Errorf("QuoteComment() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{name: "nil", input: nil, want: "NULL"},
		{name: "true", input: true, want: "TRUE"},
		{name: "false", input: false, want: "FALSE"},
		{name: "int", input: 42, want: "42"},
		{name: "int64", input: int64(-7), want: "-7"},
		{name: "float", input: 1.5, want: "1.5"},
		{name: "string", input: "x'y", want: "'x''y'"},
		{name: "stringer fallback", input: TableKindTransient, want: "'TRANSIENT'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatValue(tt.input); got != tt.want {
				t.Errorf("FormatValue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatList(t *testing.T) {
	if got, want := FormatList([]string{"NULL", "", "n/a"}), "('NULL', '', 'n/a')"; got != want {
		t.Errorf("FormatList() = %v, want %v", got, want)
	}
	if got, want := FormatList(nil), "()"; got != want {
		t.Errorf("FormatList(nil) = %v, want %v", got, want)
	}
}

func TestFormatMap(t *testing.T) {
	got := FormatMap(map[string]any{"b": 2, "a": "x", "c": true, "d": nil})
	want := "('a' = 'x', 'b' = 2, 'c' = TRUE, 'd' = NULL)"
	if got != want {
		t.Errorf("FormatMap() = %v, want %v", got, want)
	}
}

func TestCreateClause(t *testing.T) {
	tests := []struct {
		name string
		mode CreateMode
		kind string
		want string
	}{
		{name: "plain", want: "CREATE TABLE"},
		{name: "or replace", mode: CreateMode{OrReplace: true}, want: "CREATE OR REPLACE TABLE"},
		{name: "if not exists", mode: CreateMode{IfNotExists: true}, want: "CREATE TABLE IF NOT EXISTS"},
		{name: "or replace wins", mode: CreateMode{OrReplace: true, IfNotExists: true}, want: "CREATE OR REPLACE TABLE"},
		{name: "with kind", mode: CreateMode{IfNotExists: true}, kind: "TRANSIENT", want: "CREATE TRANSIENT TABLE IF NOT EXISTS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := createClause(tt.mode, tt.kind, "TABLE"); got != tt.want {
				t.Errorf("createClause() = %v, want %v", got, tt.want)
			}
		})
	}
}
