package querybuilder

import (
	"strings"
)

// FileFormatBuilder is an interface to build CREATE FILE FORMAT statements.
type FileFormatBuilder interface {
	WithCreateOrReplace() FileFormatBuilder
	WithCreateIfNotExists() FileFormatBuilder
	WithTemporary() FileFormatBuilder
	WithVolatile() FileFormatBuilder
	WithOptions(options FileFormatOptions) FileFormatBuilder
	WithComment(comment string) FileFormatBuilder
	Build() (*FileFormat, error)
}

// FileFormat is a named file format. Its statement and options are rendered
// once at Build time.
type FileFormat struct {
	name       string
	formatType string
	options    string
	sql        string
}

func (f *FileFormat) Name() string       { return f.name }
func (f *FileFormat) FormatType() string { return f.formatType }
func (f *FileFormat) OptionsSQL() string { return f.options }
func (f *FileFormat) SQL() string        { return f.sql }

type fileFormatBuilder struct {
	name      string
	mode      CreateMode
	temporary bool
	volatile  bool
	options   FileFormatOptions
	comment   *string
}

func NewFileFormat(name string) FileFormatBuilder {
	return &fileFormatBuilder{name: name}
}

func (b *fileFormatBuilder) WithCreateOrReplace() FileFormatBuilder {
	b.mode.OrReplace = true
	return b
}

func (b *fileFormatBuilder) WithCreateIfNotExists() FileFormatBuilder {
	b.mode.IfNotExists = true
	return b
}

func (b *fileFormatBuilder) WithTemporary() FileFormatBuilder {
	b.temporary = true
	return b
}

func (b *fileFormatBuilder) WithVolatile() FileFormatBuilder {
	b.volatile = true
	return b
}

func (b *fileFormatBuilder) WithOptions(options FileFormatOptions) FileFormatBuilder {
	b.options = options
	return b
}

func (b *fileFormatBuilder) WithComment(comment string) FileFormatBuilder {
	b.comment = &comment
	return b
}

func (b *fileFormatBuilder) Build() (*FileFormat, error) {
	if b.name == "" {
		return nil, missing("file format", "name")
	}
	if b.options == nil {
		return nil, missing("file format", "options")
	}

	kind := ""
	if b.temporary {
		kind = "TEMPORARY"
	} else if b.volatile {
		kind = "VOLATILE"
	}

	options := b.options.SQL()

	var sb strings.Builder
	sb.WriteString(createClause(b.mode, kind, "FILE FORMAT"))
	sb.WriteString(" ")
	sb.WriteString(b.name)
	sb.WriteString(" ")
	sb.WriteString(options)
	if b.comment != nil && *b.comment != "" {
		sb.WriteString(" COMMENT = ")
		sb.WriteString(QuoteComment(*b.comment))
	}

	return &FileFormat{
		name:       b.name,
		formatType: b.options.FormatType(),
		options:    options,
		sql:        sb.String(),
	}, nil
}

// FileFormatSpec references a file format from a stage or COPY INTO statement,
// either by name or by embedding the options inline. Inline options are
// rendered when the spec is created.
type FileFormatSpec struct {
	name   string
	inline string
}

// NamedFileFormat renders FORMAT_NAME = '<name>'.
func NamedFileFormat(name string) FileFormatSpec {
	return FileFormatSpec{name: name}
}

// InlineFileFormat renders the options of the given file format directly.
func InlineFileFormat(format *FileFormat) FileFormatSpec {
	return FileFormatSpec{inline: format.OptionsSQL()}
}

// InlineFileFormatOptions renders the given options directly.
func InlineFileFormatOptions(options FileFormatOptions) FileFormatSpec {
	if options == nil {
		return FileFormatSpec{}
	}
	return FileFormatSpec{inline: options.SQL()}
}

func (s FileFormatSpec) IsNamed() bool { return s.name != "" }

func (s FileFormatSpec) SQL() string {
	if s.name != "" {
		return "FORMAT_NAME = " + QuoteString(s.name)
	}
	return s.inline
}

// clause renders FILE_FORMAT = (...), or "" for an empty spec.
func (s *FileFormatSpec) clause() string {
	if s == nil {
		return ""
	}
	inner := s.SQL()
	if inner == "" {
		return ""
	}
	return "FILE_FORMAT = (" + inner + ")"
}
