package querybuilder

import (
	"strconv"
	"strings"

	"github.com/samber/lo"
)

type OnErrorKind int

const (
	onErrorUnset OnErrorKind = iota
	OnErrorContinue
	OnErrorSkipFile
	OnErrorSkipFileNum
	OnErrorSkipFilePercent
	OnErrorAbortStatement
)

// OnError is the ON_ERROR copy option. SkipFileNum and SkipFilePercent carry
// their threshold in N.
type OnError struct {
	Kind OnErrorKind
	N    int
}

var (
	Continue       = OnError{Kind: OnErrorContinue}
	SkipFile       = OnError{Kind: OnErrorSkipFile}
	AbortStatement = OnError{Kind: OnErrorAbortStatement}
)

// SkipFileNum skips a file once n errors were found in it.
func SkipFileNum(n int) OnError {
	return OnError{Kind: OnErrorSkipFileNum, N: n}
}

// SkipFilePercent skips a file once n percent of its rows failed.
func SkipFilePercent(n int) OnError {
	return OnError{Kind: OnErrorSkipFilePercent, N: n}
}

func (o OnError) IsSet() bool { return o.Kind != onErrorUnset }

func (o OnError) String() string {
	switch o.Kind {
	case OnErrorContinue:
		return "CONTINUE"
	case OnErrorSkipFile:
		return "SKIP_FILE"
	case OnErrorSkipFileNum:
		return "SKIP_FILE_" + strconv.Itoa(o.N)
	case OnErrorSkipFilePercent:
		// The percent form is only accepted as a string literal.
		return "'SKIP_FILE_" + strconv.Itoa(o.N) + "%'"
	case OnErrorAbortStatement:
		return "ABORT_STATEMENT"
	default:
		return ""
	}
}

type ValidationModeKind int

const (
	validationModeUnset ValidationModeKind = iota
	ValidationModeReturnErrors
	ValidationModeReturnAllErrors
	ValidationModeReturnRows
)

// ValidationMode is the VALIDATION_MODE of a COPY INTO. ReturnRows carries the
// row count in N.
type ValidationMode struct {
	Kind ValidationModeKind
	N    int
}

var (
	ReturnErrors    = ValidationMode{Kind: ValidationModeReturnErrors}
	ReturnAllErrors = ValidationMode{Kind: ValidationModeReturnAllErrors}
)

func ReturnRows(n int) ValidationMode {
	return ValidationMode{Kind: ValidationModeReturnRows, N: n}
}

func (v ValidationMode) IsSet() bool { return v.Kind != validationModeUnset }

func (v ValidationMode) String() string {
	switch v.Kind {
	case ValidationModeReturnErrors:
		return "RETURN_ERRORS"
	case ValidationModeReturnAllErrors:
		return "RETURN_ALL_ERRORS"
	case ValidationModeReturnRows:
		return "RETURN_" + strconv.Itoa(v.N) + "_ROWS"
	default:
		return ""
	}
}

// CopyLocation is the source or target of a COPY INTO: a table or a stage.
type CopyLocation struct {
	Name    string
	IsStage bool
}

func SourceTable(name string) CopyLocation { return CopyLocation{Name: name} }
func SourceStage(name string) CopyLocation { return CopyLocation{Name: name, IsStage: true} }
func TargetTable(name string) CopyLocation { return CopyLocation{Name: name} }
func TargetStage(name string) CopyLocation { return CopyLocation{Name: name, IsStage: true} }

func (l CopyLocation) SQL() string {
	if l.IsStage {
		return "@" + l.Name
	}
	return l.Name
}

// CopyOptions are the load flags of a COPY INTO statement. Unset fields are
// not rendered.
type CopyOptions struct {
	ReturnFailedOnly   bool
	OnError            OnError
	SizeLimit          *int
	Purge              bool
	MatchByColumnName  MatchByColumnName
	EnforceLength      bool
	TruncateColumns    bool
	Force              bool
	LoadUncertainFiles bool
	FileProcessor      *string
	IncludeMetadata    map[string]string
}

func (o CopyOptions) SQL() string {
	var c clauses
	c.addFlag("RETURN_FAILED_ONLY", o.ReturnFailedOnly)
	c.addEnum("ON_ERROR", o.OnError.String())
	c.addInt("SIZE_LIMIT", o.SizeLimit)
	c.addFlag("PURGE", o.Purge)
	c.addEnum("MATCH_BY_COLUMN_NAME", string(o.MatchByColumnName))
	c.addFlag("ENFORCE_LENGTH", o.EnforceLength)
	c.addFlag("TRUNCATECOLUMNS", o.TruncateColumns)
	c.addFlag("FORCE", o.Force)
	c.addFlag("LOAD_UNCERTAIN_FILES", o.LoadUncertainFiles)
	if o.FileProcessor != nil && *o.FileProcessor != "" {
		c.add("FILE_PROCESSOR = (" + *o.FileProcessor + ")")
	}
	if len(o.IncludeMetadata) > 0 {
		c.add("INCLUDE_METADATA = (" + strings.Join(lo.Map(sortedKeys(o.IncludeMetadata), func(k string, _ int) string {
			return k + " = " + o.IncludeMetadata[k]
		}), ", ") + ")")
	}
	return c.join(" ")
}

// CopyIntoBuilder is an interface to build COPY INTO statements.
type CopyIntoBuilder interface {
	WithTarget(target CopyLocation) CopyIntoBuilder
	WithSource(source CopyLocation) CopyIntoBuilder
	WithPattern(pattern string) CopyIntoBuilder
	WithFileFormat(spec FileFormatSpec) CopyIntoBuilder
	WithFiles(files ...string) CopyIntoBuilder
	WithValidationMode(mode ValidationMode) CopyIntoBuilder
	WithOptions(options CopyOptions) CopyIntoBuilder
	Build() (*CopyInto, error)
}

type CopyInto struct {
	target         CopyLocation
	source         CopyLocation
	pattern        *string
	fileFormat     *FileFormatSpec
	files          []string
	validationMode ValidationMode
	options        CopyOptions
}

func (c *CopyInto) Target() CopyLocation { return c.target }
func (c *CopyInto) Source() CopyLocation { return c.source }

func (c *CopyInto) SQL() string {
	cl := clauses{"COPY INTO " + c.target.SQL() + " FROM " + c.source.SQL()}
	cl.addString("PATTERN", c.pattern)
	cl.add(c.fileFormat.clause())
	cl.addList("FILES", c.files)
	cl.addEnum("VALIDATION_MODE", c.validationMode.String())
	cl.add(c.options.SQL())
	return cl.join(" ")
}

type copyIntoBuilder struct {
	copy CopyInto
}

func NewCopyInto() CopyIntoBuilder {
	return &copyIntoBuilder{}
}

func (b *copyIntoBuilder) WithTarget(target CopyLocation) CopyIntoBuilder {
	b.copy.target = target
	return b
}

func (b *copyIntoBuilder) WithSource(source CopyLocation) CopyIntoBuilder {
	b.copy.source = source
	return b
}

func (b *copyIntoBuilder) WithPattern(pattern string) CopyIntoBuilder {
	b.copy.pattern = &pattern
	return b
}

func (b *copyIntoBuilder) WithFileFormat(spec FileFormatSpec) CopyIntoBuilder {
	b.copy.fileFormat = &spec
	return b
}

func (b *copyIntoBuilder) WithFiles(files ...string) CopyIntoBuilder {
	b.copy.files = append([]string(nil), files...)
	return b
}

func (b *copyIntoBuilder) WithValidationMode(mode ValidationMode) CopyIntoBuilder {
	b.copy.validationMode = mode
	return b
}

func (b *copyIntoBuilder) WithOptions(options CopyOptions) CopyIntoBuilder {
	options.SizeLimit = clonePtr(options.SizeLimit)
	options.FileProcessor = clonePtr(options.FileProcessor)
	options.IncludeMetadata = copyTags(options.IncludeMetadata)
	b.copy.options = options
	return b
}

func (b *copyIntoBuilder) Build() (*CopyInto, error) {
	if b.copy.target.Name == "" {
		return nil, missing("copy into", "target")
	}
	if b.copy.source.Name == "" {
		return nil, missing("copy into", "source")
	}
	c := b.copy
	return &c, nil
}
