package querybuilder

// FileFormatOptions is one of CSVOptions, JSONOptions, AvroOptions,
// ParquetOptions, ORCOptions or XMLOptions. SQL always starts with TYPE = <format>.
type FileFormatOptions interface {
	Statement
	FormatType() string
	isFileFormatOptions()
}

type CSVOptions struct {
	Compression                Compression  `yaml:"compression"`
	RecordDelimiter            *string      `yaml:"record_delimiter"`
	FieldDelimiter             *string      `yaml:"field_delimiter"`
	FileExtension              *string      `yaml:"file_extension"`
	ParseHeader                *bool        `yaml:"parse_header"`
	SkipHeader                 *int         `yaml:"skip_header"`
	SkipBlankLines             *bool        `yaml:"skip_blank_lines"`
	DateFormat                 *string      `yaml:"date_format"`
	TimeFormat                 *string      `yaml:"time_format"`
	TimestampFormat            *string      `yaml:"timestamp_format"`
	BinaryFormat               BinaryFormat `yaml:"binary_format"`
	Escape                     *string      `yaml:"escape"`
	EscapeUnenclosedField      *string      `yaml:"escape_unenclosed_field"`
	TrimSpace                  *bool        `yaml:"trim_space"`
	FieldOptionallyEnclosedBy  *string      `yaml:"field_optionally_enclosed_by"`
	NullIf                     []string     `yaml:"null_if"`
	ErrorOnColumnCountMismatch *bool        `yaml:"error_on_column_count_mismatch"`
	ReplaceInvalidCharacters   *bool        `yaml:"replace_invalid_characters"`
	EmptyFieldAsNull           *bool        `yaml:"empty_field_as_null"`
	SkipByteOrderMark          *bool        `yaml:"skip_byte_order_mark"`
	Encoding                   *string      `yaml:"encoding"`
}

func (o *CSVOptions) FormatType() string { return "CSV" }
func (o *CSVOptions) isFileFormatOptions() {}

func (o *CSVOptions) SQL() string {
	c := clauses{"TYPE = CSV"}
	c.addEnum("COMPRESSION", string(o.Compression))
	c.addString("RECORD_DELIMITER", o.RecordDelimiter)
	c.addString("FIELD_DELIMITER", o.FieldDelimiter)
	c.addString("FILE_EXTENSION", o.FileExtension)
	c.addBool("PARSE_HEADER", o.ParseHeader)
	c.addInt("SKIP_HEADER", o.SkipHeader)
	c.addBool("SKIP_BLANK_LINES", o.SkipBlankLines)
	c.addString("DATE_FORMAT", o.DateFormat)
	c.addString("TIME_FORMAT", o.TimeFormat)
	c.addString("TIMESTAMP_FORMAT", o.TimestampFormat)
	c.addEnum("BINARY_FORMAT", string(o.BinaryFormat))
	c.addString("ESCAPE", o.Escape)
	c.addString("ESCAPE_UNENCLOSED_FIELD", o.EscapeUnenclosedField)
	c.addBool("TRIM_SPACE", o.TrimSpace)
	c.addString("FIELD_OPTIONALLY_ENCLOSED_BY", o.FieldOptionallyEnclosedBy)
	c.addList("NULL_IF", o.NullIf)
	c.addBool("ERROR_ON_COLUMN_COUNT_MISMATCH", o.ErrorOnColumnCountMismatch)
	c.addBool("REPLACE_INVALID_CHARACTERS", o.ReplaceInvalidCharacters)
	c.addBool("EMPTY_FIELD_AS_NULL", o.EmptyFieldAsNull)
	c.addBool("SKIP_BYTE_ORDER_MARK", o.SkipByteOrderMark)
	c.addString("ENCODING", o.Encoding)
	return c.join(" ")
}

type JSONOptions struct {
	Compression              Compression  `yaml:"compression"`
	DateFormat               *string      `yaml:"date_format"`
	TimeFormat               *string      `yaml:"time_format"`
	TimestampFormat          *string      `yaml:"timestamp_format"`
	BinaryFormat             BinaryFormat `yaml:"binary_format"`
	TrimSpace                *bool        `yaml:"trim_space"`
	EnableOctal              *bool        `yaml:"enable_octal"`
	AllowDuplicate           *bool        `yaml:"allow_duplicate"`
	StripOuterArray          *bool        `yaml:"strip_outer_array"`
	StripNullValues          *bool        `yaml:"strip_null_values"`
	ReplaceInvalidCharacters *bool        `yaml:"replace_invalid_characters"`
	IgnoreUTF8Errors         *bool        `yaml:"ignore_utf8_errors"`
	SkipByteOrderMark        *bool        `yaml:"skip_byte_order_mark"`
	FileExtension            *string      `yaml:"file_extension"`
	NullIf                   []string     `yaml:"null_if"`
}

func (o *JSONOptions) FormatType() string { return "JSON" }
func (o *JSONOptions) isFileFormatOptions() {}

func (o *JSONOptions) SQL() string {
	c := clauses{"TYPE = JSON"}
	c.addEnum("COMPRESSION", string(o.Compression))
	c.addString("DATE_FORMAT", o.DateFormat)
	c.addString("TIME_FORMAT", o.TimeFormat)
	c.addString("TIMESTAMP_FORMAT", o.TimestampFormat)
	c.addEnum("BINARY_FORMAT", string(o.BinaryFormat))
	c.addBool("TRIM_SPACE", o.TrimSpace)
	c.addBool("ENABLE_OCTAL", o.EnableOctal)
	c.addBool("ALLOW_DUPLICATE", o.AllowDuplicate)
	c.addBool("STRIP_OUTER_ARRAY", o.StripOuterArray)
	c.addBool("STRIP_NULL_VALUES", o.StripNullValues)
	c.addBool("REPLACE_INVALID_CHARACTERS", o.ReplaceInvalidCharacters)
	c.addBool("IGNORE_UTF8_ERRORS", o.IgnoreUTF8Errors)
	c.addBool("SKIP_BYTE_ORDER_MARK", o.SkipByteOrderMark)
	c.addString("FILE_EXTENSION", o.FileExtension)
	c.addList("NULL_IF", o.NullIf)
	return c.join(" ")
}

type AvroOptions struct {
	Compression              Compression `yaml:"compression"`
	TrimSpace                *bool       `yaml:"trim_space"`
	ReplaceInvalidCharacters *bool       `yaml:"replace_invalid_characters"`
	NullIf                   []string    `yaml:"null_if"`
}

func (o *AvroOptions) FormatType() string { return "AVRO" }
func (o *AvroOptions) isFileFormatOptions() {}

func (o *AvroOptions) SQL() string {
	c := clauses{"TYPE = AVRO"}
	c.addEnum("COMPRESSION", string(o.Compression))
	c.addBool("TRIM_SPACE", o.TrimSpace)
	c.addBool("REPLACE_INVALID_CHARACTERS", o.ReplaceInvalidCharacters)
	c.addList("NULL_IF", o.NullIf)
	return c.join(" ")
}

type ParquetOptions struct {
	Compression              ParquetCompression `yaml:"compression"`
	BinaryAsText             *bool              `yaml:"binary_as_text"`
	UseLogicalType           *bool              `yaml:"use_logical_type"`
	TrimSpace                *bool              `yaml:"trim_space"`
	ReplaceInvalidCharacters *bool              `yaml:"replace_invalid_characters"`
	NullIf                   []string           `yaml:"null_if"`
	UseVectorizedScanner     *bool              `yaml:"use_vectorized_scanner"`
}

func (o *ParquetOptions) FormatType() string { return "PARQUET" }
func (o *ParquetOptions) isFileFormatOptions() {}

func (o *ParquetOptions) SQL() string {
	c := clauses{"TYPE = PARQUET"}
	c.addEnum("COMPRESSION", string(o.Compression))
	c.addBool("BINARY_AS_TEXT", o.BinaryAsText)
	c.addBool("USE_LOGICAL_TYPE", o.UseLogicalType)
	c.addBool("TRIM_SPACE", o.TrimSpace)
	c.addBool("REPLACE_INVALID_CHARACTERS", o.ReplaceInvalidCharacters)
	c.addList("NULL_IF", o.NullIf)
	c.addBool("USE_VECTORIZED_SCANNER", o.UseVectorizedScanner)
	return c.join(" ")
}

type ORCOptions struct {
	TrimSpace                *bool    `yaml:"trim_space"`
	ReplaceInvalidCharacters *bool    `yaml:"replace_invalid_characters"`
	NullIf                   []string `yaml:"null_if"`
}

func (o *ORCOptions) FormatType() string { return "ORC" }
func (o *ORCOptions) isFileFormatOptions() {}

func (o *ORCOptions) SQL() string {
	c := clauses{"TYPE = ORC"}
	c.addBool("TRIM_SPACE", o.TrimSpace)
	c.addBool("REPLACE_INVALID_CHARACTERS", o.ReplaceInvalidCharacters)
	c.addList("NULL_IF", o.NullIf)
	return c.join(" ")
}

type XMLOptions struct {
	Compression              Compression `yaml:"compression"`
	IgnoreUTF8Errors         *bool       `yaml:"ignore_utf8_errors"`
	PreserveSpace            *bool       `yaml:"preserve_space"`
	StripOuterElement        *bool       `yaml:"strip_outer_element"`
	DisableSnowflakeData     *bool       `yaml:"disable_snowflake_data"`
	DisableAutoConvert       *bool       `yaml:"disable_auto_convert"`
	ReplaceInvalidCharacters *bool       `yaml:"replace_invalid_characters"`
	SkipByteOrderMark        *bool       `yaml:"skip_byte_order_mark"`
}

func (o *XMLOptions) FormatType() string { return "XML" }
func (o *XMLOptions) isFileFormatOptions() {}

func (o *XMLOptions) SQL() string {
	c := clauses{"TYPE = XML"}
	c.addEnum("COMPRESSION", string(o.Compression))
	c.addBool("IGNORE_UTF8_ERRORS", o.IgnoreUTF8Errors)
	c.addBool("PRESERVE_SPACE", o.PreserveSpace)
	c.addBool("STRIP_OUTER_ELEMENT", o.StripOuterElement)
	c.addBool("DISABLE_SNOWFLAKE_DATA", o.DisableSnowflakeData)
	c.addBool("DISABLE_AUTO_CONVERT", o.DisableAutoConvert)
	c.addBool("REPLACE_INVALID_CHARACTERS", o.ReplaceInvalidCharacters)
	c.addBool("SKIP_BYTE_ORDER_MARK", o.SkipByteOrderMark)
	return c.join(" ")
}
