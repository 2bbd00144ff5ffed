package querybuilder

import (
	"testing"
)

func TestFileFormatOptions_SQL(t *testing.T) {
	tests := []struct {
		name    string
		options FileFormatOptions
		want    string
	}{
		{
			name:    "empty csv emits only type",
			options: &CSVOptions{},
			want:    "TYPE = CSV",
		},
		{
			name: "csv options in declared order",
			options: &CSVOptions{
				Encoding:                  stringPtr("UTF8"),
				NullIf:                    []string{"NULL", ""},
				FieldOptionallyEnclosedBy: stringPtr(`"`),
				SkipHeader:                Ptr(1),
				FieldDelimiter:            stringPtr(","),
				Compression:               CompressionGzip,
				BinaryFormat:              BinaryFormatHex,
				TrimSpace:                 Ptr(false),
			},
			want: `TYPE = CSV COMPRESSION = GZIP FIELD_DELIMITER = ',' SKIP_HEADER = 1 BINARY_FORMAT = HEX TRIM_SPACE = FALSE ` +
				`FIELD_OPTIONALLY_ENCLOSED_BY = '""' NULL_IF = ('NULL', '') ENCODING = 'UTF8'`,
		},
		{
			name: "json",
			options: &JSONOptions{
				Compression:     CompressionAuto,
				StripOuterArray: Ptr(true),
				DateFormat:      stringPtr("YYYY-MM-DD"),
				FileExtension:   stringPtr(".json"),
			},
			want: "TYPE = JSON COMPRESSION = AUTO DATE_FORMAT = 'YYYY-MM-DD' STRIP_OUTER_ARRAY = TRUE FILE_EXTENSION = '.json'",
		},
		{
			name:    "avro",
			options: &AvroOptions{Compression: CompressionRawDeflate, NullIf: []string{"\\N"}},
			want:    `TYPE = AVRO COMPRESSION = RAW_DEFLATE NULL_IF = ('\\N')`,
		},
		{
			name: "parquet",
			options: &ParquetOptions{
				Compression:          ParquetCompressionSnappy,
				BinaryAsText:         Ptr(false),
				UseVectorizedScanner: Ptr(true),
			},
			want: "TYPE = PARQUET COMPRESSION = SNAPPY BINARY_AS_TEXT = FALSE USE_VECTORIZED_SCANNER = TRUE",
		},
		{
			name:    "orc",
			options: &ORCOptions{TrimSpace: Ptr(true)},
			want:    "TYPE = ORC TRIM_SPACE = TRUE",
		},
		{
			name: "xml",
			options: &XMLOptions{
				Compression:       CompressionZstd,
				StripOuterElement: Ptr(true),
				PreserveSpace:     Ptr(false),
			},
			want: "TYPE = XML COMPRESSION = ZSTD PRESERVE_SPACE = FALSE STRIP_OUTER_ELEMENT = TRUE",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.options.SQL()
			if got != tt.want {
				t.Errorf("SQL() = %v, want %v", got, tt.want)
			}
			if again := tt.options.SQL(); again != got {
				t.Errorf("SQL() is not idempotent: %v != %v", again, got)
			}
		})
	}
}

func TestFileFormatBuilder_Build(t *testing.T) {
	tests := []struct {
		name    string
		builder FileFormatBuilder
		want    string
		wantErr bool
	}{
		{
			name: "or replace csv",
			builder: NewFileFormat("csv_fmt").
				WithCreateOrReplace().
				WithOptions(&CSVOptions{FieldDelimiter: stringPtr("|")}),
			want:    "CREATE OR REPLACE FILE FORMAT csv_fmt TYPE = CSV FIELD_DELIMITER = '|'",
			wantErr: false,
		},
		{
			name: "temporary if not exists with comment",
			builder: NewFileFormat("tmp_json").
				WithTemporary().
				WithCreateIfNotExists().
				WithOptions(&JSONOptions{}).
				WithComment("scratch"),
			want:    "CREATE TEMPORARY FILE FORMAT IF NOT EXISTS tmp_json TYPE = JSON COMMENT = 'scratch'",
			wantErr: false,
		},
		{
			name:    "volatile",
			builder: NewFileFormat("v").WithVolatile().WithOptions(&ORCOptions{}),
			want:    "CREATE VOLATILE FILE FORMAT v TYPE = ORC",
			wantErr: false,
		},
		{
			name:    "missing options",
			builder: NewFileFormat("nothing"),
			wantErr: true,
		},
		{
			name:    "missing name",
			builder: NewFileFormat("").WithOptions(&CSVOptions{}),
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, err := tt.builder.Build()
			if (err != nil) != tt.wantErr {
				t.Errorf("Build() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if got := format.SQL(); got != tt.want {
				t.Errorf("SQL() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFileFormatSpec_SQL(t *testing.T) {
	format, err := NewFileFormat("csv_fmt").WithOptions(&CSVOptions{SkipHeader: Ptr(1)}).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	tests := []struct {
		name string
		spec FileFormatSpec
		want string
	}{
		{name: "named", spec: NamedFileFormat("csv_fmt"), want: "FORMAT_NAME = 'csv_fmt'"},
		{name: "inline from format", spec: InlineFileFormat(format), want: "TYPE = CSV SKIP_HEADER = 1"},
		{name: "inline options", spec: InlineFileFormatOptions(&ParquetOptions{}), want: "TYPE = PARQUET"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.spec.SQL(); got != tt.want {
				t.Errorf("SQL() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFileFormat_OptionsCapturedAtBuild(t *testing.T) {
	csv := &CSVOptions{SkipHeader: Ptr(1)}
	format, err := NewFileFormat("csv_fmt").WithOptions(csv).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	*csv.SkipHeader = 5
	csv.NullIf = []string{"X"}

	if got, want := format.SQL(), "CREATE FILE FORMAT csv_fmt TYPE = CSV SKIP_HEADER = 1"; got != want {
		t.Errorf("SQL() = %v, want %v", got, want)
	}
	if got, want := InlineFileFormat(format).SQL(), "TYPE = CSV SKIP_HEADER = 1"; got != want {
		t.Errorf("inline SQL() = %v, want %v", got, want)
	}
	if got := format.FormatType(); got != "CSV" {
		t.Errorf("FormatType() = %v, want CSV", got)
	}
}
