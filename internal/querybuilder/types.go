package querybuilder

// CreateMode controls the CREATE prefix. When both flags are set OrReplace wins
// and IF NOT EXISTS is not rendered.
type CreateMode struct {
	OrReplace   bool
	IfNotExists bool
}

type TableKind string

const (
	TableKindPermanent TableKind = "PERMANENT"
	TableKindTemporary TableKind = "TEMPORARY"
	TableKindTransient TableKind = "TRANSIENT"
	TableKindVolatile  TableKind = "VOLATILE"
)

type ColumnType string

const (
	ColumnTypeNumber    ColumnType = "NUMBER"
	ColumnTypeString    ColumnType = "STRING"
	ColumnTypeBoolean   ColumnType = "BOOLEAN"
	ColumnTypeDate      ColumnType = "DATE"
	ColumnTypeTimestamp ColumnType = "TIMESTAMP"
	ColumnTypeVariant   ColumnType = "VARIANT"
	ColumnTypeArray     ColumnType = "ARRAY"
	ColumnTypeObject    ColumnType = "OBJECT"
	ColumnTypeText      ColumnType = "TEXT"
)

// Compression is the general compression setting shared by most file formats.
type Compression string

const (
	CompressionAuto       Compression = "AUTO"
	CompressionNone       Compression = "NONE"
	CompressionGzip       Compression = "GZIP"
	CompressionBrotli     Compression = "BROTLI"
	CompressionZstd       Compression = "ZSTD"
	CompressionDeflate    Compression = "DEFLATE"
	CompressionRawDeflate Compression = "RAW_DEFLATE"
	CompressionBz2        Compression = "BZ2"
	CompressionLzo        Compression = "LZO"
	CompressionSnappy     Compression = "SNAPPY"
)

// ParquetCompression is the subset of codecs Parquet files accept.
type ParquetCompression string

const (
	ParquetCompressionAuto   ParquetCompression = "AUTO"
	ParquetCompressionNone   ParquetCompression = "NONE"
	ParquetCompressionSnappy ParquetCompression = "SNAPPY"
	ParquetCompressionLzo    ParquetCompression = "LZO"
)

type BinaryFormat string

const (
	BinaryFormatHex    BinaryFormat = "HEX"
	BinaryFormatBase64 BinaryFormat = "BASE64"
	BinaryFormatUTF8   BinaryFormat = "UTF8"
)

type StreamMode string

const (
	StreamModeDefault    StreamMode = "DEFAULT"
	StreamModeAppendOnly StreamMode = "APPEND_ONLY"
	StreamModeInsertOnly StreamMode = "INSERT_ONLY"
)

type StreamType string

const (
	StreamTypeStandard StreamType = "STANDARD"
	StreamTypeDelta    StreamType = "DELTA"
)

type TaskKind string

const (
	TaskKindSQL             TaskKind = "SQL"
	TaskKindStoredProcedure TaskKind = "STORED_PROCEDURE"
	TaskKindMultiStatement  TaskKind = "MULTI_STATEMENT"
	TaskKindProceduralLogic TaskKind = "PROCEDURAL_LOGIC"
)

type WarehouseSize string

const (
	WarehouseSizeXSmall   WarehouseSize = "XSMALL"
	WarehouseSizeSmall    WarehouseSize = "SMALL"
	WarehouseSizeMedium   WarehouseSize = "MEDIUM"
	WarehouseSizeLarge    WarehouseSize = "LARGE"
	WarehouseSizeXLarge   WarehouseSize = "XLARGE"
	WarehouseSizeXXLarge  WarehouseSize = "XXLARGE"
	WarehouseSizeXXXLarge WarehouseSize = "XXXLARGE"
	WarehouseSizeX4Large  WarehouseSize = "X4LARGE"
	WarehouseSizeX5Large  WarehouseSize = "X5LARGE"
	WarehouseSizeX6Large  WarehouseSize = "X6LARGE"
)

type MatchByColumnName string

const (
	MatchByColumnNameCaseSensitive   MatchByColumnName = "CASE_SENSITIVE"
	MatchByColumnNameCaseInsensitive MatchByColumnName = "CASE_INSENSITIVE"
	MatchByColumnNameNone            MatchByColumnName = "NONE"
)
