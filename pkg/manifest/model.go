package manifest

import (
	"github.com/anglinb/snowforge/internal/querybuilder"
)

// Manifest is a declarative pipeline: an ordered list of steps applied in a
// single transaction.
type Manifest struct {
	Steps []Entry `yaml:"steps"`
}

// Entry holds exactly one step.
type Entry struct {
	FileFormat *FileFormat `yaml:"file_format"`
	Table      *Table      `yaml:"table"`
	Stage      *Stage      `yaml:"stage"`
	Stream     *Stream     `yaml:"stream"`
	Task       *Task       `yaml:"task"`
	Put        *Put        `yaml:"put"`
	CopyInto   *CopyInto   `yaml:"copy_into"`
}

type CreateMode struct {
	CreateOrReplace bool `yaml:"create_or_replace"`
	IfNotExists     bool `yaml:"if_not_exists"`
}

// FormatOptions selects one file format type by key.
type FormatOptions struct {
	CSV     *querybuilder.CSVOptions     `yaml:"csv"`
	JSON    *querybuilder.JSONOptions    `yaml:"json"`
	Avro    *querybuilder.AvroOptions    `yaml:"avro"`
	Parquet *querybuilder.ParquetOptions `yaml:"parquet"`
	ORC     *querybuilder.ORCOptions     `yaml:"orc"`
	XML     *querybuilder.XMLOptions     `yaml:"xml"`
}

type FileFormat struct {
	CreateMode    `yaml:",inline"`
	FormatOptions `yaml:",inline"`

	Name      string `yaml:"name"`
	Temporary bool   `yaml:"temporary"`
	Volatile  bool   `yaml:"volatile"`
	Comment   string `yaml:"comment"`
}

// FileFormatRef points at a named file format or declares inline options.
type FileFormatRef struct {
	FormatOptions `yaml:",inline"`

	Named string `yaml:"named"`
}

type Column struct {
	Name       string                  `yaml:"name"`
	Type       querybuilder.ColumnType `yaml:"type"`
	Params     []int                   `yaml:"params"`
	NotNull    bool                    `yaml:"not_null"`
	Default    *string                 `yaml:"default"`
	Identity   bool                    `yaml:"identity"`
	PrimaryKey bool                    `yaml:"primary_key"`
	Unique     bool                    `yaml:"unique"`
	References *string                 `yaml:"references"`
	Comment    *string                 `yaml:"comment"`
	Collate    *string                 `yaml:"collate"`
}

type Table struct {
	CreateMode `yaml:",inline"`

	Name                       string                 `yaml:"name"`
	Kind                       querybuilder.TableKind `yaml:"kind"`
	Columns                    []Column               `yaml:"columns"`
	ClusterBy                  []string               `yaml:"cluster_by"`
	DataRetentionTimeInDays    *int                   `yaml:"data_retention_time_in_days"`
	MaxDataExtensionTimeInDays *int                   `yaml:"max_data_extension_time_in_days"`
	ChangeTracking             *bool                  `yaml:"change_tracking"`
	DefaultDDLCollation        string                 `yaml:"default_ddl_collation"`
	CopyGrants                 bool                   `yaml:"copy_grants"`
	Comment                    string                 `yaml:"comment"`
	RowAccessPolicy            *querybuilder.Policy   `yaml:"row_access_policy"`
	AggregationPolicy          *querybuilder.Policy   `yaml:"aggregation_policy"`
	Tags                       map[string]string      `yaml:"tags"`
}

// Directory configures the directory table of a stage. Backend specific keys
// are ignored by backends that do not support them.
type Directory struct {
	Enable                  bool    `yaml:"enable"`
	RefreshOnCreate         bool    `yaml:"refresh_on_create"`
	AWSSNSTopic             *string `yaml:"aws_sns_topic"`
	AWSRole                 *string `yaml:"aws_role"`
	NotificationIntegration *string `yaml:"notification_integration"`
}

type Stage struct {
	CreateMode `yaml:",inline"`

	Name         string                                `yaml:"name"`
	Temporary    bool                                  `yaml:"temporary"`
	Internal     *querybuilder.InternalStageParams     `yaml:"internal"`
	S3           *querybuilder.S3StageParams           `yaml:"s3"`
	GCS          *querybuilder.GCSStageParams          `yaml:"gcs"`
	Azure        *querybuilder.AzureStageParams        `yaml:"azure"`
	S3Compatible *querybuilder.S3CompatibleStageParams `yaml:"s3_compatible"`
	Directory    *Directory                            `yaml:"directory"`
	FileFormat   *FileFormatRef                        `yaml:"file_format"`
	Comment      string                                `yaml:"comment"`
	Tags         map[string]string                     `yaml:"tags"`
}

type Stream struct {
	CreateMode `yaml:",inline"`

	Name            string                  `yaml:"name"`
	OnTable         string                  `yaml:"on_table"`
	OnView          string                  `yaml:"on_view"`
	Mode            querybuilder.StreamMode `yaml:"mode"`
	Type            querybuilder.StreamType `yaml:"type"`
	AppendOnly      bool                    `yaml:"append_only"`
	InsertOnly      bool                    `yaml:"insert_only"`
	ShowInitialRows bool                    `yaml:"show_initial_rows"`
	Comment         string                  `yaml:"comment"`
	Tags            map[string]string       `yaml:"tags"`
}

type Task struct {
	CreateMode `yaml:",inline"`

	Name                                    string                     `yaml:"name"`
	Kind                                    querybuilder.TaskKind      `yaml:"kind"`
	SQL                                     string                     `yaml:"sql"`
	Warehouse                               string                     `yaml:"warehouse"`
	WarehouseSize                           querybuilder.WarehouseSize `yaml:"warehouse_size"`
	Schedule                                *querybuilder.Schedule     `yaml:"schedule"`
	Config                                  string                     `yaml:"config"`
	AllowOverlappingExecution               *bool                      `yaml:"allow_overlapping_execution"`
	SessionParameters                       map[string]string          `yaml:"session_parameters"`
	UserTaskTimeoutMs                       *int                       `yaml:"user_task_timeout_ms"`
	SuspendTaskAfterNumFailures             *int                       `yaml:"suspend_task_after_num_failures"`
	ErrorIntegration                        string                     `yaml:"error_integration"`
	Comment                                 string                     `yaml:"comment"`
	Finalize                                string                     `yaml:"finalize"`
	TaskAutoRetryAttempts                   *int                       `yaml:"task_auto_retry_attempts"`
	UserTaskMinimumTriggerIntervalInSeconds *int                       `yaml:"user_task_minimum_trigger_interval_in_seconds"`
	After                                   []string                   `yaml:"after"`
	When                                    string                     `yaml:"when"`
	Tags                                    map[string]string          `yaml:"tags"`
}

type Put struct {
	File              string                         `yaml:"file"`
	Stage             string                         `yaml:"stage"`
	StageKind         querybuilder.InternalStageKind `yaml:"stage_kind"`
	Parallel          *int                           `yaml:"parallel"`
	AutoCompress      *bool                          `yaml:"auto_compress"`
	SourceCompression querybuilder.Compression       `yaml:"source_compression"`
	Overwrite         bool                           `yaml:"overwrite"`
}

// Location is either a table or a stage.
type Location struct {
	Table string `yaml:"table"`
	Stage string `yaml:"stage"`
}

type CopyOptions struct {
	ReturnFailedOnly   bool                           `yaml:"return_failed_only"`
	OnError            string                         `yaml:"on_error"`
	SizeLimit          *int                           `yaml:"size_limit"`
	Purge              bool                           `yaml:"purge"`
	MatchByColumnName  querybuilder.MatchByColumnName `yaml:"match_by_column_name"`
	EnforceLength      bool                           `yaml:"enforce_length"`
	TruncateColumns    bool                           `yaml:"truncate_columns"`
	Force              bool                           `yaml:"force"`
	LoadUncertainFiles bool                           `yaml:"load_uncertain_files"`
	FileProcessor      *string                        `yaml:"file_processor"`
	IncludeMetadata    map[string]string              `yaml:"include_metadata"`
}

type CopyInto struct {
	Target         Location       `yaml:"target"`
	Source         Location       `yaml:"source"`
	Pattern        string         `yaml:"pattern"`
	FileFormat     *FileFormatRef `yaml:"file_format"`
	Files          []string       `yaml:"files"`
	ValidationMode string         `yaml:"validation_mode"`
	Options        CopyOptions    `yaml:"options"`
}
