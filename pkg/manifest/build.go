package manifest

import (
	"strconv"
	"strings"

	"github.com/pingcap/errors"
	"github.com/robfig/cron/v3"
	"github.com/samber/lo"

	"github.com/anglinb/snowforge/internal/querybuilder"
)

func (o FormatOptions) options() (querybuilder.FileFormatOptions, error) {
	var set []querybuilder.FileFormatOptions
	if o.CSV != nil {
		set = append(set, o.CSV)
	}
	if o.JSON != nil {
		set = append(set, o.JSON)
	}
	if o.Avro != nil {
		set = append(set, o.Avro)
	}
	if o.Parquet != nil {
		set = append(set, o.Parquet)
	}
	if o.ORC != nil {
		set = append(set, o.ORC)
	}
	if o.XML != nil {
		set = append(set, o.XML)
	}

	switch len(set) {
	case 0:
		return nil, nil
	case 1:
		return set[0], nil
	default:
		return nil, errors.Errorf("only one file format type may be set, got %s", strings.Join(lo.Map(set, func(o querybuilder.FileFormatOptions, _ int) string {
			return o.FormatType()
		}), ", "))
	}
}

func (f *FileFormat) build() (*querybuilder.FileFormat, error) {
	options, err := f.options()
	if err != nil {
		return nil, errors.WithMessage(err, "file format "+f.Name)
	}

	b := querybuilder.NewFileFormat(f.Name).WithOptions(options)
	if f.CreateOrReplace {
		b.WithCreateOrReplace()
	}
	if f.IfNotExists {
		b.WithCreateIfNotExists()
	}
	if f.Temporary {
		b.WithTemporary()
	}
	if f.Volatile {
		b.WithVolatile()
	}
	if f.Comment != "" {
		b.WithComment(f.Comment)
	}
	return b.Build()
}

func (r *FileFormatRef) spec() (*querybuilder.FileFormatSpec, error) {
	if r == nil {
		return nil, nil
	}
	options, err := r.options()
	if err != nil {
		return nil, err
	}

	switch {
	case r.Named != "" && options != nil:
		return nil, errors.New("file_format must set either named or inline options, not both")
	case r.Named != "":
		spec := querybuilder.NamedFileFormat(r.Named)
		return &spec, nil
	case options != nil:
		spec := querybuilder.InlineFileFormatOptions(options)
		return &spec, nil
	default:
		return nil, errors.New("file_format must set named or inline options")
	}
}

func (c Column) column() querybuilder.Column {
	return querybuilder.Column{
		Name:       c.Name,
		Type:       querybuilder.DataType{Type: c.Type, Params: c.Params},
		NotNull:    c.NotNull,
		Default:    c.Default,
		Identity:   c.Identity,
		PrimaryKey: c.PrimaryKey,
		Unique:     c.Unique,
		References: c.References,
		Comment:    c.Comment,
		Collate:    c.Collate,
	}
}

func (t *Table) build() (*querybuilder.Table, error) {
	for _, c := range t.Columns {
		if c.Type == "" {
			return nil, errors.Errorf("table %s: column %q has no type", t.Name, c.Name)
		}
	}

	b := querybuilder.NewTable(t.Name).
		WithColumns(lo.Map(t.Columns, func(c Column, _ int) querybuilder.Column { return c.column() })...)
	if t.CreateOrReplace {
		b.WithCreateOrReplace()
	}
	if t.IfNotExists {
		b.WithCreateIfNotExists()
	}
	if t.Kind != "" {
		b.WithKind(t.Kind)
	}
	if len(t.ClusterBy) > 0 {
		b.WithClusterBy(t.ClusterBy...)
	}
	if t.DataRetentionTimeInDays != nil {
		b.WithDataRetentionTimeInDays(*t.DataRetentionTimeInDays)
	}
	if t.MaxDataExtensionTimeInDays != nil {
		b.WithMaxDataExtensionTimeInDays(*t.MaxDataExtensionTimeInDays)
	}
	if t.ChangeTracking != nil {
		b.WithChangeTracking(*t.ChangeTracking)
	}
	if t.DefaultDDLCollation != "" {
		b.WithDefaultDDLCollation(t.DefaultDDLCollation)
	}
	if t.CopyGrants {
		b.WithCopyGrants()
	}
	if t.Comment != "" {
		b.WithComment(t.Comment)
	}
	if t.RowAccessPolicy != nil {
		b.WithRowAccessPolicy(*t.RowAccessPolicy)
	}
	if t.AggregationPolicy != nil {
		b.WithAggregationPolicy(*t.AggregationPolicy)
	}
	if len(t.Tags) > 0 {
		b.WithTags(t.Tags)
	}
	return b.Build()
}

// params picks the storage backend and the matching directory table clause.
func (s *Stage) params() (querybuilder.StageParams, querybuilder.DirectoryTableParams, error) {
	var (
		params    []querybuilder.StageParams
		directory querybuilder.DirectoryTableParams
	)
	d := s.Directory
	options := func() querybuilder.DirectoryOptions {
		return querybuilder.DirectoryOptions{Enable: d.Enable, RefreshOnCreate: d.RefreshOnCreate}
	}

	if s.Internal != nil {
		params = append(params, s.Internal)
		if d != nil {
			directory = &querybuilder.InternalDirectoryParams{DirectoryOptions: options()}
		}
	}
	if s.S3 != nil {
		params = append(params, s.S3)
		if d != nil {
			directory = &querybuilder.S3DirectoryParams{
				DirectoryOptions:        options(),
				AWSSNSTopic:             d.AWSSNSTopic,
				AWSRole:                 d.AWSRole,
				NotificationIntegration: d.NotificationIntegration,
			}
		}
	}
	if s.GCS != nil {
		params = append(params, s.GCS)
		if d != nil {
			directory = &querybuilder.GCSDirectoryParams{DirectoryOptions: options(), NotificationIntegration: d.NotificationIntegration}
		}
	}
	if s.Azure != nil {
		params = append(params, s.Azure)
		if d != nil {
			directory = &querybuilder.AzureDirectoryParams{DirectoryOptions: options(), NotificationIntegration: d.NotificationIntegration}
		}
	}
	if s.S3Compatible != nil {
		params = append(params, s.S3Compatible)
		if d != nil {
			directory = &querybuilder.S3DirectoryParams{DirectoryOptions: options(), NotificationIntegration: d.NotificationIntegration}
		}
	}

	switch len(params) {
	case 0:
		if d != nil {
			directory = &querybuilder.InternalDirectoryParams{DirectoryOptions: options()}
		}
		return nil, directory, nil
	case 1:
		return params[0], directory, nil
	default:
		return nil, nil, errors.New("only one of internal, s3, gcs, azure, s3_compatible may be set")
	}
}

func (s *Stage) build() (*querybuilder.Stage, error) {
	params, directory, err := s.params()
	if err != nil {
		return nil, errors.WithMessage(err, "stage "+s.Name)
	}
	fileFormat, err := s.FileFormat.spec()
	if err != nil {
		return nil, errors.WithMessage(err, "stage "+s.Name)
	}

	b := querybuilder.NewStage(s.Name)
	if s.CreateOrReplace {
		b.WithCreateOrReplace()
	}
	if s.IfNotExists {
		b.WithCreateIfNotExists()
	}
	if s.Temporary {
		b.WithTemporary()
	}
	if params != nil {
		b.WithStageParams(params)
	}
	if directory != nil {
		b.WithDirectory(directory)
	}
	if fileFormat != nil {
		b.WithFileFormat(*fileFormat)
	}
	if s.Comment != "" {
		b.WithComment(s.Comment)
	}
	if len(s.Tags) > 0 {
		b.WithTags(s.Tags)
	}
	return b.Build()
}

func (s *Stream) build() (*querybuilder.Stream, error) {
	if s.OnTable != "" && s.OnView != "" {
		return nil, errors.Errorf("stream %s: on_table and on_view are mutually exclusive", s.Name)
	}

	b := querybuilder.NewStream(s.Name)
	if s.CreateOrReplace {
		b.WithCreateOrReplace()
	}
	if s.IfNotExists {
		b.WithCreateIfNotExists()
	}
	if s.OnTable != "" {
		b.OnTable(s.OnTable)
	}
	if s.OnView != "" {
		b.OnView(s.OnView)
	}
	if s.Mode != "" {
		b.WithMode(s.Mode)
	}
	if s.Type != "" {
		b.WithType(s.Type)
	}
	b.WithAppendOnly(s.AppendOnly).
		WithInsertOnly(s.InsertOnly).
		WithShowInitialRows(s.ShowInitialRows)
	if s.Comment != "" {
		b.WithComment(s.Comment)
	}
	if len(s.Tags) > 0 {
		b.WithTags(s.Tags)
	}
	return b.Build()
}

// validateSchedule checks a task schedule before it is rendered. Cron
// expressions use the standard five field syntax.
func validateSchedule(s querybuilder.Schedule) error {
	if s.IntervalMinutes != nil {
		if *s.IntervalMinutes <= 0 {
			return errors.Errorf("interval_minutes must be positive, got %d", *s.IntervalMinutes)
		}
		return nil
	}
	if s.Cron == "" {
		return errors.New("schedule must set interval_minutes or cron")
	}
	if strings.TrimSpace(s.Timezone) == "" {
		return errors.New("cron schedule requires a timezone")
	}
	if _, err := cron.ParseStandard("CRON_TZ=" + strings.TrimSpace(s.Timezone) + " " + s.Cron); err != nil {
		return errors.WithMessage(err, "invalid cron schedule")
	}
	return nil
}

func (t *Task) build() (*querybuilder.Task, error) {
	if t.Schedule != nil {
		if err := validateSchedule(*t.Schedule); err != nil {
			return nil, errors.WithMessage(err, "task "+t.Name)
		}
	}

	kind := t.Kind
	if kind == "" {
		kind = querybuilder.TaskKindSQL
	}

	b := querybuilder.NewTask(t.Name).WithKind(kind).WithSQL(t.SQL)
	if t.CreateOrReplace {
		b.WithCreateOrReplace()
	}
	if t.IfNotExists {
		b.WithCreateIfNotExists()
	}
	if len(t.Tags) > 0 {
		b.WithTags(t.Tags)
	}
	if t.Warehouse != "" {
		b.WithWarehouse(t.Warehouse)
	}
	if t.WarehouseSize != "" {
		b.WithWarehouseSize(t.WarehouseSize)
	}
	if t.Schedule != nil {
		b.WithSchedule(*t.Schedule)
	}
	if t.Config != "" {
		b.WithConfig(t.Config)
	}
	if t.AllowOverlappingExecution != nil {
		b.WithAllowOverlappingExecution(*t.AllowOverlappingExecution)
	}
	if len(t.SessionParameters) > 0 {
		b.WithSessionParameters(t.SessionParameters)
	}
	if t.UserTaskTimeoutMs != nil {
		b.WithUserTaskTimeoutMs(*t.UserTaskTimeoutMs)
	}
	if t.SuspendTaskAfterNumFailures != nil {
		b.WithSuspendTaskAfterNumFailures(*t.SuspendTaskAfterNumFailures)
	}
	if t.ErrorIntegration != "" {
		b.WithErrorIntegration(t.ErrorIntegration)
	}
	if t.Comment != "" {
		b.WithComment(t.Comment)
	}
	if t.Finalize != "" {
		b.WithFinalize(t.Finalize)
	}
	if t.TaskAutoRetryAttempts != nil {
		b.WithTaskAutoRetryAttempts(*t.TaskAutoRetryAttempts)
	}
	if t.UserTaskMinimumTriggerIntervalInSeconds != nil {
		b.WithUserTaskMinimumTriggerIntervalInSeconds(*t.UserTaskMinimumTriggerIntervalInSeconds)
	}
	if len(t.After) > 0 {
		b.WithAfter(t.After...)
	}
	if t.When != "" {
		b.WithWhen(t.When)
	}
	return b.Build()
}

func (p *Put) build() (*querybuilder.Put, error) {
	var stage querybuilder.InternalStage
	switch p.StageKind {
	case "", querybuilder.InternalStageKindNamed:
		stage = querybuilder.NamedStage(p.Stage)
	case querybuilder.InternalStageKindTable:
		stage = querybuilder.TableStage(p.Stage)
	case querybuilder.InternalStageKindUser:
		stage = querybuilder.UserStage(p.Stage)
	default:
		return nil, errors.Errorf("put %s: unknown stage_kind %q", p.File, p.StageKind)
	}

	b := querybuilder.NewPut().
		WithFilePath(p.File).
		WithStage(stage).
		WithOverwrite(p.Overwrite)
	if p.Parallel != nil {
		b.WithParallel(*p.Parallel)
	}
	if p.AutoCompress != nil {
		b.WithAutoCompress(*p.AutoCompress)
	}
	if p.SourceCompression != "" {
		b.WithSourceCompression(p.SourceCompression)
	}
	return b.Build()
}

func (l Location) location(target bool) (querybuilder.CopyLocation, error) {
	switch {
	case l.Table != "" && l.Stage != "":
		return querybuilder.CopyLocation{}, errors.New("location must set either table or stage, not both")
	case l.Table != "":
		if target {
			return querybuilder.TargetTable(l.Table), nil
		}
		return querybuilder.SourceTable(l.Table), nil
	case l.Stage != "":
		if target {
			return querybuilder.TargetStage(l.Stage), nil
		}
		return querybuilder.SourceStage(l.Stage), nil
	default:
		return querybuilder.CopyLocation{}, errors.New("location must set table or stage")
	}
}

// parseOnError accepts CONTINUE, SKIP_FILE, SKIP_FILE_<n>, SKIP_FILE_<n>% and
// ABORT_STATEMENT in any case.
func parseOnError(s string) (querybuilder.OnError, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	switch v {
	case "":
		return querybuilder.OnError{}, nil
	case "CONTINUE":
		return querybuilder.Continue, nil
	case "SKIP_FILE":
		return querybuilder.SkipFile, nil
	case "ABORT_STATEMENT":
		return querybuilder.AbortStatement, nil
	}

	if rest, ok := strings.CutPrefix(v, "SKIP_FILE_"); ok {
		percent := strings.HasSuffix(rest, "%")
		n, err := strconv.Atoi(strings.TrimSuffix(rest, "%"))
		if err == nil && n > 0 {
			if percent {
				return querybuilder.SkipFilePercent(n), nil
			}
			return querybuilder.SkipFileNum(n), nil
		}
	}
	return querybuilder.OnError{}, errors.Errorf("invalid on_error %q", s)
}

// parseValidationMode accepts RETURN_ERRORS, RETURN_ALL_ERRORS and RETURN_<n>_ROWS.
func parseValidationMode(s string) (querybuilder.ValidationMode, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	switch v {
	case "":
		return querybuilder.ValidationMode{}, nil
	case "RETURN_ERRORS":
		return querybuilder.ReturnErrors, nil
	case "RETURN_ALL_ERRORS":
		return querybuilder.ReturnAllErrors, nil
	}

	if strings.HasPrefix(v, "RETURN_") && strings.HasSuffix(v, "_ROWS") {
		n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(v, "RETURN_"), "_ROWS"))
		if err == nil && n > 0 {
			return querybuilder.ReturnRows(n), nil
		}
	}
	return querybuilder.ValidationMode{}, errors.Errorf("invalid validation_mode %q", s)
}

func (o CopyOptions) options() (querybuilder.CopyOptions, error) {
	onError, err := parseOnError(o.OnError)
	if err != nil {
		return querybuilder.CopyOptions{}, err
	}
	return querybuilder.CopyOptions{
		ReturnFailedOnly:   o.ReturnFailedOnly,
		OnError:            onError,
		SizeLimit:          o.SizeLimit,
		Purge:              o.Purge,
		MatchByColumnName:  o.MatchByColumnName,
		EnforceLength:      o.EnforceLength,
		TruncateColumns:    o.TruncateColumns,
		Force:              o.Force,
		LoadUncertainFiles: o.LoadUncertainFiles,
		FileProcessor:      o.FileProcessor,
		IncludeMetadata:    o.IncludeMetadata,
	}, nil
}

func (c *CopyInto) build() (*querybuilder.CopyInto, error) {
	target, err := c.Target.location(true)
	if err != nil {
		return nil, errors.WithMessage(err, "copy_into target")
	}
	source, err := c.Source.location(false)
	if err != nil {
		return nil, errors.WithMessage(err, "copy_into source")
	}
	fileFormat, err := c.FileFormat.spec()
	if err != nil {
		return nil, errors.WithMessage(err, "copy_into")
	}
	validationMode, err := parseValidationMode(c.ValidationMode)
	if err != nil {
		return nil, errors.WithMessage(err, "copy_into")
	}
	options, err := c.Options.options()
	if err != nil {
		return nil, errors.WithMessage(err, "copy_into")
	}

	b := querybuilder.NewCopyInto().
		WithTarget(target).
		WithSource(source).
		WithValidationMode(validationMode).
		WithOptions(options)
	if c.Pattern != "" {
		b.WithPattern(c.Pattern)
	}
	if fileFormat != nil {
		b.WithFileFormat(*fileFormat)
	}
	if len(c.Files) > 0 {
		b.WithFiles(c.Files...)
	}
	return b.Build()
}
