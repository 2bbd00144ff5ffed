package querybuilder

import (
	"strconv"
	"strings"
)

const (
	minPutParallel = 1
	maxPutParallel = 99
)

type InternalStageKind string

const (
	InternalStageKindNamed InternalStageKind = "named"
	InternalStageKindTable InternalStageKind = "table"
	InternalStageKindUser  InternalStageKind = "user"
)

// InternalStage references a stage a file can be uploaded to with PUT.
type InternalStage struct {
	Kind InternalStageKind
	Name string
}

func NamedStage(name string) InternalStage {
	return InternalStage{Kind: InternalStageKindNamed, Name: name}
}

func TableStage(table string) InternalStage {
	return InternalStage{Kind: InternalStageKindTable, Name: table}
}

func UserStage(path string) InternalStage {
	return InternalStage{Kind: InternalStageKindUser, Name: path}
}

// String renders @%table, @~/path or @name.
func (s InternalStage) String() string {
	switch s.Kind {
	case InternalStageKindTable:
		return "@%" + s.Name
	case InternalStageKindUser:
		return "@~/" + s.Name
	default:
		return "@" + s.Name
	}
}

// PutBuilder is an interface to build PUT statements.
type PutBuilder interface {
	WithFilePath(path string) PutBuilder
	WithStage(stage InternalStage) PutBuilder
	WithParallel(parallel int) PutBuilder
	WithAutoCompress(autoCompress bool) PutBuilder
	WithSourceCompression(compression Compression) PutBuilder
	WithOverwrite(overwrite bool) PutBuilder
	Build() (*Put, error)
}

type Put struct {
	filePath          string
	stage             InternalStage
	parallel          *int
	autoCompress      bool
	sourceCompression Compression
	overwrite         bool
}

func (p *Put) FilePath() string { return p.filePath }
func (p *Put) Stage() InternalStage { return p.stage }

func (p *Put) SQL() string {
	var sb strings.Builder
	sb.WriteString("PUT ")
	sb.WriteString(QuoteString("file://" + p.filePath))
	sb.WriteString(" ")
	sb.WriteString(p.stage.String())
	if p.parallel != nil {
		sb.WriteString(" PARALLEL = ")
		sb.WriteString(strconv.Itoa(*p.parallel))
	}
	if p.autoCompress {
		sb.WriteString(" AUTO_COMPRESS = TRUE")
	}
	sb.WriteString(" SOURCE_COMPRESSION = ")
	sb.WriteString(string(p.sourceCompression))
	if p.overwrite {
		sb.WriteString(" OVERWRITE = TRUE")
	}
	return sb.String()
}

type putBuilder struct {
	put      Put
	stageSet bool
	err      error
}

func NewPut() PutBuilder {
	return &putBuilder{put: Put{autoCompress: true, sourceCompression: CompressionAuto}}
}

func (b *putBuilder) WithFilePath(path string) PutBuilder {
	b.put.filePath = path
	return b
}

func (b *putBuilder) WithStage(stage InternalStage) PutBuilder {
	b.put.stage = stage
	b.stageSet = true
	return b
}

// WithParallel sets the upload thread count. Values outside [1, 99] are
// reported by Build as an *OutOfRangeError; a later valid value replaces it.
func (b *putBuilder) WithParallel(parallel int) PutBuilder {
	if parallel < minPutParallel || parallel > maxPutParallel {
		b.err = outOfRange("parallel", parallel, minPutParallel, maxPutParallel)
		return b
	}
	b.err = nil
	b.put.parallel = &parallel
	return b
}

func (b *putBuilder) WithAutoCompress(autoCompress bool) PutBuilder {
	b.put.autoCompress = autoCompress
	return b
}

func (b *putBuilder) WithSourceCompression(compression Compression) PutBuilder {
	b.put.sourceCompression = compression
	return b
}

func (b *putBuilder) WithOverwrite(overwrite bool) PutBuilder {
	b.put.overwrite = overwrite
	return b
}

func (b *putBuilder) Build() (*Put, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.put.filePath == "" {
		return nil, missing("put", "file_path")
	}
	if !b.stageSet || b.put.stage.Name == "" {
		return nil, missing("put", "stage")
	}
	p := b.put
	if p.sourceCompression == "" {
		p.sourceCompression = CompressionAuto
	}
	return &p, nil
}
