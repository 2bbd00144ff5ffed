package querybuilder

// StageParams is the storage location clause of a stage: InternalStageParams,
// S3StageParams, GCSStageParams, AzureStageParams or S3CompatibleStageParams.
type StageParams interface {
	Statement
	isStageParams()
}

type InternalStageParams struct {
	Encryption map[string]string `yaml:"encryption"`
}

func (p *InternalStageParams) isStageParams() {}

func (p *InternalStageParams) SQL() string {
	var c clauses
	c.add(encryptionClause(p.Encryption))
	return c.join(" ")
}

type S3StageParams struct {
	URL                string            `yaml:"url"`
	StorageIntegration *string           `yaml:"storage_integration"`
	Credentials        map[string]string `yaml:"credentials"`
	Encryption         map[string]string `yaml:"encryption"`
}

func (p *S3StageParams) isStageParams() {}

func (p *S3StageParams) SQL() string {
	c := clauses{"URL = " + QuoteString(p.URL)}
	c.addIdent("STORAGE_INTEGRATION", p.StorageIntegration)
	if len(p.Credentials) > 0 {
		c.add("CREDENTIALS = (" + formatParams(p.Credentials, " ") + ")")
	}
	c.add(encryptionClause(p.Encryption))
	return c.join(" ")
}

type GCSStageParams struct {
	URL                string            `yaml:"url"`
	StorageIntegration *string           `yaml:"storage_integration"`
	Encryption         map[string]string `yaml:"encryption"`
}

func (p *GCSStageParams) isStageParams() {}

func (p *GCSStageParams) SQL() string {
	c := clauses{"URL = " + QuoteString(p.URL)}
	c.addIdent("STORAGE_INTEGRATION", p.StorageIntegration)
	c.add(encryptionClause(p.Encryption))
	return c.join(" ")
}

type AzureStageParams struct {
	URL                string            `yaml:"url"`
	StorageIntegration *string           `yaml:"storage_integration"`
	Encryption         map[string]string `yaml:"encryption"`
}

func (p *AzureStageParams) isStageParams() {}

func (p *AzureStageParams) SQL() string {
	c := clauses{"URL = " + QuoteString(p.URL)}
	c.addIdent("STORAGE_INTEGRATION", p.StorageIntegration)
	c.add(encryptionClause(p.Encryption))
	return c.join(" ")
}

// S3CompatibleStageParams targets S3 API compatible storage behind a custom endpoint.
type S3CompatibleStageParams struct {
	URL                string            `yaml:"url"`
	StorageIntegration *string           `yaml:"storage_integration"`
	Endpoint           string            `yaml:"endpoint"`
	Encryption         map[string]string `yaml:"encryption"`
}

func (p *S3CompatibleStageParams) isStageParams() {}

func (p *S3CompatibleStageParams) SQL() string {
	c := clauses{"URL = " + QuoteString(p.URL)}
	c.addIdent("STORAGE_INTEGRATION", p.StorageIntegration)
	c.addString("ENDPOINT", &p.Endpoint)
	c.add(encryptionClause(p.Encryption))
	return c.join(" ")
}

func encryptionClause(m map[string]string) string {
	if len(m) == 0 {
		return ""
	}
	return "ENCRYPTION = (" + formatParams(m, " ") + ")"
}

// DirectoryTableParams is the DIRECTORY clause of a stage.
type DirectoryTableParams interface {
	Statement
	isDirectoryTableParams()
}

// DirectoryOptions holds the flags shared by every directory table backend.
type DirectoryOptions struct {
	Enable          bool `yaml:"enable"`
	RefreshOnCreate bool `yaml:"refresh_on_create"`
}

func (o DirectoryOptions) clauses() clauses {
	var c clauses
	c.addFlag("ENABLE", o.Enable)
	c.addFlag("REFRESH_ON_CREATE", o.RefreshOnCreate)
	return c
}

func directoryClause(c clauses) string {
	return "DIRECTORY = (" + c.join(" ") + ")"
}

type InternalDirectoryParams struct {
	DirectoryOptions `yaml:",inline"`
}

func (p *InternalDirectoryParams) isDirectoryTableParams() {}

func (p *InternalDirectoryParams) SQL() string {
	return directoryClause(p.clauses())
}

type S3DirectoryParams struct {
	DirectoryOptions        `yaml:",inline"`
	AWSSNSTopic             *string `yaml:"aws_sns_topic"`
	AWSRole                 *string `yaml:"aws_role"`
	NotificationIntegration *string `yaml:"notification_integration"`
}

func (p *S3DirectoryParams) isDirectoryTableParams() {}

func (p *S3DirectoryParams) SQL() string {
	c := p.clauses()
	c.addString("AWS_SNS_TOPIC", p.AWSSNSTopic)
	c.addString("AWS_ROLE", p.AWSRole)
	c.addIdent("NOTIFICATION_INTEGRATION", p.NotificationIntegration)
	return directoryClause(c)
}

type GCSDirectoryParams struct {
	DirectoryOptions        `yaml:",inline"`
	NotificationIntegration *string `yaml:"notification_integration"`
}

func (p *GCSDirectoryParams) isDirectoryTableParams() {}

func (p *GCSDirectoryParams) SQL() string {
	c := p.clauses()
	c.addIdent("NOTIFICATION_INTEGRATION", p.NotificationIntegration)
	return directoryClause(c)
}

type AzureDirectoryParams struct {
	DirectoryOptions        `yaml:",inline"`
	NotificationIntegration *string `yaml:"notification_integration"`
}

func (p *AzureDirectoryParams) isDirectoryTableParams() {}

func (p *AzureDirectoryParams) SQL() string {
	c := p.clauses()
	c.addIdent("NOTIFICATION_INTEGRATION", p.NotificationIntegration)
	return directoryClause(c)
}
