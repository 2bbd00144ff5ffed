package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snowforge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfigFile(t, "account: acme-xy12345\n")

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "acme-xy12345", cfg.Account)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, time.Second, cfg.RetryBackoff)
	assert.False(t, cfg.AbortSessionOnClose)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, LogFormatText, cfg.LogFormat)
}

func TestLoad_File(t *testing.T) {
	path := writeConfigFile(t, `
account: acme-xy12345
user: loader
password: secret
warehouse: LOAD_WH
database: RAW
schema: PUBLIC
role: LOADER
max_retries: 5
retry_backoff: 250ms
abort_session_on_close: true
log_format: json
session_parameters:
  QUERY_TAG: snowforge
  TIMEZONE: UTC
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "loader", cfg.User)
	assert.Equal(t, "LOAD_WH", cfg.Warehouse)
	assert.Equal(t, "RAW", cfg.Database)
	assert.Equal(t, "PUBLIC", cfg.Schema)
	assert.Equal(t, "LOADER", cfg.Role)
	assert.Equal(t, 5, cfg.MaxRetries)
	assert.Equal(t, 250*time.Millisecond, cfg.RetryBackoff)
	assert.True(t, cfg.AbortSessionOnClose)
	assert.Equal(t, LogFormatJSON, cfg.LogFormat)
	assert.Equal(t, map[string]string{"QUERY_TAG": "snowforge", "TIMEZONE": "UTC"}, cfg.SessionParameters)
}

func TestLoad_Precedence(t *testing.T) {
	path := writeConfigFile(t, `
account: from-file
user: from-file
warehouse: from-file
`)
	t.Setenv("SNOWFLAKE_USER", "from-env")
	t.Setenv("SNOWFLAKE_WAREHOUSE", "from-env")
	t.Setenv("SNOWFLAKE_MAX_RETRIES", "7")
	t.Setenv("SNOWFLAKE_SESSION_PARAM_QUERY_TAG", "nightly")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("warehouse", "", "")
	flags.String("log-level", "", "")
	flags.String("file", "", "")
	require.NoError(t, flags.Parse([]string{"--warehouse", "from-flag", "--log-level", "debug", "--file", "manifest.yaml"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.Account)
	assert.Equal(t, "from-env", cfg.User)
	assert.Equal(t, "from-flag", cfg.Warehouse)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 7, cfg.MaxRetries)
	assert.Equal(t, "nightly", cfg.SessionParameters["QUERY_TAG"])
}

func TestLoad_UnsetFlagsDoNotOverride(t *testing.T) {
	path := writeConfigFile(t, "warehouse: from-file\n")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("warehouse", "flag-default", "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Warehouse)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{env: "SNOWFLAKE_ACCOUNT", want: "account"},
		{env: "SNOWFLAKE_ABORT_SESSION_ON_CLOSE", want: "abort_session_on_close"},
		{env: "SNOWFLAKE_SESSION_PARAM_QUERY_TAG", want: "session_parameters.QUERY_TAG"},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			if got := envKey(tt.env); got != tt.want {
				t.Errorf("envKey() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{Account: "a", User: "u", Password: "p", LogFormat: LogFormatText}

	tests := []struct {
		name      string
		mutate    func(c *Config)
		errSubstr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing credentials", mutate: func(c *Config) { c.User, c.Password = "", "" }, errSubstr: "missing required config: user, password"},
		{name: "missing account", mutate: func(c *Config) { c.Account = "" }, errSubstr: "account"},
		{name: "bad log format", mutate: func(c *Config) { c.LogFormat = "xml" }, errSubstr: "unsupported log_format"},
		{name: "negative backoff", mutate: func(c *Config) { c.RetryBackoff = -time.Second }, errSubstr: "retry_backoff"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.errSubstr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestConfig_ClientConfig(t *testing.T) {
	cfg := Config{
		Account:             "acme",
		User:                "loader",
		Password:            "secret",
		Warehouse:           "LOAD_WH",
		SessionParameters:   map[string]string{"QUERY_TAG": "x"},
		MaxRetries:          2,
		RetryBackoff:        time.Millisecond,
		AbortSessionOnClose: true,
	}

	client := cfg.ClientConfig()
	assert.Equal(t, "acme", client.Account)
	assert.Equal(t, "LOAD_WH", client.Warehouse)
	assert.Equal(t, 2, client.MaxRetries)
	assert.Equal(t, time.Millisecond, client.RetryBackoff)
	assert.True(t, client.AbortSessionOnClose)

	client.SessionParameters["QUERY_TAG"] = "changed"
	assert.Equal(t, "x", cfg.SessionParameters["QUERY_TAG"])
}

func TestLoad_ZeroMaxRetriesDisablesRetries(t *testing.T) {
	path := writeConfigFile(t, "account: acme\n")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("max-retries", 3, "")
	require.NoError(t, flags.Parse([]string{"--max-retries", "0"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.MaxRetries)
	assert.Equal(t, -1, cfg.ClientConfig().MaxRetries)

	cfg, err = Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.ClientConfig().MaxRetries)
}
