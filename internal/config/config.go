package config

import (
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/pingcap/errors"
	"github.com/spf13/pflag"

	"github.com/anglinb/snowforge/internal/snowflakeclient"
)

const (
	DefaultConfigFile = "snowforge.yaml"
	EnvPrefix         = "SNOWFLAKE_"

	// sessionParamEnvPrefix maps SNOWFLAKE_SESSION_PARAM_QUERY_TAG=x to the
	// QUERY_TAG session parameter.
	sessionParamEnvPrefix = EnvPrefix + "SESSION_PARAM_"

	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config is the resolved connection and logging configuration.
type Config struct {
	Account             string            `koanf:"account"`
	User                string            `koanf:"user"`
	Password            string            `koanf:"password"`
	Warehouse           string            `koanf:"warehouse"`
	Database            string            `koanf:"database"`
	Schema              string            `koanf:"schema"`
	Role                string            `koanf:"role"`
	SessionParameters   map[string]string `koanf:"session_parameters"`
	MaxRetries          int               `koanf:"max_retries"`
	RetryBackoff        time.Duration     `koanf:"retry_backoff"`
	AbortSessionOnClose bool              `koanf:"abort_session_on_close"`
	LogLevel            string            `koanf:"log_level"`
	LogFormat           string            `koanf:"log_format"`
}

// ignoredFlags are CLI flags that select inputs rather than configure the connection.
var ignoredFlags = map[string]bool{
	"config": true,
	"file":   true,
}

// Load resolves configuration from, lowest to highest precedence: defaults,
// the config file, SNOWFLAKE_* environment variables and explicitly set flags.
// An empty cfgFile falls back to snowforge.yaml in the working directory when
// it exists. The result is not validated; see Validate.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"max_retries":            snowflakeclient.DefaultMaxRetries,
		"retry_backoff":          snowflakeclient.DefaultRetryBackoff.String(),
		"abort_session_on_close": false,
		"log_level":              "info",
		"log_format":             LogFormatText,
	}, "."), nil); err != nil {
		return nil, errors.WithMessage(err, "failed to load defaults")
	}

	path := cfgFile
	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			path = DefaultConfigFile
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.WithMessage(err, "error reading config file "+path)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.WithMessage(err, "failed to load env vars")
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed || ignoredFlags[f.Name] {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, errors.WithMessage(err, "failed to load flags")
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.WithMessage(err, "unable to decode config")
	}
	return &cfg, nil
}

// envKey turns SNOWFLAKE_MAX_RETRIES into max_retries. Session parameters keep
// their upper case name under session_parameters.
func envKey(s string) string {
	if name, ok := strings.CutPrefix(s, sessionParamEnvPrefix); ok {
		return "session_parameters." + name
	}
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// Validate checks the settings needed to open a connection.
func (c *Config) Validate() error {
	var missing []string
	if c.Account == "" {
		missing = append(missing, "account")
	}
	if c.User == "" {
		missing = append(missing, "user")
	}
	if c.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return errors.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}

	switch c.LogFormat {
	case "", LogFormatText, LogFormatJSON:
	default:
		return errors.Errorf("unsupported log_format %q", c.LogFormat)
	}
	if c.RetryBackoff < 0 {
		return errors.Errorf("retry_backoff must not be negative, got %s", c.RetryBackoff)
	}
	return nil
}

// ClientConfig converts the resolved settings into session configuration.
func (c *Config) ClientConfig() snowflakeclient.Config {
	params := make(map[string]string, len(c.SessionParameters))
	for k, v := range c.SessionParameters {
		params[k] = v
	}
	// Load already fills in the default retry count, so a zero here was set
	// explicitly and disables retries.
	maxRetries := c.MaxRetries
	if maxRetries == 0 {
		maxRetries = -1
	}
	return snowflakeclient.Config{
		Account:             c.Account,
		User:                c.User,
		Password:            c.Password,
		Warehouse:           c.Warehouse,
		Database:            c.Database,
		Schema:              c.Schema,
		Role:                c.Role,
		SessionParameters:   params,
		MaxRetries:          maxRetries,
		RetryBackoff:        c.RetryBackoff,
		AbortSessionOnClose: c.AbortSessionOnClose,
	}
}
