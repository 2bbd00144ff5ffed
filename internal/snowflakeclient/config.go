package snowflakeclient

import (
	"time"

	"github.com/pingcap/errors"
	"github.com/snowflakedb/gosnowflake"
)

const (
	DefaultMaxRetries   = 3
	DefaultRetryBackoff = time.Second
)

// Config holds the connection parameters of a Snowflake session.
type Config struct {
	Account           string
	User              string
	Password          string
	Warehouse         string
	Database          string
	Schema            string
	Role              string
	SessionParameters map[string]string

	// MaxRetries bounds how often the outermost transaction is replayed after a
	// transient connection error. Zero means DefaultMaxRetries, a negative value
	// disables retries.
	MaxRetries   int
	RetryBackoff time.Duration

	// AbortSessionOnClose issues SYSTEM$ABORT_SESSION before the connection is released.
	AbortSessionOnClose bool
}

func (c Config) withDefaults() Config {
	switch {
	case c.MaxRetries == 0:
		c.MaxRetries = DefaultMaxRetries
	case c.MaxRetries < 0:
		c.MaxRetries = 0
	}
	if c.RetryBackoff <= 0 {
		c.RetryBackoff = DefaultRetryBackoff
	}
	return c
}

// DSN renders the gosnowflake connection string.
func (c Config) DSN() (string, error) {
	if c.Account == "" {
		return "", errors.New("account cannot be empty")
	}
	if c.User == "" {
		return "", errors.New("user cannot be empty")
	}

	params := make(map[string]*string, len(c.SessionParameters))
	for k, v := range c.SessionParameters {
		value := v
		params[k] = &value
	}

	dsn, err := gosnowflake.DSN(&gosnowflake.Config{
		Account:   c.Account,
		User:      c.User,
		Password:  c.Password,
		Warehouse: c.Warehouse,
		Database:  c.Database,
		Schema:    c.Schema,
		Role:      c.Role,
		Params:    params,
	})
	if err != nil {
		return "", errors.WithMessage(err, "error building snowflake DSN")
	}
	return dsn, nil
}
