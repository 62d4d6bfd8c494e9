// Package config reads settings from the environment, optionally seeded
// from a .env file.
package config

import (
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const (
	SourceFixture  = "fixture"
	SourcePostgres = "postgres"
)

type Config struct {
	Port        string `mapstructure:"port"`
	LogLevel    string `mapstructure:"log_level"`
	Locale      string `mapstructure:"locale"`
	Source      string `mapstructure:"dataset_source"`
	FixturePath string `mapstructure:"fixture_path"`
	DB          DB     `mapstructure:"db"`
}

type DB struct {
	DSN      string `mapstructure:"dsn"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

// ConnString is DSN when set, otherwise a key/value string built from the
// individual fields.
func (d DB) ConnString() string {
	if strings.TrimSpace(d.DSN) != "" {
		return d.DSN
	}
	return "host=" + d.Host + " user=" + d.User + " password=" + d.Password +
		" dbname=" + d.Name + " port=" + d.Port + " sslmode=" + d.SSLMode
}

// env lists, per key, the variables consulted in order.
var env = map[string][]string{
	"port":           {"PORT"},
	"log_level":      {"LOG_LEVEL"},
	"locale":         {"LOCALE"},
	"dataset_source": {"DATASET_SOURCE"},
	"fixture_path":   {"FIXTURE_PATH"},
	"db.dsn":         {"DB_DSN"},
	"db.host":        {"DB_HOST"},
	"db.port":        {"DB_PORT"},
	"db.user":        {"DB_USER", "POSTGRES_USER"},
	"db.password":    {"DB_PASSWORD", "POSTGRES_PASSWORD"},
	"db.name":        {"DB_NAME", "POSTGRES_DB"},
	"db.sslmode":     {"DB_SSLMODE"},
}

func defaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("locale", "")
	v.SetDefault("dataset_source", SourceFixture)
	v.SetDefault("fixture_path", "")
	v.SetDefault("db.dsn", "")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "postgres")
	v.SetDefault("db.name", "linqsamples")
	v.SetDefault("db.sslmode", "disable")
}

// Load reads .env from the working directory when present, then the
// environment. The result is not validated; callers apply their own
// overrides and then call Validate.
func Load() (Config, error) {
	_ = godotenv.Load()
	return fromEnv()
}

// LoadFile is Load with an explicit .env path that must exist.
func LoadFile(path string) (Config, error) {
	if err := godotenv.Load(path); err != nil {
		return Config{}, errors.Wrapf(err, "load %s", path)
	}
	return fromEnv()
}

func fromEnv() (Config, error) {
	v := viper.New()
	defaults(v)
	for key, names := range env {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return Config{}, errors.Wrapf(err, "bind %s", key)
		}
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "decode config")
	}
	return c, nil
}

func (c Config) Validate() error {
	if !slices.Contains([]string{SourceFixture, SourcePostgres}, c.Source) {
		return errors.Newf("unknown dataset source %q", c.Source)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrapf(err, "log level %q", c.LogLevel)
	}
	return nil
}

// Level is the parsed LogLevel, info when it does not parse.
func (c Config) Level() zerolog.Level {
	l, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return l
}
