package config

import (
	"os"
	"strings"
	"time"

	"github.com/iancoleman/strcase"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	configFileENV     = "CONFIG_FILE"
	defaultConfigFile = "/config/woodstock.yaml"
)

type Config struct {
	DatabaseBusyTimeout       time.Duration `koanf:"database_busy_timeout"`
	DatabaseConnectRetryCount int           `koanf:"database_connect_retry_count"`
	DatabaseConnectRetryDelay time.Duration `koanf:"database_connect_retry_delay"`
	DatabaseDebug             bool          `koanf:"database_debug"`
	DatabaseFilePath          string        `koanf:"database_file_path"`
	Hostname                  string        `koanf:"-"`
	JWTSecret                 string        `koanf:"jwt_secret"`
	MaxCopies                 int           `koanf:"max_copies"`
	OrganizationName          string        `koanf:"organization_name"`
	PrintTimeout              time.Duration `koanf:"print_timeout"`
	ServerHost                string        `koanf:"server_host"`
	ServerPort                int           `koanf:"server_port"`
	StandardDryThicknesses    []int         `koanf:"standard_dry_thicknesses"`
	TargetMoisturePercent     float64       `koanf:"target_moisture_percent"`
}

// required lists the struct fields that must be set either in the config file
// or through the environment.
var required = []string{"DatabaseFilePath", "JWTSecret"}

func defaults() *Config {
	return &Config{
		DatabaseBusyTimeout:       5 * time.Second,
		DatabaseConnectRetryCount: 5,
		DatabaseConnectRetryDelay: 2 * time.Second,
		MaxCopies:                 50,
		OrganizationName:          "MALLO BOIS",
		PrintTimeout:              10 * time.Second,
		ServerHost:                "0.0.0.0",
		ServerPort:                5000,
		StandardDryThicknesses:    []int{27, 32, 45, 50, 80},
		TargetMoisturePercent:     8,
	}
}

// New loads the configuration from the YAML file pointed to by CONFIG_FILE
// and overlays any environment variable named after a config key.
func New() (*Config, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	k := koanf.New(".")

	path := os.Getenv(configFileENV)
	if path == "" {
		path = defaultConfigFile
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "failed to load config file %s", path)
		}
	}

	known := knownKeys()
	err = k.Load(env.Provider("", ".", func(s string) string {
		key := strings.ToLower(s)
		if _, ok := known[key]; !ok {
			return ""
		}
		return key
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load environment config")
	}

	cfg := defaults()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, errors.WithStack(err)
	}
	cfg.Hostname = hostname

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewForTest returns a config suitable for unit tests, backed by an in-memory
// database.
func NewForTest() *Config {
	cfg := defaults()
	cfg.DatabaseFilePath = ":memory:"
	cfg.JWTSecret = "test-secret"
	cfg.ServerHost = "127.0.0.1"
	cfg.PrintTimeout = 2 * time.Second
	return cfg
}

func (cfg *Config) validate() error {
	missing := []string{}
	values := map[string]string{
		"DatabaseFilePath": cfg.DatabaseFilePath,
		"JWTSecret":        cfg.JWTSecret,
	}
	for _, field := range required {
		if values[field] == "" {
			key := toSnakeCase(field)
			missing = append(missing, strings.ToUpper(key)+" ("+key+")")
		}
	}
	if len(missing) > 0 {
		return errors.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}
	if cfg.MaxCopies < 1 {
		return errors.New("max_copies must be at least 1")
	}
	if cfg.TargetMoisturePercent < 0 {
		return errors.New("target_moisture_percent can't be negative")
	}
	return nil
}

func knownKeys() map[string]struct{} {
	keys := map[string]struct{}{}
	for _, name := range []string{
		"DatabaseBusyTimeout",
		"DatabaseConnectRetryCount",
		"DatabaseConnectRetryDelay",
		"DatabaseDebug",
		"DatabaseFilePath",
		"JWTSecret",
		"MaxCopies",
		"OrganizationName",
		"PrintTimeout",
		"ServerHost",
		"ServerPort",
		"StandardDryThicknesses",
		"TargetMoisturePercent",
	} {
		keys[toSnakeCase(name)] = struct{}{}
	}
	return keys
}

func toSnakeCase(s string) string {
	return strcase.ToSnake(s)
}
