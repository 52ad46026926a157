// Package config loads the process configuration once at startup.
// Business logic never reads ambient environment state; it receives a *Config
// by dependency injection.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	// EnvDevelopment marks a local development deployment.
	EnvDevelopment = "development"
	// EnvProduction marks a production deployment.
	EnvProduction = "production"

	// Development-only fallback signing secrets. Production refuses to start
	// without explicit secrets.
	devAccessSecret  = "change_me"
	devRefreshSecret = "refresh_me"
)

// Config is the root configuration object, built once at process start.
type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port           int      `json:"port" yaml:"port"`
		AllowedOrigins []string `json:"allowedOrigins" yaml:"allowedOrigins"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	SecretKey struct {
		Access  string `json:"access" yaml:"access"`
		Refresh string `json:"refresh" yaml:"refresh"`
	} `json:"secretKey" yaml:"secretKey"`

	Token struct {
		AccessTTL  time.Duration `json:"accessTTL" yaml:"accessTTL"`
		RefreshTTL time.Duration `json:"refreshTTL" yaml:"refreshTTL"`
	} `json:"token" yaml:"token"`

	Auth struct {
		// PublicRoutes bypass the authorization middleware entirely.
		PublicRoutes []string `json:"publicRoutes" yaml:"publicRoutes"`
	} `json:"auth" yaml:"auth"`
}

// Log holds logger settings.
type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// IsProduction reports whether the process runs with production settings.
// It controls the refresh cookie's Secure flag and secret fallback behavior.
func (c *Config) IsProduction() bool {
	return c.Env.Env == EnvProduction
}

// LoadWithEnv loads <env>.yaml from the given search paths and overlays
// environment variables (SECRETKEY_ACCESS -> secretKey.access).
func LoadWithEnv[T any](configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	currEnv := os.Getenv("ENV")
	if currEnv == "" {
		currEnv = EnvDevelopment
	}

	pwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, "get working directory failed")
	}

	searchPaths := make([]string, 0, len(configPath))
	for _, path := range configPath {
		searchPaths = append(searchPaths, filepath.Join(pwd, path))
	}

	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	// Environment variables override file values: SECRETKEY_ACCESS -> secretKey.access.
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			return strings.ReplaceAll(strings.ToLower(k), "_", "."), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides.
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

// New builds the application configuration and applies defaults.
func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() error {
	if c.Env.Env == "" {
		c.Env.Env = EnvDevelopment
	}

	// Secrets are required in production; development falls back to fixed
	// local-only values so the stack runs out of the box.
	if c.SecretKey.Access == "" {
		if c.IsProduction() {
			return errors.New("secretKey.access must be configured in production")
		}
		c.SecretKey.Access = devAccessSecret
	}
	if c.SecretKey.Refresh == "" {
		if c.IsProduction() {
			return errors.New("secretKey.refresh must be configured in production")
		}
		c.SecretKey.Refresh = devRefreshSecret
	}

	if c.Token.AccessTTL <= 0 {
		c.Token.AccessTTL = 15 * time.Minute
	}
	if c.Token.RefreshTTL <= 0 {
		c.Token.RefreshTTL = 7 * 24 * time.Hour
	}

	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8080
	}
	// Cookie-based refresh requires credentialed CORS, which forbids the "*"
	// origin, so the default names the local frontend explicitly.
	if len(c.HTTP.AllowedOrigins) == 0 {
		c.HTTP.AllowedOrigins = []string{"http://localhost:3000"}
	}

	if len(c.Auth.PublicRoutes) == 0 {
		c.Auth.PublicRoutes = []string{
			"/api/user/sign-up",
			"/api/user/sign-in",
			"/api/user/refresh-token",
			"/health",
		}
	}

	return nil
}
