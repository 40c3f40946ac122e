package server

import (
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/oarkflow/logintheme/errors"
	"github.com/oarkflow/logintheme/manage"
)

// fixture store drivers
const (
	DriverMemory = "memory"
	DriverBunt   = "buntdb"
	DriverSQLite = "sqlite"
)

// Config configuration parameters
type Config struct {
	Addr              string        `env:"LOGINTHEME_ADDR"`                // listen address
	RealmURL          string        `env:"LOGINTHEME_REALM_URL"`           // realm the preview fixtures point at
	FixturesDriver    string        `env:"LOGINTHEME_FIXTURES_DRIVER"`     // memory, buntdb or sqlite
	FixturesPath      string        `env:"LOGINTHEME_FIXTURES_PATH"`       // database path of the fixture store
	LocaleCookie      string        `env:"LOGINTHEME_LOCALE_COOKIE"`       // cookie holding the selected locale
	HonorServerLocale bool          `env:"LOGINTHEME_HONOR_SERVER_LOCALE"` // fall back to the server locale instead of "en"
	DoUseDefaultCss   bool          `env:"LOGINTHEME_DEFAULT_CSS"`
	ClassesFile       string        `env:"LOGINTHEME_CLASSES_FILE"` // TOML style role overrides
	ReadyTimeout      time.Duration `env:"LOGINTHEME_READY_TIMEOUT"`
	PreviewCacheTTL   time.Duration `env:"LOGINTHEME_PREVIEW_CACHE_TTL"` // zero disables the preview cache
	BodyLimit         int           `env:"LOGINTHEME_BODY_LIMIT"`
	LogLevel          string        `env:"LOGINTHEME_LOG_LEVEL"`
	Development       bool          `env:"LOGINTHEME_DEVELOPMENT"`
}

// NewConfig create to configuration instance
func NewConfig() *Config {
	return &Config{
		Addr:            ":8080",
		RealmURL:        "http://localhost:8080/realms/demo",
		FixturesDriver:  DriverBunt,
		FixturesPath:    ":memory:",
		LocaleCookie:    "selectedLanguage",
		DoUseDefaultCss: true,
		ReadyTimeout:    5 * time.Second,
		PreviewCacheTTL: 5 * time.Minute,
		BodyLimit:       1 << 20,
		LogLevel:        "info",
	}
}

// LoadConfig the defaults overridden by the environment; files are optional .env files
func LoadConfig(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}
	cfg := NewConfig()
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// ManagerConfig the page manager settings of cfg
func (cfg *Config) ManagerConfig() (*manage.Config, error) {
	mc := &manage.Config{
		DoUseDefaultCss:   cfg.DoUseDefaultCss,
		HonorServerLocale: cfg.HonorServerLocale,
		ResourcesBase:     ResourcesPath,
		LocalePath:        LocalePath,
		ReadyTimeout:      cfg.ReadyTimeout,
	}
	if cfg.ClassesFile != "" {
		classes, err := manage.LoadClasses(cfg.ClassesFile)
		if err != nil {
			return nil, err
		}
		mc.Classes = classes
	}
	return mc, nil
}

// NewLogger a production logger, or a development one when cfg.Development is set
func NewLogger(cfg *Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
