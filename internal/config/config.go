package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store      StoreConfig      `yaml:"store" mapstructure:"store"`
	Scoring    ScoringConfig    `yaml:"scoring" mapstructure:"scoring"`
	Allocation AllocationConfig `yaml:"allocation" mapstructure:"allocation"`
	Input      InputConfig      `yaml:"input" mapstructure:"input"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures where allocation runs are persisted.
// Driver is one of "sqlite", "postgres" or "none".
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	MaxConns    int32  `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns    int32  `yaml:"min_conns" mapstructure:"min_conns"`
}

// ScoringConfig holds the officer/site scoring weights and distance caps.
type ScoringConfig struct {
	AvailabilityWeight float64 `yaml:"availability_weight" mapstructure:"availability_weight"`
	SameZoneWeight     float64 `yaml:"same_zone_weight" mapstructure:"same_zone_weight"`
	ProximityWeight    float64 `yaml:"proximity_weight" mapstructure:"proximity_weight"`
	ProximityMaxKM     float64 `yaml:"proximity_max_km" mapstructure:"proximity_max_km"`
	ExitWeight         float64 `yaml:"exit_weight" mapstructure:"exit_weight"`
	ExitMaxKM          float64 `yaml:"exit_max_km" mapstructure:"exit_max_km"`
	ScorePrecision     int     `yaml:"score_precision" mapstructure:"score_precision"`
}

// AllocationConfig configures the allocation engine.
type AllocationConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// InputConfig names the spreadsheet tabs to read. Empty means first sheet.
type InputConfig struct {
	OfficerSheet string `yaml:"officer_sheet" mapstructure:"officer_sheet"`
	SiteSheet    string `yaml:"site_sheet" mapstructure:"site_sheet"`
	ZoneSheet    string `yaml:"zone_sheet" mapstructure:"zone_sheet"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	RateLimit      float64  `yaml:"rate_limit" mapstructure:"rate_limit"`
	Burst          int      `yaml:"burst" mapstructure:"burst"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("FIELDALLOC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "field-allocator.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("scoring.availability_weight", 0.3)
	v.SetDefault("scoring.same_zone_weight", 0.4)
	v.SetDefault("scoring.proximity_weight", 0.4)
	v.SetDefault("scoring.proximity_max_km", 10.0)
	v.SetDefault("scoring.exit_weight", 0.2)
	v.SetDefault("scoring.exit_max_km", 10.0)
	v.SetDefault("scoring.score_precision", 3)
	v.SetDefault("allocation.workers", 1)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_limit", 5.0)
	v.SetDefault("server.burst", 10)
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
