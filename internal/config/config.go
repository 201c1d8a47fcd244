package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the configuration of the path analysis service.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Render    RenderConfig    `mapstructure:"render"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
	BodyLimit    int    `mapstructure:"body_limit"`
	StaticDir    string `mapstructure:"static_dir"`
}

type RenderConfig struct {
	Width       int     `mapstructure:"width"`
	Height      int     `mapstructure:"height"`
	StrokeWidth float32 `mapstructure:"stroke_width"`
}

type CacheConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Addr       string `mapstructure:"addr"`
	TTLSeconds int    `mapstructure:"ttl_seconds"`
}

type TelemetryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	ServiceName string  `mapstructure:"service_name"`
	Exporter    string  `mapstructure:"exporter"`
	Endpoint    string  `mapstructure:"endpoint"`
	SampleRatio float64 `mapstructure:"sample_ratio"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables.
func Load(service string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.body_limit", 16*1024*1024)
	v.SetDefault("server.static_dir", "frontend")
	v.SetDefault("render.width", 640)
	v.SetDefault("render.height", 480)
	v.SetDefault("render.stroke_width", 1.5)
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.addr", "localhost:6379")
	v.SetDefault("cache.ttl_seconds", 3600)
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", service)
	v.SetDefault("telemetry.exporter", "stdout")
	v.SetDefault("telemetry.endpoint", "localhost:4317")
	v.SetDefault("telemetry.sample_ratio", 1.0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig()

	// Environment variables: GCPATH_SERVER_PORT → server.port
	v.SetEnvPrefix("GCPATH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}
	if c.Server.BodyLimit <= 0 {
		errs = append(errs, "server.body_limit must be positive")
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		errs = append(errs, fmt.Sprintf("render size must be positive, got %dx%d",
			c.Render.Width, c.Render.Height))
	}
	if c.Render.StrokeWidth <= 0 {
		errs = append(errs, "render.stroke_width must be positive")
	}
	if c.Cache.Enabled {
		if c.Cache.Addr == "" {
			errs = append(errs, "cache.addr is required when the cache is enabled")
		}
		if c.Cache.TTLSeconds <= 0 {
			errs = append(errs, "cache.ttl_seconds must be positive")
		}
	}
	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		errs = append(errs, fmt.Sprintf("telemetry.sample_ratio must be 0-1, got %v",
			c.Telemetry.SampleRatio))
	}
	switch strings.ToLower(c.Telemetry.Exporter) {
	case "stdout", "otlp", "otlpgrpc":
	default:
		errs = append(errs, fmt.Sprintf("telemetry.exporter must be stdout or otlp, got %q",
			c.Telemetry.Exporter))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
