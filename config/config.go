package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	appMiddleware "github.com/FACorreiaa/go-geomapper/app/middleware"
	"github.com/FACorreiaa/go-geomapper/internal/types"
)

//go:embed config.yml
var embeddedConfig []byte

const envPrefix = "GEOMAPPER"

type Config struct {
	Mode   string `mapstructure:"mode"`
	Server struct {
		HTTPPort        string        `mapstructure:"HTTPPort"`
		Timeout         time.Duration `mapstructure:"HTTPTimeout"`
		ReadTimeout     time.Duration `mapstructure:"readTimeout"`
		WriteTimeout    time.Duration `mapstructure:"writeTimeout"`
		IdleTimeout     time.Duration `mapstructure:"idleTimeout"`
		ShutdownTimeout time.Duration `mapstructure:"shutdownTimeout"`
	} `mapstructure:"server"`
	Handlers struct {
		Prometheus struct {
			Enabled bool   `mapstructure:"enabled"`
			Port    string `mapstructure:"port"`
		} `mapstructure:"prometheus"`
		Swagger struct {
			Enabled bool `mapstructure:"enabled"`
		} `mapstructure:"swagger"`
	} `mapstructure:"handlers"`
	AI struct {
		Model       string  `mapstructure:"model"`
		Temperature float32 `mapstructure:"temperature"`
		APIKeyEnv   string  `mapstructure:"apiKeyEnv"`
		APIKey      string  `mapstructure:"apiKey"`
	} `mapstructure:"ai"`
	Region struct {
		Name     string `mapstructure:"name"`
		Language string `mapstructure:"language"`
		Center   struct {
			Lat float64 `mapstructure:"lat"`
			Lng float64 `mapstructure:"lng"`
		} `mapstructure:"center"`
		Zoom   int `mapstructure:"zoom"`
		Bounds struct {
			South float64 `mapstructure:"south"`
			West  float64 `mapstructure:"west"`
			North float64 `mapstructure:"north"`
			East  float64 `mapstructure:"east"`
		} `mapstructure:"bounds"`
		Tolerance float64 `mapstructure:"tolerance"`
		Policy    string  `mapstructure:"policy"`
	} `mapstructure:"region"`
	Route struct {
		Optimize bool `mapstructure:"optimize"`
	} `mapstructure:"route"`
	Session struct {
		Secret     string        `mapstructure:"secret"`
		CookieName string        `mapstructure:"cookieName"`
		Audience   string        `mapstructure:"audience"`
		TTL        time.Duration `mapstructure:"ttl"`
		Secure     bool          `mapstructure:"secure"`
	} `mapstructure:"session"`
	RateLimit struct {
		RPS     float64       `mapstructure:"rps"`
		Burst   int           `mapstructure:"burst"`
		IdleTTL time.Duration `mapstructure:"idleTTL"`
		// TrustedProxies lists the reverse proxies (IPs or CIDRs) whose
		// X-Real-IP / X-Forwarded-For headers are believed.
		TrustedProxies []string `mapstructure:"trustedProxies"`
	} `mapstructure:"ratelimit"`
	CORS struct {
		AllowedOrigins []string `mapstructure:"allowedOrigins"`
	} `mapstructure:"cors"`
	Repositories struct {
		Postgres struct {
			Enabled           bool   `mapstructure:"enabled"`
			Host              string `mapstructure:"host"`
			Password          string `mapstructure:"password"`
			Port              string `mapstructure:"port"`
			Username          string `mapstructure:"username"`
			DB                string `mapstructure:"db"`
			SSLMODE           string `mapstructure:"SSLMODE"`
			MAXCONWAITINGTIME int    `mapstructure:"MAXCONWAITINGTIME"`
		} `mapstructure:"postgres"`
	} `mapstructure:"repositories"`
}

// InitConfig loads config.yml from disk, falling back to the embedded copy, and
// applies GEOMAPPER_* environment overrides (server.HTTPPort -> GEOMAPPER_SERVER_HTTPPORT).
func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.AI.APIKey == "" && config.AI.APIKeyEnv != "" {
		config.AI.APIKey = os.Getenv(config.AI.APIKeyEnv)
	}

	if err = config.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	fmt.Println("Successfully loaded app configs...")
	return config, nil
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.HTTPPort == "" {
		errs = append(errs, errors.New("server.HTTPPort is required"))
	}
	if c.AI.APIKey == "" {
		errs = append(errs, fmt.Errorf("AI API key is not set (env %s or %s_AI_APIKEY)", c.AI.APIKeyEnv, envPrefix))
	}
	if c.AI.Temperature < 0 || c.AI.Temperature > 2 {
		errs = append(errs, fmt.Errorf("ai.temperature must be between 0 and 2, got %v", c.AI.Temperature))
	}
	switch types.RegionPolicy(c.Region.Policy) {
	case types.RegionPolicyAccept, types.RegionPolicyReject:
	default:
		errs = append(errs, fmt.Errorf("region.policy must be %q or %q, got %q",
			types.RegionPolicyAccept, types.RegionPolicyReject, c.Region.Policy))
	}
	b := c.Region.Bounds
	if b.South >= b.North || b.West >= b.East {
		errs = append(errs, errors.New("region.bounds must have south < north and west < east"))
	}
	if c.Region.Tolerance < 0 {
		errs = append(errs, errors.New("region.tolerance must not be negative"))
	}
	if c.Session.CookieName == "" {
		errs = append(errs, errors.New("session.cookieName is required"))
	}
	if c.Session.TTL <= 0 {
		errs = append(errs, errors.New("session.ttl must be positive"))
	}
	if len(c.Session.Secret) < 16 {
		errs = append(errs, errors.New("session.secret must be at least 16 characters"))
	}
	if c.Mode == "production" && c.Session.Secret == "development-only-session-secret" {
		errs = append(errs, errors.New("session.secret must be overridden in production"))
	}
	if c.RateLimit.RPS > 0 && c.RateLimit.Burst < 1 {
		errs = append(errs, errors.New("ratelimit.burst must be at least 1 when rate limiting is enabled"))
	}
	if _, err := appMiddleware.ParseTrustedProxies(c.RateLimit.TrustedProxies); err != nil {
		errs = append(errs, fmt.Errorf("ratelimit.trustedProxies: %w", err))
	}
	if c.Handlers.Prometheus.Enabled && c.Handlers.Prometheus.Port == "" {
		errs = append(errs, errors.New("handlers.prometheus.port is required when prometheus is enabled"))
	}
	if c.Repositories.Postgres.Enabled && c.Repositories.Postgres.Host == "" {
		errs = append(errs, errors.New("repositories.postgres.host is required when postgres is enabled"))
	}

	return errors.Join(errs...)
}

// TargetRegion converts the region section into the domain type.
func (c *Config) TargetRegion() types.Region {
	r := c.Region
	return types.Region{
		Name:        r.Name,
		Language:    r.Language,
		Center:      types.LatLng{Lat: r.Center.Lat, Lng: r.Center.Lng},
		DefaultZoom: r.Zoom,
		Bounds: types.Bounds{
			South: r.Bounds.South,
			West:  r.Bounds.West,
			North: r.Bounds.North,
			East:  r.Bounds.East,
		},
		Tolerance: r.Tolerance,
		Policy:    types.RegionPolicy(r.Policy),
	}
}
