package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port      string `yaml:"port"`
	GinMode   string `yaml:"gin_mode"`
	LogLevel  string `yaml:"log_level"`
	DBPath    string `yaml:"db_path"`
	JWTSecret string `yaml:"jwt_secret"`
	NATSURL   string `yaml:"nats_url"`

	Admin struct {
		Username string `yaml:"username"`
		Password string `yaml:"password"`
	} `yaml:"admin"`

	Checkout struct {
		SubmitTimeout time.Duration `yaml:"submit_timeout"`
	} `yaml:"checkout"`

	Tracking struct {
		// Interval between automatic status advances; 0 leaves status to staff.
		Interval time.Duration `yaml:"interval"`
	} `yaml:"tracking"`

	Session struct {
		IdleTTL time.Duration `yaml:"idle_ttl"`
	} `yaml:"session"`
}

func defaults() *Config {
	cfg := &Config{
		Port:      "8080",
		GinMode:   "debug",
		LogLevel:  "info",
		DBPath:    "cafe.db",
		JWTSecret: "cafe_ordering_dev_secret",
	}
	cfg.Admin.Username = "admin"
	cfg.Admin.Password = "admin123"
	cfg.Checkout.SubmitTimeout = 5 * time.Second
	cfg.Session.IdleTTL = 2 * time.Hour
	return cfg
}

// Load builds the config from defaults, the YAML file named by CAFE_CONFIG
// (if set) and finally environment variables.
func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("CAFE_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if cfg.Checkout.SubmitTimeout <= 0 {
		return nil, fmt.Errorf("checkout.submit_timeout must be positive")
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse yaml: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Port = getEnv("PORT", c.Port)
	c.GinMode = getEnv("GIN_MODE", c.GinMode)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.DBPath = getEnv("DB_PATH", c.DBPath)
	c.JWTSecret = getEnv("JWT_SECRET", c.JWTSecret)
	c.NATSURL = getEnv("NATS_URL", c.NATSURL)
	c.Admin.Username = getEnv("ADMIN_USERNAME", c.Admin.Username)
	c.Admin.Password = getEnv("ADMIN_PASSWORD", c.Admin.Password)

	var err error
	if c.Checkout.SubmitTimeout, err = getDuration("SUBMIT_TIMEOUT", c.Checkout.SubmitTimeout); err != nil {
		return err
	}
	if c.Tracking.Interval, err = getDuration("TRACKING_INTERVAL", c.Tracking.Interval); err != nil {
		return err
	}
	if c.Session.IdleTTL, err = getDuration("SESSION_IDLE_TTL", c.Session.IdleTTL); err != nil {
		return err
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getDuration accepts Go durations ("30s") or plain seconds ("30").
func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
