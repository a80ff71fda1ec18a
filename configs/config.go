package configs

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "DELIVERY_"

type Config struct {
	App struct {
		Name     string `koanf:"name"`
		Env      string `koanf:"env"`
		HTTPAddr string `koanf:"http_addr"`
		LogLevel string `koanf:"log_level"`
		LogFile  string `koanf:"log_file"`
	} `koanf:"app"`

	HTTP struct {
		ReadTimeout    time.Duration `koanf:"read_timeout"`
		WriteTimeout   time.Duration `koanf:"write_timeout"`
		IdleTimeout    time.Duration `koanf:"idle_timeout"`
		RequestTimeout time.Duration `koanf:"request_timeout"`
		BodyLimit      int64         `koanf:"body_limit"` // bytes, images arrive as data URIs
		CORSOrigins    []string      `koanf:"cors_origins"`
	} `koanf:"http"`

	Storage struct {
		Driver string `koanf:"driver"` // mongo | memory
	} `koanf:"storage"`

	Mongo struct {
		URI            string        `koanf:"uri"`
		Database       string        `koanf:"database"`
		ConnectTimeout time.Duration `koanf:"connect_timeout"`
	} `koanf:"mongo"`

	Redis struct {
		Enabled  bool   `koanf:"enabled"`
		Addr     string `koanf:"addr"`
		Password string `koanf:"password"`
		DB       int    `koanf:"db"`
	} `koanf:"redis"`

	Idempotency struct {
		TTL time.Duration `koanf:"ttl"`
	} `koanf:"idempotency"`

	Events struct {
		Driver string `koanf:"driver"` // none | rabbitmq | kafka
	} `koanf:"events"`

	Rabbit struct {
		URL      string `koanf:"url"`
		Exchange string `koanf:"exchange"`
		Queue    string `koanf:"queue"`
	} `koanf:"rabbitmq"`

	Kafka struct {
		Brokers []string `koanf:"brokers"`
		Topic   string   `koanf:"topic"`
		GroupID string   `koanf:"group_id"`
	} `koanf:"kafka"`

	Security struct {
		JWTSecret    string        `koanf:"jwt_secret"`
		Issuer       string        `koanf:"issuer"`
		Audience     string        `koanf:"audience"`
		SessionTTL   time.Duration `koanf:"session_ttl"`
		CookieName   string        `koanf:"cookie_name"`
		CookieSecure bool          `koanf:"cookie_secure"`
		CookieDomain string        `koanf:"cookie_domain"`
		BcryptCost   int           `koanf:"bcrypt_cost"`
	} `koanf:"security"`

	Media struct {
		CloudName string `koanf:"cloud_name"`
		APIKey    string `koanf:"api_key"`
		APISecret string `koanf:"api_secret"`
		Folder    string `koanf:"folder"`
	} `koanf:"media"`

	Orders struct {
		EnforceTransitions bool `koanf:"enforce_transitions"`
	} `koanf:"orders"`
}

// Load layers base.yaml, <envName>.yaml and DELIVERY_* variables, in that order.
func Load(pathDir, envName string) (Config, error) {
	// local secrets first; real environment still wins for .env
	_ = godotenv.Overload(".env.local")
	_ = godotenv.Load(".env")

	k := koanf.New(".")
	// 1) base
	if err := k.Load(file.Provider(fmt.Sprintf("%s/base.yaml", pathDir)), yaml.Parser()); err != nil {
		return Config{}, fmt.Errorf("load base: %w", err)
	}

	// 2) env override (dev/prod). Optional: allow missing for local runs.
	if envName != "" {
		_ = k.Load(file.Provider(fmt.Sprintf("%s/%s.yaml", pathDir, envName)), yaml.Parser())
	}

	// 3) environment variables override, nested with __
	// e.g. DELIVERY_MONGO__URI, DELIVERY_SECURITY__JWT_SECRET
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, envPrefix)
		s = strings.ReplaceAll(s, "__", ".")
		return strings.ToLower(s)
	}), nil); err != nil {
		return Config{}, fmt.Errorf("env overlay: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	if cfg.App.Env == "" {
		cfg.App.Env = envName
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.App.HTTPAddr == "" {
		errs = append(errs, errors.New("app.http_addr required"))
	}
	if c.Security.JWTSecret == "" {
		errs = append(errs, errors.New("security.jwt_secret required"))
	}
	switch c.Storage.Driver {
	case "mongo":
		if c.Mongo.URI == "" {
			errs = append(errs, errors.New("mongo.uri required for the mongo storage driver"))
		}
	case "memory":
	default:
		errs = append(errs, fmt.Errorf("storage.driver %q: want mongo or memory", c.Storage.Driver))
	}
	switch c.Events.Driver {
	case "", "none":
	case "rabbitmq":
		if c.Rabbit.URL == "" {
			errs = append(errs, errors.New("rabbitmq.url required for the rabbitmq events driver"))
		}
	case "kafka":
		if len(c.Kafka.Brokers) == 0 {
			errs = append(errs, errors.New("kafka.brokers required for the kafka events driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("events.driver %q: want none, rabbitmq or kafka", c.Events.Driver))
	}
	return errors.Join(errs...)
}

// MediaConfigured reports whether a media host account is set.
func (c Config) MediaConfigured() bool {
	return c.Media.CloudName != "" && c.Media.APIKey != "" && c.Media.APISecret != ""
}
