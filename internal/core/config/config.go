package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}

type App struct {
	Name string
	Env  string
	HTTP HTTP
}

type LogFile struct {
	Enable     bool
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type Log struct {
	Level string
	JSON  bool
	File  LogFile
}

type Session struct {
	Secret       string
	Issuer       string
	TTLMin       int
	CookieName   string
	CookieDomain string
	CookieSecure bool
	Store        string // memory | redis
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type DB struct {
	Driver             string // memory | sqlite | postgres | mysql
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	LogLevel           string
	Migrate            string // auto | sql | none
}

type CORS struct {
	AllowOrigins []string
}

type Limits struct {
	RPS           float64
	Burst         int
	MaxConcurrent int64
	MaxBodyBytes  int64
	TimeoutSec    int
}

type Config struct {
	App     App
	Log     Log
	DB      DB
	Session Session
	Redis   Redis `mapstructure:"redis"`
	CORS    CORS
	Limits  Limits
}

const DefaultPath = "./configs/config.local.yaml"

func (c *Config) IsProduction() bool { return c.App.Env == "production" }

// Load reads the config or exits the process.
func Load(path string) *Config {
	c, err := Read(path)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return c
}

// Read loads path (or CONFIG_PATH, or DefaultPath) layered over defaults and
// APP_* environment variables. A missing file is not an error.
func Read(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = DefaultPath
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "job-tracker")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 8080)
	v.SetDefault("app.http.readTimeoutSec", 5)
	v.SetDefault("app.http.writeTimeoutSec", 10)
	v.SetDefault("app.http.idleTimeoutSec", 60)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.file.enable", false)
	v.SetDefault("log.file.filename", "logs/api.log")
	v.SetDefault("log.file.maxSizeMB", 100)
	v.SetDefault("log.file.maxBackups", 5)
	v.SetDefault("log.file.maxAgeDays", 14)
	v.SetDefault("log.file.compress", false)

	v.SetDefault("db.driver", "memory")
	v.SetDefault("db.dsn", "")
	v.SetDefault("db.username", "")
	v.SetDefault("db.password", "")
	v.SetDefault("db.maxOpenConns", 20)
	v.SetDefault("db.maxIdleConns", 10)
	v.SetDefault("db.connMaxLifetimeMin", 30)
	v.SetDefault("db.logLevel", "warn")
	v.SetDefault("db.migrate", "auto")

	// every key needs a default so APP_* variables are seen by Unmarshal
	v.SetDefault("session.secret", "")
	v.SetDefault("session.issuer", "job-tracker")
	v.SetDefault("session.ttlMin", 7*24*60)
	v.SetDefault("session.cookieName", "jt_session")
	v.SetDefault("session.cookieDomain", "")
	v.SetDefault("session.cookieSecure", false)
	v.SetDefault("session.store", "memory")

	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("cors.allowOrigins", []string{"http://localhost:5173"})

	v.SetDefault("limits.rps", 50)
	v.SetDefault("limits.burst", 100)
	v.SetDefault("limits.maxConcurrent", 300)
	v.SetDefault("limits.maxBodyBytes", 4<<20)
	v.SetDefault("limits.timeoutSec", 10)
}

func (c *Config) Validate() error {
	if c.Session.Secret == "" {
		if c.IsProduction() {
			return errors.New("session.secret is required in production")
		}
		c.Session.Secret = "dev-only-insecure-secret"
	}
	switch c.DB.Driver {
	case "memory", "sqlite", "postgres", "mysql":
	default:
		return fmt.Errorf("db.driver %q is not supported", c.DB.Driver)
	}
	switch c.DB.Migrate {
	case "auto", "none":
	case "sql":
		if c.DB.Driver != "postgres" {
			return fmt.Errorf("db.migrate=sql needs db.driver=postgres, got %q", c.DB.Driver)
		}
	default:
		return fmt.Errorf("db.migrate %q is not supported", c.DB.Migrate)
	}
	switch c.Session.Store {
	case "memory", "redis":
	default:
		return fmt.Errorf("session.store %q is not supported", c.Session.Store)
	}
	return c.Limits.validate()
}

// A zero limit would block or time out every request.
func (l Limits) validate() error {
	switch {
	case l.RPS <= 0:
		return fmt.Errorf("limits.rps must be positive, got %v", l.RPS)
	case l.Burst <= 0:
		return fmt.Errorf("limits.burst must be positive, got %d", l.Burst)
	case l.MaxConcurrent <= 0:
		return fmt.Errorf("limits.maxConcurrent must be positive, got %d", l.MaxConcurrent)
	case l.MaxBodyBytes <= 0:
		return fmt.Errorf("limits.maxBodyBytes must be positive, got %d", l.MaxBodyBytes)
	case l.TimeoutSec <= 0:
		return fmt.Errorf("limits.timeoutSec must be positive, got %d", l.TimeoutSec)
	}
	return nil
}
