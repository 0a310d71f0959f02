package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type BotConfig struct {
	Token string `yaml:"token"`
	// Username is the bot's @-name used to format referral deep links.
	// Left empty it is filled from the Telegram API at startup.
	Username string `yaml:"username"`
	Workers  int    `yaml:"workers"` // polling workers
	AdminID  int64  `yaml:"admin_id"`
}

type GateConfig struct {
	// Channel is the gate channel, with leading '@' (e.g. "@mychannel").
	Channel string `yaml:"channel"`
	// GroupID is the private group rewarded invites point at.
	GroupID int64 `yaml:"group_id"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // trace|debug|info|warn|error
	Format string `yaml:"format"` // json|console
}

type DatabaseConfig struct {
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	MaxConns int    `yaml:"max_conns"`
}

// DSN returns the explicit URL when set, otherwise one assembled from the
// host/name/credentials parts.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.Name,
	}
	return u.String()
}

type RedisConfig struct {
	Addr     string `yaml:"addr"` // empty disables the inbound rate limiter
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type AdminConfig struct {
	Port int `yaml:"port"` // /healthz and /metrics listener
}

type Config struct {
	Bot      BotConfig      `yaml:"bot"`
	Gate     GateConfig     `yaml:"gate"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Admin    AdminConfig    `yaml:"admin"`
}

// LoadConfig reads an optional YAML file and then applies environment
// variables on top; env is the deployment surface, the file is a
// convenience for local runs. Missing required values are an error so the
// process never starts with the gate or broadcast undefined.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		case os.IsNotExist(err):
			// env-only deployment
		default:
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() error {
	setStr(&c.Bot.Token, "BOT_TOKEN")
	setStr(&c.Bot.Username, "BOT_USERNAME")
	setStr(&c.Gate.Channel, "CHANNEL_USERNAME")
	setStr(&c.Log.Level, "LOG_LEVEL")
	setStr(&c.Log.Format, "LOG_FORMAT")
	setStr(&c.Database.URL, "DATABASE_URL")
	setStr(&c.Database.Host, "DB_HOST")
	setStr(&c.Database.Name, "DB_NAME")
	setStr(&c.Database.User, "DB_USER")
	setStr(&c.Database.Password, "DB_PASSWORD")
	setStr(&c.Redis.Addr, "REDIS_ADDR")
	setStr(&c.Redis.Password, "REDIS_PASSWORD")

	for _, v := range []struct {
		dst  *int64
		name string
	}{
		{&c.Gate.GroupID, "GROUP_ID"},
		{&c.Bot.AdminID, "ADMIN_ID"},
	} {
		if s := os.Getenv(v.name); s != "" {
			n, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return fmt.Errorf("%s: %w", v.name, err)
			}
			*v.dst = n
		}
	}
	for _, v := range []struct {
		dst  *int
		name string
	}{
		{&c.Database.Port, "DB_PORT"},
		{&c.Database.MaxConns, "DB_MAX_CONNS"},
		{&c.Redis.DB, "REDIS_DB"},
		{&c.Admin.Port, "HTTP_PORT"},
		{&c.Bot.Workers, "BOT_WORKERS"},
	} {
		if s := os.Getenv(v.name); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil {
				return fmt.Errorf("%s: %w", v.name, err)
			}
			*v.dst = n
		}
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Bot.Workers <= 0 {
		c.Bot.Workers = 4
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.MaxConns <= 0 {
		c.Database.MaxConns = 10
	}
	if c.Admin.Port == 0 {
		c.Admin.Port = 9090
	}
}

func (c *Config) validate() error {
	if c.Bot.Token == "" {
		return errors.New("bot token is required (BOT_TOKEN)")
	}
	if c.Gate.Channel == "" {
		return errors.New("gate channel is required (CHANNEL_USERNAME)")
	}
	if c.Gate.GroupID == 0 {
		return errors.New("reward group id is required (GROUP_ID)")
	}
	if c.Bot.AdminID == 0 {
		return errors.New("admin id is required (ADMIN_ID)")
	}
	if c.Database.URL == "" && (c.Database.Host == "" || c.Database.Name == "") {
		return errors.New("database connection is required (DATABASE_URL or DB_HOST/DB_NAME)")
	}
	return nil
}

func setStr(dst *string, name string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}
