package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Store    StoreConfig
	Sheets   SheetsConfig
	Redis    RedisConfig
	SMTP     SMTPConfig
	Twilio   TwilioConfig
	Telegram TelegramConfig
	Session  SessionConfig

	CatalogPath    string `env:"CATALOG_PATH"    env-default:""`
	MetricsEnabled bool   `env:"METRICS_ENABLED" env-default:"true"`
}

type ServerConfig struct {
	Addr         string        `env:"ADDR"                 env-default:":8080"`
	Debug        bool          `env:"DEBUG"                env-default:"false"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT"  env-default:"10s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT"  env-default:"60s"`
}

type LoggerConfig struct {
	Level string `env:"LOG_LEVEL" env-default:"info"`
}

type StoreConfig struct {
	Backend       string `env:"STORE_BACKEND"  env-default:"memory"`
	SQLitePath    string `env:"SQLITE_PATH"    env-default:"brisa.db"`
	MigrationsDir string `env:"MIGRATIONS_DIR" env-default:"migrations"`
}

type SheetsConfig struct {
	CredentialsFile string `env:"GOOGLE_CREDENTIALS_FILE" env-default:""`
	Spreadsheet     string `env:"SPREADSHEET"             env-default:""`
	Worksheet       string `env:"SPREADSHEET_WORKSHEET"   env-default:"Reservations"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"     env-default:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD" env-default:""`
	DB       int    `env:"REDIS_DB"       env-default:"0"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"  env-default:"smtp.gmail.com"`
	Port     int    `env:"SMTP_PORT"  env-default:"587"`
	Username string `env:"EMAIL_USER" env-default:""`
	Password string `env:"EMAIL_PASS" env-default:""`
	From     string `env:"EMAIL_FROM" env-default:""`
}

type TwilioConfig struct {
	AccountSID string `env:"TWILIO_ACCOUNT_SID" env-default:""`
	AuthToken  string `env:"TWILIO_AUTH_TOKEN"  env-default:""`
	From       string `env:"TWILIO_FROM"        env-default:""`
}

type TelegramConfig struct {
	BotToken string `env:"TELEGRAM_BOT_TOKEN" env-default:""`
	ChatID   int64  `env:"TELEGRAM_CHAT_ID"   env-default:"0"`
}

type SessionConfig struct {
	Lifetime time.Duration `env:"SESSION_LIFETIME" env-default:"24h"`
}

const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendSheets = "sheets"
	BackendRedis  = "redis"
)

// Load reads .env when present and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

func (c *Config) Validate() error {
	c.Store.Backend = strings.ToLower(strings.TrimSpace(c.Store.Backend))
	switch c.Store.Backend {
	case "":
		c.Store.Backend = BackendMemory
	case BackendMemory, BackendSQLite, BackendRedis:
	case BackendSheets:
		if c.Sheets.CredentialsFile == "" || c.Sheets.Spreadsheet == "" {
			return fmt.Errorf("sheets backend needs GOOGLE_CREDENTIALS_FILE and SPREADSHEET")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend)
	}
	if _, err := c.Logger.SlogLevel(); err != nil {
		return err
	}
	return nil
}

func (l LoggerConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if l.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q: %w", l.Level, err)
	}
	return level, nil
}

// EmailEnabled reports whether SMTP credentials are complete. Without them email is skipped.
func (c SMTPConfig) EmailEnabled() bool {
	return c.Host != "" && c.Username != "" && c.Password != ""
}

func (c TwilioConfig) SMSEnabled() bool {
	return c.AccountSID != "" && c.AuthToken != "" && c.From != ""
}

func (c TelegramConfig) ChatEnabled() bool {
	return c.BotToken != "" && c.ChatID != 0
}
