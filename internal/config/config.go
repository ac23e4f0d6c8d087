package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Mail     MailConfig     `toml:"mail"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Logs     LogsConfig     `toml:"logs"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL.
// URL (переменная окружения DATABASE_URL) имеет приоритет над отдельными полями.
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`

	URL string `toml:"-"`
}

// MailConfig настройки почтового транспорта.
// Секреты (пароль SMTP, ключ SendGrid) приходят только из окружения.
type MailConfig struct {
	Provider    string `toml:"provider"` // smtp | sendgrid | noop
	SMTPHost    string `toml:"smtp_host"`
	SMTPPort    int    `toml:"smtp_port"`
	Username    string `toml:"username"`
	From        string `toml:"from"`
	AdminEmail  string `toml:"admin_email"`
	SendTimeout int    `toml:"send_timeout"`
	QueueSize   int    `toml:"queue_size"`

	Password       string `toml:"-"`
	SendGridAPIKey string `toml:"-"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Load читает конфигурацию из TOML файла и окружения.
// .env подхватывается для локальной разработки, если присутствует.
func Load(path string) (*Config, error) {
	// .env опционален: в проде переменные приходят из окружения процесса
	_ = godotenv.Load()

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyEnv накладывает секреты и переопределения из окружения
func (c *Config) applyEnv() {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.URL = NormalizeDatabaseURL(v)
	}
	if v := os.Getenv("MAIL_USERNAME"); v != "" {
		c.Mail.Username = v
		if c.Mail.From == "" {
			c.Mail.From = v
		}
	}
	if v := os.Getenv("MAIL_PASSWORD"); v != "" {
		c.Mail.Password = v
	}
	if v := os.Getenv("SENDGRID_API_KEY"); v != "" {
		c.Mail.SendGridAPIKey = v
	}
}

func (c *Config) validate() error {
	switch c.Mail.Provider {
	case "smtp", "sendgrid", "noop":
	case "":
		c.Mail.Provider = "noop"
	default:
		return fmt.Errorf("config: unknown mail provider %q", c.Mail.Provider)
	}

	if c.Mail.Provider != "noop" && c.Mail.AdminEmail == "" {
		return fmt.Errorf("config: mail.admin_email is required for provider %q", c.Mail.Provider)
	}

	return nil
}

// DSN возвращает строку подключения к базе.
// DATABASE_URL (уже нормализованный) имеет приоритет.
func (d *DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// NormalizeDatabaseURL приводит строку подключения хостинга к виду,
// который понимает lib/pq:
//   - схема postgresql:// заменяется на postgres://
//   - для localhost убирается sslmode=require (локальный postgres без TLS)
func NormalizeDatabaseURL(raw string) string {
	url := raw

	if strings.HasPrefix(url, "postgresql://") {
		url = "postgres://" + strings.TrimPrefix(url, "postgresql://")
	}

	if strings.Contains(url, "localhost") || strings.Contains(url, "127.0.0.1") {
		url = strings.ReplaceAll(url, "?sslmode=require", "")
		url = strings.ReplaceAll(url, "&sslmode=require", "")
	}

	return url
}
