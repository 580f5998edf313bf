package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config agrupa toda la configuración del servicio.
// Se carga desde YAML (opcional) y luego se aplican overrides por env;
// el env siempre gana sobre el archivo.
type Config struct {
	Addr string `yaml:"addr"`

	Store StoreConfig `yaml:"store"`

	Log LogConfig `yaml:"log"`

	Scheduler SchedulerConfig `yaml:"scheduler"`

	Auth AuthConfig `yaml:"auth"`

	Notify NotifyConfig `yaml:"notify"`
}

type StoreConfig struct {
	// Engine: "memory" | "sqlite" | "postgres"
	Engine      string `yaml:"engine"`
	SQLitePath  string `yaml:"sqlite_path"`
	PostgresDSN string `yaml:"postgres_dsn"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type SchedulerConfig struct {
	// LookaheadHours: horas antes del vencimiento que un recordatorio
	// aparece como upcoming.
	LookaheadHours int `yaml:"lookahead_hours"`
	// GraceHours: tolerancia tras el vencimiento antes de overdue.
	GraceHours int `yaml:"grace_hours"`
	// DefaultTimezone en formato IANA, ej "America/Lima".
	DefaultTimezone string `yaml:"default_timezone"`
	// DispatchIntervalMinutes: cada cuánto corre el loop de despacho.
	// 0 desactiva el loop.
	DispatchIntervalMinutes int `yaml:"dispatch_interval_minutes"`
}

type AuthConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
}

type NotifyConfig struct {
	WebhookURL string `yaml:"webhook_url"`
	APIKey     string `yaml:"api_key"`
}

// Default devuelve la configuración base.
func Default() Config {
	return Config{
		Addr: ":8080",
		Store: StoreConfig{
			Engine:     "memory",
			SQLitePath: "data/planter.db",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Scheduler: SchedulerConfig{
			LookaheadHours:          48,
			GraceHours:              12,
			DefaultTimezone:         "UTC",
			DispatchIntervalMinutes: 0,
		},
	}
}

// Load carga config desde path (si existe) y aplica overrides de env.
// path vacío => solo defaults + env.
func Load(path string) (Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		} else if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setStr(&cfg.Addr, "ADDR")
	setStr(&cfg.Store.Engine, "STORE_ENGINE")
	setStr(&cfg.Store.SQLitePath, "SQLITE_PATH")
	setStr(&cfg.Store.PostgresDSN, "DATABASE_URL")
	setStr(&cfg.Log.Level, "LOG_LEVEL")
	setStr(&cfg.Log.Format, "LOG_FORMAT")
	setInt(&cfg.Scheduler.LookaheadHours, "SCHEDULER_LOOKAHEAD_HOURS")
	setInt(&cfg.Scheduler.GraceHours, "SCHEDULER_GRACE_HOURS")
	setStr(&cfg.Scheduler.DefaultTimezone, "DEFAULT_TIMEZONE")
	setInt(&cfg.Scheduler.DispatchIntervalMinutes, "DISPATCH_INTERVAL_MINUTES")
	setStr(&cfg.Auth.BaseURL, "AUTH_BASE_URL")
	setStr(&cfg.Auth.APIKey, "AUTH_API_KEY")
	setStr(&cfg.Notify.WebhookURL, "NOTIFY_WEBHOOK_URL")
	setStr(&cfg.Notify.APIKey, "NOTIFY_API_KEY")
}

func setStr(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*dst = n
}

func (c Config) validate() error {
	switch c.Store.Engine {
	case "memory", "sqlite", "postgres":
	default:
		return fmt.Errorf("config: unknown store engine %q", c.Store.Engine)
	}
	if c.Store.Engine == "postgres" && strings.TrimSpace(c.Store.PostgresDSN) == "" {
		return fmt.Errorf("config: postgres engine requires DATABASE_URL")
	}
	if c.Scheduler.LookaheadHours < 0 || c.Scheduler.GraceHours < 0 {
		return fmt.Errorf("config: scheduler windows must be >= 0")
	}
	if _, err := time.LoadLocation(c.Scheduler.DefaultTimezone); err != nil {
		return fmt.Errorf("config: invalid default timezone %q", c.Scheduler.DefaultTimezone)
	}
	return nil
}

// Lookahead devuelve la ventana de lookahead como duración.
func (c SchedulerConfig) Lookahead() time.Duration {
	return time.Duration(c.LookaheadHours) * time.Hour
}

// Grace devuelve la ventana de gracia como duración.
func (c SchedulerConfig) Grace() time.Duration {
	return time.Duration(c.GraceHours) * time.Hour
}

// DispatchInterval devuelve el intervalo del loop; 0 = loop apagado.
func (c SchedulerConfig) DispatchInterval() time.Duration {
	return time.Duration(c.DispatchIntervalMinutes) * time.Minute
}

// Location resuelve la zona horaria por defecto (validada en Load).
func (c SchedulerConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
