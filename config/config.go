// Package config carrega a configuração do reactiond: primeiro o arquivo
// YAML (opcional), depois as variáveis de ambiente por cima.
//
// O segredo do store (STORE_SECRET) entra aqui e é repassado explicitamente
// na construção do store; nenhum store lê o ambiente por conta própria.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

type Config struct {
	ListenAddr  string            `yaml:"listen_addr"`
	LogMode     string            `yaml:"log_mode"`
	Store       StoreConfig       `yaml:"store"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Server      ServerConfig      `yaml:"server"`
}

type StoreConfig struct {
	Backend string `yaml:"backend"`
	// Secret é a credencial do store (senha do Redis ou do Postgres).
	Secret   string         `yaml:"secret"`
	Redis    RedisConfig    `yaml:"redis"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	Postgres PostgresConfig `yaml:"postgres"`
}

type RedisConfig struct {
	Addr   string `yaml:"addr"`
	DB     int    `yaml:"db"`
	Prefix string `yaml:"prefix"`
}

type SQLiteConfig struct {
	Path string `yaml:"path"`
}

type PostgresConfig struct {
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	User    string `yaml:"user"`
	Name    string `yaml:"name"`
	SSLMode string `yaml:"sslmode"`
}

type RateLimitConfig struct {
	Enabled    bool          `yaml:"enabled"`
	RPS        float64       `yaml:"rps"`
	Burst      int           `yaml:"burst"`
	TrustXFF   bool          `yaml:"trust_xff"`
	RetryAfter time.Duration `yaml:"retry_after"`
}

type ConcurrencyConfig struct {
	Max            int           `yaml:"max"`
	AcquireTimeout time.Duration `yaml:"acquire_timeout"`
}

type ServerConfig struct {
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	ReadTimeout       time.Duration `yaml:"read_timeout"`
	WriteTimeout      time.Duration `yaml:"write_timeout"`
	IdleTimeout       time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
}

// DefaultConfig devolve os valores usados quando nada foi configurado.
// A porta 8000 é a que o site usa como base URL em desenvolvimento.
func DefaultConfig() *Config {
	return &Config{
		ListenAddr: ":8000",
		LogMode:    "dev",
		Store: StoreConfig{
			Backend: BackendMemory,
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "reactions",
			},
			SQLite: SQLiteConfig{Path: "reactions.db"},
			Postgres: PostgresConfig{
				Host:    "localhost",
				Port:    5432,
				User:    "postgres",
				Name:    "reactions",
				SSLMode: "disable",
			},
		},
		RateLimit: RateLimitConfig{
			Enabled:    true,
			RPS:        5,
			Burst:      20,
			RetryAfter: 1 * time.Second,
		},
		Concurrency: ConcurrencyConfig{Max: 100},
		Server: ServerConfig{
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       90 * time.Second,
			ShutdownTimeout:   10 * time.Second,
		},
	}
}

// Load lê o YAML em path (arquivo ausente = defaults) e aplica o ambiente.
// path vazio pula o arquivo.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate confere combinações que impediriam o servidor de subir.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ListenAddr) == "" {
		return errors.New("LISTEN_ADDR is required")
	}
	switch c.Store.Backend {
	case BackendMemory, BackendSQLite:
	case BackendRedis:
		if strings.TrimSpace(c.Store.Redis.Addr) == "" {
			return errors.New("REDIS_ADDR is required when STORE_BACKEND=redis")
		}
	case BackendPostgres:
		if strings.TrimSpace(c.Store.Postgres.Host) == "" {
			return errors.New("POSTGRES_HOST is required when STORE_BACKEND=postgres")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend)
	}
	if c.Store.Backend == BackendSQLite && strings.TrimSpace(c.Store.SQLite.Path) == "" {
		return errors.New("SQLITE_PATH is required when STORE_BACKEND=sqlite")
	}
	if c.RateLimit.Enabled {
		if c.RateLimit.RPS <= 0 {
			return errors.New("RATE_RPS must be > 0")
		}
		if c.RateLimit.Burst <= 0 {
			return errors.New("RATE_BURST must be > 0")
		}
	}
	if c.Concurrency.Max < 0 {
		return errors.New("CONCURRENCY_MAX must be >= 0")
	}
	return nil
}

// PostgresDSN monta a URL de conexão usando Store.Secret como senha.
func (c *Config) PostgresDSN() string {
	pg := c.Store.Postgres
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(pg.User, c.Store.Secret),
		Host:     fmt.Sprintf("%s:%d", pg.Host, pg.Port),
		Path:     "/" + pg.Name,
		RawQuery: "sslmode=" + url.QueryEscape(pg.SSLMode),
	}
	return u.String()
}
