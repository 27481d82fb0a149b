package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config contém as configurações da aplicação.
type Config struct {
	Port           string   `validate:"required,numeric"`
	LogLevel       string   `validate:"oneof=debug info warn error"`
	AllowedOrigins []string `validate:"min=1,dive,required"`
	Database       DatabaseConfig
	Redis          RedisConfig
	AMQP           AMQPConfig
	Session        SessionConfig
}

type DatabaseConfig struct {
	DSN string `validate:"required"` // Caminho do arquivo SQLite
}

// RedisConfig habilita o cache do catálogo quando Addr não está vazio.
type RedisConfig struct {
	Addr     string        `validate:"omitempty,hostname_port"`
	Password string
	DB       int           `validate:"gte=0"`
	CacheTTL time.Duration `validate:"gt=0"`
}

// AMQPConfig habilita a publicação de resultados no RabbitMQ quando URL não está vazia.
type AMQPConfig struct {
	URL      string `validate:"omitempty,url"`
	Exchange string `validate:"required"`
}

type SessionConfig struct {
	Secret        string        `validate:"required,min=16"`
	TokenTTL      time.Duration `validate:"gt=0"`
	FeedbackDelay time.Duration `validate:"gte=0"` // Zero desliga o avanço automático
}

// Load carrega as configurações das variáveis de ambiente (e de um .env opcional) ou usa padrões.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("erro ao ler .env: %w", err)
	}

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", "info")),
		AllowedOrigins: getEnvList("ALLOWED_ORIGINS", []string{"*"}),
		Database: DatabaseConfig{
			DSN: getEnv("DB_DSN", "./microquiz.db"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			CacheTTL: getEnvDuration("CATALOG_CACHE_TTL", 60*time.Second),
		},
		AMQP: AMQPConfig{
			URL:      getEnv("AMQP_URL", ""),
			Exchange: getEnv("RESULTS_EXCHANGE", "quiz.results"),
		},
		Session: SessionConfig{
			Secret:        getEnv("SESSION_SECRET", "segredo_padrao_para_desenvolvimento"),
			TokenTTL:      getEnvDuration("SESSION_TOKEN_TTL", 2*time.Hour),
			FeedbackDelay: getEnvDuration("FEEDBACK_DELAY", 2*time.Second),
		},
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("configuração inválida: %w", err)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
