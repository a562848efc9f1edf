package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Cart         CartConfig
	Chat         ChatConfig
	OpenAI       OpenAIConfig
	Pinecone     PineconeConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"GELABOCA_APP_ENV" required:"true"`
	Port         string `envconfig:"GELABOCA_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"GELABOCA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"GELABOCA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"GELABOCA_DB_DSN"`
	Driver string `envconfig:"GELABOCA_DB_DRIVER" default:"postgres"`

	MaxOpenConns    int           `envconfig:"GELABOCA_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"GELABOCA_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"GELABOCA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"GELABOCA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"GELABOCA_REDIS_URL" required:"true"`
	Address      string        `envconfig:"GELABOCA_REDIS_ADDR"`
	Password     string        `envconfig:"GELABOCA_REDIS_PASSWORD"`
	DB           int           `envconfig:"GELABOCA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"GELABOCA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"GELABOCA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"GELABOCA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"GELABOCA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"GELABOCA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type CartConfig struct {
	TTL time.Duration `envconfig:"GELABOCA_CART_TTL" default:"24h"`
}

type ChatConfig struct {
	HistoryLimit    int           `envconfig:"GELABOCA_CHAT_HISTORY_LIMIT" default:"20"`
	HistoryTTL      time.Duration `envconfig:"GELABOCA_CHAT_HISTORY_TTL" default:"24h"`
	RateLimitWindow time.Duration `envconfig:"GELABOCA_CHAT_RATE_LIMIT_WINDOW" default:"1m"`
	RateLimitMax    int64         `envconfig:"GELABOCA_CHAT_RATE_LIMIT_MAX" default:"20"`
}

type OpenAIConfig struct {
	APIKey          string `envconfig:"GELABOCA_OPENAI_API_KEY" required:"true"`
	CompletionModel string `envconfig:"GELABOCA_OPENAI_COMPLETION_MODEL" default:"gpt-4o-mini"`
	EmbeddingModel  string `envconfig:"GELABOCA_OPENAI_EMBEDDING_MODEL" default:"text-embedding-3-large"`
}

type PineconeConfig struct {
	APIKey    string        `envconfig:"GELABOCA_PINECONE_API_KEY" required:"true"`
	IndexHost string        `envconfig:"GELABOCA_PINECONE_INDEX_HOST" required:"true"`
	Timeout   time.Duration `envconfig:"GELABOCA_PINECONE_TIMEOUT" default:"15s"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"GELABOCA_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"GELABOCA_AUTO_MIGRATE" default:"false"`
}
