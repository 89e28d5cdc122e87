package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Log       LogConfig       `mapstructure:"log"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Scoring   ScoringConfig   `mapstructure:"scoring"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	Filename   string `mapstructure:"filename"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

type StorageConfig struct {
	Provider  string      `mapstructure:"provider"`
	LocalPath string      `mapstructure:"local_path"`
	PublicURL string      `mapstructure:"public_url"`
	Minio     MinioConfig `mapstructure:"minio"`
}

type MinioConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// ScoringConfig drives the compliance score computation. BaseScoreMax is the
// starting questionnaire score before penalties, ModelScoreMax the cap on the
// model capability score, ModelWeight the multiplier applied to the model
// score and Divisor the normalization denominator.
type ScoringConfig struct {
	BaseScoreMax  float64 `mapstructure:"base_score_max"`
	ModelScoreMax float64 `mapstructure:"model_score_max"`
	ModelWeight   float64 `mapstructure:"model_weight"`
	Divisor       float64 `mapstructure:"divisor"`
}

// Validate rejects parameter sets where a perfect questionnaire plus a
// perfect model would not normalize to exactly 100%.
func (s ScoringConfig) Validate() error {
	if s.Divisor <= 0 {
		return fmt.Errorf("scoring: divisor must be positive, got %v", s.Divisor)
	}
	if s.BaseScoreMax <= 0 || s.ModelScoreMax < 0 || s.ModelWeight <= 0 {
		return fmt.Errorf("scoring: base_score_max, model_score_max and model_weight must be positive")
	}
	if got := s.BaseScoreMax + s.ModelScoreMax*s.ModelWeight; got != s.Divisor {
		return fmt.Errorf("scoring: base_score_max + model_score_max*model_weight = %v, want divisor %v", got, s.Divisor)
	}
	return nil
}

type TracingConfig struct {
	Enabled        bool    `mapstructure:"enabled"`
	ServiceName    string  `mapstructure:"service_name"`
	JaegerEndpoint string  `mapstructure:"jaeger_endpoint"`
	SampleRate     float64 `mapstructure:"sample_rate"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	RPS     float64 `mapstructure:"rps"`
	Burst   int     `mapstructure:"burst"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("AIACT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Scoring.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "15s")

	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 3306)
	viper.SetDefault("database.user", "root")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.name", "aiact")
	viper.SetDefault("database.max_idle_conns", 10)
	viper.SetDefault("database.max_open_conns", 100)
	viper.SetDefault("database.conn_max_lifetime", "1h")

	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	viper.SetDefault("jwt.secret", "change-me")
	viper.SetDefault("jwt.expiration", "24h")

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.filename", "logs/app.log")
	viper.SetDefault("log.max_size", 100)
	viper.SetDefault("log.max_backups", 3)
	viper.SetDefault("log.max_age", 28)
	viper.SetDefault("log.compress", true)

	viper.SetDefault("storage.provider", "local")
	viper.SetDefault("storage.local_path", "uploads")
	viper.SetDefault("storage.public_url", "http://localhost:8080/uploads")

	viper.SetDefault("scoring.base_score_max", 90)
	viper.SetDefault("scoring.model_score_max", 24)
	viper.SetDefault("scoring.model_weight", 2.5)
	viper.SetDefault("scoring.divisor", 150)

	viper.SetDefault("tracing.enabled", false)
	viper.SetDefault("tracing.service_name", "aiact-backend")
	viper.SetDefault("tracing.jaeger_endpoint", "http://localhost:14268/api/traces")
	viper.SetDefault("tracing.sample_rate", 0.1)

	viper.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})

	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.rps", 20)
	viper.SetDefault("rate_limit.burst", 40)
}
