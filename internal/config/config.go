package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	Env        string
	ServerPort string
	DBDriver   string
	DBDSN      string
	ResetDB    bool
	RedisAddr  string
	RedisDB    int
	RedisPass  string
	JWTSecret  string

	// SessionSecret signs the web UI cookie session.
	SessionSecret string
	SwaggerHost   string
	LogLevel      string
	RollbarToken  string

	OTLPEndpoint string
	OTLPInsecure bool

	LoginRatePerMinute int
}

// Load builds Config from environment with sensible defaults.
// A .env file in the working directory is read first when present.
func Load() *Config {
	_ = godotenv.Load(envFile())

	v := viper.New()
	v.SetDefault("ENV", "dev")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("DB_DRIVER", "mysql")
	v.SetDefault("DB_DSN", "user:password@tcp(localhost:3306)/tutordesk?charset=utf8mb4&parseTime=True&loc=Local")
	v.SetDefault("RESET_DB", false)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("JWT_SECRET", "change-me")
	v.SetDefault("SESSION_SECRET", "change-me-too")
	v.SetDefault("SWAGGER_HOST", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("ROLLBAR_TOKEN", "")
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("OTEL_EXPORTER_OTLP_INSECURE", false)
	v.SetDefault("LOGIN_RATE_PER_MINUTE", 10)
	v.AutomaticEnv()

	return &Config{
		Env:                v.GetString("ENV"),
		ServerPort:         v.GetString("SERVER_PORT"),
		DBDriver:           v.GetString("DB_DRIVER"),
		DBDSN:              v.GetString("DB_DSN"),
		ResetDB:            v.GetBool("RESET_DB"),
		RedisAddr:          v.GetString("REDIS_ADDR"),
		RedisDB:            v.GetInt("REDIS_DB"),
		RedisPass:          v.GetString("REDIS_PASSWORD"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		SessionSecret:      v.GetString("SESSION_SECRET"),
		SwaggerHost:        v.GetString("SWAGGER_HOST"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		RollbarToken:       v.GetString("ROLLBAR_TOKEN"),
		OTLPEndpoint:       v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OTLPInsecure:       v.GetBool("OTEL_EXPORTER_OTLP_INSECURE"),
		LoginRatePerMinute: v.GetInt("LOGIN_RATE_PER_MINUTE"),
	}
}

func envFile() string {
	if p := os.Getenv("ENV_FILE"); p != "" {
		return p
	}
	return ".env"
}

// IsProduction reports whether the app runs with ENV=prod.
func (c *Config) IsProduction() bool {
	return c.Env == "prod" || c.Env == "production"
}
