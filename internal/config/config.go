package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	CORS     CORSConfig
	LogLevel string
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	SessionTTL time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

// IsProduction reports whether the service runs with production cookie
// attributes (Secure, SameSite=None).
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Environment, "production")
}

// RedisAddr returns host:port, or "" when Redis is not configured.
func (c *Config) RedisAddr() string {
	if c.Redis.Host == "" {
		return ""
	}
	return c.Redis.Host + ":" + c.Redis.Port
}

var (
	ErrMissingSecret      = errors.New("JWT_SECRET (or ACCESS_TOKEN_SECRET) is required")
	ErrMissingCredentials = errors.New("MONGODB_URI or DB_USER, DB_PASS and MONGODB_HOST are required")
)

// LoadConfig loads configuration from environment variables and an optional .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	// legacy deployment variable names
	_ = v.BindEnv("SERVER_PORT", "SERVER_PORT", "PORT")
	_ = v.BindEnv("SERVER_ENVIRONMENT", "SERVER_ENVIRONMENT", "NODE_ENV")
	_ = v.BindEnv("JWT_SECRET", "JWT_SECRET", "ACCESS_TOKEN_SECRET")

	v.SetDefault("SERVER_PORT", "5000")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_ENVIRONMENT", "development")
	v.SetDefault("MONGODB_DATABASE", "marketplace-sesson")
	v.SetDefault("MONGODB_TIMEOUT", 10)
	v.SetDefault("JWT_SESSION_TTL", 10080)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("LOG_LEVEL", "info")

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetString("SERVER_PORT"),
			Host:         v.GetString("SERVER_HOST"),
			Environment:  v.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		MongoDB: MongoDBConfig{
			URI:      v.GetString("MONGODB_URI"),
			Database: v.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(v.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:     v.GetString("JWT_SECRET"),
			SessionTTL: time.Duration(v.GetInt("JWT_SESSION_TTL")) * time.Minute,
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		LogLevel: v.GetString("LOG_LEVEL"),
	}

	if cfg.JWT.Secret == "" {
		return nil, ErrMissingSecret
	}
	if cfg.MongoDB.URI == "" {
		uri, err := atlasURI(v.GetString("DB_USER"), v.GetString("DB_PASS"), v.GetString("MONGODB_HOST"))
		if err != nil {
			return nil, err
		}
		cfg.MongoDB.URI = uri
	}

	return cfg, nil
}

// atlasURI builds a mongodb+srv URI from discrete credentials.
func atlasURI(user, pass, host string) (string, error) {
	if user == "" || pass == "" || host == "" {
		return "", ErrMissingCredentials
	}
	u := url.URL{
		Scheme: "mongodb+srv",
		User:   url.UserPassword(user, pass),
		Host:   host,
	}
	if _, err := url.Parse(u.String()); err != nil {
		return "", fmt.Errorf("mongo uri: %w", err)
	}
	return u.String(), nil
}

func splitList(s string) []string {
	out := []string{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
