package config

import "os"

type Config struct {
	Server    ServerConfig
	Postgres  PostgresConfig
	Auth      AuthConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port string
}

type PostgresConfig struct {
	DatabaseURL string
	Host        string
	Port        string
	User        string
	Password    string
	Database    string
	SSLMode     string
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  string
}

type CORSConfig struct {
	AllowedOrigins string
}

type RateLimitConfig struct {
	Requests string
	Window   string
}

func Load() Config {
	return Config{
		Server: ServerConfig{
			Port: getenv("PORT", "8080"),
		},
		Postgres: PostgresConfig{
			DatabaseURL: os.Getenv("DATABASE_URL"),
			Host:        getenv("PGHOST", "localhost"),
			Port:        getenv("PGPORT", "5432"),
			User:        os.Getenv("PGUSER"),
			Password:    os.Getenv("PGPASSWORD"),
			Database:    os.Getenv("PGDATABASE"),
			SSLMode:     getenv("PGSSLMODE", "disable"),
		},
		Auth: AuthConfig{
			JWTSecret: os.Getenv("JWT_SECRET"),
			TokenTTL:  getenv("JWT_TOKEN_TTL", "24h"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getenv("CORS_ALLOWED_ORIGINS", getenv("FRONTEND_URL", "http://localhost:3000")),
		},
		RateLimit: RateLimitConfig{
			Requests: getenv("RATE_LIMIT_REQUESTS", "100"),
			Window:   getenv("RATE_LIMIT_WINDOW", "15m"),
		},
	}
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
