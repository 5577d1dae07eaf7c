package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config agrupa la configuración del servicio, leída de env vars.
type Config struct {
	Port string

	// DatabaseURL vacío => repos in-memory (modo dev).
	DatabaseURL string
	AutoMigrate bool

	JWTSecret string

	Cloudinary CloudinaryConfig
	// Máximo de bytes aceptados por archivo subido.
	UploadMaxBytes int64

	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	ServicesCacheTTL time.Duration

	CORSAllowedOrigins []string

	LogLevel  string
	LogFormat string
	AppName   string
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

// Configured indica si hay credenciales completas; si no, se usa el relay en memoria.
func (c CloudinaryConfig) Configured() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

// Load arma Config desde el entorno con defaults razonables para dev.
func Load() Config {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = os.Getenv("DB_DSN")
	}

	return Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: strings.TrimSpace(dsn),
		AutoMigrate: getEnvBool("DB_AUTO_MIGRATE", false),
		JWTSecret:   strings.TrimSpace(os.Getenv("JWT_SECRET")),
		Cloudinary: CloudinaryConfig{
			CloudName: strings.TrimSpace(os.Getenv("CLOUDINARY_CLOUD_NAME")),
			APIKey:    strings.TrimSpace(os.Getenv("CLOUDINARY_API_KEY")),
			APISecret: strings.TrimSpace(os.Getenv("CLOUDINARY_API_SECRET")),
		},
		UploadMaxBytes:   int64(getEnvInt("UPLOAD_MAX_BYTES", 5<<20)),
		RedisAddr:        strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		RedisDB:          getEnvInt("REDIS_DB", 0),
		ServicesCacheTTL: getEnvDuration("SERVICES_CACHE_TTL", 5*time.Minute),
		CORSAllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{
			"https://petplus.onrender.com",
			"http://localhost:3000",
			"http://localhost:5500",
		}),
		LogLevel:  os.Getenv("LOG_LEVEL"),
		LogFormat: os.Getenv("LOG_FORMAT"),
		AppName:   getEnv("APP_NAME", "petplus"),
	}
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvSlice(key string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
