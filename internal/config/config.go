package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ldagroup/timetracking/internal/storage"
	"github.com/ldagroup/timetracking/internal/timezone"
)

type Config struct {
	DBUrl      string
	SQLitePath string
	JWTSecret  string
	ServerPort string

	AdminUsername     string
	AdminPasswordHash string
	AdminPassword     string

	Timezone string

	RedisURL       string
	LoginRateLimit int

	S3 storage.S3Config

	NotifyEmail string
	CompanyName string

	// VerifyEmailDomain adds an MX/A lookup to worker email validation.
	VerifyEmailDomain bool

	// CORSOrigins empty means any origin is echoed back.
	CORSOrigins []string
}

func Load() *Config {
	return &Config{
		DBUrl:      getEnv("DATABASE_URL", ""),
		SQLitePath: getEnv("SQLITE_PATH", "timetracking.db"),
		JWTSecret:  getEnv("JWT_SECRET", "changeme"),
		ServerPort: getEnv("SERVER_PORT", "8080"),

		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		AdminPassword:     getEnv("ADMIN_PASSWORD", ""),

		Timezone: getEnv("APP_TIMEZONE", timezone.DefaultTimezone),

		RedisURL:       getEnv("REDIS_URL", ""),
		LoginRateLimit: getEnvInt("LOGIN_RATE_LIMIT", 10),

		S3: storage.S3Config{
			Bucket:          getEnv("S3_BUCKET", ""),
			Region:          getEnv("S3_REGION", "eu-west-2"),
			Endpoint:        getEnv("S3_ENDPOINT", ""),
			AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		},

		NotifyEmail: getEnv("NOTIFY_EMAIL", "info@ldagroup.co.uk"),
		CompanyName: getEnv("COMPANY_NAME", "LDA Group"),

		VerifyEmailDomain: getEnvBool("VERIFY_EMAIL_DOMAIN", false),

		CORSOrigins: getEnvList("CORS_ALLOWED_ORIGINS"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func getEnvBool(key string, def bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}
