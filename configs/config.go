package configs

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv    string
	Port      string
	DBDriver  string
	DBSource  string
	JWTSecret string
	JWTTTL    time.Duration

	// ถ้าตั้ง OIDC_ISSUER จะยืนยัน token กับ provider ภายนอกแทน HMAC
	OIDCIssuer   string
	OIDCClientID string

	// ว่าง = ใช้ lock ในหน่วยความจำ
	RedisAddr     string
	RedisPassword string

	CheckoutTimeout    time.Duration
	CartIdleTTL        time.Duration
	CheckoutRatePerMin int
	LogLevel           string
	SeedDemo           bool
	SignupBonusCoins   int64
	CORSOrigins        []string
}

func LoadConfig() *Config {
	// ไม่มี .env ก็ใช้ env ของเครื่องได้
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}

	return &Config{
		AppEnv:             getEnv("APP_ENV", "production"),
		Port:               getEnv("PORT", "8000"),
		DBDriver:           getEnv("DB_DRIVER", "sqlite"),
		DBSource:           getEnv("DB_SOURCE", "refeel.db"),
		JWTSecret:          getEnv("JWT_SECRET", "changeme"),
		JWTTTL:             getDuration("JWT_TTL", 24*time.Hour),
		OIDCIssuer:         os.Getenv("OIDC_ISSUER"),
		OIDCClientID:       os.Getenv("OIDC_CLIENT_ID"),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		CheckoutTimeout:    getDuration("CHECKOUT_TIMEOUT", 15*time.Second),
		CartIdleTTL:        getDuration("CART_IDLE_TTL", 6*time.Hour),
		CheckoutRatePerMin: getInt("CHECKOUT_RATE_PER_MIN", 10),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		SeedDemo:           getEnv("SEED_DEMO", "false") == "true",
		SignupBonusCoins:   int64(getInt("SIGNUP_BONUS_COINS", 0)),
		CORSOrigins:        splitList(getEnv("CORS_ORIGINS", "*")),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
