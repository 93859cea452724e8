package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Auth struct {
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

type Kafka struct {
	// Empty Brokers disables the event stream entirely.
	Brokers []string
	Topic   string
}

type Config struct {
	HTTPAddr   string
	DBPath     string
	FlushEvery int

	Auth  Auth
	Kafka Kafka
}

// Load keeps the simple API and fatals on error in main().
func Load() Config {
	cfg, err := load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	return cfg
}

func load() (Config, error) {
	_ = godotenv.Load(".env")

	cfg := Config{
		HTTPAddr:   envDefault("HTTP_ADDR", ":8080"),
		DBPath:     envDefault("DB_PATH", "storefront.db"),
		FlushEvery: envInt("FLUSH_EVERY", 5),

		Auth: Auth{
			JWTSecret:  strings.TrimSpace(os.Getenv("JWT_SECRET")),
			TokenTTL:   envDuration("JWT_TTL", 7*24*time.Hour),
			BcryptCost: envInt("BCRYPT_COST", 0), // 0 -> bcrypt.DefaultCost
		},

		Kafka: Kafka{
			Brokers: splitCSV(strings.TrimSpace(os.Getenv("KAFKA_BROKERS"))),
			Topic:   envDefault("KAFKA_TOPIC", "storefront.order-events"),
		},
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var missing []string
	if c.Auth.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return &missingEnvError{Keys: missing}
	}

	if c.FlushEvery <= 0 {
		log.Printf("FLUSH_EVERY is %d, store will fall back to its default", c.FlushEvery)
	}
	return nil
}

type missingEnvError struct{ Keys []string }

func (e *missingEnvError) Error() string {
	return "missing required envs: " + strings.Join(e.Keys, ", ")
}

func envDefault(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %d: %v", k, v, def, err)
		return def
	}
	return n
}

func envDuration(k string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %v: %v", k, v, def, err)
		return def
	}
	return d
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
