package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Cart storage backends.
const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StoragePostgres = "postgres"
)

// ErrMissingCredentials means the commerce API credentials are not configured.
var ErrMissingCredentials = errors.New("commerce API credentials are not configured")

type Config struct {
	AppEnv   string
	LogLevel string
	Port     string

	CommerceAPIURL    string
	CommerceStoreHash string
	CommerceToken     string
	CommerceChannelID int

	JWTSecret   string
	AdminAPIKey string
	CORSOrigins []string

	CartStorage    string
	CartStorageDir string
	DatabaseURL    string
	CartIdleMins   int // in-memory carts unused this long are dropped

	// Daily copies of file cart snapshots; empty dir disables them.
	CartBackupDir       string
	CartBackupHour      int
	CartBackupRetention int // days

	FreeShippingThreshold decimal.Decimal
	FlatShippingRate      decimal.Decimal
}

// Load reads .env (if present) and then the process environment. Numeric
// settings that do not parse keep their default and are reported in the
// returned error, one line per variable.
func Load() (Config, error) {
	_ = godotenv.Load()

	var env loader
	cfg := Config{
		AppEnv:   getEnv("APP_ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Port:     getEnv("PORT", "8080"),

		CommerceAPIURL:    strings.TrimSuffix(getEnv("BIGCOMMERCE_API_URL", "https://api.bigcommerce.com"), "/"),
		CommerceStoreHash: os.Getenv("BIGCOMMERCE_STORE_HASH"),
		CommerceToken:     os.Getenv("BIGCOMMERCE_ACCESS_TOKEN"),
		CommerceChannelID: env.int("BIGCOMMERCE_CHANNEL_ID", 1),

		JWTSecret:   os.Getenv("JWT_SECRET"),
		AdminAPIKey: os.Getenv("ADMIN_API_KEY"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),

		CartStorage:    strings.ToLower(getEnv("CART_STORAGE", StorageFile)),
		CartStorageDir: getEnv("CART_STORAGE_DIR", "./data/carts"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		CartIdleMins:   env.int("CART_IDLE_MINUTES", 30),

		CartBackupDir:       os.Getenv("CART_BACKUP_DIR"),
		CartBackupHour:      env.int("CART_BACKUP_HOUR", 2),
		CartBackupRetention: env.int("CART_BACKUP_RETENTION_DAYS", 4),

		FreeShippingThreshold: env.decimal("FREE_SHIPPING_THRESHOLD", decimal.NewFromInt(79)),
		FlatShippingRate:      env.decimal("FLAT_SHIPPING_RATE", decimal.RequireFromString("9.99")),
	}
	return cfg, errors.Join(env.errs...)
}

// Validate reports configuration the server cannot start without.
func (c Config) Validate() error {
	if c.CommerceStoreHash == "" || c.CommerceToken == "" {
		return ErrMissingCredentials
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	switch c.CartStorage {
	case StorageMemory, StorageFile:
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL must be set when CART_STORAGE=postgres")
		}
	default:
		return fmt.Errorf("unknown CART_STORAGE %q", c.CartStorage)
	}
	if c.CartIdleMins < 1 {
		return fmt.Errorf("CART_IDLE_MINUTES must be at least 1, got %d", c.CartIdleMins)
	}
	if c.CartBackupDir != "" {
		if c.CartStorage != StorageFile {
			return errors.New("CART_BACKUP_DIR needs CART_STORAGE=file")
		}
		if c.CartBackupHour < 0 || c.CartBackupHour > 23 {
			return fmt.Errorf("CART_BACKUP_HOUR %d out of range", c.CartBackupHour)
		}
		// a retention under a day would delete the snapshot just taken
		if c.CartBackupRetention < 1 {
			return fmt.Errorf("CART_BACKUP_RETENTION_DAYS must be at least 1, got %d", c.CartBackupRetention)
		}
	}
	return nil
}

func (c Config) IsDev() bool {
	return c.AppEnv == "dev" || c.AppEnv == "development"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// loader collects parse failures so one bad variable does not hide the next.
type loader struct {
	errs []error
}

func (l *loader) int(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		l.errs = append(l.errs, fmt.Errorf("%s: %q is not a whole number", key, v))
		return def
	}
	return n
}

func (l *loader) decimal(key string, def decimal.Decimal) decimal.Decimal {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		l.errs = append(l.errs, fmt.Errorf("%s: %q is not a number", key, v))
		return def
	}
	return d
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
