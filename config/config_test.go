package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		CommerceStoreHash: "abc123",
		CommerceToken:     "token",
		JWTSecret:         "secret",
		CartStorage:       StorageFile,
		CartIdleMins:      30,
	}
}

func TestValidate(t *testing.T) {
	t.Run("complete config passes", func(t *testing.T) {
		require.NoError(t, validConfig().Validate())
	})

	t.Run("missing token is a credential error", func(t *testing.T) {
		cfg := validConfig()
		cfg.CommerceToken = ""
		assert.ErrorIs(t, cfg.Validate(), ErrMissingCredentials)
	})

	t.Run("missing store hash is a credential error", func(t *testing.T) {
		cfg := validConfig()
		cfg.CommerceStoreHash = ""
		assert.ErrorIs(t, cfg.Validate(), ErrMissingCredentials)
	})

	t.Run("postgres needs a database url", func(t *testing.T) {
		cfg := validConfig()
		cfg.CartStorage = StoragePostgres
		assert.Error(t, cfg.Validate())

		cfg.DatabaseURL = "postgres://localhost/carts"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("backups need file storage and a valid hour", func(t *testing.T) {
		cfg := validConfig()
		cfg.CartBackupDir = "/var/backups/carts"
		cfg.CartBackupHour = 2
		assert.NoError(t, cfg.Validate())

		cfg.CartBackupHour = 24
		assert.Error(t, cfg.Validate())

		cfg.CartBackupHour = 2
		cfg.CartStorage = StorageMemory
		assert.Error(t, cfg.Validate())
	})

	t.Run("backups keep at least a day", func(t *testing.T) {
		cfg := validConfig()
		cfg.CartBackupDir = "/var/backups/carts"
		cfg.CartBackupRetention = 1
		assert.NoError(t, cfg.Validate())

		for _, days := range []int{0, -3} {
			cfg.CartBackupRetention = days
			assert.ErrorContains(t, cfg.Validate(), "CART_BACKUP_RETENTION_DAYS")
		}
	})

	t.Run("idle carts need a positive timeout", func(t *testing.T) {
		cfg := validConfig()
		cfg.CartIdleMins = 0
		assert.ErrorContains(t, cfg.Validate(), "CART_IDLE_MINUTES")
	})

	t.Run("unknown storage", func(t *testing.T) {
		cfg := validConfig()
		cfg.CartStorage = "s3"
		assert.Error(t, cfg.Validate())
	})
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("CART_BACKUP_HOUR", "")
	t.Setenv("CART_BACKUP_RETENTION_DAYS", "")
	t.Setenv("FREE_SHIPPING_THRESHOLD", "")
	t.Setenv("FLAT_SHIPPING_RATE", "")
	t.Setenv("CART_IDLE_MINUTES", "")
	t.Setenv("BIGCOMMERCE_CHANNEL_ID", "")
	t.Setenv("CORS_ORIGINS", "https://angusbiltong.com, https://www.angusbiltong.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 2, cfg.CartBackupHour)
	assert.Equal(t, 4, cfg.CartBackupRetention)
	assert.True(t, cfg.FreeShippingThreshold.Equal(decimal.NewFromInt(79)))
	assert.True(t, cfg.FlatShippingRate.Equal(decimal.RequireFromString("9.99")))
	assert.Equal(t, []string{"https://angusbiltong.com", "https://www.angusbiltong.com"}, cfg.CORSOrigins)
	assert.Equal(t, 30, cfg.CartIdleMins)
	assert.Equal(t, 1, cfg.CommerceChannelID)
}

func TestLoadReportsMalformedNumbers(t *testing.T) {
	t.Setenv("FLAT_SHIPPING_RATE", "not-a-number")
	t.Setenv("CART_BACKUP_RETENTION_DAYS", "4d")
	t.Setenv("FREE_SHIPPING_THRESHOLD", "100")

	cfg, err := Load()
	require.Error(t, err)
	assert.ErrorContains(t, err, "FLAT_SHIPPING_RATE")
	assert.ErrorContains(t, err, "CART_BACKUP_RETENTION_DAYS")
	assert.NotContains(t, err.Error(), "FREE_SHIPPING_THRESHOLD")
	assert.True(t, cfg.FreeShippingThreshold.Equal(decimal.NewFromInt(100)))
	assert.True(t, cfg.FlatShippingRate.Equal(decimal.RequireFromString("9.99")))
}
