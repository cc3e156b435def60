package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("PAYMENT_DELAY_MS", "3000")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, StoreDriverMemory, cfg.Store.Driver)
	assert.Equal(t, 3*time.Second, cfg.Checkout.PaymentDelay)
	assert.Equal(t, "catalog.yaml", cfg.Catalog.GCSObject)
	assert.Equal(t, 10.0, cfg.RateLimit.PaymentPerMinute)
	assert.Equal(t, 3, cfg.RateLimit.PaymentBurst)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("STORE_DRIVER", "redis")
	t.Setenv("REDIS_ADDR", "cache:6380")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("PAYMENT_DELAY_MS", "250")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_PAYMENT_PER_MINUTE", "30")
	t.Setenv("RATE_LIMIT_PAYMENT_BURST", "5")
	t.Setenv("SESSION_IDLE_TTL_MINUTES", "30")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, StoreDriverRedis, cfg.Store.Driver)
	assert.Equal(t, "cache:6380", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 250*time.Millisecond, cfg.Checkout.PaymentDelay)
	assert.Equal(t, 2.5, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 30.0, cfg.RateLimit.PaymentPerMinute)
	assert.Equal(t, 5, cfg.RateLimit.PaymentBurst)
	assert.Equal(t, 30*time.Minute, cfg.Session.IdleTTL)
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("RATE_LIMIT_BURST", "lots")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 30, cfg.RateLimit.Burst)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{
			name:   "memory",
			config: Config{Store: StoreConfig{Driver: StoreDriverMemory}},
		},
		{
			name:    "unknown driver",
			config:  Config{Store: StoreConfig{Driver: "sqlite"}},
			wantErr: `unknown store driver "sqlite"`,
		},
		{
			name:    "firestore without project",
			config:  Config{Store: StoreConfig{Driver: StoreDriverFirestore}},
			wantErr: "FIREBASE_PROJECT_ID is required for the firestore store driver",
		},
		{
			name: "firestore with project",
			config: Config{
				Store:     StoreConfig{Driver: StoreDriverFirestore},
				Firestore: FirestoreConfig{ProjectID: "luxuryline-dev"},
			},
		},
		{
			name: "negative payment delay",
			config: Config{
				Store:    StoreConfig{Driver: StoreDriverMongo},
				Checkout: CheckoutConfig{PaymentDelay: -time.Second},
			},
			wantErr: "payment delay must not be negative",
		},
		{
			name: "negative payment rate",
			config: Config{
				Store:     StoreConfig{Driver: StoreDriverMemory},
				RateLimit: RateLimitConfig{PaymentPerMinute: -1, PaymentBurst: 3},
			},
			wantErr: "payment rate limit must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}
