package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("full config", func(t *testing.T) {
		path := writeConfig(t, `
[server]
http_port = 9090
read_timeout = 5

[database]
host = "localhost"
port = 5432
user = "salon"
password = "secret"
dbname = "salon_booking"
sslmode = "disable"

[redis]
enabled = true
address = "localhost:6379"

[logs]
file = ""
level = "debug"

[metrics]
enabled = true
service_name = "salon-test"

[rate_limit]
enabled = true
rps = 5.0
burst = 10

[booking]
availability_cache_ttl = 60
`)

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, 9090, cfg.Server.HTTPPort)
		assert.Equal(t, 5, cfg.Server.ReadTimeout)
		assert.Equal(t, "salon_booking", cfg.Database.DBName)
		assert.True(t, cfg.Redis.Enabled)
		assert.Equal(t, "debug", cfg.Logs.Level)
		assert.True(t, cfg.RateLimit.Enabled)
		assert.Equal(t, 5.0, cfg.RateLimit.RPS)
		assert.Equal(t, 60, cfg.Booking.AvailabilityCacheTTL)
	})

	t.Run("defaults applied", func(t *testing.T) {
		path := writeConfig(t, `
[database]
host = "localhost"
port = 5432
dbname = "salon_booking"
`)

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, 8080, cfg.Server.HTTPPort)
		assert.Equal(t, 15, cfg.Server.ShutdownTimeout)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, "/metrics", cfg.Metrics.Path)
		assert.Equal(t, "salon-booking-service", cfg.Metrics.ServiceName)
		assert.Equal(t, "info", cfg.Logs.Level)
		assert.Equal(t, 10.0, cfg.RateLimit.RPS)
		assert.Equal(t, 20, cfg.RateLimit.Burst)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
		assert.ErrorIs(t, err, ErrReadConfig)
	})

	t.Run("missing database host", func(t *testing.T) {
		path := writeConfig(t, `
[database]
port = 5432
dbname = "salon_booking"
`)
		_, err := Load(path)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("redis enabled without address", func(t *testing.T) {
		path := writeConfig(t, `
[database]
host = "localhost"
port = 5432
dbname = "salon_booking"

[redis]
enabled = true
`)
		_, err := Load(path)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("negative cache ttl", func(t *testing.T) {
		path := writeConfig(t, `
[database]
host = "localhost"
port = 5432
dbname = "salon_booking"

[booking]
availability_cache_ttl = -1
`)
		_, err := Load(path)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.local",
		Port:     5433,
		User:     "salon",
		Password: "secret",
		DBName:   "salon_booking",
	}
	assert.Equal(t,
		"host=db.local port=5433 user=salon password=secret dbname=salon_booking sslmode=disable",
		d.DSN())
}
