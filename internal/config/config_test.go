package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 8085

[database]
host = "localhost"
user = "park"
password = "secret"
dbname = "park_bookings"

[logs]
level = "debug"

[metrics]
enabled = true
path = "/metrics"
service_name = "park-booking"

[park]
timezone = "Africa/Nairobi"
day_spanning_slugs = ["camping", "overnight-camping"]
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 8085, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ShutdownTimeout, "defaults survive partial files")
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.Equal(t, []string{"camping", "overnight-camping"}, cfg.Park.DaySpanningSlugs)

	loc, err := cfg.Park.Location()
	require.NoError(t, err)
	assert.Equal(t, "Africa/Nairobi", loc.String())

	assert.Equal(t,
		"host=localhost port=5432 user=park password=secret dbname=park_bookings sslmode=disable",
		cfg.Database.DSN())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("PARK_TIMEZONE", "UTC")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "UTC", cfg.Park.Timezone)
}

func TestLoad_InvalidTimezone(t *testing.T) {
	path := writeConfig(t, sampleConfig)
	t.Setenv("PARK_TIMEZONE", "Mars/Olympus_Mons")

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestValidate_PoolSizes(t *testing.T) {
	cfg := defaults()
	cfg.Database.Host = "localhost"
	cfg.Database.DBName = "park"
	cfg.Database.MaxOpenConns = 2
	cfg.Database.MaxIdleConns = 5

	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}
