package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:      AppConfig{Timezone: "Asia/Kolkata", LogLevel: "info"},
		Auth:     AuthConfig{Provider: "jwt"},
		JWT:      JWTConfig{Secret: "secret"},
		Store:    StoreConfig{Driver: "memory"},
		Storage:  StorageConfig{Type: "local"},
		Geofence: GeofenceConfig{RadiusKm: 5},
	}
}

func TestLoad_Defaults(t *testing.T) {
	// Arrange
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("STORE_DRIVER", "memory")

	// Act
	cfg, err := Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "jwt", cfg.Auth.Provider)
	assert.Equal(t, 5.0, cfg.Geofence.RadiusKm)
	assert.Equal(t, 10*time.Second, cfg.Geofence.GeocodeTimeout)
	assert.Equal(t, 30*time.Second, cfg.Geofence.LockTTL)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.App.AllowedOrigins)
	assert.Equal(t, "Asia/Kolkata", cfg.Location().String())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("GEOFENCE_RADIUS_KM", "0.5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com,https://b.example.com")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, 0.5, cfg.Geofence.RadiusKm)
	assert.Len(t, cfg.App.AllowedOrigins, 2)
}

func TestLoad_InvalidNumbers(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("APP_PORT", "eighty")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "APP_PORT")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing jwt secret", mutate: func(c *Config) { c.JWT.Secret = "" }, wantErr: "JWT_SECRET_KEY"},
		{name: "unknown auth provider", mutate: func(c *Config) { c.Auth.Provider = "ldap" }, wantErr: "AUTH_PROVIDER"},
		{name: "unknown store", mutate: func(c *Config) { c.Store.Driver = "sqlite" }, wantErr: "STORE_DRIVER"},
		{name: "postgres without password", mutate: func(c *Config) { c.Store.Driver = "postgres" }, wantErr: "DB_PASSWORD"},
		{name: "postgres pool inverted", mutate: func(c *Config) {
			c.Store.Driver = "postgres"
			c.Database.Password = "pw"
			c.Database.MaxConns, c.Database.MinConns = 2, 5
		}, wantErr: "DB_MIN_CONNS"},
		{name: "oss incomplete", mutate: func(c *Config) { c.Storage.Type = "oss" }, wantErr: "ALI_OSS_ENDPOINT"},
		{name: "firebase storage without bucket", mutate: func(c *Config) { c.Storage.Type = "firebase" }, wantErr: "FIREBASE_STORAGE_BUCKET"},
		{name: "zero radius", mutate: func(c *Config) { c.Geofence.RadiusKm = 0 }, wantErr: "GEOFENCE_RADIUS_KM"},
		{name: "bad timezone", mutate: func(c *Config) { c.App.Timezone = "Mars/Olympus" }, wantErr: "APP_TIMEZONE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)

			err := c.Validate()

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_DatabaseURL(t *testing.T) {
	c := &Config{Database: DatabaseConfig{User: "hr", Password: "pw", Host: "db", Port: 5432, Name: "hr_dashboard", SSLMode: "disable"}}

	assert.Equal(t, "postgres://hr:pw@db:5432/hr_dashboard?sslmode=disable", c.DatabaseURL())
}

func TestConfig_DatabasePool(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("DB_MAX_CONNS", "40")
	t.Setenv("DB_MAX_CONN_LIFETIME", "15m")

	cfg, err := Load()

	require.NoError(t, err)
	pool := cfg.Database.Pool()
	assert.Equal(t, int32(40), pool.MaxConns)
	assert.Equal(t, int32(5), pool.MinConns)
	assert.Equal(t, 15*time.Minute, pool.MaxConnLifetime)
	assert.Equal(t, 30*time.Minute, pool.MaxConnIdleTime)
}

func TestConfig_SlogLevel(t *testing.T) {
	c := validConfig()
	for in, want := range map[string]slog.Level{"debug": slog.LevelDebug, "WARN": slog.LevelWarn, "error": slog.LevelError, "": slog.LevelInfo} {
		c.App.LogLevel = in
		assert.Equal(t, want, c.SlogLevel(), in)
	}
}
