package database

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolConfig_Apply(t *testing.T) {
	// Arrange
	config, err := pgxpool.ParseConfig("postgres://hr:pw@localhost:5432/hr_dashboard?sslmode=disable")
	require.NoError(t, err)
	defaultIdle := config.MaxConnIdleTime

	// Act
	err = PoolConfig{MaxConns: 10, MinConns: 2, MaxConnLifetime: time.Hour}.Apply(config)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int32(10), config.MaxConns)
	assert.Equal(t, int32(2), config.MinConns)
	assert.Equal(t, time.Hour, config.MaxConnLifetime)
	assert.Equal(t, defaultIdle, config.MaxConnIdleTime)
}

func TestPoolConfig_Apply_Invalid(t *testing.T) {
	config, err := pgxpool.ParseConfig("postgres://hr:pw@localhost:5432/hr_dashboard")
	require.NoError(t, err)

	assert.Error(t, PoolConfig{MaxConns: 2, MinConns: 5}.Apply(config))
	assert.Error(t, PoolConfig{MaxConns: -1}.Apply(config))
}
