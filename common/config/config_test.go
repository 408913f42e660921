package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabaseConfig_LoadFromEnv_Defaults(t *testing.T) {
	var c DatabaseConfig
	require.NoError(t, c.LoadFromEnv("TESTDB"))

	assert.Equal(t, "localhost", c.Host)
	assert.Equal(t, 5432, c.Port)
	assert.Equal(t, "disable", c.SSLMode)
	assert.Equal(t, 30*time.Minute, c.ConnMaxLifetime)
	assert.Equal(t, 5*time.Second, c.ConnectTimeout)
	assert.Equal(t, "host=localhost port=5432 user=postgres password=postgres dbname=hr_admin sslmode=disable", c.GetDSN())
}

func TestDatabaseConfig_LoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("TESTDB_HOST", "db.internal")
	t.Setenv("TESTDB_PORT", "6543")
	t.Setenv("TESTDB_NAME", "hr")

	var c DatabaseConfig
	require.NoError(t, c.LoadFromEnv("TESTDB"))

	assert.Equal(t, "db.internal", c.Host)
	assert.Equal(t, 6543, c.Port)
	assert.Equal(t, "hr", c.Database)
}

func TestDatabaseConfig_LoadFromEnv_BadPort(t *testing.T) {
	t.Setenv("TESTDB_PORT", "not-a-number")

	var c DatabaseConfig
	assert.Error(t, c.LoadFromEnv("TESTDB"))
}

func TestRedisConfig_LoadFromEnv(t *testing.T) {
	t.Setenv("TESTREDIS_ADDR", "cache:6380")
	t.Setenv("TESTREDIS_DB", "3")

	var c RedisConfig
	require.NoError(t, c.LoadFromEnv("TESTREDIS"))

	assert.Equal(t, "cache:6380", c.Addr)
	assert.Equal(t, 3, c.DB)
	assert.Equal(t, 10, c.PoolSize)
}

func TestMQTTConfig_LoadFromEnv(t *testing.T) {
	t.Setenv("TESTMQTT_BROKER", "tcp://broker:1883")

	var c MQTTConfig
	require.NoError(t, c.LoadFromEnv("TESTMQTT"))

	assert.Equal(t, "tcp://broker:1883", c.Broker)
	assert.Equal(t, "hr-admin", c.ClientID)
	assert.Equal(t, byte(1), c.QoS)
}
