package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     int    `env:"PORT" envDefault:"5432"`
	User     string `env:"USER" envDefault:"postgres"`
	Password string `env:"PASSWORD" envDefault:"postgres"`
	Database string `env:"NAME" envDefault:"hr_admin"`
	SSLMode  string `env:"SSLMODE" envDefault:"disable"`
	MaxConns int    `env:"MAX_CONNS" envDefault:"20"`
	MaxIdle  int    `env:"MAX_IDLE" envDefault:"5"`

	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME" envDefault:"30m"`
	ConnectTimeout  time.Duration `env:"CONNECT_TIMEOUT" envDefault:"5s"`
}

// RedisConfig Redis配置
type RedisConfig struct {
	Addr     string `env:"ADDR" envDefault:"localhost:6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
	PoolSize int    `env:"POOL_SIZE" envDefault:"10"`
}

// MQTTConfig MQTT配置
type MQTTConfig struct {
	Broker   string `env:"BROKER" envDefault:"tcp://localhost:1883"`
	ClientID string `env:"CLIENT_ID" envDefault:"hr-admin"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	QoS      byte   `env:"QOS" envDefault:"1"`
}

// GetDSN 获取数据库连接字符串
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// LoadFromEnv 从环境变量加载配置（prefix 例如 "DB" -> DB_HOST, DB_PORT ...）
func (c *DatabaseConfig) LoadFromEnv(prefix string) error {
	return loadPrefixed(c, prefix)
}

// LoadFromEnv 从环境变量加载Redis配置
func (c *RedisConfig) LoadFromEnv(prefix string) error {
	return loadPrefixed(c, prefix)
}

// LoadFromEnv 从环境变量加载MQTT配置
func (c *MQTTConfig) LoadFromEnv(prefix string) error {
	return loadPrefixed(c, prefix)
}

func loadPrefixed(v any, prefix string) error {
	if prefix != "" {
		prefix += "_"
	}
	if err := env.ParseWithOptions(v, env.Options{Prefix: prefix}); err != nil {
		return fmt.Errorf("failed to parse %s* env: %w", prefix, err)
	}
	return nil
}
