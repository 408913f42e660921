package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tuannt39-study/jhipster-sample/common/config"

	_ "github.com/lib/pq"
)

const defaultConnectTimeout = 5 * time.Second

// NewPostgresDB 打开连接池并在 ConnectTimeout 内 ping 一次；失败时关闭连接池
func NewPostgresDB(cfg *config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s@%s:%d/%s: %w", cfg.User, cfg.Host, cfg.Port, cfg.Database, err)
	}
	configurePool(db, cfg)

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database %s:%d: %w", cfg.Host, cfg.Port, err)
	}
	return db, nil
}

func configurePool(db *sql.DB, cfg *config.DatabaseConfig) {
	if cfg.MaxConns > 0 {
		db.SetMaxOpenConns(cfg.MaxConns)
	}
	if idle := cfg.MaxIdle; idle > 0 {
		// 空闲连接数不超过最大连接数
		if cfg.MaxConns > 0 && idle > cfg.MaxConns {
			idle = cfg.MaxConns
		}
		db.SetMaxIdleConns(idle)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
}

// Close 关闭数据库连接
func Close(db *sql.DB) error {
	if db != nil {
		return db.Close()
	}
	return nil
}
