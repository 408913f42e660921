package cli

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tuannt39-study/jhipster-sample/common/database"
	mqttcommon "github.com/tuannt39-study/jhipster-sample/common/mqtt"
	rediscommon "github.com/tuannt39-study/jhipster-sample/common/redis"
	"github.com/tuannt39-study/jhipster-sample/internal/config"
	"github.com/tuannt39-study/jhipster-sample/internal/events"
	httpapi "github.com/tuannt39-study/jhipster-sample/internal/http"
	"github.com/tuannt39-study/jhipster-sample/internal/repository"
	"github.com/tuannt39-study/jhipster-sample/internal/search"
	"github.com/tuannt39-study/jhipster-sample/internal/service"
	"github.com/tuannt39-study/jhipster-sample/internal/store"

	"github.com/go-redis/redis/v8"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the REST API (falls back to in-memory repositories when the DB is unavailable)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := g.setup()
			if err != nil {
				return err
			}
			defer logger.Sync()
			return serve(cmd.Context(), cfg, logger)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	// 1. 存储：DB 不可用时退回内存
	var db *sql.DB
	repos := repository.NewMemorySet()
	if cfg.DBEnabled {
		if d, err := database.NewPostgresDB(&cfg.Database); err == nil {
			db = d
			repos = repository.NewPostgresSet(db)
			logger.Info("DB enabled for hr-admin")
		} else {
			logger.Warn("DB enabled but connection failed, falling back to memory repositories", zap.Error(err))
		}
	}
	if db != nil {
		defer database.Close(db)
	}

	// 2. Redis：缓存与事件流共用一个连接
	var rdb *redis.Client
	if cfg.RedisEnabled || cfg.Events.Backend == config.EventsRedis {
		rdb = rediscommon.NewRedisClient(&cfg.Redis)
		if err := rediscommon.Ping(ctx, rdb); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer rediscommon.Close(rdb)
	}

	opts := service.Options{
		Index:    search.NewIndex(),
		CacheTTL: cfg.Cache.TTL,
		Logger:   logger,
	}
	if cfg.RedisEnabled {
		opts.KV = store.NewRedisKV(rdb)
		logger.Info("Redis entity cache enabled", zap.Duration("ttl", cfg.Cache.TTL))
	}

	// 3. 变更事件
	pub, closePub, err := newPublisher(cfg, rdb, logger)
	if err != nil {
		return err
	}
	defer closePub()
	opts.Publisher = pub

	// 4. 服务与检索索引
	svcs := service.NewServices(repos, opts)
	if err := svcs.Reindex(ctx); err != nil {
		return fmt.Errorf("failed to build search index: %w", err)
	}

	// 5. HTTP
	router := httpapi.NewRouter(logger, cfg.HTTP.CORSOrigins)
	router.SetMaxBodySize(cfg.HTTP.MaxBodySize)
	router.RegisterOpsRoutes()
	router.RegisterAPIRoutes(svcs, logger)
	server := service.NewServer(cfg.HTTP.Addr, router.Handler(), logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	// 6. 等待信号（优雅关闭）
	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case <-sigCtx.Done():
		logger.Info("Received signal, shutting down")
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}
	logger.Info("hr-admin stopped")
	return nil
}

// newPublisher 按 EVENTS_BACKEND 选择事件发布方式
func newPublisher(cfg *config.Config, rdb *redis.Client, logger *zap.Logger) (events.Publisher, func(), error) {
	switch cfg.Events.Backend {
	case config.EventsRedis:
		logger.Info("Publishing entity events to redis stream", zap.String("stream", cfg.Events.Stream))
		return events.NewRedisStreamPublisher(rdb, cfg.Events.Stream), func() {}, nil
	case config.EventsMQTT:
		mc, err := mqttcommon.NewClient(&cfg.MQTT, logger)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Publishing entity events to mqtt", zap.String("topic", cfg.Events.Topic))
		return events.NewMQTTPublisher(mc, cfg.Events.Topic), mc.Disconnect, nil
	default:
		return events.Nop{}, func() {}, nil
	}
}
