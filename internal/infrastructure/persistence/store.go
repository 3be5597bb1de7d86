// Package persistence 按配置选择访客状态的kv存储驱动
package persistence

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-storefront/internal/domain/kv"
	"github.com/xiebiao/bookstore-storefront/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-storefront/internal/infrastructure/persistence/bolt"
	"github.com/xiebiao/bookstore-storefront/internal/infrastructure/persistence/memory"
	"github.com/xiebiao/bookstore-storefront/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookstore-storefront/internal/infrastructure/persistence/redis"
)

// Cleanup 关闭存储连接
type Cleanup func()

// NewStore 创建kv存储
// memory只用于开发调试,进程重启后访客数据丢失
func NewStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (kv.Store, Cleanup, error) {
	storage := cfg.Storage
	logger = logger.With(zap.String("driver", storage.Driver))

	closeWith := func(name string, closeFn func() error) Cleanup {
		return func() {
			if err := closeFn(); err != nil {
				logger.Warn("关闭存储失败", zap.String("store", name), zap.Error(err))
			}
		}
	}

	switch storage.Driver {
	case "memory":
		logger.Warn("使用内存存储,重启后访客状态会丢失")
		return memory.NewStore(), func() {}, nil

	case "bolt":
		s, err := bolt.Open(storage.Bolt)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("kv存储就绪", zap.String("path", storage.Bolt.Path))
		return s, closeWith("bolt", s.Close), nil

	case "redis":
		client, err := redis.NewClient(ctx, storage.Redis, logger)
		if err != nil {
			return nil, nil, err
		}
		s := redis.NewStore(client, storage.Redis.KeyPrefix, storage.Redis.KeyTTL)
		return s, closeWith("redis", s.Close), nil

	case "mysql":
		db, err := mysql.NewDB(storage.MySQL, cfg.Server.Mode == "debug", logger)
		if err != nil {
			return nil, nil, err
		}
		s := mysql.NewStore(db)
		return s, closeWith("mysql", s.Close), nil
	}

	return nil, nil, fmt.Errorf("不支持的存储驱动: %s", storage.Driver)
}
