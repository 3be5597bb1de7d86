// Package bolt 基于boltdb单文件数据库的kv存储
// 单实例部署时的默认驱动,无需额外服务
package bolt

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/boltdb/bolt"

	"github.com/xiebiao/bookstore-storefront/internal/domain/kv"
	"github.com/xiebiao/bookstore-storefront/internal/infrastructure/config"
	apperrors "github.com/xiebiao/bookstore-storefront/pkg/errors"
)

// Store kv.Store的bolt实现,所有键放在同一个bucket里
type Store struct {
	db     *bolt.DB
	bucket []byte
}

// Open 打开数据库文件并确保bucket存在
// 文件被其他进程占用时,等待cfg.Timeout后失败
func Open(cfg config.BoltConfig) (*Store, error) {
	if dir := filepath.Dir(cfg.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("创建数据目录失败: %w", err)
		}
	}

	db, err := bolt.Open(cfg.Path, 0o600, &bolt.Options{Timeout: cfg.Timeout})
	if err != nil {
		return nil, fmt.Errorf("打开bolt数据库失败: %w", err)
	}

	bucket := []byte(cfg.Bucket)
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("创建bucket %s 失败: %w", cfg.Bucket, err)
	}

	return &Store{db: db, bucket: bucket}, nil
}

func (s *Store) Get(_ context.Context, key string) (string, error) {
	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		// bolt返回的切片只在事务内有效,需要拷贝
		if v := tx.Bucket(s.bucket).Get([]byte(key)); v != nil {
			value = append([]byte{}, v...)
		}
		return nil
	})
	if err != nil {
		return "", apperrors.WithCode(apperrors.ErrCodeStorageError, "读取存储失败", err)
	}
	if value == nil {
		return "", kv.ErrNotFound
	}
	return string(value), nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put([]byte(key), []byte(value))
	})
	if err != nil {
		return apperrors.WithCode(apperrors.ErrCodeStorageError, "写入存储失败", err)
	}
	return nil
}

// Delete 在一个事务里删除多个键
func (s *Store) Delete(_ context.Context, keys ...string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		for _, k := range keys {
			if err := b.Delete([]byte(k)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return apperrors.WithCode(apperrors.ErrCodeStorageError, "删除存储失败", err)
	}
	return nil
}

// Close 关闭数据库文件
func (s *Store) Close() error {
	return s.db.Close()
}
