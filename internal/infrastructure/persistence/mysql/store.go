package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookstore-storefront/internal/domain/kv"
	apperrors "github.com/xiebiao/bookstore-storefront/pkg/errors"
)

// Store kv.Store的MySQL实现
// 教学要点:
// 1. Set用INSERT ... ON DUPLICATE KEY UPDATE实现覆盖写,一条语句无需事务
// 2. Delete用IN条件一次删除多个键
type Store struct {
	db *gorm.DB
}

// NewStore 创建MySQL存储
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var entry KVEntryModel
	err := s.db.WithContext(ctx).Where("k = ?", key).Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", kv.ErrNotFound
	}
	if err != nil {
		return "", apperrors.WithCode(apperrors.ErrCodeStorageError, "读取存储失败", err)
	}
	return entry.V, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	entry := KVEntryModel{K: key, V: value}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "k"}},
		DoUpdates: clause.AssignmentColumns([]string{"v", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return apperrors.WithCode(apperrors.ErrCodeStorageError, "写入存储失败", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).Where("k IN ?", keys).Delete(&KVEntryModel{}).Error
	if err != nil {
		return apperrors.WithCode(apperrors.ErrCodeStorageError, "删除存储失败", err)
	}
	return nil
}

// Close 关闭连接池
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
