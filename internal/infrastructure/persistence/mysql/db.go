package mysql

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookstore-storefront/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. debug模式打印SQL
// 4. 自动迁移kv_entries表
func NewDB(cfg config.MySQLConfig, debug bool, log *zap.Logger) (*gorm.DB, error) {
	logLevel := logger.Silent
	if debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	// 注意：生产环境应使用专门的迁移工具（如golang-migrate）
	if err := db.AutoMigrate(&KVEntryModel{}); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	log.Info("数据库连接成功", zap.String("host", cfg.Host), zap.String("db", cfg.DBName))
	return db, nil
}

// KVEntryModel GORM键值模型
// 设计说明：
// 1. 键是带访客前缀的完整键名,主键即唯一约束
// 2. 值用text存储(购物车JSON可能较长)
type KVEntryModel struct {
	K         string    `gorm:"primaryKey;size:191;comment:键"`
	V         string    `gorm:"type:text;not null;comment:值"`
	UpdatedAt time.Time `gorm:"index;comment:更新时间"`
}

// TableName 指定表名
func (KVEntryModel) TableName() string {
	return "kv_entries"
}
