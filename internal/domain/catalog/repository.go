package catalog

import "context"

// BookReader 店面只读访问
type BookReader interface {
	ListBooks(ctx context.Context, q Query) (*BookPage, error)
	GetBook(ctx context.Context, id int64) (*Book, error)
}

// BookRepository 图书仓储接口(后端REST实现)
type BookRepository interface {
	BookReader
	// Metadata 拉取limit本图书和全部出版社/作者/类别
	Metadata(ctx context.Context, limit int) (*Metadata, error)
	Create(ctx context.Context, in BookInput) (*Book, error)
	Update(ctx context.Context, id int64, in BookInput) (*Book, error)
	BulkDelete(ctx context.Context, ids []int64) error
}

// GenreRepository 类别仓储接口
// 后端没有批量删除接口,批量删除由调用方逐个调用Delete
type GenreRepository interface {
	List(ctx context.Context) ([]Genre, error)
	Create(ctx context.Context, in GenreInput) (*Genre, error)
	Update(ctx context.Context, id int64, in GenreInput) (*Genre, error)
	Delete(ctx context.Context, id int64) error
}

// PublisherRepository 出版社仓储接口
type PublisherRepository interface {
	List(ctx context.Context) ([]Publisher, error)
	Create(ctx context.Context, in PublisherInput) (*Publisher, error)
	Update(ctx context.Context, id int64, in PublisherInput) (*Publisher, error)
	Delete(ctx context.Context, id int64) error
}

// StatsReader 仪表盘统计
type StatsReader interface {
	Stats(ctx context.Context) (*Stats, error)
}
