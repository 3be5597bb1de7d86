package admin

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-storefront/internal/domain/catalog"
	"github.com/xiebiao/bookstore-storefront/internal/domain/order"
)

// Dashboard 后台首页统计
type Dashboard struct {
	mu    sync.Mutex
	stats *catalog.Stats
	repo  catalog.StatsReader
}

// Load 拉取统计数据
func (d *Dashboard) Load(ctx context.Context) (*catalog.Stats, error) {
	stats, err := d.repo.Stats(ctx)
	if err != nil {
		return nil, err
	}
	d.mu.Lock()
	d.stats = stats
	d.mu.Unlock()
	return stats, nil
}

// Last 最近一次拉取的统计
func (d *Dashboard) Last() *catalog.Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stats
}

// Repositories 后台页面依赖的全部仓储
type Repositories struct {
	Books      catalog.BookRepository
	Orders     order.Repository
	Genres     catalog.GenreRepository
	Publishers catalog.PublisherRepository
	Stats      catalog.StatsReader
}

// Options 后台页面配置
type Options struct {
	PageSize      int
	MetadataLimit int
}

// Screens 一个访客的全部后台页面
type Screens struct {
	Books      *BooksScreen
	Orders     *OrdersScreen
	Genres     *GenresScreen
	Publishers *PublishersScreen
	Dashboard  *Dashboard
}

// NewScreens 创建后台页面
func NewScreens(repos Repositories, opts Options, logger *zap.Logger) *Screens {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Screens{
		Books:      NewBooksScreen(repos.Books, opts.PageSize, opts.MetadataLimit, logger.Named("books")),
		Orders:     NewOrdersScreen(repos.Orders, opts.PageSize, logger.Named("orders")),
		Genres:     NewGenresScreen(repos.Genres, opts.PageSize, logger.Named("genres")),
		Publishers: NewPublishersScreen(repos.Publishers, opts.PageSize, logger.Named("publishers")),
		Dashboard:  &Dashboard{repo: repos.Stats},
	}
}

// Reset 清空所有页面状态
func (s *Screens) Reset() {
	s.Books.Reset()
	s.Orders.Reset()
	s.Genres.Reset()
	s.Publishers.Reset()
	s.Dashboard.mu.Lock()
	s.Dashboard.stats = nil
	s.Dashboard.mu.Unlock()
}
