package admin

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-storefront/internal/domain/catalog"
)

// GenresScreen 类别管理页
type GenresScreen = Screen[catalog.Genre, catalog.GenreInput]

// PublishersScreen 出版社管理页
type PublishersScreen = Screen[catalog.Publisher, catalog.PublisherInput]

// NewGenresScreen 创建类别管理页
// 后端没有批量删除接口,逐个删除,遇到第一个失败即停止
func NewGenresScreen(repo catalog.GenreRepository, pageSize int, logger *zap.Logger) *GenresScreen {
	msgs := MessagesFor("genre", "genres")
	msgs.DeleteRejected = "Failed to delete genre"

	return NewScreen(
		func(g catalog.Genre) int64 { return g.ID },
		pageSize,
		Backend[catalog.Genre, catalog.GenreInput]{
			List:   repo.List,
			Delete: deleteEach(repo.Delete),
			Create: func(ctx context.Context, in catalog.GenreInput) error {
				_, err := repo.Create(ctx, in)
				return err
			},
			Update: func(ctx context.Context, id int64, in catalog.GenreInput) error {
				_, err := repo.Update(ctx, id, in)
				return err
			},
			FormOf: func(g catalog.Genre) catalog.GenreInput {
				return catalog.GenreInput{Name: g.Name, Description: g.Description}
			},
			Complete: func(in catalog.GenreInput) bool {
				return strings.TrimSpace(in.Name) != ""
			},
			ReconcileOnFailure: true,
		},
		msgs,
		logger,
	)
}

// NewPublishersScreen 创建出版社管理页
func NewPublishersScreen(repo catalog.PublisherRepository, pageSize int, logger *zap.Logger) *PublishersScreen {
	msgs := MessagesFor("publisher", "publishers")
	msgs.DeleteRejected = "Failed to delete publisher"

	return NewScreen(
		func(p catalog.Publisher) int64 { return p.ID },
		pageSize,
		Backend[catalog.Publisher, catalog.PublisherInput]{
			List:   repo.List,
			Delete: deleteEach(repo.Delete),
			Create: func(ctx context.Context, in catalog.PublisherInput) error {
				_, err := repo.Create(ctx, in)
				return err
			},
			Update: func(ctx context.Context, id int64, in catalog.PublisherInput) error {
				_, err := repo.Update(ctx, id, in)
				return err
			},
			FormOf: func(p catalog.Publisher) catalog.PublisherInput {
				return catalog.PublisherInput{Name: p.Name, Address: p.Address, Contact: p.Contact}
			},
			Complete: func(in catalog.PublisherInput) bool {
				return strings.TrimSpace(in.Name) != ""
			},
			ReconcileOnFailure: true,
		},
		msgs,
		logger,
	)
}

func deleteEach(del func(ctx context.Context, id int64) error) func(context.Context, []int64) error {
	return func(ctx context.Context, ids []int64) error {
		for _, id := range ids {
			if err := del(ctx, id); err != nil {
				return err
			}
		}
		return nil
	}
}
