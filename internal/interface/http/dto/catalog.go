package dto

import "github.com/xiebiao/bookstore-storefront/internal/domain/catalog"

// CatalogQuery 目录查询参数
// id列表用重复参数传递: ?genre_ids=1&genre_ids=2
type CatalogQuery struct {
	Page         int      `form:"page" binding:"omitempty,min=1" example:"1"`
	Search       string   `form:"search" binding:"max=200" example:"golang"`
	GenreIDs     []int64  `form:"genre_ids"`
	AuthorIDs    []int64  `form:"author_ids"`
	PublisherIDs []int64  `form:"publisher_ids"`
	MinPrice     *float64 `form:"min_price" binding:"omitempty,min=0" example:"10"`
	MaxPrice     *float64 `form:"max_price" binding:"omitempty,min=0" example:"50"`
}

// PriceRangeValid 价格区间是否合法
func (q CatalogQuery) PriceRangeValid() bool {
	return q.MinPrice == nil || q.MaxPrice == nil || *q.MinPrice <= *q.MaxPrice
}

// Filter 转换为目录筛选条件
func (q CatalogQuery) Filter() catalog.Filter {
	return catalog.Filter{
		Search:       q.Search,
		GenreIDs:     q.GenreIDs,
		AuthorIDs:    q.AuthorIDs,
		PublisherIDs: q.PublisherIDs,
		MinPrice:     q.MinPrice,
		MaxPrice:     q.MaxPrice,
	}
}
