package catalog

import (
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// DefaultPageSize 店面每页展示的图书数
const DefaultPageSize = 12

// Filter 目录筛选条件,所有筛选都在后端完成
type Filter struct {
	Search       string
	GenreIDs     []int64
	AuthorIDs    []int64
	PublisherIDs []int64
	MinPrice     *float64
	MaxPrice     *float64
}

// Equal 两组筛选条件是否相同(id集合与顺序无关)
func (f Filter) Equal(other Filter) bool {
	return strings.TrimSpace(f.Search) == strings.TrimSpace(other.Search) &&
		sameIDs(f.GenreIDs, other.GenreIDs) &&
		sameIDs(f.AuthorIDs, other.AuthorIDs) &&
		sameIDs(f.PublisherIDs, other.PublisherIDs) &&
		samePrice(f.MinPrice, other.MinPrice) &&
		samePrice(f.MaxPrice, other.MaxPrice)
}

// Query 当前查询:筛选条件 + 页码
type Query struct {
	Filter
	Page  int
	Limit int
}

// NewQuery 第一页、默认页大小的空查询
func NewQuery(limit int) Query {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	return Query{Page: 1, Limit: limit}
}

// Values 编码为后端查询参数
// id列表使用重复参数: genre_ids=1&genre_ids=2
func (q Query) Values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("limit", strconv.Itoa(q.Limit))

	if s := strings.TrimSpace(q.Search); s != "" {
		v.Set("search", s)
	}
	addIDs(v, "genre_ids", q.GenreIDs)
	addIDs(v, "author_ids", q.AuthorIDs)
	addIDs(v, "publisher_ids", q.PublisherIDs)
	if q.MinPrice != nil {
		v.Set("min_price", strconv.FormatFloat(*q.MinPrice, 'f', -1, 64))
	}
	if q.MaxPrice != nil {
		v.Set("max_price", strconv.FormatFloat(*q.MaxPrice, 'f', -1, 64))
	}
	return v
}

func addIDs(v url.Values, key string, ids []int64) {
	for _, id := range ids {
		v.Add(key, strconv.FormatInt(id, 10))
	}
}

func sameIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	x, y := slices.Clone(a), slices.Clone(b)
	slices.Sort(x)
	slices.Sort(y)
	return slices.Equal(x, y)
}

func samePrice(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
