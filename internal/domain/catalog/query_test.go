package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuery_Values(t *testing.T) {
	lo, hi := 10.0, 49.5
	q := NewQuery(0)
	q.Search = "  dune "
	q.GenreIDs = []int64{3, 1}
	q.PublisherIDs = []int64{7}
	q.MinPrice = &lo
	q.MaxPrice = &hi

	v := q.Values()
	assert.Equal(t, "1", v.Get("page"))
	assert.Equal(t, "12", v.Get("limit"))
	assert.Equal(t, "dune", v.Get("search"))
	assert.Equal(t, []string{"3", "1"}, v["genre_ids"])
	assert.Empty(t, v["author_ids"])
	assert.Equal(t, []string{"7"}, v["publisher_ids"])
	assert.Equal(t, "10", v.Get("min_price"))
	assert.Equal(t, "49.5", v.Get("max_price"))
}

func TestFilter_Equal(t *testing.T) {
	five := 5.0
	alsoFive := 5.0

	a := Filter{Search: "go", GenreIDs: []int64{1, 2}, MinPrice: &five}
	b := Filter{Search: "go ", GenreIDs: []int64{2, 1}, MinPrice: &alsoFive}
	assert.True(t, a.Equal(b))

	c := b
	c.MinPrice = nil
	assert.False(t, a.Equal(c))

	d := b
	d.AuthorIDs = []int64{9}
	assert.False(t, a.Equal(d))
}
