package admin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type row struct{ id int64 }

func rows(n int) []row {
	out := make([]row, n)
	for i := range out {
		out[i] = row{id: int64(i + 1)}
	}
	return out
}

func newTestTable(n int) *Table[row] {
	t := NewTable(func(r row) int64 { return r.id }, 10)
	t.SetRows(rows(n))
	return t
}

func TestTable_Pagination(t *testing.T) {
	tb := newTestTable(23)
	assert.Equal(t, 3, tb.TotalPages())
	assert.Len(t, tb.PageRows(), 10)

	tb.SetPage(3)
	assert.Len(t, tb.PageRows(), 3)
	assert.Equal(t, int64(21), tb.PageRows()[0].id)

	tb.SetPage(9)
	assert.Equal(t, 3, tb.Page())
	tb.SetPage(-1)
	assert.Equal(t, 1, tb.Page())

	empty := newTestTable(0)
	assert.Equal(t, 0, empty.TotalPages())
	assert.Equal(t, 1, empty.Page())
	assert.Empty(t, empty.PageRows())
}

func TestTable_SelectionIndependentOfExpansion(t *testing.T) {
	tb := newTestTable(5)

	assert.True(t, tb.ToggleSelect(2))
	assert.True(t, tb.ToggleExpand(3))
	assert.False(t, tb.ToggleSelect(99))

	assert.Equal(t, []int64{2}, tb.SelectedIDs())
	assert.Equal(t, []int64{3}, tb.ExpandedIDs())

	tb.ToggleSelect(2)
	assert.Empty(t, tb.SelectedIDs())
	assert.Equal(t, []int64{3}, tb.ExpandedIDs())
}

func TestTable_SelectAllOnPageToggles(t *testing.T) {
	tb := newTestTable(15)
	tb.SetPage(2)
	tb.ToggleSelect(12)

	tb.SelectAllOnPage()
	assert.Equal(t, []int64{11, 12, 13, 14, 15}, tb.SelectedIDs())

	// 第一页的勾选不受第二页全不选影响
	tb.SetPage(1)
	tb.ToggleSelect(1)
	tb.SetPage(2)
	tb.SelectAllOnPage()
	assert.Equal(t, []int64{1}, tb.SelectedIDs())
}

func TestTable_SetRowsPrunesMissingIDs(t *testing.T) {
	tb := newTestTable(12)
	tb.SetPage(2)
	tb.ToggleSelect(11)
	tb.ToggleSelect(3)
	tb.ToggleExpand(12)

	tb.SetRows(rows(5))
	assert.Equal(t, []int64{3}, tb.SelectedIDs())
	assert.Empty(t, tb.ExpandedIDs())
	assert.Equal(t, 1, tb.Page())
}
