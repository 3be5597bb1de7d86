package admin

import (
	"slices"
)

// DefaultPageSize 后台表格每页行数
const DefaultPageSize = 10

// Table 后台表格的本地状态:全部行 + 本地分页 + 勾选集合 + 展开集合
// 勾选和展开互相独立。Table本身不加锁,由所属的Screen保护
type Table[T any] struct {
	rows     []T
	idOf     func(T) int64
	pageSize int
	page     int
	selected map[int64]struct{}
	expanded map[int64]struct{}
}

// NewTable 创建表格
func NewTable[T any](idOf func(T) int64, pageSize int) *Table[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Table[T]{
		idOf:     idOf,
		pageSize: pageSize,
		page:     1,
		selected: make(map[int64]struct{}),
		expanded: make(map[int64]struct{}),
	}
}

// SetRows 替换全部行
// 已不存在的id从勾选和展开集合里移除,页码超出范围时收回到最后一页
func (t *Table[T]) SetRows(rows []T) {
	t.rows = rows

	present := make(map[int64]struct{}, len(rows))
	for _, r := range rows {
		present[t.idOf(r)] = struct{}{}
	}
	for id := range t.selected {
		if _, ok := present[id]; !ok {
			delete(t.selected, id)
		}
	}
	for id := range t.expanded {
		if _, ok := present[id]; !ok {
			delete(t.expanded, id)
		}
	}
	t.SetPage(t.page)
}

// Rows 全部行
func (t *Table[T]) Rows() []T {
	return t.rows
}

// Len 总行数
func (t *Table[T]) Len() int {
	return len(t.rows)
}

// Find 按id查找行
func (t *Table[T]) Find(id int64) (T, bool) {
	for _, r := range t.rows {
		if t.idOf(r) == id {
			return r, true
		}
	}
	var zero T
	return zero, false
}

// TotalPages ceil(n/pageSize),没有数据时为0
func (t *Table[T]) TotalPages() int {
	return (len(t.rows) + t.pageSize - 1) / t.pageSize
}

// Page 当前页码(从1开始)
func (t *Table[T]) Page() int {
	return t.page
}

// SetPage 切换页码,超出范围时取边界值
func (t *Table[T]) SetPage(page int) {
	last := max(t.TotalPages(), 1)
	t.page = min(max(page, 1), last)
}

// PageRows 当前页可见的行
func (t *Table[T]) PageRows() []T {
	start := (t.page - 1) * t.pageSize
	if start >= len(t.rows) {
		return nil
	}
	end := min(start+t.pageSize, len(t.rows))
	return t.rows[start:end]
}

// ToggleSelect 切换勾选,id不存在时返回false
func (t *Table[T]) ToggleSelect(id int64) bool {
	if _, ok := t.Find(id); !ok {
		return false
	}
	toggle(t.selected, id)
	return true
}

// ToggleExpand 切换展开,id不存在时返回false
func (t *Table[T]) ToggleExpand(id int64) bool {
	if _, ok := t.Find(id); !ok {
		return false
	}
	toggle(t.expanded, id)
	return true
}

// SelectAllOnPage 当前页全选/全不选
// 当前页所有行都已勾选时取消它们的勾选,否则全部勾选
func (t *Table[T]) SelectAllOnPage() {
	visible := t.PageRows()
	if len(visible) == 0 {
		return
	}

	all := true
	for _, r := range visible {
		if _, ok := t.selected[t.idOf(r)]; !ok {
			all = false
			break
		}
	}
	for _, r := range visible {
		if all {
			delete(t.selected, t.idOf(r))
		} else {
			t.selected[t.idOf(r)] = struct{}{}
		}
	}
}

// SelectedIDs 已勾选的id(升序)
func (t *Table[T]) SelectedIDs() []int64 {
	return sortedKeys(t.selected)
}

// ExpandedIDs 已展开的id(升序)
func (t *Table[T]) ExpandedIDs() []int64 {
	return sortedKeys(t.expanded)
}

// ClearSelection 清空勾选
func (t *Table[T]) ClearSelection() {
	clear(t.selected)
}

func toggle(set map[int64]struct{}, id int64) {
	if _, ok := set[id]; ok {
		delete(set, id)
		return
	}
	set[id] = struct{}{}
}

func sortedKeys(set map[int64]struct{}) []int64 {
	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
