package admin

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	apperrors "github.com/xiebiao/bookstore-storefront/pkg/errors"
)

// MsgRequiredFields 表单必填项缺失的提示
const MsgRequiredFields = "Please fill in required fields"

var (
	// ErrRequiredFields 表单必填项缺失
	ErrRequiredFields = apperrors.New(apperrors.ErrCodeRequiredFields, MsgRequiredFields)

	// ErrNoForm 当前没有打开的表单
	ErrNoForm = apperrors.New(apperrors.ErrCodeBusinessError, "没有正在编辑的表单")

	// ErrFormUnsupported 该页面不支持新增/编辑
	ErrFormUnsupported = apperrors.New(apperrors.ErrCodeBusinessError, "该页面不支持新增或编辑")

	// ErrNoPendingDelete 没有待确认的删除
	ErrNoPendingDelete = apperrors.New(apperrors.ErrCodeBusinessError, "没有待确认的删除操作")
)

// Messages 各页面的错误提示文案
type Messages struct {
	FetchRejected   string // 拉取列表时后端返回非2xx
	FetchFailed     string // 拉取列表时网络错误
	NothingSelected string
	DeleteRejected  string
	DeleteFailed    string
	AddFailed       string // 后端没有给出detail时使用
	UpdateFailed    string
}

// MessagesFor 按实体名生成默认文案
//
//	MessagesFor("genre", "genres")
func MessagesFor(singular, plural string) Messages {
	return Messages{
		FetchRejected:   "Failed to fetch " + plural,
		FetchFailed:     "Failed to load " + plural,
		NothingSelected: "No " + plural + " selected",
		DeleteRejected:  "Failed to delete " + plural,
		DeleteFailed:    "Failed to delete " + plural,
		AddFailed:       "Failed to add " + singular,
		UpdateFailed:    "Failed to update " + singular,
	}
}

// Backend 页面依赖的后端操作
// Create/Update为nil表示页面不支持表单
type Backend[T any, F any] struct {
	List   func(ctx context.Context) ([]T, error)
	Delete func(ctx context.Context, ids []int64) error
	Create func(ctx context.Context, form F) error
	Update func(ctx context.Context, id int64, form F) error
	// FormOf 编辑时用已有行预填表单
	FormOf func(row T) F
	// Complete 必填项是否齐全
	Complete func(form F) bool
	// ReconcileOnFailure 删除失败后也重新拉取列表(逐个删除时可能已经删掉了一部分)
	ReconcileOnFailure bool
}

// FormMode 表单模式
type FormMode string

const (
	FormAdd  FormMode = "add"
	FormEdit FormMode = "edit"
)

// Form 新增/编辑共用的表单状态
type Form[F any] struct {
	Mode      FormMode `json:"mode"`
	EditingID int64    `json:"editing_id,omitempty"`
	Data      F        `json:"data"`
}

// View 页面快照
type View[T any, F any] struct {
	Rows          []T      `json:"rows"`
	Page          int      `json:"page"`
	TotalPages    int      `json:"total_pages"`
	Total         int      `json:"total"`
	Selected      []int64  `json:"selected"`
	Expanded      []int64  `json:"expanded"`
	PendingDelete int      `json:"pending_delete,omitempty"` // 待确认删除的条数
	Form          *Form[F] `json:"form,omitempty"`
	Error         string   `json:"error,omitempty"`
	Loading       bool     `json:"loading"`
}

// Screen 通用的后台CRUD页面
// 教学要点:
// 1. 所有修改成功后都重新拉取全量数据,不做乐观更新
// 2. 网络调用期间不持有锁
// 3. 失败信息统一放在页面级的Error里
type Screen[T any, F any] struct {
	mu            sync.Mutex
	table         *Table[T]
	form          *Form[F]
	pendingDelete int
	errMsg        string
	loading       bool
	loadSeq       uint64

	backend Backend[T, F]
	msgs    Messages
	logger  *zap.Logger
}

// NewScreen 创建页面
func NewScreen[T any, F any](idOf func(T) int64, pageSize int, backend Backend[T, F], msgs Messages, logger *zap.Logger) *Screen[T, F] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Screen[T, F]{
		table:   NewTable(idOf, pageSize),
		backend: backend,
		msgs:    msgs,
		logger:  logger,
	}
}

// View 当前快照
func (s *Screen[T, F]) View() View[T, F] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// Load 拉取全量数据
// 并发的多次Load只应用最后一次发出的结果
func (s *Screen[T, F]) Load(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.loadSeq++
	seq := s.loadSeq
	s.mu.Unlock()

	rows, err := s.backend.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.loadSeq {
		return nil
	}
	s.loading = false
	if err != nil {
		return s.failLocked(err, pick(err, s.msgs.FetchRejected, s.msgs.FetchFailed))
	}
	s.table.SetRows(rows)
	return nil
}

// Reload 清除错误提示后重新拉取
func (s *Screen[T, F]) Reload(ctx context.Context) error {
	s.mu.Lock()
	s.errMsg = ""
	s.mu.Unlock()
	return s.Load(ctx)
}

// SetPage 切换页码
func (s *Screen[T, F]) SetPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table.SetPage(page)
}

// ToggleSelect 切换某行的勾选
func (s *Screen[T, F]) ToggleSelect(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.table.ToggleSelect(id) {
		return apperrors.ErrNotFound
	}
	return nil
}

// ToggleExpand 切换某行的展开
func (s *Screen[T, F]) ToggleExpand(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.table.ToggleExpand(id) {
		return apperrors.ErrNotFound
	}
	return nil
}

// SelectAllOnPage 当前页全选/全不选
func (s *Screen[T, F]) SelectAllOnPage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table.SelectAllOnPage()
}

// RequestDelete 请求批量删除,返回待确认的条数
func (s *Screen[T, F]) RequestDelete() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.table.SelectedIDs())
	if n == 0 {
		s.errMsg = s.msgs.NothingSelected
		return 0, apperrors.New(apperrors.ErrCodeNothingSelected, s.msgs.NothingSelected)
	}
	s.pendingDelete = n
	return n, nil
}

// CancelDelete 取消待确认的删除
func (s *Screen[T, F]) CancelDelete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingDelete = 0
}

// ConfirmDelete 执行批量删除
// 成功:清空勾选并重新拉取;失败:记录错误,勾选保留
func (s *Screen[T, F]) ConfirmDelete(ctx context.Context) error {
	s.mu.Lock()
	if s.pendingDelete == 0 {
		s.mu.Unlock()
		return ErrNoPendingDelete
	}
	ids := s.table.SelectedIDs()
	s.mu.Unlock()

	err := s.backend.Delete(ctx, ids)

	s.mu.Lock()
	s.pendingDelete = 0
	if err != nil {
		failure := s.failLocked(err, pick(err, s.msgs.DeleteRejected, s.msgs.DeleteFailed))
		s.mu.Unlock()
		s.logger.Warn("批量删除失败", zap.Int64s("ids", ids), zap.Error(err))
		if s.backend.ReconcileOnFailure {
			_ = s.Load(ctx)
		}
		return failure
	}
	s.errMsg = ""
	s.table.ClearSelection()
	s.mu.Unlock()

	s.logger.Info("批量删除成功", zap.Int64s("ids", ids))
	return s.Load(ctx)
}

// RunBulk 对勾选的行执行批量操作,成功后清空勾选并重新拉取
func (s *Screen[T, F]) RunBulk(ctx context.Context, failMsg string, op func(ctx context.Context, ids []int64) error) error {
	s.mu.Lock()
	ids := s.table.SelectedIDs()
	if len(ids) == 0 {
		s.errMsg = s.msgs.NothingSelected
		s.mu.Unlock()
		return apperrors.New(apperrors.ErrCodeNothingSelected, s.msgs.NothingSelected)
	}
	s.mu.Unlock()

	if err := op(ctx, ids); err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.failLocked(err, failMsg)
	}

	s.mu.Lock()
	s.errMsg = ""
	s.table.ClearSelection()
	s.mu.Unlock()
	return s.Load(ctx)
}

// StartAdd 打开空白的新增表单
func (s *Screen[T, F]) StartAdd() (*Form[F], error) {
	if s.backend.Create == nil {
		return nil, ErrFormUnsupported
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero F
	s.form = &Form[F]{Mode: FormAdd, Data: zero}
	return s.copyForm(), nil
}

// StartEdit 打开编辑表单,用已有行预填
func (s *Screen[T, F]) StartEdit(id int64) (*Form[F], error) {
	if s.backend.Update == nil {
		return nil, ErrFormUnsupported
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.table.Find(id)
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	s.form = &Form[F]{Mode: FormEdit, EditingID: id, Data: s.backend.FormOf(row)}
	return s.copyForm(), nil
}

// UpdateForm 替换表单内容
func (s *Screen[T, F]) UpdateForm(data F) (*Form[F], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.form == nil {
		return nil, ErrNoForm
	}
	s.form.Data = data
	return s.copyForm(), nil
}

// CancelForm 关闭表单
func (s *Screen[T, F]) CancelForm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = nil
}

// SubmitForm 提交表单
// 1. 必填项检查,不通过时不发请求
// 2. 新增调Create,编辑调Update
// 3. 成功后关闭表单并重新拉取;失败时优先展示后端detail
func (s *Screen[T, F]) SubmitForm(ctx context.Context) error {
	s.mu.Lock()
	if s.form == nil {
		s.mu.Unlock()
		return ErrNoForm
	}
	form := s.form
	snapshot := *form
	if s.backend.Complete != nil && !s.backend.Complete(snapshot.Data) {
		s.errMsg = MsgRequiredFields
		s.mu.Unlock()
		return ErrRequiredFields
	}
	s.mu.Unlock()

	var err error
	fallback := s.msgs.AddFailed
	if snapshot.Mode == FormEdit {
		fallback = s.msgs.UpdateFailed
		err = s.backend.Update(ctx, snapshot.EditingID, snapshot.Data)
	} else {
		err = s.backend.Create(ctx, snapshot.Data)
	}

	s.mu.Lock()
	if err != nil {
		defer s.mu.Unlock()
		return s.failLocked(err, apperrors.DetailOr(err, fallback))
	}
	s.errMsg = ""
	if s.form == form {
		s.form = nil
	}
	s.mu.Unlock()
	return s.Load(ctx)
}

// Reset 清空页面状态(管理员注销时调用)
func (s *Screen[T, F]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = NewTable(s.table.idOf, s.table.pageSize)
	s.form = nil
	s.pendingDelete = 0
	s.errMsg = ""
	s.loadSeq++
	s.loading = false
}

// Find 按id查找已加载的行
func (s *Screen[T, F]) Find(id int64) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.Find(id)
}

// failLocked 记录页面错误,返回带原始错误码的AppError
func (s *Screen[T, F]) failLocked(err error, msg string) error {
	s.errMsg = msg
	code := apperrors.ErrCodeInternal
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		code = appErr.Code
	}
	return apperrors.WithCode(code, msg, err)
}

func (s *Screen[T, F]) copyForm() *Form[F] {
	if s.form == nil {
		return nil
	}
	f := *s.form
	return &f
}

func (s *Screen[T, F]) viewLocked() View[T, F] {
	rows := s.table.PageRows()
	if rows == nil {
		rows = []T{}
	}
	return View[T, F]{
		Rows:          rows,
		Page:          s.table.Page(),
		TotalPages:    s.table.TotalPages(),
		Total:         s.table.Len(),
		Selected:      s.table.SelectedIDs(),
		Expanded:      s.table.ExpandedIDs(),
		PendingDelete: s.pendingDelete,
		Form:          s.copyForm(),
		Error:         s.errMsg,
		Loading:       s.loading,
	}
}

// pick 后端拒绝用rejected,其他错误用other
func pick(err error, rejected, other string) string {
	if apperrors.IsUpstreamRejected(err) {
		return rejected
	}
	return other
}
