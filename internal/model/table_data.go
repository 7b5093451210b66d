package model

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/coffeelab/coffeelab/internal/dao"
	"github.com/coffeelab/coffeelab/internal/model1"
	"github.com/coffeelab/coffeelab/internal/render"
	"github.com/coffeelab/coffeelab/internal/slogs"
	"github.com/wI2L/jsondiff"
	"go.uber.org/zap"
)

// DefaultRefreshRate is used when no refresh rate is configured.
const DefaultRefreshRate = 5 * time.Second

var (
	errNoAccessor = errors.New("no accessor configured")
	errNoRenderer = errors.New("no renderer configured")
)

// TableData fetches resources from a DAO and projects them through a tabular view.
type TableData struct {
	rid         *dao.ResourceID
	accessor    dao.Accessor
	renderer    model1.Renderer
	view        *model1.TabularView
	refreshRate time.Duration
	listeners   []TableListener
	cancelFn    context.CancelFunc
	log         *zap.Logger
	mx          sync.RWMutex
}

// NewTableData creates a new table data model.
func NewTableData(rid *dao.ResourceID, refreshRate time.Duration, log *zap.Logger) *TableData {
	if log == nil {
		log = zap.NewNop()
	}
	return &TableData{
		rid:         rid,
		refreshRate: refreshRate,
		listeners:   make([]TableListener, 0, 2),
		log:         log.With(zap.String(slogs.Resource, rid.String())),
	}
}

// SetAccessor sets the DAO accessor.
func (t *TableData) SetAccessor(a dao.Accessor) {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.accessor = a
}

// Accessor returns the DAO accessor.
func (t *TableData) Accessor() dao.Accessor {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.accessor
}

// ResourceID returns the resource shown by the table.
func (t *TableData) ResourceID() *dao.ResourceID {
	return t.rid
}

// Init builds the tabular view from the renderer columns.
func (t *TableData) Init(r model1.Renderer, oo ...model1.Option) error {
	if r == nil {
		return errNoRenderer
	}
	tv, err := model1.NewTabularView(r.Columns(), nil, oo...)
	if err != nil {
		return fmt.Errorf("%s: %w", t.rid, err)
	}

	t.mx.Lock()
	defer t.mx.Unlock()
	t.renderer, t.view = r, tv

	return nil
}

// Renderer returns the renderer.
func (t *TableData) Renderer() model1.Renderer {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.renderer
}

// Columns returns the table columns.
func (t *TableData) Columns() model1.Columns {
	if tv := t.tabular(); tv != nil {
		return tv.Columns()
	}
	return nil
}

// View returns the current page.
func (t *TableData) View() model1.View {
	if tv := t.tabular(); tv != nil {
		return tv.View()
	}
	return model1.View{CurrentPage: 1, TotalPages: 1}
}

// Empty returns true if no rows were loaded.
func (t *TableData) Empty() bool {
	tv := t.tabular()
	return tv == nil || tv.Len() == 0
}

// Delta returns the changes of a row since the previous refresh.
func (t *TableData) Delta(id string) (jsondiff.Patch, error) {
	tv := t.tabular()
	if tv == nil {
		return nil, errNoRenderer
	}
	return tv.Delta(id)
}

// SetSearchTerm filters the rows.
func (t *TableData) SetSearchTerm(term string) {
	t.apply(func(tv *model1.TabularView) { tv.SetSearchTerm(term) })
}

// SetSort sorts by a column, toggling the direction on repeat.
func (t *TableData) SetSort(key string) {
	t.apply(func(tv *model1.TabularView) { tv.SetSort(key) })
}

// SortBy sorts by a column in the given direction.
func (t *TableData) SortBy(key string, dir model1.SortDirection) {
	t.apply(func(tv *model1.TabularView) { tv.SortBy(key, dir) })
}

// GoToPage moves to a page.
func (t *TableData) GoToPage(n int) {
	t.apply(func(tv *model1.TabularView) { tv.GoToPage(n) })
}

// NextPage moves one page forward.
func (t *TableData) NextPage() {
	t.apply(func(tv *model1.TabularView) { tv.NextPage() })
}

// PrevPage moves one page back.
func (t *TableData) PrevPage() {
	t.apply(func(tv *model1.TabularView) { tv.PrevPage() })
}

// SetPageSize changes the page size.
func (t *TableData) SetPageSize(n int) error {
	tv := t.tabular()
	if tv == nil {
		return errNoRenderer
	}
	if err := tv.SetPageSize(n); err != nil {
		return err
	}
	t.notifyDataChanged(tv.View())

	return nil
}

// Select picks the i-th row of the current page.
func (t *TableData) Select(i int) (model1.Row, bool) {
	if tv := t.tabular(); tv != nil {
		return tv.Select(i)
	}
	return nil, false
}

// AddListener registers a table listener.
func (t *TableData) AddListener(l TableListener) {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.listeners = append(t.listeners, l)
}

// RemoveListener unregisters a table listener.
func (t *TableData) RemoveListener(l TableListener) {
	t.mx.Lock()
	defer t.mx.Unlock()

	for i, listener := range t.listeners {
		if listener == l {
			t.listeners = append(t.listeners[:i], t.listeners[i+1:]...)
			return
		}
	}
}

// Watch loads the data then refreshes it periodically until ctx is done or Stop is called.
func (t *TableData) Watch(ctx context.Context) error {
	t.mx.Lock()
	if t.cancelFn != nil {
		t.cancelFn()
	}
	watchCtx, cancel := context.WithCancel(ctx)
	t.cancelFn = cancel
	t.mx.Unlock()

	if err := t.Refresh(watchCtx); err != nil {
		t.notifyLoadFailed(err)
	}
	go t.watchLoop(watchCtx)

	return nil
}

func (t *TableData) watchLoop(ctx context.Context) {
	t.mx.RLock()
	rate := t.refreshRate
	t.mx.RUnlock()
	if rate <= 0 {
		rate = DefaultRefreshRate
	}

	ticker := time.NewTicker(rate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := t.Refresh(ctx); err != nil && ctx.Err() == nil {
				t.notifyLoadFailed(err)
			}
		}
	}
}

// Refresh fetches rows from the DAO immediately. The current page is kept
// when it still exists.
func (t *TableData) Refresh(ctx context.Context) error {
	t.mx.RLock()
	acc, tv := t.accessor, t.view
	t.mx.RUnlock()

	if acc == nil {
		return errNoAccessor
	}
	if tv == nil {
		return errNoRenderer
	}

	rows, err := acc.List(ctx)
	if err != nil {
		t.log.Warn("refresh failed", zap.Error(err))
		return fmt.Errorf("failed to list %s: %w", t.rid, err)
	}

	page := tv.State().CurrentPage
	tv.UpdateData(rows)
	tv.GoToPage(page)
	t.log.Debug("refreshed", zap.Int(slogs.RowCount, len(rows)), zap.Int(slogs.Page, page))

	v := tv.View()
	if len(rows) == 0 {
		t.notifyNoData(v)
		return nil
	}
	t.notifyDataChanged(v)

	return nil
}

// Stop stops the watch loop.
func (t *TableData) Stop() {
	t.mx.Lock()
	defer t.mx.Unlock()

	if t.cancelFn != nil {
		t.cancelFn()
		t.cancelFn = nil
	}
}

func (t *TableData) tabular() *model1.TabularView {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.view
}

func (t *TableData) apply(f func(*model1.TabularView)) {
	tv := t.tabular()
	if tv == nil {
		return
	}
	f(tv)
	t.notifyDataChanged(tv.View())
}

func (t *TableData) snapshot() []TableListener {
	t.mx.RLock()
	defer t.mx.RUnlock()
	ll := make([]TableListener, len(t.listeners))
	copy(ll, t.listeners)
	return ll
}

func (t *TableData) notifyNoData(v model1.View) {
	for _, l := range t.snapshot() {
		l.TableNoData(v)
	}
}

func (t *TableData) notifyDataChanged(v model1.View) {
	for _, l := range t.snapshot() {
		l.TableDataChanged(v)
	}
}

func (t *TableData) notifyLoadFailed(err error) {
	for _, l := range t.snapshot() {
		l.TableLoadFailed(err)
	}
}

// RendererFor returns the appropriate renderer for the given resource ID.
func RendererFor(rid *dao.ResourceID) (model1.Renderer, error) {
	switch rid.String() {
	case dao.OrderRID.String():
		return &render.Order{}, nil
	case dao.BillRID.String():
		return &render.Bill{}, nil
	case dao.ProductRID.String():
		return &render.Product{}, nil
	case dao.StockAlertRID.String():
		return &render.StockAlert{}, nil
	default:
		return nil, fmt.Errorf("no renderer for resource: %s", rid)
	}
}
