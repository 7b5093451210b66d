package model_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/coffeelab/coffeelab/internal/dao"
	"github.com/coffeelab/coffeelab/internal/model"
	"github.com/coffeelab/coffeelab/internal/model1"
	"github.com/coffeelab/coffeelab/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

type fakeAccessor struct {
	mx    sync.Mutex
	rows  model1.Rows
	err   error
	calls int
}

func (f *fakeAccessor) set(rows model1.Rows, err error) {
	f.mx.Lock()
	defer f.mx.Unlock()
	f.rows, f.err = rows, err
}

func (f *fakeAccessor) List(context.Context) (model1.Rows, error) {
	f.mx.Lock()
	defer f.mx.Unlock()
	f.calls++
	return f.rows, f.err
}

func (f *fakeAccessor) Get(_ context.Context, id string) (model1.Row, error) {
	f.mx.Lock()
	defer f.mx.Unlock()
	for _, r := range f.rows {
		if r.ID() == id {
			return r, nil
		}
	}
	return nil, fmt.Errorf("no %s", id)
}

func (*fakeAccessor) Init(dao.Factory, *dao.ResourceID) {}

func (*fakeAccessor) ResourceID() *dao.ResourceID { return &dao.OrderRID }

type listener struct {
	mx      sync.Mutex
	changed []model1.View
	noData  int
	errs    []error
}

func (l *listener) TableDataChanged(v model1.View) {
	l.mx.Lock()
	defer l.mx.Unlock()
	l.changed = append(l.changed, v)
}

func (l *listener) TableNoData(model1.View) {
	l.mx.Lock()
	defer l.mx.Unlock()
	l.noData++
}

func (l *listener) TableLoadFailed(err error) {
	l.mx.Lock()
	defer l.mx.Unlock()
	l.errs = append(l.errs, err)
}

func (l *listener) counts() (int, int, int) {
	l.mx.Lock()
	defer l.mx.Unlock()
	return len(l.changed), l.noData, len(l.errs)
}

func orders(n int) model1.Rows {
	rr := make(model1.Rows, 0, n)
	for i := range n {
		rr = append(rr, model1.Row{
			"_id":         fmt.Sprintf("o%02d", i),
			"orderNumber": fmt.Sprintf("ORD-%03d", i),
			"status":      "pending",
			"totalAmount": float64(i),
		})
	}
	return rr
}

func newTable(t *testing.T, acc dao.Accessor, oo ...model1.Option) (*model.TableData, *listener) {
	t.Helper()

	td := model.NewTableData(&dao.OrderRID, 10*time.Millisecond, nil)
	td.SetAccessor(acc)
	require.NoError(t, td.Init(&render.Order{}, oo...))
	var l listener
	td.AddListener(&l)

	return td, &l
}

func TestTableDataRefresh(t *testing.T) {
	acc := fakeAccessor{rows: orders(12)}
	td, l := newTable(t, &acc, model1.WithPageSize(5))

	require.NoError(t, td.Refresh(context.Background()))
	v := td.View()
	assert.Equal(t, 3, v.TotalPages)
	assert.Equal(t, 12, v.TotalMatching)
	assert.Len(t, v.Rows, 5)

	changed, noData, errs := l.counts()
	assert.Equal(t, 1, changed)
	assert.Zero(t, noData)
	assert.Zero(t, errs)
}

func TestTableDataRefreshKeepsPage(t *testing.T) {
	acc := fakeAccessor{rows: orders(12)}
	td, _ := newTable(t, &acc, model1.WithPageSize(5))
	require.NoError(t, td.Refresh(context.Background()))

	td.GoToPage(3)
	require.NoError(t, td.Refresh(context.Background()))
	assert.Equal(t, 3, td.View().CurrentPage)

	acc.set(orders(6), nil)
	require.NoError(t, td.Refresh(context.Background()))
	assert.Equal(t, 2, td.View().CurrentPage)
}

func TestTableDataNoData(t *testing.T) {
	acc := fakeAccessor{rows: model1.Rows{}}
	td, l := newTable(t, &acc)

	require.NoError(t, td.Refresh(context.Background()))
	_, noData, _ := l.counts()
	assert.Equal(t, 1, noData)
	assert.True(t, td.Empty())
	assert.Equal(t, 1, td.View().TotalPages)
}

func TestTableDataRefreshFailed(t *testing.T) {
	boom := errors.New("boom")
	acc := fakeAccessor{err: boom}
	td, _ := newTable(t, &acc)

	assert.ErrorIs(t, td.Refresh(context.Background()), boom)

	td = model.NewTableData(&dao.OrderRID, time.Second, nil)
	assert.Error(t, td.Refresh(context.Background()))
	assert.Error(t, td.Init(nil))
}

func TestTableDataInitConfigError(t *testing.T) {
	td := model.NewTableData(&dao.OrderRID, time.Second, nil)
	err := td.Init(&render.Order{}, model1.WithPageSize(0))
	assert.ErrorIs(t, err, model1.ErrConfig)
}

func TestTableDataInteractions(t *testing.T) {
	acc := fakeAccessor{rows: orders(12)}
	td, l := newTable(t, &acc, model1.WithPageSize(5))
	require.NoError(t, td.Refresh(context.Background()))

	td.SetSort("totalAmount")
	td.SetSort("totalAmount")
	v := td.View()
	assert.Equal(t, "ORD-011", v.Rows[0].String("orderNumber"))

	td.SetSearchTerm("ORD-00")
	assert.Equal(t, 10, td.View().TotalMatching)

	td.NextPage()
	assert.Equal(t, 2, td.View().CurrentPage)
	td.PrevPage()
	assert.Equal(t, 1, td.View().CurrentPage)

	require.NoError(t, td.SetPageSize(3))
	assert.Equal(t, 4, td.View().TotalPages)
	assert.Error(t, td.SetPageSize(0))

	row, ok := td.Select(0)
	require.True(t, ok)
	assert.Equal(t, "o09", row.ID())

	changed, _, _ := l.counts()
	assert.Equal(t, 7, changed)
}

func TestTableDataRowSelect(t *testing.T) {
	acc := fakeAccessor{rows: orders(3)}
	var picked []string
	td, _ := newTable(t, &acc, model1.WithRowSelect(func(r model1.Row) {
		picked = append(picked, r.ID())
	}))
	require.NoError(t, td.Refresh(context.Background()))

	row, ok := td.Select(1)
	require.True(t, ok)
	assert.Equal(t, []string{row.ID()}, picked)

	_, ok = td.Select(5)
	assert.False(t, ok)
	assert.Len(t, picked, 1)
}

func TestTableDataDelta(t *testing.T) {
	acc := fakeAccessor{rows: orders(2)}
	td, _ := newTable(t, &acc)
	require.NoError(t, td.Refresh(context.Background()))

	next := orders(2)
	next[1] = next[1].Clone()
	next[1]["status"] = "ready"
	acc.set(next, nil)
	require.NoError(t, td.Refresh(context.Background()))

	patch, err := td.Delta("o01")
	require.NoError(t, err)
	require.Len(t, patch, 1)
	assert.Equal(t, "/status", patch[0].Path)
	assert.Equal(t, []model1.ResEvent{model1.EventUnchanged, model1.EventUpdate}, td.View().Kinds)
}

func TestTableDataWatch(t *testing.T) {
	acc := fakeAccessor{rows: orders(3)}
	td, l := newTable(t, &acc)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, td.Watch(ctx))

	assert.Eventually(t, func() bool {
		changed, _, _ := l.counts()
		return changed >= 3
	}, time.Second, 5*time.Millisecond)

	acc.set(nil, errors.New("down"))
	assert.Eventually(t, func() bool {
		_, _, errs := l.counts()
		return errs >= 1
	}, time.Second, 5*time.Millisecond)

	td.Stop()
	td.Stop()
}

func TestTableDataWatchRestart(t *testing.T) {
	acc := fakeAccessor{rows: orders(1)}
	td, _ := newTable(t, &acc)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, td.Watch(ctx))
	require.NoError(t, td.Watch(ctx))
	cancel()
	td.Stop()
}

func TestTableDataRemoveListener(t *testing.T) {
	acc := fakeAccessor{rows: orders(1)}
	td, l := newTable(t, &acc)
	td.RemoveListener(l)

	require.NoError(t, td.Refresh(context.Background()))
	changed, _, _ := l.counts()
	assert.Zero(t, changed)
}

func TestRendererFor(t *testing.T) {
	for _, rid := range dao.ListAccessors() {
		r, err := model.RendererFor(rid)
		require.NoError(t, err, rid.String())
		assert.NotEmpty(t, r.Columns())
	}

	_, err := model.RendererFor(&dao.ResourceID{Group: "sales", Resource: "tips"})
	assert.Error(t, err)
}
