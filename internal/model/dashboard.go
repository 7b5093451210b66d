package model

import (
	"context"
	"sync"
	"time"

	"github.com/coffeelab/coffeelab/internal/client"
	"github.com/coffeelab/coffeelab/internal/dao"
	"github.com/coffeelab/coffeelab/internal/model1"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RecentOrders is the number of orders shown on the dashboard.
const RecentOrders = 5

// DashboardStats holds the figures of the dashboard. Failed lists the
// sections that could not be loaded and were left empty.
type DashboardStats struct {
	PendingOrders  int
	Revenue        float64
	PendingBills   int
	LowStock       int
	ExpiringSoon   int
	RecentOrders   model1.Rows
	LowStockAlerts model1.Rows
	Failed         []string
	LoadedAt       time.Time
}

// Dashboard loads the shop overview.
type Dashboard struct {
	factory   dao.Factory
	log       *zap.Logger
	last      *DashboardStats
	listeners []DashboardListener
	mx        sync.RWMutex
}

// NewDashboard returns a dashboard model.
func NewDashboard(f dao.Factory) *Dashboard {
	log := f.Logger()
	if log == nil {
		log = zap.NewNop()
	}
	return &Dashboard{factory: f, log: log.Named("dashboard")}
}

// AddListener registers a dashboard listener.
func (d *Dashboard) AddListener(l DashboardListener) {
	d.mx.Lock()
	defer d.mx.Unlock()
	d.listeners = append(d.listeners, l)
}

// Last returns the latest loaded figures.
func (d *Dashboard) Last() (DashboardStats, bool) {
	d.mx.RLock()
	defer d.mx.RUnlock()
	if d.last == nil {
		return DashboardStats{}, false
	}
	return *d.last, true
}

// Load fetches every section in parallel. A failing section is logged and
// left empty; only a canceled context fails the whole load.
func (d *Dashboard) Load(parent context.Context) (DashboardStats, error) {
	var (
		st DashboardStats
		mx sync.Mutex
	)
	fail := func(section string, err error) {
		d.log.Warn("dashboard section failed", zap.String("section", section), zap.Error(err))
		mx.Lock()
		st.Failed = append(st.Failed, section)
		mx.Unlock()
	}
	c := d.factory.Client()

	g, ctx := errgroup.WithContext(parent)
	g.Go(func() error {
		env, err := c.OrderStats(ctx)
		if err != nil {
			fail("orders", err)
			return nil
		}
		st.PendingOrders = int(env.Get("pending").Int())
		return nil
	})
	g.Go(func() error {
		env, err := c.BillStats(ctx)
		if err != nil {
			fail("bills", err)
			return nil
		}
		st.Revenue = env.Get("total_revenue").Float()
		st.PendingBills = int(env.Get("pending").Int())
		return nil
	})
	g.Go(func() error {
		env, err := c.StockStats(ctx)
		if err != nil {
			fail("stock", err)
			return nil
		}
		st.LowStock = int(env.Get("low_stock").Int())
		return nil
	})
	g.Go(func() error {
		rows, err := d.list(ctx, &dao.OrderRID, func(acc dao.Accessor) (model1.Rows, error) {
			return acc.(*dao.Order).Recent(ctx, RecentOrders)
		})
		if err != nil {
			fail("recent orders", err)
			rows = model1.Rows{}
		}
		st.RecentOrders = rows
		return nil
	})
	g.Go(func() error {
		rows, err := d.list(ctx, &dao.StockAlertRID, func(acc dao.Accessor) (model1.Rows, error) {
			return acc.List(ctx)
		})
		if err != nil {
			fail("stock alerts", err)
			rows = model1.Rows{}
		}
		st.LowStockAlerts = rows
		return nil
	})
	g.Go(func() error {
		rows, err := d.list(ctx, &dao.StockAlertRID, func(acc dao.Accessor) (model1.Rows, error) {
			return acc.(*dao.StockAlert).ExpiringSoon(ctx, dao.DefaultExpiryWindow)
		})
		if err != nil {
			fail("expiring stock", err)
			return nil
		}
		st.ExpiringSoon = len(rows)
		return nil
	})
	_ = g.Wait()
	if err := parent.Err(); err != nil {
		return DashboardStats{}, err
	}
	st.LoadedAt = time.Now()

	d.mx.Lock()
	d.last = &st
	d.mx.Unlock()
	for _, l := range d.snapshot() {
		l.DashboardChanged(st)
	}

	return st, nil
}

// CheckUpdates reloads the order counters and reports newly pending orders.
func (d *Dashboard) CheckUpdates(ctx context.Context) (int, error) {
	prev, ok := d.Last()
	if !ok {
		return 0, nil
	}
	env, err := d.factory.Client().OrderStats(ctx)
	if err != nil {
		return 0, client.WrapError(err, "check orders")
	}
	pending := int(env.Get("pending").Int())
	n := pending - prev.PendingOrders
	if n <= 0 {
		return 0, nil
	}
	d.mx.Lock()
	if d.last != nil {
		d.last.PendingOrders = pending
	}
	d.mx.Unlock()
	for _, l := range d.snapshot() {
		l.DashboardNewOrders(n)
	}

	return n, nil
}

func (d *Dashboard) list(ctx context.Context, rid *dao.ResourceID, f func(dao.Accessor) (model1.Rows, error)) (model1.Rows, error) {
	acc, err := dao.AccessorFor(d.factory, rid)
	if err != nil {
		return nil, err
	}
	return f(acc)
}

func (d *Dashboard) snapshot() []DashboardListener {
	d.mx.RLock()
	defer d.mx.RUnlock()
	ll := make([]DashboardListener, len(d.listeners))
	copy(ll, d.listeners)
	return ll
}
