// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of coffeelab

package view

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/coffeelab/coffeelab/internal/dao"
	"github.com/coffeelab/coffeelab/internal/model"
	"github.com/coffeelab/coffeelab/internal/model1"
	"github.com/coffeelab/coffeelab/internal/render"
	"github.com/coffeelab/coffeelab/internal/ui"
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
	"go.uber.org/zap"
)

const dashboardTitle = "dashboard"

// Dashboard shows the shop overview.
type Dashboard struct {
	*tview.Flex

	app      *App
	model    *model.Dashboard
	stats    *tview.TextView
	orders   *ui.Table
	alerts   *ui.Table
	actions  *ui.KeyActions
	cancelFn context.CancelFunc
	mx       sync.Mutex
}

// NewDashboard returns a new dashboard view.
func NewDashboard(app *App) *Dashboard {
	return &Dashboard{
		Flex:    tview.NewFlex(),
		app:     app,
		model:   model.NewDashboard(app.Factory()),
		stats:   tview.NewTextView(),
		orders:  ui.NewTable(&dao.OrderRID),
		alerts:  ui.NewTable(&dao.StockAlertRID),
		actions: ui.NewKeyActions(),
	}
}

// Init builds the layout.
func (d *Dashboard) Init(ctx context.Context) error {
	for _, t := range []*ui.Table{d.orders, d.alerts} {
		if err := t.Init(ctx); err != nil {
			return err
		}
	}
	d.orders.SetColorerFn(render.StatusColorer("status"))
	d.orders.SetTitle(" Recent Orders ")
	d.alerts.SetColorerFn((&render.StockAlert{}).ColorerFunc())
	d.alerts.SetTitle(" Low Stock ")

	d.stats.SetDynamicColors(true)
	d.stats.SetBorder(true)
	d.stats.SetBorderPadding(0, 0, 1, 1)
	d.stats.SetBorderColor(tcell.ColorDarkCyan)
	d.stats.SetBackgroundColor(tcell.ColorDefault)
	d.stats.SetTitle(" Coffeelab ")
	d.stats.SetText("[gray::]Loading...")

	d.SetDirection(tview.FlexRow)
	d.AddItem(d.stats, 6, 0, false)
	d.AddItem(d.orders, 0, 1, true)
	d.AddItem(d.alerts, 0, 1, false)

	d.actions.Bulk(ui.KeyMap{
		tcell.KeyCtrlR: ui.NewKeyAction("Reload", d.reloadCmd, true),
		tcell.KeyTab:   ui.NewKeyAction("Switch Panel", d.switchCmd, true),
	})
	d.SetInputCapture(d.keyboard)
	d.model.AddListener(d)

	return nil
}

// Name returns the view name.
func (*Dashboard) Name() string {
	return dashboardTitle
}

// Hints returns the menu hints.
func (d *Dashboard) Hints() ui.MenuHints {
	return d.actions.Hints()
}

// Start loads the figures then polls for new orders.
func (d *Dashboard) Start() {
	d.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	d.mx.Lock()
	d.cancelFn = cancel
	d.mx.Unlock()

	go d.watch(ctx, d.app.Settings().RefreshDuration())
}

// Stop stops polling.
func (d *Dashboard) Stop() {
	d.mx.Lock()
	defer d.mx.Unlock()
	if d.cancelFn != nil {
		d.cancelFn()
		d.cancelFn = nil
	}
}

func (d *Dashboard) watch(ctx context.Context, rate time.Duration) {
	d.load(ctx)
	if rate <= 0 {
		rate = model.DefaultRefreshRate
	}
	ticker := time.NewTicker(rate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := d.model.CheckUpdates(ctx)
			if err != nil {
				d.app.Logger().Debug("dashboard check failed", zap.Error(err))
				continue
			}
			if n > 0 {
				d.load(ctx)
			}
		}
	}
}

func (d *Dashboard) load(ctx context.Context) {
	if _, err := d.model.Load(ctx); err != nil && ctx.Err() == nil {
		d.app.Flash().Err(err)
	}
}

// DashboardChanged implements model.DashboardListener.
func (d *Dashboard) DashboardChanged(st model.DashboardStats) {
	loc := d.app.Settings().Location()
	d.app.QueueUpdateDraw(func() {
		d.stats.SetText(StatsText(st, loc))
		d.orders.UpdateUI(staticView(&render.Order{}, st.RecentOrders, loc))
		d.orders.SetTitle(fmt.Sprintf(" Recent Orders [%d] ", len(st.RecentOrders)))
		d.alerts.UpdateUI(staticView(&render.StockAlert{}, st.LowStockAlerts, loc))
		d.alerts.SetTitle(fmt.Sprintf(" Low Stock [%d] ", len(st.LowStockAlerts)))
	})
}

// DashboardNewOrders implements model.DashboardListener.
func (d *Dashboard) DashboardNewOrders(n int) {
	if n == 1 {
		d.app.Flash().Info("1 new order")
		return
	}
	d.app.Flash().Infof("%d new orders", n)
}

func (d *Dashboard) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	if a, ok := d.actions.Get(ui.AsKey(evt)); ok {
		return a.Action(evt)
	}
	return evt
}

func (d *Dashboard) reloadCmd(*tcell.EventKey) *tcell.EventKey {
	go d.load(context.Background())
	return nil
}

func (d *Dashboard) switchCmd(*tcell.EventKey) *tcell.EventKey {
	if d.orders.HasFocus() {
		d.app.SetFocus(d.alerts)
		return nil
	}
	d.app.SetFocus(d.orders)

	return nil
}

// StatsText formats the dashboard figures.
func StatsText(st model.DashboardStats, loc *time.Location) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[aqua::]%-16s[white::b]%-10d[-::-] [aqua::]%-14s[white::b]%s[-::-]\n",
		"Pending orders", st.PendingOrders, "Revenue", render.FormatPrice(st.Revenue))
	fmt.Fprintf(&b, "[aqua::]%-16s[white::b]%-10d[-::-] [aqua::]%-14s[white::b]%d[-::-]\n",
		"Pending bills", st.PendingBills, "Low stock", st.LowStock)
	fmt.Fprintf(&b, "[aqua::]%-16s[white::b]%-10d[-::-] [aqua::]%-14s[gray::]%s[-::]\n",
		"Expiring soon", st.ExpiringSoon, "Updated", render.FormatDate(st.LoadedAt, loc))
	if len(st.Failed) > 0 {
		fmt.Fprintf(&b, "[red::]Unavailable: %s[-::]", strings.Join(st.Failed, ", "))
	}

	return b.String()
}

// staticView lays out rows with a renderer on a single page.
func staticView(r model1.Renderer, rows model1.Rows, loc *time.Location) model1.View {
	tv, err := model1.NewTabularView(r.Columns(), rows,
		model1.WithPagination(false),
		model1.WithSearch(false),
		model1.WithFormatter(render.NewFormatter(loc)),
	)
	if err != nil {
		return model1.View{CurrentPage: 1, TotalPages: 1}
	}
	return tv.View()
}
