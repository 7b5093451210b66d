package model

import (
	"context"

	"github.com/coffeelab/coffeelab/internal/model1"
)

// TableModel defines the interface for a table data model that fetches data.
type TableModel interface {
	// Columns returns the table columns.
	Columns() model1.Columns

	// View returns the current page.
	View() model1.View

	// Watch starts watching/refreshing data periodically.
	Watch(context.Context) error

	// Refresh fetches data from the source immediately.
	Refresh(context.Context) error

	// AddListener registers a table listener.
	AddListener(TableListener)

	// RemoveListener unregisters a table listener.
	RemoveListener(TableListener)
}

// TableListener represents a table model listener.
type TableListener interface {
	// TableNoData notifies listener no data was found.
	TableNoData(model1.View)

	// TableDataChanged notifies the model data changed.
	TableDataChanged(model1.View)

	// TableLoadFailed notifies the load failed.
	TableLoadFailed(error)
}

// DashboardListener is notified when dashboard figures are reloaded.
type DashboardListener interface {
	DashboardChanged(DashboardStats)
	DashboardNewOrders(count int)
}
