package dao

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/coffeelab/coffeelab/internal/client"
	"github.com/coffeelab/coffeelab/internal/model1"
	"go.uber.org/zap"
)

// ErrUnknownResource is returned for a resource without an accessor.
var ErrUnknownResource = errors.New("unknown resource")

// ResourceID identifies a coffeelab resource type.
type ResourceID struct {
	Group    string // e.g., "sales", "inventory"
	Resource string // e.g., "orders", "stock"
}

// String returns a string representation in the form "group/resource".
func (r ResourceID) String() string {
	return r.Group + "/" + r.Resource
}

// Parse parses a string in the form "group/resource" into a ResourceID.
func (r *ResourceID) Parse(s string) error {
	g, res, ok := strings.Cut(s, "/")
	if !ok || g == "" || res == "" || strings.Contains(res, "/") {
		return fmt.Errorf("invalid resource ID format: %s (expected group/resource)", s)
	}
	r.Group, r.Resource = g, res
	return nil
}

// Predefined ResourceID variables for every coffeelab resource.
var (
	OrderRID      = ResourceID{Group: "sales", Resource: "orders"}
	BillRID       = ResourceID{Group: "sales", Resource: "bills"}
	ProductRID    = ResourceID{Group: "inventory", Resource: "stock"}
	StockAlertRID = ResourceID{Group: "inventory", Resource: "alerts"}
)

// Factory provides the API client and shared caches to accessors.
type Factory interface {
	Client() *client.APIClient
	Cache() *ResourceCache
	Logger() *zap.Logger
}

// Getter retrieves a single resource by id.
type Getter interface {
	Get(ctx context.Context, id string) (model1.Row, error)
}

// Lister retrieves every resource of a kind.
type Lister interface {
	List(ctx context.Context) (model1.Rows, error)
}

// Accessor combines getting and listing capabilities with initialization.
type Accessor interface {
	Getter
	Lister
	Init(Factory, *ResourceID)
	ResourceID() *ResourceID
}

// Describer provides formatted descriptions of resources.
type Describer interface {
	ToJSON(ctx context.Context, id string) (string, error)
}

// Nuker provides deletion capabilities.
type Nuker interface {
	Delete(ctx context.Context, id string) error
}

// Advancer moves an order through its service states.
type Advancer interface {
	Advance(ctx context.Context, id string) (string, error)
	SetStatus(ctx context.Context, id, status string) error
}

// Biller issues bills for orders.
type Biller interface {
	IssueBill(ctx context.Context, orderID, cashier string) (model1.Row, error)
}

// Payer records bill payments.
type Payer interface {
	Pay(ctx context.Context, id, method string) error
	Refund(ctx context.Context, id string) error
	ApplyDiscount(ctx context.Context, id string, amount float64) error
}

// Restocker adjusts stock quantities.
type Restocker interface {
	AdjustQuantity(ctx context.Context, id string, qty float64, op string) error
}

// Updater patches resource fields.
type Updater interface {
	Update(ctx context.Context, id string, fields map[string]any) error
}
