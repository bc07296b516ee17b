// Package orders backs the order-history and order-detail screens.
package orders

import (
	"context"
	"net/url"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/greenroots/storefront/internal/model"
)

// API is the slice of the API client the order screens need.
type API interface {
	MyOrders(ctx context.Context, params url.Values) ([]model.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*model.Order, error)
	CancelOrder(ctx context.Context, id uuid.UUID) (*model.Order, error)
}

// Counts are computed from the in-memory list; there is no server-side
// aggregation.
type Counts struct {
	Processing int
	Delivered  int
	Cancelled  int
}

func countByStatus(orders []model.Order) Counts {
	var c Counts
	for _, o := range orders {
		switch o.OrderStatus {
		case model.OrderProcessing:
			c.Processing++
		case model.OrderDelivered:
			c.Delivered++
		case model.OrderCancelled:
			c.Cancelled++
		}
	}
	return c
}

// CanCancel reports whether the owning customer may still cancel the order.
func CanCancel(o model.Order) bool {
	return o.OrderStatus == model.OrderProcessing
}

type State struct {
	Orders  []model.Order
	Counts  Counts
	Loading bool
	Err     string
}

// History is the order-list view-model. Mutations arrive from command
// goroutines, so state is mutex-guarded.
type History struct {
	api API
	log *zap.Logger

	mu    sync.RWMutex
	state State
}

func NewHistory(a API, log *zap.Logger) *History {
	if log == nil {
		log = zap.NewNop()
	}
	return &History{api: a, log: log, state: State{Loading: true}}
}

func (h *History) State() State {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state
}

func (h *History) Fetch(ctx context.Context) State {
	list, err := h.api.MyOrders(ctx, nil)
	h.mu.Lock()
	defer h.mu.Unlock()
	if err != nil {
		h.state = State{Orders: h.state.Orders, Counts: h.state.Counts, Err: err.Error()}
		return h.state
	}
	h.state = State{Orders: list, Counts: countByStatus(list)}
	return h.state
}

// Cancel cancels one order and patches its status in place from the server's
// response; the rest of the list is not re-fetched.
func (h *History) Cancel(ctx context.Context, id uuid.UUID) State {
	h.mu.Lock()
	defer h.mu.Unlock()
	idx := -1
	for i, o := range h.state.Orders {
		if o.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		h.state.Err = "Resource not found."
		return h.state
	}
	if !CanCancel(h.state.Orders[idx]) {
		h.state.Err = "Only processing orders can be cancelled"
		return h.state
	}

	cancelled, err := h.api.CancelOrder(ctx, id)
	if err != nil {
		h.state.Err = err.Error()
		return h.state
	}
	h.state.Orders[idx].OrderStatus = model.OrderCancelled
	if cancelled != nil && len(cancelled.StatusHistory) > 0 {
		h.state.Orders[idx].StatusHistory = cancelled.StatusHistory
	}
	h.state.Counts = countByStatus(h.state.Orders)
	h.state.Err = ""
	return h.state
}

// Detail is the single-order view-model.
type Detail struct {
	api API
	log *zap.Logger

	mu    sync.RWMutex
	order *model.Order
	err   string
}

func NewDetail(a API, log *zap.Logger) *Detail {
	if log == nil {
		log = zap.NewNop()
	}
	return &Detail{api: a, log: log}
}

// Order returns a copy of the loaded order, so readers never observe a
// concurrent patch mid-write.
func (d *Detail) Order() *model.Order {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.order == nil {
		return nil
	}
	o := *d.order
	return &o
}

func (d *Detail) Err() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.err
}

func (d *Detail) Load(ctx context.Context, id uuid.UUID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.load(ctx, id)
}

func (d *Detail) load(ctx context.Context, id uuid.UUID) error {
	order, err := d.api.GetOrder(ctx, id)
	if err != nil {
		d.err = err.Error()
		return err
	}
	d.order = order
	d.err = ""
	return nil
}

// Cancel mirrors History.Cancel: the response patches local state, no
// re-fetch. Refresh remains available for an explicit reload.
func (d *Detail) Cancel(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.order == nil {
		return nil
	}
	if !CanCancel(*d.order) {
		d.err = "Only processing orders can be cancelled"
		return nil
	}
	cancelled, err := d.api.CancelOrder(ctx, d.order.ID)
	if err != nil {
		d.err = err.Error()
		return err
	}
	d.order.OrderStatus = model.OrderCancelled
	if cancelled != nil && len(cancelled.StatusHistory) > 0 {
		d.order.StatusHistory = cancelled.StatusHistory
	}
	d.err = ""
	return nil
}

func (d *Detail) Refresh(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.order == nil {
		return nil
	}
	return d.load(ctx, d.order.ID)
}
