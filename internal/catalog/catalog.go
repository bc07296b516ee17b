// Package catalog backs the public product-browsing screen.
package catalog

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/greenroots/storefront/internal/model"
)

type API interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error)
}

// Filter selects which product category the shop screen shows.
type Filter string

const (
	FilterAll        Filter = "all"
	FilterBiogas     Filter = Filter(model.ProductBiogas)
	FilterFertilizer Filter = Filter(model.ProductFertilizer)
)

type State struct {
	Products []model.Product
	Filter   Filter
	Loading  bool
	Err      string
}

// View state is mutated from command goroutines and read by the render
// loop, so it sits behind a mutex.
type View struct {
	api API
	log *zap.Logger

	mu    sync.RWMutex
	state State
}

func NewView(a API, log *zap.Logger) *View {
	if log == nil {
		log = zap.NewNop()
	}
	return &View{api: a, log: log, state: State{Filter: FilterAll, Loading: true}}
}

func (v *View) State() State {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}

func (v *View) Fetch(ctx context.Context) State {
	list, err := v.api.ListProducts(ctx)
	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.log.Warn("fetch products", zap.Error(err))
		v.state = State{Filter: v.state.Filter, Err: err.Error()}
		return v.state
	}
	v.state = State{Filter: v.state.Filter, Products: list}
	return v.state
}

func (v *View) SetFilter(f Filter) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.Filter = f
}

// Visible returns the products matching the active filter.
func (v *View) Visible() []model.Product {
	st := v.State()
	if st.Filter == FilterAll {
		return st.Products
	}
	out := make([]model.Product, 0, len(st.Products))
	for _, p := range st.Products {
		if Filter(p.Type) == st.Filter {
			out = append(out, p)
		}
	}
	return out
}

func (v *View) Detail(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	return v.api.GetProduct(ctx, id)
}
