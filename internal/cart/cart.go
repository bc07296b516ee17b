// Package cart reconciles the server's cart into a display-safe form and
// issues the mutations the cart screen needs.
package cart

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/greenroots/storefront/internal/model"
)

// API is the slice of the API client the cart view needs.
type API interface {
	GetCart(ctx context.Context) (*model.Cart, error)
	AddToCart(ctx context.Context, productID uuid.UUID, quantity int) (*model.Cart, error)
	UpdateCartItem(ctx context.Context, itemID uuid.UUID, quantity int) (*model.Cart, error)
	RemoveCartItem(ctx context.Context, itemID uuid.UUID) (*model.Cart, error)
}

// Session is the slice of the session store the cart view needs.
type Session interface {
	IsAuthenticated() bool
}

type State struct {
	Cart    model.Cart
	Loading bool
	Err     string
}

func (s State) Empty() bool { return len(s.Cart.Items) == 0 }

// Reconcile drops line items without a resolvable product reference, with a
// non-positive quantity, or with a non-positive price, and recomputes the
// total from what survives. Whatever total the server reported is discarded.
func Reconcile(cart model.Cart) model.Cart {
	valid := make([]model.CartItem, 0, len(cart.Items))
	total := decimal.Zero
	for _, item := range cart.Items {
		if !item.ProductID.Resolvable() || item.Quantity <= 0 || !item.Price.IsPositive() {
			continue
		}
		valid = append(valid, item)
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	cart.Items = valid
	cart.TotalAmount = total
	return cart
}

// View methods run on Bubble Tea command goroutines, so state access is
// guarded by a mutex the same way the session store guards its own.
type View struct {
	api     API
	session Session
	log     *zap.Logger

	mu    sync.RWMutex
	state State
	// OnChange, when set, observes every state transition. It is invoked
	// with the mutation's lock held.
	OnChange func(State)
}

func NewView(api API, session Session, log *zap.Logger) *View {
	if log == nil {
		log = zap.NewNop()
	}
	return &View{api: api, session: session, log: log, state: State{Loading: true}}
}

func (v *View) State() State {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}

func (v *View) set(st State) State {
	v.state = st
	if v.OnChange != nil {
		v.OnChange(st)
	}
	return st
}

// Fetch loads the cart. Every payload passes through Reconcile before it
// reaches view state, so the displayed items and total always agree.
func (v *View) Fetch(ctx context.Context) State {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.session.IsAuthenticated() {
		return v.set(State{})
	}
	cart, err := v.api.GetCart(ctx)
	if err != nil {
		v.log.Warn("fetch cart", zap.Error(err))
		return v.set(State{Cart: v.state.Cart, Err: err.Error()})
	}
	return v.set(State{Cart: Reconcile(*cart)})
}

// UpdateQty changes a line's quantity. Anything below one is a removal.
func (v *View) UpdateQty(ctx context.Context, itemID uuid.UUID, qty int) State {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.session.IsAuthenticated() {
		return v.set(State{Cart: v.state.Cart, Err: "Please login to update cart"})
	}
	if qty < 1 {
		return v.remove(ctx, itemID)
	}
	cart, err := v.api.UpdateCartItem(ctx, itemID, qty)
	if err != nil {
		return v.set(State{Cart: v.state.Cart, Err: err.Error()})
	}
	return v.set(State{Cart: Reconcile(*cart)})
}

func (v *View) Remove(ctx context.Context, itemID uuid.UUID) State {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.session.IsAuthenticated() {
		return v.set(State{Cart: v.state.Cart, Err: "Please login to remove items"})
	}
	return v.remove(ctx, itemID)
}

func (v *View) remove(ctx context.Context, itemID uuid.UUID) State {
	cart, err := v.api.RemoveCartItem(ctx, itemID)
	if err != nil {
		return v.set(State{Cart: v.state.Cart, Err: err.Error()})
	}
	return v.set(State{Cart: Reconcile(*cart)})
}

// Add puts a product in the cart from the shop screen.
func (v *View) Add(ctx context.Context, productID uuid.UUID, qty int) State {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.session.IsAuthenticated() {
		return v.set(State{Cart: v.state.Cart, Err: "Please login to add items"})
	}
	cart, err := v.api.AddToCart(ctx, productID, qty)
	if err != nil {
		return v.set(State{Cart: v.state.Cart, Err: err.Error()})
	}
	return v.set(State{Cart: Reconcile(*cart)})
}

// Gate is the checkout gate decision.
type Gate int

const (
	// GateLogin means the user must authenticate first.
	GateLogin Gate = iota
	// GateEmpty means there is nothing to check out.
	GateEmpty
	// GateProceed means checkout may begin.
	GateProceed
)

// CheckoutGate decides whether the checkout flow may start.
func (v *View) CheckoutGate() Gate {
	if !v.session.IsAuthenticated() {
		return GateLogin
	}
	if v.State().Empty() {
		return GateEmpty
	}
	return GateProceed
}
