// Package checkout drives the order-placement flow: collect a shipping
// address, create the order, and for card payments run the payment-intent
// sub-flow before declaring success.
package checkout

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/google/uuid"

	"github.com/greenroots/storefront/internal/api"
	"github.com/greenroots/storefront/internal/cart"
	"github.com/greenroots/storefront/internal/model"
)

// RedirectDelay is how long the success message stays up before the UI
// navigates to order history.
const RedirectDelay = 3 * time.Second

type Phase int

const (
	PhaseCollecting Phase = iota
	PhaseCreating
	PhaseAwaitingPayment
	PhaseSuccess
)

// Method is the payment selection as the UI presents it.
type Method string

const (
	MethodCOD    Method = "cod"
	MethodStripe Method = "stripe"
)

// PaymentMethod maps the UI selection onto the wire value.
func (m Method) PaymentMethod() model.PaymentMethod {
	if m == MethodStripe {
		return model.PaymentOnline
	}
	return model.PaymentCashOnDelivery
}

// API is the slice of the API client the checkout flow needs.
type API interface {
	GetCart(ctx context.Context) (*model.Cart, error)
	GetProfile(ctx context.Context) (*model.User, error)
	CreateOrder(ctx context.Context, draft api.OrderDraft) (*model.Order, error)
	CreatePaymentIntent(ctx context.Context, orderID uuid.UUID, amount decimal.Decimal) (*api.PaymentIntent, error)
	ConfirmPayment(ctx context.Context, paymentIntentID string, orderID uuid.UUID) error
}

type State struct {
	Phase      Phase
	Loading    bool
	Cart       model.Cart
	Address    model.ShippingAddress
	Method     Method
	OrderID    uuid.UUID
	Err        string
	SuccessMsg string
}

// Flow state is driven from command goroutines, so it is mutex-guarded;
// each operation holds the lock end to end, which also serializes a double
// submit into a no-op second pass.
type Flow struct {
	api API
	log *zap.Logger

	mu    sync.RWMutex
	state State
}

func NewFlow(a API, log *zap.Logger) *Flow {
	if log == nil {
		log = zap.NewNop()
	}
	return &Flow{api: a, log: log, state: State{
		Phase:   PhaseCollecting,
		Loading: true,
		Method:  MethodCOD,
		Address: model.ShippingAddress{Country: "India"},
	}}
}

func (f *Flow) State() State {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.state
}

func (f *Flow) SetAddress(addr model.ShippingAddress) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.Address = addr
}

func (f *Flow) SetMethod(m Method) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.Method = m
}

// Start loads the cart and the user profile concurrently. Neither load
// orders before the other; each fills its part of the state as it lands.
func (f *Flow) Start(ctx context.Context) State {
	var (
		wg      sync.WaitGroup
		c       *model.Cart
		profile *model.User
		cartErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		c, cartErr = f.api.GetCart(ctx)
	}()
	go func() {
		defer wg.Done()
		var err error
		profile, err = f.api.GetProfile(ctx)
		if err != nil {
			f.log.Warn("load profile for address pre-fill", zap.Error(err))
		}
	}()
	wg.Wait()

	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.Loading = false
	if cartErr != nil {
		f.state.Err = cartErr.Error()
	} else {
		f.state.Cart = cart.Reconcile(*c)
	}
	if profile != nil {
		f.prefill(*profile)
	}
	return f.state
}

func (f *Flow) prefill(u model.User) {
	addr := &f.state.Address
	if addr.FullName == "" {
		addr.FullName = u.FullName
	}
	if addr.Phone == "" {
		addr.Phone = u.Phone
	}
	if addr.AddressLine1 == "" {
		addr.AddressLine1 = u.Location
	}
	if addr.City == "" {
		addr.City = u.City
	}
	if addr.PostalCode == "" {
		addr.PostalCode = u.PostalCode
	}
	if u.Country != "" {
		addr.Country = u.Country
	}
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

// ValidateAddress returns a user-facing message, or empty when the form may
// be submitted.
func ValidateAddress(addr model.ShippingAddress) string {
	var missing []string
	for _, f := range []struct{ value, name string }{
		{addr.FullName, "fullName"},
		{addr.Phone, "phone"},
		{addr.AddressLine1, "addressLine1"},
		{addr.City, "city"},
		{addr.PostalCode, "postalCode"},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return "Please fill in all required fields: " + strings.Join(missing, ", ")
	}
	if countDigits(addr.Phone) < 10 {
		return "Please enter a valid phone number"
	}
	return ""
}

// Submit validates and creates the order. For cash on delivery the flow goes
// straight to success; for card it stops at PhaseAwaitingPayment and waits
// for CompletePayment.
func (f *Flow) Submit(ctx context.Context) State {
	f.mu.Lock()
	defer f.mu.Unlock()
	if msg := ValidateAddress(f.state.Address); msg != "" {
		f.state.Err = msg
		return f.state
	}

	valid := cart.Reconcile(f.state.Cart)
	if len(valid.Items) == 0 {
		f.state.Err = "Your cart is empty. Please add items before checkout."
		return f.state
	}
	f.state.Cart = valid

	items := make([]model.OrderItem, 0, len(valid.Items))
	for _, ci := range valid.Items {
		items = append(items, model.OrderItem{
			ProductID: ci.ProductID.ID,
			Quantity:  ci.Quantity,
			Price:     ci.Price,
		})
	}
	draft := api.OrderDraft{
		Items:           items,
		ShippingAddress: trimAddress(f.state.Address),
		TotalAmount:     valid.TotalAmount,
		PaymentMethod:   f.state.Method.PaymentMethod(),
	}
	if f.state.Method == MethodStripe {
		draft.PaymentIntentID = "pending"
	}

	f.state.Phase = PhaseCreating
	order, err := f.api.CreateOrder(ctx, draft)
	if err != nil {
		f.state.Phase = PhaseCollecting
		f.state.Err = err.Error()
		return f.state
	}
	f.state.OrderID = order.ID
	f.state.Err = ""

	if f.state.Method == MethodStripe {
		f.state.Phase = PhaseAwaitingPayment
		return f.state
	}
	f.state.Phase = PhaseSuccess
	f.state.SuccessMsg = "Order placed successfully! Cash on delivery selected. Redirecting to orders..."
	return f.state
}

// CompletePayment runs the card sub-flow against the payment host: create an
// intent for the order, then confirm it. A failure closes the payment pane
// and leaves the already-created order in place.
func (f *Flow) CompletePayment(ctx context.Context) State {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state.Phase != PhaseAwaitingPayment {
		return f.state
	}
	intent, err := f.api.CreatePaymentIntent(ctx, f.state.OrderID, f.state.Cart.TotalAmount)
	if err != nil {
		return f.paymentFailed(err)
	}
	if err := f.api.ConfirmPayment(ctx, intent.PaymentIntentID, f.state.OrderID); err != nil {
		return f.paymentFailed(err)
	}
	f.state.Phase = PhaseSuccess
	f.state.SuccessMsg = "Payment successful! Order confirmed. Redirecting to orders..."
	return f.state
}

func (f *Flow) paymentFailed(err error) State {
	f.log.Warn("card payment failed", zap.Error(err), zap.Stringer("orderId", f.state.OrderID))
	f.state.Phase = PhaseCollecting
	f.state.Err = "Payment failed: " + err.Error()
	return f.state
}

func trimAddress(addr model.ShippingAddress) model.ShippingAddress {
	return model.ShippingAddress{
		FullName:     strings.TrimSpace(addr.FullName),
		Phone:        strings.TrimSpace(addr.Phone),
		AddressLine1: strings.TrimSpace(addr.AddressLine1),
		City:         strings.TrimSpace(addr.City),
		PostalCode:   strings.TrimSpace(addr.PostalCode),
		Country:      strings.TrimSpace(addr.Country),
	}
}
