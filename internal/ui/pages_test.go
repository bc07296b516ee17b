package ui

import (
	"context"
	"errors"
	"net/url"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenroots/storefront/internal/api"
	"github.com/greenroots/storefront/internal/cart"
	"github.com/greenroots/storefront/internal/catalog"
	"github.com/greenroots/storefront/internal/chat"
	"github.com/greenroots/storefront/internal/checkout"
	"github.com/greenroots/storefront/internal/model"
	"github.com/greenroots/storefront/internal/orders"
	"github.com/greenroots/storefront/internal/session"
)

type fakeShopAPI struct {
	products []model.Product
}

func (f *fakeShopAPI) ListProducts(context.Context) ([]model.Product, error) {
	return f.products, nil
}

func (f *fakeShopAPI) GetProduct(_ context.Context, id uuid.UUID) (*model.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, errors.New("Resource not found.")
}

type fakeCartAPI struct {
	cart     model.Cart
	addCalls int
}

func (f *fakeCartAPI) GetCart(context.Context) (*model.Cart, error) {
	c := f.cart
	return &c, nil
}

func (f *fakeCartAPI) AddToCart(_ context.Context, productID uuid.UUID, qty int) (*model.Cart, error) {
	f.addCalls++
	f.cart.Items = append(f.cart.Items, model.CartItem{
		ID:        uuid.New(),
		ProductID: model.ProductRef{ID: productID},
		Quantity:  qty,
		Price:     decimal.NewFromInt(100),
	})
	c := f.cart
	return &c, nil
}

func (f *fakeCartAPI) UpdateCartItem(_ context.Context, itemID uuid.UUID, qty int) (*model.Cart, error) {
	for i := range f.cart.Items {
		if f.cart.Items[i].ID == itemID {
			f.cart.Items[i].Quantity = qty
		}
	}
	c := f.cart
	return &c, nil
}

func (f *fakeCartAPI) RemoveCartItem(_ context.Context, itemID uuid.UUID) (*model.Cart, error) {
	kept := f.cart.Items[:0]
	for _, it := range f.cart.Items {
		if it.ID != itemID {
			kept = append(kept, it)
		}
	}
	f.cart.Items = kept
	c := f.cart
	return &c, nil
}

type authedSession struct{}

func (authedSession) IsAuthenticated() bool { return true }

func product(name string, typ model.ProductType) model.Product {
	return model.Product{ID: uuid.New(), Name: name, Type: typ, Price: decimal.NewFromInt(500), Stock: 3}
}

func TestShopPageFilterAndAdd(t *testing.T) {
	shopAPI := &fakeShopAPI{products: []model.Product{
		product("Home Biogas Plant", model.ProductBiogas),
		product("Organic Compost", model.ProductFertilizer),
	}}
	cartAPI := &fakeCartAPI{}
	cat := catalog.NewView(shopAPI, nil)
	cv := cart.NewView(cartAPI, authedSession{}, nil)

	m := NewShopPageModel(cat, cv, DefaultStyles())
	m.SetSize(100, 30)
	ctx := context.Background()

	msg := m.fetchCmd(ctx)()
	m, _ = m.Update(msg, ctx, session.State{})
	view := m.View()
	assert.Contains(t, view, "Home Biogas Plant")
	assert.Contains(t, view, "Organic Compost")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}}, ctx, session.State{})
	view = m.View()
	assert.Contains(t, view, "Home Biogas Plant")
	assert.NotContains(t, view, "Organic Compost")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter}, ctx, session.State{})
	require.NotNil(t, cmd)
	res, ok := cmd().(cartChangedMsg)
	require.True(t, ok)
	assert.Equal(t, 1, cartAPI.addCalls)
	assert.Len(t, res.state.Cart.Items, 1)
}

func TestCartPageQuantityKeys(t *testing.T) {
	cartAPI := &fakeCartAPI{}
	itemID := uuid.New()
	cartAPI.cart = model.Cart{Items: []model.CartItem{{
		ID:        itemID,
		ProductID: model.ProductRef{ID: uuid.New()},
		Quantity:  2,
		Price:     decimal.NewFromInt(50),
	}}}
	cv := cart.NewView(cartAPI, authedSession{}, nil)

	m := NewCartPageModel(cv, DefaultStyles())
	ctx := context.Background()
	m, _ = m.Update(m.fetchCmd(ctx)().(cartChangedMsg), ctx)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}}, ctx)
	require.NotNil(t, cmd)
	res := cmd().(cartChangedMsg)
	assert.Equal(t, 3, res.state.Cart.Items[0].Quantity)
	assert.Equal(t, "150", res.state.Cart.TotalAmount.String())

	m, _ = m.Update(res, ctx)
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}}, ctx)
	require.NotNil(t, cmd)
	res = cmd().(cartChangedMsg)
	assert.Empty(t, res.state.Cart.Items)
}

func TestCartPageEmptyCheckoutWarns(t *testing.T) {
	cv := cart.NewView(&fakeCartAPI{}, authedSession{}, nil)

	m := NewCartPageModel(cv, DefaultStyles())
	ctx := context.Background()
	m, _ = m.Update(m.fetchCmd(ctx)().(cartChangedMsg), ctx)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}}, ctx)
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(session.State{Token: "t"}), "cart is empty. Please add items before checkout")
}

type fakeCheckoutAPI struct {
	cart    model.Cart
	created *api.OrderDraft
}

func (f *fakeCheckoutAPI) GetCart(context.Context) (*model.Cart, error) {
	c := f.cart
	return &c, nil
}

func (f *fakeCheckoutAPI) GetProfile(context.Context) (*model.User, error) {
	return &model.User{FullName: "Asha Rao", Phone: "9876543210", Location: "12 Farm Lane",
		City: "Pune", PostalCode: "411001"}, nil
}

func (f *fakeCheckoutAPI) CreateOrder(_ context.Context, draft api.OrderDraft) (*model.Order, error) {
	f.created = &draft
	return &model.Order{ID: uuid.New(), OrderStatus: model.OrderProcessing}, nil
}

func (f *fakeCheckoutAPI) CreatePaymentIntent(context.Context, uuid.UUID, decimal.Decimal) (*api.PaymentIntent, error) {
	return &api.PaymentIntent{PaymentIntentID: "pi_1"}, nil
}

func (f *fakeCheckoutAPI) ConfirmPayment(context.Context, string, uuid.UUID) error { return nil }

func TestCheckoutPagePrefillAndSubmit(t *testing.T) {
	checkoutAPI := &fakeCheckoutAPI{cart: model.Cart{Items: []model.CartItem{{
		ID:        uuid.New(),
		ProductID: model.ProductRef{ID: uuid.New()},
		Quantity:  1,
		Price:     decimal.NewFromInt(900),
	}}}}
	m := NewCheckoutPageModel(func() *checkout.Flow {
		return checkout.NewFlow(checkoutAPI, nil)
	}, DefaultStyles())
	ctx := context.Background()

	msg := m.startCmd(ctx)()
	m, _ = m.Update(msg, ctx)
	assert.Equal(t, "Asha Rao", m.inputs[fieldFullName].Value())
	assert.Equal(t, "India", m.inputs[fieldCountry].Value())

	for m.focus != rowSubmit {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab}, ctx)
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter}, ctx)
	require.NotNil(t, cmd)
	res := cmd().(checkoutStateMsg)
	assert.Equal(t, checkout.PhaseSuccess, res.state.Phase)
	require.NotNil(t, checkoutAPI.created)
	assert.Equal(t, "900", checkoutAPI.created.TotalAmount.String())

	m, cmd = m.Update(res, ctx)
	require.NotNil(t, cmd, "success should schedule the redirect")
}

type fakeOrdersAPI struct {
	orders []model.Order
}

func (f *fakeOrdersAPI) MyOrders(context.Context, url.Values) ([]model.Order, error) {
	return f.orders, nil
}

func (f *fakeOrdersAPI) GetOrder(_ context.Context, id uuid.UUID) (*model.Order, error) {
	for _, o := range f.orders {
		if o.ID == id {
			return &o, nil
		}
	}
	return nil, errors.New("Resource not found.")
}

func (f *fakeOrdersAPI) CancelOrder(_ context.Context, id uuid.UUID) (*model.Order, error) {
	for i := range f.orders {
		if f.orders[i].ID == id {
			f.orders[i].OrderStatus = model.OrderCancelled
			o := f.orders[i]
			return &o, nil
		}
	}
	return nil, errors.New("Resource not found.")
}

func TestOrdersPageCancelFromList(t *testing.T) {
	ordersAPI := &fakeOrdersAPI{orders: []model.Order{{
		ID:          uuid.New(),
		OrderStatus: model.OrderProcessing,
		TotalAmount: decimal.NewFromInt(750),
	}}}
	history := orders.NewHistory(ordersAPI, nil)
	detail := orders.NewDetail(ordersAPI, nil)

	m := NewOrdersPageModel(history, detail, DefaultStyles())
	ctx := context.Background()
	m, _ = m.Update(m.fetchCmd(ctx)().(historyChangedMsg), ctx)
	assert.Contains(t, m.View(), "Processing")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, ctx)
	require.NotNil(t, cmd)
	res := cmd().(historyChangedMsg)
	assert.Equal(t, model.OrderCancelled, res.state.Orders[0].OrderStatus)
	assert.Equal(t, 1, res.state.Counts.Cancelled)
}

func TestChatPageQuickAction(t *testing.T) {
	responder := chat.NewResponder(nil, nil)
	m := NewChatPageModel(responder, DefaultStyles())
	m.SetSize(100, 30)
	ctx := context.Background()

	assert.Contains(t, m.View(), "Welcome to GreenRoots")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'1'}}, ctx)
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd().(chatRepliedMsg), ctx)

	messages := responder.Messages()
	require.Len(t, messages, 3)
	assert.Equal(t, chat.QuickActions[0], messages[1].Text)
	assert.Contains(t, messages[2].Text, "biogas systems")
}
