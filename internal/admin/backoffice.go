// Package admin backs the back-office screen: three independent tabs over
// products, users and orders. Every successful mutation re-fetches the
// owning tab's collection and pings the host via OnChanged so the tab
// header counts stay current. Tab state is mutated from command goroutines
// and read by the render loop, so each tab guards it with a mutex.
package admin

import (
	"context"
	"net/url"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/greenroots/storefront/internal/api"
	"github.com/greenroots/storefront/internal/model"
)

// API is the slice of the API client the back-office needs.
type API interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	CreateProduct(ctx context.Context, draft api.ProductDraft) (*model.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, draft api.ProductDraft) (*model.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUserRole(ctx context.Context, id uuid.UUID, role string) (*model.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error

	AdminOrders(ctx context.Context, params url.Values) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus, adminNotes string) (*model.Order, error)
}

// Counts feed the tab header.
type Counts struct {
	Products int
	Users    int
	Orders   int
}

type ProductsTab struct {
	api API
	log *zap.Logger

	mu    sync.RWMutex
	items []model.Product
	err   string

	// OnChanged fires after every successful mutation, outside the lock.
	// Set it before issuing any operation.
	OnChanged func()
}

func NewProductsTab(a API, log *zap.Logger) *ProductsTab {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProductsTab{api: a, log: log}
}

func (t *ProductsTab) Items() []model.Product {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.items
}

func (t *ProductsTab) Err() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.err
}

func (t *ProductsTab) Load(ctx context.Context) error {
	list, err := t.api.ListProducts(ctx)
	t.mu.Lock()
	defer t.mu.Unlock()
	if err != nil {
		t.err = err.Error()
		return err
	}
	t.items = list
	t.err = ""
	return nil
}

func (t *ProductsTab) Create(ctx context.Context, draft api.ProductDraft) error {
	if _, err := t.api.CreateProduct(ctx, draft); err != nil {
		t.setErr(err)
		return err
	}
	return t.mutated(ctx)
}

func (t *ProductsTab) Update(ctx context.Context, id uuid.UUID, draft api.ProductDraft) error {
	if _, err := t.api.UpdateProduct(ctx, id, draft); err != nil {
		t.setErr(err)
		return err
	}
	return t.mutated(ctx)
}

func (t *ProductsTab) Delete(ctx context.Context, id uuid.UUID) error {
	if err := t.api.DeleteProduct(ctx, id); err != nil {
		t.setErr(err)
		return err
	}
	return t.mutated(ctx)
}

func (t *ProductsTab) setErr(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.err = err.Error()
}

func (t *ProductsTab) mutated(ctx context.Context) error {
	if err := t.Load(ctx); err != nil {
		return err
	}
	if t.OnChanged != nil {
		t.OnChanged()
	}
	return nil
}

type UsersTab struct {
	api API
	log *zap.Logger

	mu    sync.RWMutex
	items []model.User
	err   string

	OnChanged func()
}

func NewUsersTab(a API, log *zap.Logger) *UsersTab {
	if log == nil {
		log = zap.NewNop()
	}
	return &UsersTab{api: a, log: log}
}

func (t *UsersTab) Items() []model.User {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.items
}

func (t *UsersTab) Err() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.err
}

func (t *UsersTab) Load(ctx context.Context) error {
	list, err := t.api.ListUsers(ctx)
	t.mu.Lock()
	defer t.mu.Unlock()
	if err != nil {
		t.err = err.Error()
		return err
	}
	t.items = list
	t.err = ""
	return nil
}

func (t *UsersTab) SetRole(ctx context.Context, id uuid.UUID, role string) error {
	if _, err := t.api.UpdateUserRole(ctx, id, role); err != nil {
		t.setErr(err)
		return err
	}
	return t.mutated(ctx)
}

func (t *UsersTab) Delete(ctx context.Context, id uuid.UUID) error {
	if err := t.api.DeleteUser(ctx, id); err != nil {
		t.setErr(err)
		return err
	}
	return t.mutated(ctx)
}

func (t *UsersTab) setErr(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.err = err.Error()
}

func (t *UsersTab) mutated(ctx context.Context) error {
	if err := t.Load(ctx); err != nil {
		return err
	}
	if t.OnChanged != nil {
		t.OnChanged()
	}
	return nil
}

type OrdersTab struct {
	api API
	log *zap.Logger

	mu    sync.RWMutex
	items []model.Order
	err   string

	OnChanged func()
}

func NewOrdersTab(a API, log *zap.Logger) *OrdersTab {
	if log == nil {
		log = zap.NewNop()
	}
	return &OrdersTab{api: a, log: log}
}

func (t *OrdersTab) Items() []model.Order {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.items
}

func (t *OrdersTab) Err() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.err
}

func (t *OrdersTab) Load(ctx context.Context) error {
	list, err := t.api.AdminOrders(ctx, nil)
	t.mu.Lock()
	defer t.mu.Unlock()
	if err != nil {
		t.err = err.Error()
		return err
	}
	t.items = list
	t.err = ""
	return nil
}

// SetStatus updates one order's status with optional free-text admin notes.
func (t *OrdersTab) SetStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus, notes string) error {
	if _, err := t.api.UpdateOrderStatus(ctx, id, status, notes); err != nil {
		t.mu.Lock()
		t.err = err.Error()
		t.mu.Unlock()
		return err
	}
	if err := t.Load(ctx); err != nil {
		return err
	}
	if t.OnChanged != nil {
		t.OnChanged()
	}
	return nil
}

// Backoffice ties the three tabs together and keeps the header counts.
type Backoffice struct {
	Products *ProductsTab
	Users    *UsersTab
	Orders   *OrdersTab

	mu     sync.RWMutex
	counts Counts
}

func NewBackoffice(a API, log *zap.Logger) *Backoffice {
	b := &Backoffice{
		Products: NewProductsTab(a, log),
		Users:    NewUsersTab(a, log),
		Orders:   NewOrdersTab(a, log),
	}
	b.Products.OnChanged = b.refreshCounts
	b.Users.OnChanged = b.refreshCounts
	b.Orders.OnChanged = b.refreshCounts
	return b
}

func (b *Backoffice) Counts() Counts {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.counts
}

// LoadAll fetches every tab, typically on entering the back-office.
func (b *Backoffice) LoadAll(ctx context.Context) {
	_ = b.Products.Load(ctx)
	_ = b.Users.Load(ctx)
	_ = b.Orders.Load(ctx)
	b.refreshCounts()
}

func (b *Backoffice) refreshCounts() {
	c := Counts{
		Products: len(b.Products.Items()),
		Users:    len(b.Users.Items()),
		Orders:   len(b.Orders.Items()),
	}
	b.mu.Lock()
	b.counts = c
	b.mu.Unlock()
}
