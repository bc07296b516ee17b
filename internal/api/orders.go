package api

import (
	"context"
	"net/url"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/greenroots/storefront/internal/model"
)

// OrderDraft is the payload for order creation. The client validates it
// before anything goes on the wire.
type OrderDraft struct {
	Items           []model.OrderItem     `json:"items"`
	ShippingAddress model.ShippingAddress `json:"shippingAddress"`
	TotalAmount     decimal.Decimal       `json:"totalAmount"`
	PaymentMethod   model.PaymentMethod   `json:"paymentMethod"`
	PaymentIntentID string                `json:"paymentIntentId,omitempty"`
}

func (c *Client) CreateOrder(ctx context.Context, draft OrderDraft) (*model.Order, error) {
	if len(draft.Items) == 0 {
		return nil, validationErr("Order must contain at least one item")
	}
	for i, item := range draft.Items {
		n := i + 1
		if item.ProductID == uuid.Nil {
			return nil, validationErr("Item %d - Product ID is required", n)
		}
		if item.Quantity <= 0 {
			return nil, validationErr("Item %d - Quantity must be greater than 0", n)
		}
		if !item.Price.IsPositive() {
			return nil, validationErr("Item %d - Price must be greater than 0", n)
		}
	}

	// Legacy callers fill Street instead of AddressLine1.
	addr := draft.ShippingAddress
	if addr.AddressLine1 == "" && addr.Street != "" {
		addr.AddressLine1 = addr.Street
	}
	addr.Street = ""
	draft.ShippingAddress = addr

	for _, f := range []struct{ value, name string }{
		{addr.FullName, "fullName"},
		{addr.Phone, "phone"},
		{addr.AddressLine1, "addressLine1"},
		{addr.City, "city"},
		{addr.PostalCode, "postalCode"},
		{addr.Country, "country"},
	} {
		if f.value == "" {
			return nil, validationErr("Shipping address - %s is required", f.name)
		}
	}

	var out model.Order
	if err := c.do(ctx, call{op: "Create Order", method: "POST", path: "/orders/create", body: draft, auth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MyOrders lists the current user's orders. params become the query string.
func (c *Client) MyOrders(ctx context.Context, params url.Values) ([]model.Order, error) {
	path := "/orders/my"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	var out []model.Order
	if err := c.do(ctx, call{op: "Get My Orders", method: "GET", path: path, auth: true}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetOrder(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	if err := requiredID(id, "Order ID"); err != nil {
		return nil, err
	}
	var out model.Order
	if err := c.do(ctx, call{op: "Get Order by ID", method: "GET", path: "/orders/" + id.String(), auth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CancelOrder(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	if err := requiredID(id, "Order ID"); err != nil {
		return nil, err
	}
	var out model.Order
	if err := c.do(ctx, call{op: "Cancel Order", method: "DELETE", path: "/orders/" + id.String() + "/cancel", auth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminOrders lists every order. Admin-only by backend convention.
func (c *Client) AdminOrders(ctx context.Context, params url.Values) ([]model.Order, error) {
	path := "/orders/admin/orders"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	var out []model.Order
	if err := c.do(ctx, call{op: "Get Admin Orders", method: "GET", path: path, auth: true}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

var validOrderStatuses = map[model.OrderStatus]bool{
	model.OrderProcessing: true,
	model.OrderDelivered:  true,
	model.OrderCancelled:  true,
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus, adminNotes string) (*model.Order, error) {
	if err := requiredID(id, "Order ID"); err != nil {
		return nil, err
	}
	if err := required(string(status), "Status"); err != nil {
		return nil, err
	}
	if !validOrderStatuses[status] {
		return nil, validationErr("Status must be one of: Processing, Delivered, Cancelled")
	}
	body := map[string]string{"status": string(status), "adminNotes": adminNotes}
	var out model.Order
	if err := c.do(ctx, call{op: "Update Order Status", method: "PUT", path: "/orders/" + id.String() + "/status", body: body, auth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
