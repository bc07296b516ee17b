package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/greenroots/storefront/internal/model"
)

func (c *Client) GetCart(ctx context.Context) (*model.Cart, error) {
	var out model.Cart
	if err := c.do(ctx, call{op: "Get Cart", method: "GET", path: "/cart", auth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AddToCart(ctx context.Context, productID uuid.UUID, quantity int) (*model.Cart, error) {
	if err := requiredID(productID, "Product ID"); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, validationErr("Quantity must be greater than 0")
	}
	body := map[string]any{"productId": productID, "quantity": quantity}
	var out model.Cart
	if err := c.do(ctx, call{op: "Add to Cart", method: "POST", path: "/cart/add", body: body, auth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCartItem(ctx context.Context, itemID uuid.UUID, quantity int) (*model.Cart, error) {
	if err := requiredID(itemID, "Item ID"); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, validationErr("Quantity must be greater than 0")
	}
	body := map[string]int{"quantity": quantity}
	var out model.Cart
	if err := c.do(ctx, call{op: "Update Cart Item", method: "PUT", path: "/cart/item/" + itemID.String(), body: body, auth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RemoveCartItem(ctx context.Context, itemID uuid.UUID) (*model.Cart, error) {
	if err := requiredID(itemID, "Item ID"); err != nil {
		return nil, err
	}
	var out model.Cart
	if err := c.do(ctx, call{op: "Remove from Cart", method: "DELETE", path: "/cart/item/" + itemID.String(), auth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ClearCart(ctx context.Context) error {
	return c.do(ctx, call{op: "Clear Cart", method: "DELETE", path: "/cart/clear", auth: true}, nil)
}

// CartSummary is the lightweight count/total pair shown in the navbar.
type CartSummary struct {
	ItemCount   int             `json:"itemCount"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

func (c *Client) GetCartSummary(ctx context.Context) (*CartSummary, error) {
	var out CartSummary
	if err := c.do(ctx, call{op: "Get Cart Summary", method: "GET", path: "/cart/summary", auth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
