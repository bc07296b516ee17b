package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/greenroots/storefront/internal/model"
)

type ProductDraft struct {
	Name           string            `json:"name"`
	Type           model.ProductType `json:"type"`
	Price          decimal.Decimal   `json:"price"`
	Stock          int               `json:"stock"`
	Capacity       string            `json:"capacity,omitempty"`
	WarrantyPeriod string            `json:"warrantyPeriod,omitempty"`
	Description    string            `json:"description,omitempty"`
	ImageURL       string            `json:"imageUrl,omitempty"`
}

func (c *Client) ListProducts(ctx context.Context) ([]model.Product, error) {
	var out []model.Product
	if err := c.do(ctx, call{op: "Get All Products", method: "GET", path: "/products"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	if err := requiredID(id, "Product ID"); err != nil {
		return nil, err
	}
	var out model.Product
	if err := c.do(ctx, call{op: "Get Product by ID", method: "GET", path: "/products/" + id.String()}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateProduct(ctx context.Context, draft ProductDraft) (*model.Product, error) {
	if err := required(draft.Name, "Product name"); err != nil {
		return nil, err
	}
	if !draft.Price.IsPositive() {
		return nil, validationErr("Product price must be greater than 0")
	}
	var out model.Product
	if err := c.do(ctx, call{op: "Create Product", method: "POST", path: "/products", body: draft, auth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id uuid.UUID, draft ProductDraft) (*model.Product, error) {
	if err := requiredID(id, "Product ID"); err != nil {
		return nil, err
	}
	var out model.Product
	if err := c.do(ctx, call{op: "Update Product", method: "PUT", path: "/products/" + id.String(), body: draft, auth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := requiredID(id, "Product ID"); err != nil {
		return err
	}
	return c.do(ctx, call{op: "Delete Product", method: "DELETE", path: "/products/" + id.String(), auth: true}, nil)
}

func requiredID(id uuid.UUID, name string) error {
	if id == uuid.Nil {
		return validationErr("%s is required", name)
	}
	return nil
}
