package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Card payment sub-flow. These calls go to the payment host, not the main
// API base.

type StripeConfig struct {
	PublishableKey string `json:"publishableKey"`
}

func (c *Client) GetStripeConfig(ctx context.Context) (*StripeConfig, error) {
	var out StripeConfig
	if err := c.do(ctx, call{op: "Get Stripe Config", method: "GET", path: "/api/payment/stripe-config", payment: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type PaymentIntent struct {
	PaymentIntentID string          `json:"paymentIntentId"`
	ClientSecret    string          `json:"clientSecret"`
	Amount          decimal.Decimal `json:"amount"`
	Status          string          `json:"status"`
}

func (c *Client) CreatePaymentIntent(ctx context.Context, orderID uuid.UUID, amount decimal.Decimal) (*PaymentIntent, error) {
	if err := requiredID(orderID, "Order ID"); err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, validationErr("Amount must be greater than 0")
	}
	body := map[string]any{"orderId": orderID, "amount": amount}
	var out PaymentIntent
	if err := c.do(ctx, call{op: "Create Payment Intent", method: "POST", path: "/api/payment/create-payment-intent", body: body, auth: true, payment: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ConfirmPayment(ctx context.Context, paymentIntentID string, orderID uuid.UUID) error {
	if err := required(paymentIntentID, "Payment intent ID"); err != nil {
		return err
	}
	if err := requiredID(orderID, "Order ID"); err != nil {
		return err
	}
	body := map[string]any{"paymentIntentId": paymentIntentID, "orderId": orderID}
	return c.do(ctx, call{op: "Confirm Payment", method: "POST", path: "/api/payment/confirm", body: body, auth: true, payment: true}, nil)
}

func (c *Client) PaymentByIntent(ctx context.Context, paymentIntentID string) (*PaymentIntent, error) {
	if err := required(paymentIntentID, "Payment intent ID"); err != nil {
		return nil, err
	}
	var out PaymentIntent
	if err := c.do(ctx, call{op: "Get Payment by Intent", method: "GET", path: "/api/payment/by-intent/" + paymentIntentID, auth: true, payment: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
