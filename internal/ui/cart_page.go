package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/greenroots/storefront/internal/cart"
	"github.com/greenroots/storefront/internal/session"
)

func decimalFromInt(n int) decimal.Decimal { return decimal.NewFromInt(int64(n)) }

// CartPageModel renders the cart and issues quantity mutations.
type CartPageModel struct {
	cart   *cart.View
	styles Styles

	state   cart.State
	cursor  int
	warning string
	width   int
	height  int
}

func NewCartPageModel(cv *cart.View, styles Styles) CartPageModel {
	return CartPageModel{cart: cv, styles: styles, state: cv.State()}
}

func (m *CartPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m CartPageModel) fetchCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		return cartChangedMsg{state: m.cart.Fetch(ctx)}
	}
}

func (m CartPageModel) Update(msg tea.Msg, ctx context.Context) (CartPageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case cartChangedMsg:
		m.state = msg.state
		m.warning = ""
		if m.cursor >= len(m.state.Cart.Items) {
			m.cursor = 0
		}
		return m, nil

	case tea.KeyMsg:
		items := m.state.Cart.Items
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(items)-1 {
				m.cursor++
			}
		case "+", "=":
			if m.cursor < len(items) {
				it := items[m.cursor]
				return m, func() tea.Msg {
					return cartChangedMsg{state: m.cart.UpdateQty(ctx, it.ID, it.Quantity+1)}
				}
			}
		case "-":
			if m.cursor < len(items) {
				it := items[m.cursor]
				return m, func() tea.Msg {
					return cartChangedMsg{state: m.cart.UpdateQty(ctx, it.ID, it.Quantity-1)}
				}
			}
		case "d", "x":
			if m.cursor < len(items) {
				it := items[m.cursor]
				return m, func() tea.Msg {
					return cartChangedMsg{state: m.cart.Remove(ctx, it.ID)}
				}
			}
		case "r":
			return m, m.fetchCmd(ctx)
		case "c", "enter":
			switch m.cart.CheckoutGate() {
			case cart.GateProceed:
				return m, func() tea.Msg { return navigateMsg{to: pageCheckout} }
			case cart.GateLogin:
				return m, func() tea.Msg { return navigateMsg{to: pageAuth} }
			case cart.GateEmpty:
				m.warning = "Your cart is empty. Please add items before checkout."
				return m, nil
			}
		}
	}
	return m, nil
}

func (m CartPageModel) View(sess session.State) string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render("Your Cart"))
	b.WriteString("\n\n")

	if !sess.IsAuthenticated() {
		b.WriteString(m.styles.Muted.Render("Please login to see your cart."))
		b.WriteString("\n")
		return b.String()
	}
	if m.state.Err != "" {
		b.WriteString(m.styles.Error.Render(m.state.Err))
		b.WriteString("\n\n")
	}
	if m.warning != "" {
		b.WriteString(m.styles.Warning.Render(m.warning))
		b.WriteString("\n\n")
	}
	if m.state.Empty() {
		b.WriteString(m.styles.Muted.Render("Your cart is empty."))
		b.WriteString("\n")
		return b.String()
	}

	for i, it := range m.state.Cart.Items {
		name := it.ProductID.ID.String()[:8]
		if it.ProductID.Product != nil {
			name = it.ProductID.Product.Name
		}
		line := fmt.Sprintf("%-30s x%-3d %10s", truncate(name, 30), it.Quantity,
			"Rs."+it.Price.Mul(decimalFromInt(it.Quantity)).StringFixed(2))
		if i == m.cursor {
			b.WriteString(m.styles.Selected.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Price.Render("Total: Rs." + m.state.Cart.TotalAmount.StringFixed(2)))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Help.Render("+/- quantity · d remove · c checkout · r refresh"))
	return b.String()
}
