package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/greenroots/storefront/internal/orders"
)

// OrdersPageModel renders order history and drills into a single order.
type OrdersPageModel struct {
	history *orders.History
	detail  *orders.Detail
	styles  Styles

	state    orders.State
	cursor   int
	inDetail bool
	width    int
	height   int
}

func NewOrdersPageModel(h *orders.History, d *orders.Detail, styles Styles) OrdersPageModel {
	return OrdersPageModel{history: h, detail: d, styles: styles, state: h.State()}
}

func (m *OrdersPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *OrdersPageModel) backToList() {
	m.inDetail = false
}

func (m OrdersPageModel) fetchCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		return historyChangedMsg{state: m.history.Fetch(ctx)}
	}
}

func (m OrdersPageModel) Update(msg tea.Msg, ctx context.Context) (OrdersPageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case historyChangedMsg:
		m.state = msg.state
		if m.cursor >= len(m.state.Orders) {
			m.cursor = 0
		}
		return m, nil

	case detailLoadedMsg:
		m.inDetail = true
		return m, nil

	case tea.KeyMsg:
		if m.inDetail {
			return m.updateDetail(msg, ctx)
		}
		return m.updateList(msg, ctx)
	}
	return m, nil
}

func (m OrdersPageModel) updateList(msg tea.KeyMsg, ctx context.Context) (OrdersPageModel, tea.Cmd) {
	list := m.state.Orders
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(list)-1 {
			m.cursor++
		}
	case "enter":
		if m.cursor < len(list) {
			id := list[m.cursor].ID
			return m, func() tea.Msg {
				if err := m.detail.Load(ctx, id); err != nil {
					return historyChangedMsg{state: m.history.State()}
				}
				return detailLoadedMsg{id: id}
			}
		}
	case "x":
		if m.cursor < len(list) {
			id := list[m.cursor].ID
			return m, func() tea.Msg {
				return historyChangedMsg{state: m.history.Cancel(ctx, id)}
			}
		}
	case "r":
		return m, m.fetchCmd(ctx)
	}
	return m, nil
}

func (m OrdersPageModel) updateDetail(msg tea.KeyMsg, ctx context.Context) (OrdersPageModel, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace":
		m.inDetail = false
		return m, m.fetchCmd(ctx)
	case "x":
		return m, func() tea.Msg {
			_ = m.detail.Cancel(ctx)
			return detailLoadedMsg{}
		}
	case "r":
		return m, func() tea.Msg {
			_ = m.detail.Refresh(ctx)
			return detailLoadedMsg{}
		}
	}
	return m, nil
}

func (m OrdersPageModel) View() string {
	if m.inDetail {
		return m.detailView()
	}

	var b strings.Builder
	b.WriteString(m.styles.Header.Render("Your Orders"))
	c := m.state.Counts
	b.WriteString(m.styles.Muted.Render(fmt.Sprintf("  %d processing · %d delivered · %d cancelled",
		c.Processing, c.Delivered, c.Cancelled)))
	b.WriteString("\n\n")

	if m.state.Err != "" {
		b.WriteString(m.styles.Error.Render(m.state.Err))
		b.WriteString("\n\n")
	}
	if len(m.state.Orders) == 0 {
		b.WriteString(m.styles.Muted.Render("No orders yet."))
		b.WriteString("\n")
		return b.String()
	}

	for i, o := range m.state.Orders {
		status := statusStyle(m.styles, string(o.OrderStatus)).Render(string(o.OrderStatus))
		line := fmt.Sprintf("%s  %s  %d items  %10s  %s",
			o.ID.String()[:8], o.CreatedAt.Format("2006-01-02"), len(o.Items),
			"Rs."+o.TotalAmount.StringFixed(2), status)
		if i == m.cursor {
			b.WriteString(m.styles.Selected.Render("> ") + line)
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("enter detail · x cancel order · r refresh"))
	return b.String()
}

func (m OrdersPageModel) detailView() string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render("Order Detail"))
	b.WriteString("\n\n")

	o := m.detail.Order()
	if o == nil {
		b.WriteString(m.styles.Muted.Render("No order loaded."))
		return b.String()
	}
	if msg := m.detail.Err(); msg != "" {
		b.WriteString(m.styles.Error.Render(msg))
		b.WriteString("\n\n")
	}

	b.WriteString(m.styles.Title.Render("Order " + o.ID.String()[:8]))
	b.WriteString("  " + statusStyle(m.styles, string(o.OrderStatus)).Render(string(o.OrderStatus)))
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("Placed " + o.CreatedAt.Format("2006-01-02 15:04")))
	b.WriteString("\n\n")

	for _, it := range o.Items {
		b.WriteString(fmt.Sprintf("  %s  x%d  %s\n", it.ProductID.String()[:8], it.Quantity,
			"Rs."+it.Price.StringFixed(2)))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Price.Render("Total: Rs." + o.TotalAmount.StringFixed(2)))
	b.WriteString("\n\n")

	addr := o.ShippingAddress
	b.WriteString(m.styles.Title.Render("Ship to"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s, %s\n  %s, %s %s, %s\n",
		addr.FullName, addr.Phone, addr.AddressLine1, addr.City, addr.PostalCode, addr.Country))

	if len(o.StatusHistory) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.Title.Render("History"))
		b.WriteString("\n")
		for _, h := range o.StatusHistory {
			b.WriteString(fmt.Sprintf("  %s  %s", h.ChangedAt.Format("2006-01-02 15:04"), h.Status))
			if h.Note != "" {
				b.WriteString("  " + m.styles.Muted.Render(h.Note))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	help := "esc back · r refresh"
	if orders.CanCancel(*o) {
		help = "x cancel order · " + help
	}
	b.WriteString(m.styles.Help.Render(help))
	return b.String()
}
