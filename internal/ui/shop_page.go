package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/greenroots/storefront/internal/cart"
	"github.com/greenroots/storefront/internal/catalog"
	"github.com/greenroots/storefront/internal/model"
	"github.com/greenroots/storefront/internal/session"
)

// ShopPageModel renders the product catalog and adds items to the cart.
type ShopPageModel struct {
	catalog *catalog.View
	cart    *cart.View
	styles  Styles

	state  catalog.State
	cursor int
	status string
	width  int
	height int
}

func NewShopPageModel(c *catalog.View, cv *cart.View, styles Styles) ShopPageModel {
	return ShopPageModel{catalog: c, cart: cv, styles: styles, state: c.State()}
}

func (m *ShopPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m ShopPageModel) fetchCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		return catalogLoadedMsg{state: m.catalog.Fetch(ctx)}
	}
}

func (m ShopPageModel) addCmd(ctx context.Context, p model.Product) tea.Cmd {
	return func() tea.Msg {
		st := m.cart.Add(ctx, p.ID, 1)
		status := "Added " + p.Name + " to cart"
		if st.Err != "" {
			status = ""
		}
		return cartChangedMsg{state: st, status: status}
	}
}

func nextFilter(f catalog.Filter) catalog.Filter {
	switch f {
	case catalog.FilterAll:
		return catalog.FilterBiogas
	case catalog.FilterBiogas:
		return catalog.FilterFertilizer
	}
	return catalog.FilterAll
}

func (m ShopPageModel) Update(msg tea.Msg, ctx context.Context, _ session.State) (ShopPageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case catalogLoadedMsg:
		m.state = msg.state
		if m.cursor >= len(m.visible()) {
			m.cursor = 0
		}
		return m, nil

	case cartChangedMsg:
		if msg.state.Err != "" {
			m.status = msg.state.Err
		} else if msg.status != "" {
			m.status = msg.status
		}
		return m, nil

	case tea.KeyMsg:
		items := m.visible()
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(items)-1 {
				m.cursor++
			}
		case "f":
			m.catalog.SetFilter(nextFilter(m.state.Filter))
			m.state = m.catalog.State()
			m.cursor = 0
		case "r":
			return m, m.fetchCmd(ctx)
		case "enter", "a":
			if m.cursor < len(items) {
				return m, m.addCmd(ctx, items[m.cursor])
			}
		}
	}
	return m, nil
}

func (m ShopPageModel) visible() []model.Product {
	return m.catalog.Visible()
}

func (m ShopPageModel) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render("Products"))
	b.WriteString(m.styles.Muted.Render(fmt.Sprintf("  filter: %s", m.state.Filter)))
	b.WriteString("\n\n")

	if m.state.Err != "" {
		b.WriteString(m.styles.Error.Render(m.state.Err))
		b.WriteString("\n")
		return b.String()
	}

	items := m.visible()
	if len(items) == 0 {
		b.WriteString(m.styles.Muted.Render("No products to show."))
		b.WriteString("\n")
	}
	for i, p := range items {
		line := fmt.Sprintf("%-30s %-12s %8s  stock %d", truncate(p.Name, 30), p.Type, "Rs."+p.Price.StringFixed(2), p.Stock)
		if i == m.cursor {
			b.WriteString(m.styles.Selected.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Success.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("enter add to cart · f filter · r refresh"))
	return b.String()
}

func truncate(s string, l int) string {
	if len(s) > l {
		return s[:l-3] + "..."
	}
	return s
}
