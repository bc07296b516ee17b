package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/greenroots/storefront/internal/admin"
	"github.com/greenroots/storefront/internal/api"
	"github.com/greenroots/storefront/internal/model"
)

type adminTab int

const (
	tabProducts adminTab = iota
	tabUsers
	tabOrders
)

const (
	pfName = iota
	pfType
	pfPrice
	pfStock
	pfCapacity
	pfWarranty
	pfDescription
	pfImageURL
	productFormFields
)

var productFormLabels = [...]string{
	"Name", "Type (biogas/fertilizer)", "Price", "Stock",
	"Capacity", "Warranty", "Description", "Image URL",
}

// AdminPageModel is the back-office: product management, user management and
// order status updates behind three tabs.
type AdminPageModel struct {
	office *admin.Backoffice
	styles Styles

	tab    adminTab
	cursor int
	width  int
	height int

	// Product create/edit form. editID is nil for a create.
	formOpen   bool
	formInputs [productFormFields]textinput.Model
	formFocus  int
	editID     *uuid.UUID

	// Order status form.
	statusOpen   bool
	statusTarget uuid.UUID
	statusPick   model.OrderStatus
	notesInput   textinput.Model
}

func NewAdminPageModel(office *admin.Backoffice, styles Styles) AdminPageModel {
	notes := textinput.New()
	notes.Prompt = ""
	notes.CharLimit = 300
	return AdminPageModel{office: office, styles: styles, notesInput: notes}
}

func (m *AdminPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m AdminPageModel) capturingInput() bool { return m.formOpen || m.statusOpen }

func (m AdminPageModel) loadCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		m.office.LoadAll(ctx)
		return adminRefreshedMsg{}
	}
}

func (m AdminPageModel) rows() int {
	switch m.tab {
	case tabProducts:
		return len(m.office.Products.Items())
	case tabUsers:
		return len(m.office.Users.Items())
	}
	return len(m.office.Orders.Items())
}

func (m *AdminPageModel) openProductForm(p *model.Product) {
	m.formOpen = true
	m.formFocus = 0
	m.editID = nil
	for i := range m.formInputs {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 300
		m.formInputs[i] = in
	}
	if p != nil {
		id := p.ID
		m.editID = &id
		m.formInputs[pfName].SetValue(p.Name)
		m.formInputs[pfType].SetValue(string(p.Type))
		m.formInputs[pfPrice].SetValue(p.Price.String())
		m.formInputs[pfStock].SetValue(strconv.Itoa(p.Stock))
		m.formInputs[pfCapacity].SetValue(p.Capacity)
		m.formInputs[pfWarranty].SetValue(p.WarrantyPeriod)
		m.formInputs[pfDescription].SetValue(p.Description)
		m.formInputs[pfImageURL].SetValue(p.ImageURL)
	} else {
		m.formInputs[pfType].SetValue(string(model.ProductBiogas))
	}
	m.formInputs[0].Focus()
}

func (m AdminPageModel) draft() api.ProductDraft {
	price, _ := decimal.NewFromString(strings.TrimSpace(m.formInputs[pfPrice].Value()))
	stock, _ := strconv.Atoi(strings.TrimSpace(m.formInputs[pfStock].Value()))
	return api.ProductDraft{
		Name:           strings.TrimSpace(m.formInputs[pfName].Value()),
		Type:           model.ProductType(strings.TrimSpace(m.formInputs[pfType].Value())),
		Price:          price,
		Stock:          stock,
		Capacity:       strings.TrimSpace(m.formInputs[pfCapacity].Value()),
		WarrantyPeriod: strings.TrimSpace(m.formInputs[pfWarranty].Value()),
		Description:    strings.TrimSpace(m.formInputs[pfDescription].Value()),
		ImageURL:       strings.TrimSpace(m.formInputs[pfImageURL].Value()),
	}
}

func nextStatus(s model.OrderStatus) model.OrderStatus {
	switch s {
	case model.OrderProcessing:
		return model.OrderDelivered
	case model.OrderDelivered:
		return model.OrderCancelled
	}
	return model.OrderProcessing
}

func (m AdminPageModel) Update(msg tea.Msg, ctx context.Context) (AdminPageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case adminRefreshedMsg:
		if m.cursor >= m.rows() {
			m.cursor = 0
		}
		return m, nil

	case tea.KeyMsg:
		if m.formOpen {
			return m.updateProductForm(msg, ctx)
		}
		if m.statusOpen {
			return m.updateStatusForm(msg, ctx)
		}
		return m.updateList(msg, ctx)
	}
	return m, nil
}

func (m AdminPageModel) updateList(msg tea.KeyMsg, ctx context.Context) (AdminPageModel, tea.Cmd) {
	switch msg.String() {
	case "tab", "]":
		m.tab = (m.tab + 1) % 3
		m.cursor = 0
		return m, nil
	case "shift+tab", "[":
		m.tab = (m.tab + 2) % 3
		m.cursor = 0
		return m, nil
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < m.rows()-1 {
			m.cursor++
		}
		return m, nil
	case "r":
		return m, m.loadCmd(ctx)
	}

	switch m.tab {
	case tabProducts:
		products := m.office.Products.Items()
		switch msg.String() {
		case "n":
			m.openProductForm(nil)
		case "e", "enter":
			if m.cursor < len(products) {
				p := products[m.cursor]
				m.openProductForm(&p)
			}
		case "d":
			if m.cursor < len(products) {
				id := products[m.cursor].ID
				return m, func() tea.Msg {
					_ = m.office.Products.Delete(ctx, id)
					return adminRefreshedMsg{}
				}
			}
		}

	case tabUsers:
		users := m.office.Users.Items()
		switch msg.String() {
		case "u", "enter":
			if m.cursor < len(users) {
				u := users[m.cursor]
				role := "admin"
				if u.Role == model.RoleAdmin {
					role = "user"
				}
				return m, func() tea.Msg {
					_ = m.office.Users.SetRole(ctx, u.ID, role)
					return adminRefreshedMsg{}
				}
			}
		case "d":
			if m.cursor < len(users) {
				id := users[m.cursor].ID
				return m, func() tea.Msg {
					_ = m.office.Users.Delete(ctx, id)
					return adminRefreshedMsg{}
				}
			}
		}

	case tabOrders:
		list := m.office.Orders.Items()
		if (msg.String() == "s" || msg.String() == "enter") && m.cursor < len(list) {
			o := list[m.cursor]
			m.statusOpen = true
			m.statusTarget = o.ID
			m.statusPick = o.OrderStatus
			m.notesInput.SetValue(o.AdminNotes)
			m.notesInput.Focus()
		}
	}
	return m, nil
}

func (m AdminPageModel) updateProductForm(msg tea.KeyMsg, ctx context.Context) (AdminPageModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.formOpen = false
		return m, nil
	case "tab", "down":
		m.formFocus = (m.formFocus + 1) % productFormFields
		m.focusFormInput()
		return m, nil
	case "shift+tab", "up":
		m.formFocus = (m.formFocus + productFormFields - 1) % productFormFields
		m.focusFormInput()
		return m, nil
	case "enter":
		if m.formFocus < productFormFields-1 {
			m.formFocus++
			m.focusFormInput()
			return m, nil
		}
		draft := m.draft()
		editID := m.editID
		m.formOpen = false
		return m, func() tea.Msg {
			if editID != nil {
				_ = m.office.Products.Update(ctx, *editID, draft)
			} else {
				_ = m.office.Products.Create(ctx, draft)
			}
			return adminRefreshedMsg{}
		}
	}
	var cmd tea.Cmd
	m.formInputs[m.formFocus], cmd = m.formInputs[m.formFocus].Update(msg)
	return m, cmd
}

func (m *AdminPageModel) focusFormInput() {
	for i := range m.formInputs {
		if i == m.formFocus {
			m.formInputs[i].Focus()
		} else {
			m.formInputs[i].Blur()
		}
	}
}

func (m AdminPageModel) updateStatusForm(msg tea.KeyMsg, ctx context.Context) (AdminPageModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.statusOpen = false
		return m, nil
	case "left", "right":
		m.statusPick = nextStatus(m.statusPick)
		return m, nil
	case "enter":
		id, status, notes := m.statusTarget, m.statusPick, m.notesInput.Value()
		m.statusOpen = false
		return m, func() tea.Msg {
			_ = m.office.Orders.SetStatus(ctx, id, status, notes)
			return adminRefreshedMsg{}
		}
	}
	var cmd tea.Cmd
	m.notesInput, cmd = m.notesInput.Update(msg)
	return m, cmd
}

func (m AdminPageModel) View() string {
	var b strings.Builder
	counts := m.office.Counts()
	titles := []string{
		fmt.Sprintf("Products (%d)", counts.Products),
		fmt.Sprintf("Users (%d)", counts.Users),
		fmt.Sprintf("Orders (%d)", counts.Orders),
	}
	b.WriteString(m.styles.Header.Render("Back office"))
	b.WriteString("  ")
	for i, t := range titles {
		style := m.styles.Tab
		if adminTab(i) == m.tab {
			style = m.styles.TabActive
		}
		b.WriteString(style.Render(t))
	}
	b.WriteString("\n\n")

	if m.formOpen {
		b.WriteString(m.productFormView())
		return b.String()
	}
	if m.statusOpen {
		b.WriteString(m.statusFormView())
		return b.String()
	}

	switch m.tab {
	case tabProducts:
		m.productsView(&b)
	case tabUsers:
		m.usersView(&b)
	case tabOrders:
		m.ordersView(&b)
	}
	return b.String()
}

func (m AdminPageModel) productsView(b *strings.Builder) {
	if err := m.office.Products.Err(); err != "" {
		b.WriteString(m.styles.Error.Render(err) + "\n\n")
	}
	for i, p := range m.office.Products.Items() {
		line := fmt.Sprintf("%-30s %-12s %10s  stock %d", truncate(p.Name, 30), p.Type,
			"Rs."+p.Price.StringFixed(2), p.Stock)
		if i == m.cursor {
			b.WriteString(m.styles.Selected.Render("> ") + line)
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("n new · e edit · d delete · tab next tab · r refresh"))
}

func (m AdminPageModel) usersView(b *strings.Builder) {
	if err := m.office.Users.Err(); err != "" {
		b.WriteString(m.styles.Error.Render(err) + "\n\n")
	}
	for i, u := range m.office.Users.Items() {
		line := fmt.Sprintf("%-25s %-30s %s", truncate(u.FullName, 25), truncate(u.Email, 30), u.Role)
		if i == m.cursor {
			b.WriteString(m.styles.Selected.Render("> ") + line)
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("u toggle role · d delete · tab next tab"))
}

func (m AdminPageModel) ordersView(b *strings.Builder) {
	if err := m.office.Orders.Err(); err != "" {
		b.WriteString(m.styles.Error.Render(err) + "\n\n")
	}
	for i, o := range m.office.Orders.Items() {
		status := statusStyle(m.styles, string(o.OrderStatus)).Render(string(o.OrderStatus))
		line := fmt.Sprintf("%s  %s  %10s  %s", o.ID.String()[:8],
			o.CreatedAt.Format("2006-01-02"), "Rs."+o.TotalAmount.StringFixed(2), status)
		if i == m.cursor {
			b.WriteString(m.styles.Selected.Render("> ") + line)
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("s change status · tab next tab"))
}

func (m AdminPageModel) productFormView() string {
	var b strings.Builder
	title := "New product"
	if m.editID != nil {
		title = "Edit product"
	}
	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("\n\n")
	for i, label := range productFormLabels {
		cursor := "  "
		if m.formFocus == i {
			cursor = m.styles.Selected.Render("> ")
		}
		b.WriteString(cursor)
		b.WriteString(m.styles.Title.Render(padRight(label, 26)))
		b.WriteString(m.formInputs[i].View())
		b.WriteString("\n")
	}
	if err := m.office.Products.Err(); err != "" {
		b.WriteString("\n" + m.styles.Error.Render(err) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("enter on last field saves · esc cancel"))
	return b.String()
}

func (m AdminPageModel) statusFormView() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Update order " + m.statusTarget.String()[:8]))
	b.WriteString("\n\n")
	b.WriteString("  Status: ")
	b.WriteString(statusStyle(m.styles, string(m.statusPick)).Render(string(m.statusPick)))
	b.WriteString(m.styles.Muted.Render("  (left/right to change)"))
	b.WriteString("\n")
	b.WriteString("  Notes:  ")
	b.WriteString(m.notesInput.View())
	b.WriteString("\n\n")
	b.WriteString(m.styles.Help.Render("enter apply · esc cancel"))
	return b.String()
}
