package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/greenroots/storefront/internal/checkout"
	"github.com/greenroots/storefront/internal/model"
)

const (
	fieldFullName = iota
	fieldPhone
	fieldAddress
	fieldCity
	fieldPostal
	fieldCountry
	rowMethod
	rowSubmit
	checkoutRows
)

var fieldLabels = [...]string{"Full name", "Phone", "Address", "City", "Postal code", "Country"}

// CheckoutPageModel walks the order-placement flow: address form, payment
// method, then either straight to success (cash) or a card confirmation pane.
type CheckoutPageModel struct {
	newFlow func() *checkout.Flow
	flow    *checkout.Flow
	styles  Styles

	state  checkout.State
	inputs [6]textinput.Model
	focus  int
	spin   spinner.Model
	width  int
	height int
}

func NewCheckoutPageModel(newFlow func() *checkout.Flow, styles Styles) CheckoutPageModel {
	m := CheckoutPageModel{newFlow: newFlow, styles: styles}
	m.Reset()
	return m
}

// Reset starts a fresh flow; the page is re-entered on every visit.
func (m *CheckoutPageModel) Reset() {
	m.flow = m.newFlow()
	m.state = m.flow.State()
	m.focus = fieldFullName
	for i := range m.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 120
		m.inputs[i] = in
	}
	m.inputs[fieldFullName].Focus()
	m.spin = spinner.New()
	m.spin.Spinner = spinner.Dot
}

func (m *CheckoutPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m CheckoutPageModel) capturingInput() bool {
	return m.state.Phase == checkout.PhaseCollecting && m.focus < rowMethod
}

func (m CheckoutPageModel) startCmd(ctx context.Context) tea.Cmd {
	flow := m.flow
	return func() tea.Msg {
		return checkoutStateMsg{state: flow.Start(ctx)}
	}
}

func (m CheckoutPageModel) spinTick() tea.Cmd { return m.spin.Tick }

func (m *CheckoutPageModel) fillInputs(addr model.ShippingAddress) {
	for i, v := range []string{addr.FullName, addr.Phone, addr.AddressLine1, addr.City, addr.PostalCode, addr.Country} {
		if m.inputs[i].Value() == "" {
			m.inputs[i].SetValue(v)
		}
	}
}

func (m CheckoutPageModel) address() model.ShippingAddress {
	return model.ShippingAddress{
		FullName:     m.inputs[fieldFullName].Value(),
		Phone:        m.inputs[fieldPhone].Value(),
		AddressLine1: m.inputs[fieldAddress].Value(),
		City:         m.inputs[fieldCity].Value(),
		PostalCode:   m.inputs[fieldPostal].Value(),
		Country:      m.inputs[fieldCountry].Value(),
	}
}

func (m *CheckoutPageModel) setFocus(i int) {
	m.focus = i
	for j := range m.inputs {
		if j == i {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
}

func (m CheckoutPageModel) Update(msg tea.Msg, ctx context.Context) (CheckoutPageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case checkoutStateMsg:
		m.state = msg.state
		if m.state.Phase == checkout.PhaseCollecting {
			m.fillInputs(m.state.Address)
		}
		if m.state.Phase == checkout.PhaseSuccess {
			return m, tea.Tick(checkout.RedirectDelay, func(time.Time) tea.Msg {
				return redirectMsg{}
			})
		}
		return m, nil

	case spinner.TickMsg:
		if m.state.Loading || m.state.Phase == checkout.PhaseCreating {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		switch m.state.Phase {
		case checkout.PhaseCollecting:
			return m.updateCollecting(msg, ctx)
		case checkout.PhaseAwaitingPayment:
			if msg.String() == "enter" || msg.String() == "p" {
				flow := m.flow
				return m, func() tea.Msg {
					return checkoutStateMsg{state: flow.CompletePayment(ctx)}
				}
			}
		}
		return m, nil
	}

	if m.focus < len(m.inputs) {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m CheckoutPageModel) updateCollecting(msg tea.KeyMsg, ctx context.Context) (CheckoutPageModel, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.setFocus((m.focus + 1) % checkoutRows)
		return m, nil
	case "shift+tab", "up":
		m.setFocus((m.focus + checkoutRows - 1) % checkoutRows)
		return m, nil
	}

	switch m.focus {
	case rowMethod:
		switch msg.String() {
		case "left", "right", " ":
			if m.state.Method == checkout.MethodCOD {
				m.flow.SetMethod(checkout.MethodStripe)
			} else {
				m.flow.SetMethod(checkout.MethodCOD)
			}
			m.state = m.flow.State()
		}
		return m, nil
	case rowSubmit:
		if msg.String() == "enter" {
			m.flow.SetAddress(m.address())
			flow := m.flow
			return m, func() tea.Msg {
				return checkoutStateMsg{state: flow.Submit(ctx)}
			}
		}
		return m, nil
	}

	if msg.String() == "enter" {
		m.setFocus(m.focus + 1)
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m CheckoutPageModel) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render("Checkout"))
	b.WriteString("\n\n")

	switch m.state.Phase {
	case checkout.PhaseCreating:
		b.WriteString(m.spin.View())
		b.WriteString(m.styles.Muted.Render(" Placing your order..."))
		b.WriteString("\n")
		return b.String()

	case checkout.PhaseAwaitingPayment:
		b.WriteString(m.styles.Box.Render(
			"Card payment\n\n" +
				"Order " + m.state.OrderID.String()[:8] + " created.\n" +
				"Amount due: Rs." + m.state.Cart.TotalAmount.StringFixed(2) + "\n\n" +
				"Press enter to pay",
		))
		b.WriteString("\n")
		return b.String()

	case checkout.PhaseSuccess:
		b.WriteString(m.styles.Success.Render(m.state.SuccessMsg))
		b.WriteString("\n")
		return b.String()
	}

	if m.state.Loading {
		b.WriteString(m.spin.View())
		b.WriteString(m.styles.Muted.Render(" Loading your cart..."))
		b.WriteString("\n")
		return b.String()
	}
	if m.state.Err != "" {
		b.WriteString(m.styles.Error.Render(m.state.Err))
		b.WriteString("\n\n")
	}

	for i, label := range fieldLabels {
		cursor := "  "
		if m.focus == i {
			cursor = m.styles.Selected.Render("> ")
		}
		b.WriteString(cursor)
		b.WriteString(m.styles.Title.Render(padRight(label, 14)))
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}

	methodCursor := "  "
	if m.focus == rowMethod {
		methodCursor = m.styles.Selected.Render("> ")
	}
	method := "Cash on delivery"
	if m.state.Method == checkout.MethodStripe {
		method = "Card"
	}
	b.WriteString(methodCursor)
	b.WriteString(m.styles.Title.Render(padRight("Payment", 14)))
	b.WriteString(method)
	b.WriteString(m.styles.Muted.Render("  (space to change)"))
	b.WriteString("\n")

	submitCursor := "  "
	if m.focus == rowSubmit {
		submitCursor = m.styles.Selected.Render("> ")
	}
	b.WriteString(submitCursor)
	b.WriteString(m.styles.Badge.Render("Place order"))
	b.WriteString(m.styles.Price.Render("  Total: Rs." + m.state.Cart.TotalAmount.StringFixed(2)))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Help.Render("tab next field · enter on Place order to submit"))
	return b.String()
}

func padRight(s string, l int) string {
	if len(s) >= l {
		return s
	}
	return s + strings.Repeat(" ", l-len(s))
}
