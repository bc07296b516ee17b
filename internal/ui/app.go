// Package ui is the terminal storefront: a Bubble Tea program whose pages
// render the view-model state and translate key presses into commands.
package ui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/greenroots/storefront/internal/admin"
	"github.com/greenroots/storefront/internal/cart"
	"github.com/greenroots/storefront/internal/catalog"
	"github.com/greenroots/storefront/internal/chat"
	"github.com/greenroots/storefront/internal/checkout"
	"github.com/greenroots/storefront/internal/orders"
	"github.com/greenroots/storefront/internal/session"
)

type page int

const (
	pageShop page = iota
	pageCart
	pageCheckout
	pageOrders
	pageChat
	pageAdmin
	pageAuth
)

var pageTitles = map[page]string{
	pageShop:     "Shop",
	pageCart:     "Cart",
	pageCheckout: "Checkout",
	pageOrders:   "Orders",
	pageChat:     "Support",
	pageAdmin:    "Admin",
	pageAuth:     "Account",
}

// Deps are the view-models and stores the app renders.
type Deps struct {
	Session  *session.Store
	Catalog  *catalog.View
	Cart     *cart.View
	Checkout func() *checkout.Flow
	Orders   *orders.History
	Detail   *orders.Detail
	Admin    *admin.Backoffice
	Chat     *chat.Responder
	Log      *zap.Logger
}

// App is the root model. It owns page switching, the header and the session
// subscription; each page renders itself.
type App struct {
	deps   Deps
	styles Styles
	log    *zap.Logger

	page    page
	width   int
	height  int
	session session.State

	// pageCtx scopes in-flight requests to the current page; switching
	// pages cancels whatever the old page was still waiting on.
	pageCtx    context.Context
	cancelPage context.CancelFunc

	sessionCh   chan session.State
	unsubscribe func()

	shop     ShopPageModel
	cartPage CartPageModel
	checkout CheckoutPageModel
	orders   OrdersPageModel
	chatPage ChatPageModel
	adminUI  AdminPageModel
	auth     AuthPageModel
}

func NewApp(deps Deps) *App {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	styles := DefaultStyles()
	ctx, cancel := context.WithCancel(context.Background())

	a := &App{
		deps:       deps,
		styles:     styles,
		log:        log,
		page:       pageShop,
		pageCtx:    ctx,
		cancelPage: cancel,
		sessionCh:  make(chan session.State, 8),
		session:    deps.Session.State(),

		shop:     NewShopPageModel(deps.Catalog, deps.Cart, styles),
		cartPage: NewCartPageModel(deps.Cart, styles),
		orders:   NewOrdersPageModel(deps.Orders, deps.Detail, styles),
		chatPage: NewChatPageModel(deps.Chat, styles),
		adminUI:  NewAdminPageModel(deps.Admin, styles),
		auth:     NewAuthPageModel(deps.Session, styles),
	}
	a.checkout = NewCheckoutPageModel(deps.Checkout, styles)
	a.unsubscribe = deps.Session.Subscribe(func(st session.State) {
		select {
		case a.sessionCh <- st:
		default:
		}
	})
	return a
}

// Close releases the session subscription and cancels in-flight requests.
func (a *App) Close() {
	a.unsubscribe()
	a.cancelPage()
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.shop.fetchCmd(a.pageCtx),
		a.waitForSession(),
	)
}

func (a *App) waitForSession() tea.Cmd {
	return func() tea.Msg {
		return sessionChangedMsg{state: <-a.sessionCh}
	}
}

// navigate switches pages, cancelling the old page's requests and firing the
// new page's load command.
func (a *App) navigate(to page) tea.Cmd {
	a.cancelPage()
	a.pageCtx, a.cancelPage = context.WithCancel(context.Background())
	a.page = to

	switch to {
	case pageShop:
		return a.shop.fetchCmd(a.pageCtx)
	case pageCart:
		return a.cartPage.fetchCmd(a.pageCtx)
	case pageCheckout:
		a.checkout.Reset()
		return tea.Batch(a.checkout.startCmd(a.pageCtx), a.checkout.spinTick())
	case pageOrders:
		a.orders.backToList()
		return a.orders.fetchCmd(a.pageCtx)
	case pageAdmin:
		return a.adminUI.loadCmd(a.pageCtx)
	}
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		body := msg.Height - 4
		a.shop.SetSize(msg.Width, body)
		a.cartPage.SetSize(msg.Width, body)
		a.checkout.SetSize(msg.Width, body)
		a.orders.SetSize(msg.Width, body)
		a.chatPage.SetSize(msg.Width, body)
		a.adminUI.SetSize(msg.Width, body)
		a.auth.SetSize(msg.Width, body)
		return a, nil

	case sessionChangedMsg:
		a.session = msg.state
		if !a.session.IsAuthenticated() && (a.page == pageCheckout || a.page == pageOrders || a.page == pageAdmin) {
			return a, tea.Batch(a.navigate(pageShop), a.waitForSession())
		}
		return a, a.waitForSession()

	case navigateMsg:
		return a, a.navigate(msg.to)

	case redirectMsg:
		if a.page == pageCheckout {
			return a, a.navigate(pageOrders)
		}
		return a, nil

	case tea.KeyMsg:
		if cmd, handled := a.handleGlobalKey(msg); handled {
			return a, cmd
		}
	}
	return a, a.updatePage(msg)
}

// handleGlobalKey handles navigation and quit. Pages with a focused text
// input swallow printable keys, so global shortcuts only apply when the
// active page is not capturing input.
func (a *App) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if msg.Type == tea.KeyCtrlC {
		return tea.Quit, true
	}
	if a.capturingInput() {
		return nil, false
	}
	switch msg.String() {
	case "q":
		return tea.Quit, true
	case "1":
		return a.navigate(pageShop), true
	case "2":
		return a.navigate(pageCart), true
	case "3":
		return a.navigate(pageOrders), true
	case "4":
		return a.navigate(pageChat), true
	case "5":
		if a.session.IsAdmin() {
			return a.navigate(pageAdmin), true
		}
	case "l":
		if a.session.IsAuthenticated() {
			a.deps.Session.Logout()
			return nil, true
		}
		return a.navigate(pageAuth), true
	}
	return nil, false
}

func (a *App) capturingInput() bool {
	switch a.page {
	case pageAuth:
		return a.auth.capturingInput()
	case pageCheckout:
		return a.checkout.capturingInput()
	case pageChat:
		return a.chatPage.capturingInput()
	case pageAdmin:
		return a.adminUI.capturingInput()
	}
	return false
}

func (a *App) updatePage(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.page {
	case pageShop:
		a.shop, cmd = a.shop.Update(msg, a.pageCtx, a.session)
	case pageCart:
		a.cartPage, cmd = a.cartPage.Update(msg, a.pageCtx)
	case pageCheckout:
		a.checkout, cmd = a.checkout.Update(msg, a.pageCtx)
	case pageOrders:
		a.orders, cmd = a.orders.Update(msg, a.pageCtx)
	case pageChat:
		a.chatPage, cmd = a.chatPage.Update(msg, a.pageCtx)
	case pageAdmin:
		a.adminUI, cmd = a.adminUI.Update(msg, a.pageCtx)
	case pageAuth:
		a.auth, cmd = a.auth.Update(msg, a.pageCtx)
	}
	return cmd
}

func (a *App) View() string {
	var b strings.Builder
	b.WriteString(a.headerView())
	b.WriteString("\n")

	switch a.page {
	case pageShop:
		b.WriteString(a.shop.View())
	case pageCart:
		b.WriteString(a.cartPage.View(a.session))
	case pageCheckout:
		b.WriteString(a.checkout.View())
	case pageOrders:
		b.WriteString(a.orders.View())
	case pageChat:
		b.WriteString(a.chatPage.View())
	case pageAdmin:
		b.WriteString(a.adminUI.View())
	case pageAuth:
		b.WriteString(a.auth.View())
	}

	b.WriteString("\n")
	b.WriteString(a.footerView())
	return b.String()
}

func (a *App) headerView() string {
	tabs := []page{pageShop, pageCart, pageOrders, pageChat}
	if a.session.IsAdmin() {
		tabs = append(tabs, pageAdmin)
	}
	parts := make([]string, 0, len(tabs)+2)
	parts = append(parts, a.styles.Badge.Render("GreenRoots"))
	for _, p := range tabs {
		style := a.styles.Tab
		if p == a.page {
			style = a.styles.TabActive
		}
		parts = append(parts, style.Render(pageTitles[p]))
	}
	who := "guest"
	if a.session.User != nil {
		who = a.session.User.FullName
	}
	parts = append(parts, a.styles.Muted.Render(who))
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func (a *App) footerView() string {
	keys := "1 shop · 2 cart · 3 orders · 4 support"
	if a.session.IsAdmin() {
		keys += " · 5 admin"
	}
	if a.session.IsAuthenticated() {
		keys += " · l logout"
	} else {
		keys += " · l login"
	}
	keys += " · q quit"
	return a.styles.Help.Render(keys)
}
