package ui

import (
	"github.com/google/uuid"

	"github.com/greenroots/storefront/internal/cart"
	"github.com/greenroots/storefront/internal/catalog"
	"github.com/greenroots/storefront/internal/checkout"
	"github.com/greenroots/storefront/internal/orders"
	"github.com/greenroots/storefront/internal/session"
)

// Messages delivered back into the Bubble Tea loop by async commands.

type sessionChangedMsg struct{ state session.State }

type authResultMsg struct {
	mode   authMode
	result session.Result
}

type catalogLoadedMsg struct{ state catalog.State }

type cartChangedMsg struct {
	state  cart.State
	status string
}

type checkoutStateMsg struct{ state checkout.State }

type historyChangedMsg struct{ state orders.State }

type detailLoadedMsg struct{ id uuid.UUID }

type adminRefreshedMsg struct{}

type chatRepliedMsg struct{}

type redirectMsg struct{}

type navigateMsg struct{ to page }
