package handlers

import (
	"errors"

	"Go-Recipe-Admin/domain"
	"Go-Recipe-Admin/internal/api/presenters"
	"Go-Recipe-Admin/pkg/account"

	"github.com/gofiber/fiber/v2"
	fiberutils "github.com/gofiber/fiber/v2/utils"
)

type (
	AccountHandler interface {
		GetAccountOptions(c *fiber.Ctx) error
	}

	// SelectorLookup resolves a page token to that page's account selector.
	SelectorLookup func(token string) (*account.AsyncSelect, bool)

	accountHandler struct {
		accountGateway account.AccountGateway
		selectors      SelectorLookup
	}
)

func NewAccountHandler(accountGateway account.AccountGateway, selectors SelectorLookup) AccountHandler {
	return &accountHandler{accountGateway: accountGateway, selectors: selectors}
}

// GetAccountOptions answers a typeahead lookup. Requests carrying a live page
// token go through that page's selector so keystrokes are debounced and stale
// answers are dropped server side.
func (h *accountHandler) GetAccountOptions(c *fiber.Ctx) error {
	query := fiberutils.CopyString(c.Query("q", ""))

	if h.selectors != nil {
		if sel, ok := h.selectors(c.Query("page", "")); ok {
			return h.typeAhead(c, sel, query)
		}
	}

	accounts, err := h.accountGateway.GetAccounts(c.UserContext(), query)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadGateway, domain.MessageFailedGetAccounts, err)
	}
	return presenters.SuccessResponse(c, accounts, fiber.StatusOK, domain.MessageSuccessGetAccounts)
}

func (h *accountHandler) typeAhead(c *fiber.Ctx, sel *account.AsyncSelect, query string) error {
	sel.Type(query)
	opts, err := sel.Wait(c.UserContext())
	switch {
	case errors.Is(err, account.ErrSelectClosed):
		return presenters.ErrorResponse(c, fiber.StatusGone, domain.MessageFailedPageExpired, err)
	case err != nil:
		return presenters.ErrorResponse(c, fiber.StatusRequestTimeout, domain.MessageFailedGetAccounts, err)
	case opts.Err != nil:
		return presenters.ErrorResponse(c, fiber.StatusBadGateway, domain.MessageFailedGetAccounts, opts.Err)
	}

	accounts := opts.Accounts
	if accounts == nil {
		accounts = []domain.Account{}
	}
	return presenters.SuccessResponse(c, accounts, fiber.StatusOK, domain.MessageSuccessGetAccounts)
}
