package account

import (
	"Go-Recipe-Admin/domain"
	"Go-Recipe-Admin/pkg/gateway"
	"context"
	"net/http"
	"net/url"
	"strings"
)

type (
	AccountGateway interface {
		GetAccounts(ctx context.Context, query string) ([]domain.Account, error)
	}

	httpAccountGateway struct {
		client *gateway.Client
	}

	dbAccountGateway struct {
		accountRepository AccountRepository
		limit             int
	}
)

func NewHTTPAccountGateway(client *gateway.Client) AccountGateway {
	return &httpAccountGateway{client: client}
}

func (g *httpAccountGateway) GetAccounts(ctx context.Context, query string) ([]domain.Account, error) {
	var q url.Values
	if query = strings.TrimSpace(query); query != "" {
		q = url.Values{"q": {query}}
	}
	var out []domain.Account
	err := g.client.Do(ctx, gateway.Request{
		Op:     "accounts.list",
		Method: http.MethodGet,
		Path:   "/accounts",
		Query:  q,
	}, &out)
	if out == nil {
		out = []domain.Account{}
	}
	return out, err
}

func NewDBAccountGateway(accountRepository AccountRepository) AccountGateway {
	return &dbAccountGateway{accountRepository: accountRepository, limit: 50}
}

func (g *dbAccountGateway) GetAccounts(ctx context.Context, query string) ([]domain.Account, error) {
	accounts, err := g.accountRepository.SearchAccounts(ctx, strings.TrimSpace(query), g.limit)
	if err != nil {
		return nil, &gateway.GatewayError{
			Op:         "accounts.list",
			StatusCode: http.StatusInternalServerError,
			Message:    domain.MessageFailedGetAccounts,
			Err:        err,
		}
	}

	out := make([]domain.Account, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, domain.Account{ID: a.ID.String(), Name: a.Name})
	}
	return out, nil
}
