package domain

var (
	MessageSuccessGetAccounts = "success get accounts"
	MessageFailedGetAccounts  = "failed to get accounts"
)

type Account struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// WithAccount returns accounts with id present, so a selection the lookup did
// not return stays selectable. The placeholder is labelled with the id.
func WithAccount(accounts []Account, id string) []Account {
	if id == "" {
		return accounts
	}
	for _, acc := range accounts {
		if acc.ID == id {
			return accounts
		}
	}
	out := make([]Account, 0, len(accounts)+1)
	out = append(out, Account{ID: id, Name: id})
	return append(out, accounts...)
}
