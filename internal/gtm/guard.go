package gtm

import (
	tagmanager "google.golang.org/api/tagmanager/v2"
)

// AccountGuard restricts every operation to a single configured GTM account.
// An empty configured ID means the server is unrestricted. The guard is
// immutable after construction and safe for concurrent use.
type AccountGuard struct {
	accountID string
}

// NewAccountGuard builds a guard for the configured account ID. Pass an empty
// string to allow all accounts.
func NewAccountGuard(accountID string) *AccountGuard {
	return &AccountGuard{accountID: accountID}
}

// Restricted reports whether the guard enforces a single account.
func (g *AccountGuard) Restricted() bool {
	return g.accountID != ""
}

// AccountID returns the configured account ID, empty when unrestricted.
func (g *AccountGuard) AccountID() string {
	return g.accountID
}

// ValidateAccess checks the requested account against the configured one.
func (g *AccountGuard) ValidateAccess(accountID string) error {
	if !g.Restricted() || accountID == g.accountID {
		return nil
	}
	return &PermissionError{Configured: g.accountID, Requested: accountID}
}

// ValidatePath extracts the account ID from a resource path and checks it.
func (g *AccountGuard) ValidatePath(path string) error {
	if !g.Restricted() {
		return nil
	}
	accountID, err := ExtractAccountID(path)
	if err != nil {
		return err
	}
	return g.ValidateAccess(accountID)
}

// FilterAccounts narrows an account listing to the configured account. When
// restricted and the configured account is absent from the listing, the
// credential cannot see it and a permission error is returned.
func (g *AccountGuard) FilterAccounts(accounts []*tagmanager.Account) ([]*tagmanager.Account, error) {
	if !g.Restricted() {
		return accounts, nil
	}
	for _, a := range accounts {
		if a.AccountId == g.accountID {
			return []*tagmanager.Account{a}, nil
		}
	}
	return nil, &PermissionError{Configured: g.accountID}
}
