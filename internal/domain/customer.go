package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Customer represents a customer entity in the domain layer
type Customer struct {
	Username      string // primary key, never changes
	Address       string
	ContactNumber string
	Email         string
	SortCode      int // unique, assigned by the registry at creation
	Accounts      []*Account
	HasActiveLoan bool
}

// AddAccount appends an account to the customer's profile (insertion order)
func (c *Customer) AddAccount(a *Account) {
	c.Accounts = append(c.Accounts, a)
}

// AccountByName returns the first account with the given name, or nil
func (c *Customer) AccountByName(name string) *Account {
	for _, a := range c.Accounts {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// AccountByKind returns the first account of the given kind, or nil
func (c *Customer) AccountByKind(kind AccountKind) *Account {
	for _, a := range c.Accounts {
		if a.Kind == kind {
			return a
		}
	}
	return nil
}

// SufficientFunds reports whether the customer can cover the amount.
// The loop stops at the first account whose balance covers the amount and
// otherwise carries the flag forward, so a customer with no accounts
// reports true. This mirrors the reference ledger exactly; see DESIGN.md.
func (c *Customer) SufficientFunds(amount decimal.Decimal) bool {
	sufficient := true
	for _, a := range c.Accounts {
		if amount.GreaterThan(a.Balance) {
			sufficient = false
		} else {
			sufficient = true
			break
		}
	}
	return sufficient
}

// AccountsSummary renders one line per owned account
func (c *Customer) AccountsSummary() string {
	var b strings.Builder
	for _, a := range c.Accounts {
		b.WriteString(a.Summary())
		b.WriteString("\n")
	}
	return b.String()
}
