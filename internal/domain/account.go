package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AccountKind represents the type of account in the system
type AccountKind string

const (
	AccountKindCurrent AccountKind = "CURRENT"
	AccountKindSavings AccountKind = "SAVINGS"
	AccountKindLoan    AccountKind = "LOAN"
)

// ParseAccountKind converts command input into an AccountKind
// Returns ErrInvalidAccountType for anything outside the closed set
func ParseAccountKind(s string) (AccountKind, error) {
	switch AccountKind(strings.ToUpper(s)) {
	case AccountKindCurrent:
		return AccountKindCurrent, nil
	case AccountKindSavings:
		return AccountKindSavings, nil
	case AccountKindLoan:
		return AccountKindLoan, nil
	}
	return "", ErrInvalidAccountType
}

// Account represents an account entity in the domain layer.
// The Kind tag is the only difference between variants; interest accrual
// applies to SAVINGS accounts only.
type Account struct {
	Name         string
	Kind         AccountKind
	IBAN         string // globally unique, immutable once assigned
	Owner        *Customer
	Balance      decimal.Decimal
	Transactions []*Transaction // most recent first
}

// Deposit credits the balance unconditionally.
// Sufficiency checks are the callers' responsibility.
func (a *Account) Deposit(amount decimal.Decimal) {
	a.Balance = a.Balance.Add(amount)
}

// Withdraw debits the balance unconditionally.
func (a *Account) Withdraw(amount decimal.Decimal) {
	a.Balance = a.Balance.Sub(amount)
}

// SufficientFunds reports whether this account alone can cover the amount
func (a *Account) SufficientFunds(amount decimal.Decimal) bool {
	return a.Balance.GreaterThanOrEqual(amount)
}

// AddTransaction prepends a completed transfer record to the history,
// keeping the most recent transaction first.
func (a *Account) AddTransaction(tx *Transaction) {
	a.Transactions = append([]*Transaction{tx}, a.Transactions...)
}

// AccrueInterest deposits rate*balance into a savings account and returns
// the interest credited. Non-savings accounts accrue nothing.
func (a *Account) AccrueInterest(rate decimal.Decimal) decimal.Decimal {
	if a.Kind != AccountKindSavings {
		return decimal.Zero
	}
	interest := a.Balance.Mul(rate)
	a.Deposit(interest)
	return interest
}

// Statement renders the transactions within the trailing 12-month window,
// newest first. The history is ordered newest-first, so rendering stops at
// the first record older than the cutoff.
func (a *Account) Statement(now time.Time) string {
	cutoff := now.AddDate(0, -12, 0)
	var b strings.Builder
	for _, tx := range a.Transactions {
		if !tx.Date.After(cutoff) {
			break
		}
		b.WriteString(tx.StatementLine(a.IBAN))
	}
	return b.String()
}

// Summary renders the one-line account listing used by SHOWMYACCOUNTS
func (a *Account) Summary() string {
	return fmt.Sprintf("%s(%s, %s): %s", a.Name, a.Kind, a.IBAN, a.Balance.String())
}
