package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is an immutable record of a completed transfer. It snapshots
// the usernames and account names at creation so statements render what was
// true when the money moved. The same instance is shared by the source and
// destination account histories.
type Transaction struct {
	ID              uuid.UUID
	Date            time.Time
	Amount          decimal.Decimal // always positive
	FromIBAN        string
	ToIBAN          string
	FromCustomer    string
	ToCustomer      string
	FromAccountName string
	ToAccountName   string
}

// NewTransaction records a transfer between two accounts dated now
func NewTransaction(from, to *Account, amount decimal.Decimal) *Transaction {
	return NewTransactionAt(from, to, amount, time.Now())
}

// NewTransactionAt records a transfer with an explicit date. Used for
// seeding demonstration histories; live transfers go through NewTransaction.
func NewTransactionAt(from, to *Account, amount decimal.Decimal, at time.Time) *Transaction {
	return &Transaction{
		ID:              uuid.New(),
		Date:            at,
		Amount:          amount,
		FromIBAN:        from.IBAN,
		ToIBAN:          to.IBAN,
		FromCustomer:    from.Owner.Username,
		ToCustomer:      to.Owner.Username,
		FromAccountName: from.Name,
		ToAccountName:   to.Name,
	}
}

// StatementLine renders the record from the perspective of one account:
// outgoing money is signed '-', incoming '+'.
func (t *Transaction) StatementLine(iban string) string {
	sign := " "
	switch iban {
	case t.FromIBAN:
		sign = "-"
	case t.ToIBAN:
		sign = "+"
	}
	return fmt.Sprintf("\n%s\t%s£%s\nFrom: %s (%s, %s)\nTo: %s (%s, %s)\n",
		t.Date.Format("2006-01-02"), sign, t.Amount.String(),
		t.FromIBAN, t.FromCustomer, t.FromAccountName,
		t.ToIBAN, t.ToCustomer, t.ToAccountName)
}
