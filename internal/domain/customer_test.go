package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func customerWithBalances(balances ...int64) *Customer {
	c := &Customer{Username: "tester", SortCode: 100001}
	for i, b := range balances {
		c.AddAccount(&Account{
			Name:    string(rune('A' + i)),
			Kind:    AccountKindCurrent,
			Owner:   c,
			Balance: decimal.NewFromInt(b),
		})
	}
	return c
}

func TestCustomer_AccountByName_FirstMatch(t *testing.T) {
	c := &Customer{Username: "alice"}
	first := &Account{Name: "Main", Kind: AccountKindCurrent, Owner: c}
	second := &Account{Name: "Main", Kind: AccountKindSavings, Owner: c}
	c.AddAccount(first)
	c.AddAccount(second)

	assert.Equal(t, first, c.AccountByName("Main"))
	assert.Nil(t, c.AccountByName("Missing"))
}

func TestCustomer_AccountByKind_FirstMatch(t *testing.T) {
	c := &Customer{Username: "alice"}
	savings := &Account{Name: "Rainy", Kind: AccountKindSavings, Owner: c}
	current := &Account{Name: "Main", Kind: AccountKindCurrent, Owner: c}
	c.AddAccount(savings)
	c.AddAccount(current)

	assert.Equal(t, current, c.AccountByKind(AccountKindCurrent))
	assert.Equal(t, savings, c.AccountByKind(AccountKindSavings))
	assert.Nil(t, c.AccountByKind(AccountKindLoan))
}

// Pins the preserved reference semantics of the aggregate funds check,
// including the vacuous true for a customer with no accounts.
func TestCustomer_SufficientFunds(t *testing.T) {
	tests := []struct {
		name     string
		balances []int64
		amount   int64
		want     bool
	}{
		{"first account covers", []int64{100, 5}, 50, true},
		{"later account covers", []int64{5, 100}, 50, true},
		{"no account covers", []int64{5, 10}, 50, false},
		{"exact balance covers", []int64{50}, 50, true},
		{"no accounts", nil, 50, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := customerWithBalances(tt.balances...)
			assert.Equal(t, tt.want, c.SufficientFunds(decimal.NewFromInt(tt.amount)))
		})
	}
}

func TestCustomer_AccountsSummary(t *testing.T) {
	c := &Customer{Username: "alice"}
	c.AddAccount(&Account{Name: "Main", Kind: AccountKindCurrent, IBAN: "GB001000011000001", Owner: c, Balance: decimal.NewFromInt(100)})
	c.AddAccount(&Account{Name: "Rainy", Kind: AccountKindSavings, IBAN: "GB001000011000002", Owner: c, Balance: decimal.NewFromInt(50)})

	assert.Equal(t,
		"Main(CURRENT, GB001000011000001): 100\nRainy(SAVINGS, GB001000011000002): 50\n",
		c.AccountsSummary())
}
