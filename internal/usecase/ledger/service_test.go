package ledger

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coralbank/coralbank-backend/internal/domain"
)

func TestAddCustomer_AssignsUniqueSortCodes(t *testing.T) {
	s := NewService()

	alice, err := s.AddCustomer("alice", "1 Test Way", "07000000001", "alice@test.com")
	require.NoError(t, err)
	bob, err := s.AddCustomer("bob", "2 Test Way", "07000000002", "bob@test.com")
	require.NoError(t, err)

	assert.Equal(t, 100001, alice.SortCode)
	assert.Equal(t, 100002, bob.SortCode)
}

func TestAddCustomer_DuplicateUsername(t *testing.T) {
	s := NewService()
	_, err := s.AddCustomer("alice", "", "", "")
	require.NoError(t, err)

	_, err = s.AddCustomer("alice", "", "", "")
	assert.ErrorIs(t, err, domain.ErrDuplicateUsername)
}

func TestCustomer_Lookup(t *testing.T) {
	s := NewService()
	alice, err := s.AddCustomer("alice", "", "", "")
	require.NoError(t, err)

	got, ok := s.Customer("alice")
	assert.True(t, ok)
	assert.Equal(t, alice, got)

	_, ok = s.Customer("nobody")
	assert.False(t, ok)
}

func TestOpenAccount_IBANFormatAndIndex(t *testing.T) {
	s := NewService()
	alice, err := s.AddCustomer("alice", "", "", "")
	require.NoError(t, err)

	main := s.OpenAccount(alice, domain.AccountKindCurrent, "Main", decimal.NewFromInt(100))

	assert.Equal(t, fmt.Sprintf("GB00%d%d", alice.SortCode, 1000001), main.IBAN)
	assert.True(t, decimal.NewFromInt(100).Equal(main.Balance))
	assert.Equal(t, []*domain.Account{main}, alice.Accounts)

	indexed, ok := s.AccountByIBAN(main.IBAN)
	assert.True(t, ok)
	assert.Equal(t, main, indexed)
}

func TestOpenAccount_IBANsAreUnique(t *testing.T) {
	s := NewService()
	alice, err := s.AddCustomer("alice", "", "", "")
	require.NoError(t, err)
	bob, err := s.AddCustomer("bob", "", "", "")
	require.NoError(t, err)

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		for _, c := range []*domain.Customer{alice, bob} {
			a := s.OpenAccount(c, domain.AccountKindCurrent, "Main", decimal.Zero)
			assert.False(t, seen[a.IBAN], "IBAN %s assigned twice", a.IBAN)
			seen[a.IBAN] = true
		}
	}
}

// The opening balance is an implicit credit, not a Transaction; statements
// must never show an account's initial funding.
func TestOpenAccount_NoOpeningTransaction(t *testing.T) {
	s := NewService()
	alice, err := s.AddCustomer("alice", "", "", "")
	require.NoError(t, err)

	main := s.OpenAccount(alice, domain.AccountKindCurrent, "Main", decimal.NewFromInt(500))
	assert.Empty(t, main.Transactions)
}

func TestAccrueInterest_SavingsAcrossCustomers(t *testing.T) {
	s := NewService()
	alice, err := s.AddCustomer("alice", "", "", "")
	require.NoError(t, err)
	bob, err := s.AddCustomer("bob", "", "", "")
	require.NoError(t, err)

	aliceSavings := s.OpenAccount(alice, domain.AccountKindSavings, "Rainy", decimal.NewFromInt(1500))
	aliceCurrent := s.OpenAccount(alice, domain.AccountKindCurrent, "Main", decimal.NewFromInt(1000))
	bobSavings := s.OpenAccount(bob, domain.AccountKindSavings, "Nest", decimal.NewFromInt(100))

	s.AccrueInterest(decimal.NewFromFloat(0.02))

	assert.True(t, decimal.NewFromInt(1530).Equal(aliceSavings.Balance))
	assert.True(t, decimal.NewFromInt(1000).Equal(aliceCurrent.Balance))
	assert.True(t, decimal.NewFromInt(102).Equal(bobSavings.Balance))
}
