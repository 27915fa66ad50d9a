package seeder

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coralbank/coralbank-backend/internal/domain"
	"github.com/coralbank/coralbank-backend/internal/usecase/credential"
	"github.com/coralbank/coralbank-backend/internal/usecase/ledger"
	"github.com/coralbank/coralbank-backend/internal/usecase/transfer"
)

func seedAll(t *testing.T) (*credential.Store, *ledger.Service) {
	t.Helper()

	creds := credential.NewStore(10)
	ledgerSvc := ledger.NewService()
	transfers := transfer.NewService(ledgerSvc, transfer.NewDailyLimitTracker(), decimal.NewFromInt(50000))

	require.NoError(t, NewService(creds, ledgerSvc, transfers).Seed())
	return creds, ledgerSvc
}

func TestSeed_CustomersAndBalances(t *testing.T) {
	creds, ledgerSvc := seedAll(t)

	for _, username := range []string{"bhagy", "christina", "john"} {
		_, ok := ledgerSvc.Customer(username)
		assert.True(t, ok, username)

		id, ok := creds.Verify(username, DemoPassword)
		assert.True(t, ok, username)
		assert.Equal(t, username, id.Username)
	}

	john, _ := ledgerSvc.Customer("john")
	checking := john.AccountByName("Checking")
	savings := john.AccountByName("Savings")
	require.NotNil(t, checking)
	require.NotNil(t, savings)

	// 250 - 10 moved, 100 + 10 received
	assert.True(t, decimal.NewFromInt(240).Equal(checking.Balance))
	assert.True(t, decimal.NewFromInt(110).Equal(savings.Balance))

	assert.NotEmpty(t, john.Address)
	assert.NotEmpty(t, john.ContactNumber)
}

// The backdated history demonstrates the statement window: the 13-month-old
// transfer is outside it, the 10-month-old one inside.
func TestSeed_StatementWindowDemo(t *testing.T) {
	_, ledgerSvc := seedAll(t)

	john, _ := ledgerSvc.Customer("john")
	statement := john.AccountByName("Checking").Statement(time.Now())

	assert.Contains(t, statement, "+£20")
	assert.Contains(t, statement, "-£10")
	assert.NotContains(t, statement, "£30")
}

func TestSeed_FailsOnSecondRun(t *testing.T) {
	creds := credential.NewStore(10)
	ledgerSvc := ledger.NewService()
	transfers := transfer.NewService(ledgerSvc, transfer.NewDailyLimitTracker(), decimal.NewFromInt(50000))
	svc := NewService(creds, ledgerSvc, transfers)

	require.NoError(t, svc.Seed())
	assert.ErrorIs(t, svc.Seed(), domain.ErrDuplicateUsername)
}
