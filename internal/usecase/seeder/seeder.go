package seeder

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/coralbank/coralbank-backend/internal/domain"
	"github.com/coralbank/coralbank-backend/internal/usecase/credential"
	"github.com/coralbank/coralbank-backend/internal/usecase/ledger"
	"github.com/coralbank/coralbank-backend/internal/usecase/transfer"
)

// DemoPassword is the shared login password of the seeded demo customers
const DemoPassword = "Password123!"

// Service seeds demonstration customers, accounts and a backdated
// transaction history so a fresh process has something to show.
type Service struct {
	creds     *credential.Store
	ledger    *ledger.Service
	transfers *transfer.Service
}

// NewService creates a demo-data seeder
func NewService(creds *credential.Store, ledgerSvc *ledger.Service, transfers *transfer.Service) *Service {
	return &Service{
		creds:     creds,
		ledger:    ledgerSvc,
		transfers: transfers,
	}
}

// Seed registers the demo customers and their accounts. John's history gets
// one transaction just outside the 12-month statement window and one inside
// it, plus a live transfer, to demonstrate statement rendering.
func (s *Service) Seed() error {
	faker := gofakeit.New(0)

	bhagy, err := s.register("bhagy", faker)
	if err != nil {
		return err
	}
	s.ledger.OpenAccount(bhagy, domain.AccountKindCurrent, "Main", decimal.NewFromInt(1000))

	christina, err := s.register("christina", faker)
	if err != nil {
		return err
	}
	s.ledger.OpenAccount(christina, domain.AccountKindSavings, "Savings", decimal.NewFromInt(1500))

	john, err := s.register("john", faker)
	if err != nil {
		return err
	}
	checking := s.ledger.OpenAccount(john, domain.AccountKindCurrent, "Checking", decimal.NewFromInt(250))
	savings := s.ledger.OpenAccount(john, domain.AccountKindSavings, "Savings", decimal.NewFromInt(100))

	now := time.Now()
	outside := domain.NewTransactionAt(checking, savings, decimal.NewFromInt(30), now.AddDate(0, -13, 0))
	checking.AddTransaction(outside)
	savings.AddTransaction(outside)

	inside := domain.NewTransactionAt(savings, checking, decimal.NewFromInt(20), now.AddDate(0, -10, 0))
	savings.AddTransaction(inside)
	checking.AddTransaction(inside)

	if _, err := s.transfers.Move(decimal.NewFromInt(10), checking.IBAN, savings.IBAN); err != nil {
		return err
	}

	logrus.WithField("customers", 3).Info("demo data seeded")
	return nil
}

func (s *Service) register(username string, faker *gofakeit.Faker) (*domain.Customer, error) {
	if err := s.creds.Register(username, DemoPassword); err != nil {
		return nil, err
	}
	return s.ledger.AddCustomer(username, faker.Address().Address, faker.Phone(), username+"@test.com")
}
