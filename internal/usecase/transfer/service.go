package transfer

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/coralbank/coralbank-backend/internal/domain"
	"github.com/coralbank/coralbank-backend/internal/usecase/ledger"
)

// Service validates and executes balance moves between accounts. Moves
// between a customer's own accounts bypass the daily cap; customer-to-
// customer payments count toward it.
type Service struct {
	ledger     *ledger.Service
	limits     *DailyLimitTracker
	dailyLimit decimal.Decimal

	now func() time.Time
}

// NewService creates a transfer engine with the given daily payment cap
func NewService(ledgerSvc *ledger.Service, limits *DailyLimitTracker, dailyLimit decimal.Decimal) *Service {
	return &Service{
		ledger:     ledgerSvc,
		limits:     limits,
		dailyLimit: dailyLimit,
		now:        time.Now,
	}
}

// Limits exposes the tracker for the external reset timer
func (s *Service) Limits() *DailyLimitTracker {
	return s.limits
}

// Move atomically transfers amount between two accounts and records one
// shared Transaction in both histories. All validation happens before any
// mutation, so a failed move leaves no trace.
func (s *Service) Move(amount decimal.Decimal, fromIBAN, toIBAN string) (*domain.Transaction, error) {
	from, ok := s.ledger.AccountByIBAN(fromIBAN)
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	to, ok := s.ledger.AccountByIBAN(toIBAN)
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	if !from.SufficientFunds(amount) {
		return nil, domain.ErrInsufficientFunds
	}

	from.Withdraw(amount)
	to.Deposit(amount)

	tx := domain.NewTransaction(from, to, amount)
	from.AddTransaction(tx)
	to.AddTransaction(tx)

	logrus.WithFields(logrus.Fields{
		"from":   fromIBAN,
		"to":     toIBAN,
		"amount": amount.String(),
	}).Info("transfer completed")
	return tx, nil
}

// Pay executes a customer-initiated payment to another customer. The
// amount arrives as raw command input and is parsed here; the daily cap is
// checked before any mutation so a rejected payment changes nothing.
func (s *Service) Pay(initiator *domain.Customer, amountText, fromIBAN, toIBAN string) (*domain.Transaction, error) {
	amount, err := decimal.NewFromString(amountText)
	if err != nil || !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	from, ok := s.ledger.AccountByIBAN(fromIBAN)
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	to, ok := s.ledger.AccountByIBAN(toIBAN)
	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	if from.Owner != initiator {
		return nil, domain.ErrNotAccountOwner
	}
	if from.Owner == to.Owner {
		return nil, domain.ErrSelfPayment
	}
	if !from.SufficientFunds(amount) {
		return nil, domain.ErrInsufficientFunds
	}

	today := s.now()
	if s.limits.Total(today).Add(amount).GreaterThan(s.dailyLimit) {
		return nil, domain.ErrDailyLimitExceeded
	}

	tx, err := s.Move(amount, fromIBAN, toIBAN)
	if err != nil {
		return nil, err
	}
	s.limits.Add(today, amount)
	return tx, nil
}
