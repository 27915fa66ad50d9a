package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/coralbank/coralbank-backend/internal/domain"
)

// Counters start above these values so every sort code is six digits and
// every account number seven, matching the identifier scheme customers see.
const (
	sortCodeBase      = 100000
	accountNumberBase = 1000000
)

// Service is the authoritative in-memory registry of customers and
// accounts. It owns the identifier counters and the IBAN index; nothing
// else holds a mutable copy of either. Callers serialize access through
// the command processor's lock.
type Service struct {
	customers map[string]*domain.Customer
	order     []*domain.Customer // insertion order, for deterministic iteration
	accounts  map[string]*domain.Account

	nextSortCode      int
	nextAccountNumber int
}

// NewService creates an empty registry
func NewService() *Service {
	return &Service{
		customers:         make(map[string]*domain.Customer),
		accounts:          make(map[string]*domain.Account),
		nextSortCode:      sortCodeBase,
		nextAccountNumber: accountNumberBase,
	}
}

// AddCustomer registers a new customer and assigns their sort code.
// Profile fields are opaque to the ledger.
func (s *Service) AddCustomer(username, address, contactNumber, email string) (*domain.Customer, error) {
	if _, exists := s.customers[username]; exists {
		return nil, domain.ErrDuplicateUsername
	}

	s.nextSortCode++
	customer := &domain.Customer{
		Username:      username,
		Address:       address,
		ContactNumber: contactNumber,
		Email:         email,
		SortCode:      s.nextSortCode,
	}
	s.customers[username] = customer
	s.order = append(s.order, customer)

	logrus.WithFields(logrus.Fields{
		"username":  username,
		"sort_code": customer.SortCode,
	}).Debug("customer registered")
	return customer, nil
}

// Customer looks a customer up by username
func (s *Service) Customer(username string) (*domain.Customer, bool) {
	c, ok := s.customers[username]
	return c, ok
}

// AllCustomers returns every customer in registration order
func (s *Service) AllCustomers() []*domain.Customer {
	return s.order
}

// OpenAccount creates an account for the customer, assigns its IBAN, and
// credits the opening balance. The opening balance is not recorded as a
// Transaction, so statements never show an account's initial funding.
func (s *Service) OpenAccount(customer *domain.Customer, kind domain.AccountKind, name string, openingBalance decimal.Decimal) *domain.Account {
	s.nextAccountNumber++
	account := &domain.Account{
		Name:    name,
		Kind:    kind,
		IBAN:    fmt.Sprintf("GB00%d%d", customer.SortCode, s.nextAccountNumber),
		Owner:   customer,
		Balance: decimal.Zero,
	}
	account.Deposit(openingBalance)

	s.accounts[account.IBAN] = account
	customer.AddAccount(account)

	logrus.WithFields(logrus.Fields{
		"username": customer.Username,
		"iban":     account.IBAN,
		"kind":     kind,
	}).Debug("account opened")
	return account
}

// AccountByIBAN resolves an account through the global identifier index
func (s *Service) AccountByIBAN(iban string) (*domain.Account, bool) {
	a, ok := s.accounts[iban]
	return a, ok
}

// AccrueInterest credits interest on every savings account. It is invoked
// by the external interest timer through the command processor, under the
// same lock as customer commands.
func (s *Service) AccrueInterest(rate decimal.Decimal) {
	for _, customer := range s.order {
		for _, account := range customer.Accounts {
			if interest := account.AccrueInterest(rate); !interest.IsZero() {
				logrus.WithFields(logrus.Fields{
					"iban":     account.IBAN,
					"interest": interest.String(),
				}).Debug("interest credited")
			}
		}
	}
}
