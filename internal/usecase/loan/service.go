package loan

import (
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/coralbank/coralbank-backend/internal/domain"
	"github.com/coralbank/coralbank-backend/internal/usecase/ledger"
)

// Service runs the peer-to-peer loan state machine:
// Proposed -> Active -> Repaid. A failed validation never transitions out
// of Proposed; the caller discards the attempt.
//
// The service tracks the single live originated agreement, and repayment
// always targets it. This mirrors the reference design; see DESIGN.md.
type Service struct {
	ledger       *ledger.Service
	interestRate decimal.Decimal
	maxAmount    decimal.Decimal

	current *domain.LoanAgreement
}

// NewService creates a loan engine with the given interest rate (e.g. 0.07)
// and origination cap.
func NewService(ledgerSvc *ledger.Service, interestRate, maxAmount decimal.Decimal) *Service {
	return &Service{
		ledger:       ledgerSvc,
		interestRate: interestRate,
		maxAmount:    maxAmount,
	}
}

// Propose constructs a Proposed agreement. It does not become the live
// agreement until it survives validation and is originated, so a rejected
// proposal never displaces an active loan.
func (s *Service) Propose(amount decimal.Decimal, borrower, lender *domain.Customer, borrowerAccount, lenderAccount *domain.Account) *domain.LoanAgreement {
	return domain.NewLoanAgreement(amount, borrower, lender, borrowerAccount, lenderAccount)
}

// Current returns the live agreement repayment operates on, nil if none
func (s *Service) Current() *domain.LoanAgreement {
	return s.current
}

// ValidateOrigination checks an agreement before any money moves. The
// lender check uses the customer-aggregate sufficiency walk.
func (s *Service) ValidateOrigination(agreement *domain.LoanAgreement) error {
	if agreement.Borrower.HasActiveLoan {
		return domain.ErrBorrowerHasActiveLoan
	}
	if !agreement.Amount.IsPositive() {
		return domain.ErrNonPositiveLoanAmount
	}
	if agreement.Amount.GreaterThan(s.maxAmount) {
		return domain.ErrLoanAmountExceedsCap
	}
	if !agreement.Lender.SufficientFunds(agreement.Amount) {
		return domain.ErrLenderInsufficientFunds
	}
	return nil
}

// Originate disburses a validated agreement: the amount leaves the lender's
// account, a dedicated loan account is opened for the borrower and
// immediately drained (it exists as a bookkeeping artifact, never a balance
// holder), and the amount lands in the borrower's current account.
func (s *Service) Originate(agreement *domain.LoanAgreement) {
	agreement.LenderAccount.Withdraw(agreement.Amount)

	agreement.LoanAccount = s.ledger.OpenAccount(agreement.Borrower, domain.AccountKindLoan, "LOAN", agreement.Amount)
	agreement.LoanAccount.Withdraw(agreement.Amount)

	agreement.BorrowerAccount.Deposit(agreement.Amount)
	agreement.Borrower.HasActiveLoan = true
	agreement.State = domain.LoanStateActive
	s.current = agreement

	logrus.WithFields(logrus.Fields{
		"borrower": agreement.Borrower.Username,
		"lender":   agreement.Lender.Username,
		"amount":   agreement.Amount.String(),
	}).Info("loan originated")
}

// ValidateRepayment checks that the loan was disbursed and that the
// borrower's current account covers principal plus interest.
func (s *Service) ValidateRepayment(agreement *domain.LoanAgreement) error {
	if agreement.LoanAccount == nil {
		return domain.ErrNoActiveLoanToRepay
	}
	if agreement.BorrowerAccount.Balance.LessThan(agreement.RepaymentAmount(s.interestRate)) {
		return domain.ErrInsufficientFunds
	}
	return nil
}

// Repay settles a validated agreement: principal plus interest moves from
// the borrower's current account to the lender's account.
func (s *Service) Repay(agreement *domain.LoanAgreement) {
	repayment := agreement.RepaymentAmount(s.interestRate)

	agreement.BorrowerAccount.Withdraw(repayment)
	agreement.LenderAccount.Deposit(repayment)
	agreement.Borrower.HasActiveLoan = false
	agreement.State = domain.LoanStateRepaid
	if s.current == agreement {
		s.current = nil
	}

	logrus.WithFields(logrus.Fields{
		"borrower":  agreement.Borrower.Username,
		"lender":    agreement.Lender.Username,
		"repayment": repayment.String(),
	}).Info("loan repaid")
}
