package domain

import "github.com/shopspring/decimal"

// LoanState tracks the lifecycle of a peer-to-peer loan agreement
type LoanState string

const (
	LoanStateProposed LoanState = "PROPOSED"
	LoanStateActive   LoanState = "ACTIVE"
	LoanStateRepaid   LoanState = "REPAID"
)

// LoanAgreement represents the state of one peer-to-peer loan. The
// LoanAccount is created lazily at origination and exists only as a
// bookkeeping artifact; it never holds a balance.
type LoanAgreement struct {
	Amount          decimal.Decimal
	Borrower        *Customer
	Lender          *Customer
	BorrowerAccount *Account // the borrower's current account
	LenderAccount   *Account
	LoanAccount     *Account
	State           LoanState
}

// NewLoanAgreement constructs a Proposed agreement. Validation and
// origination are the loan engine's responsibility.
func NewLoanAgreement(amount decimal.Decimal, borrower, lender *Customer, borrowerAccount, lenderAccount *Account) *LoanAgreement {
	return &LoanAgreement{
		Amount:          amount,
		Borrower:        borrower,
		Lender:          lender,
		BorrowerAccount: borrowerAccount,
		LenderAccount:   lenderAccount,
		State:           LoanStateProposed,
	}
}

// RepaymentAmount is the principal plus interest owed at repayment
func (l *LoanAgreement) RepaymentAmount(rate decimal.Decimal) decimal.Decimal {
	return l.Amount.Mul(decimal.NewFromInt(1).Add(rate))
}
