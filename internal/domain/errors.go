package domain

import "errors"

// Validation failures detected by the engines. Each is handled at the
// command boundary and rendered as FAIL text; none propagate past it.
var (
	ErrInvalidAccountType      = errors.New("invalid account type")
	ErrAccountNotFound         = errors.New("account not found")
	ErrCustomerNotFound        = errors.New("customer not found")
	ErrInvalidAmount           = errors.New("invalid amount")
	ErrInsufficientFunds       = errors.New("insufficient funds")
	ErrDailyLimitExceeded      = errors.New("transaction amount exceeds daily limit")
	ErrNotAccountOwner         = errors.New("not initiated by the account owner")
	ErrSelfPayment             = errors.New("sender is the recipient")
	ErrDuplicateUsername       = errors.New("username already exists")
	ErrWeakPassword            = errors.New("password does not meet the complexity requirements")
	ErrBorrowerHasActiveLoan   = errors.New("borrower already has an active loan")
	ErrNonPositiveLoanAmount   = errors.New("loan amount must be positive")
	ErrLoanAmountExceedsCap    = errors.New("loan amount exceeds the lending cap")
	ErrLenderInsufficientFunds = errors.New("insufficient balance in lender's accounts")
	ErrNoActiveLoanToRepay     = errors.New("no active loan to repay")
)
