package command

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/coralbank/coralbank-backend/internal/domain"
	"github.com/coralbank/coralbank-backend/internal/usecase/credential"
	"github.com/coralbank/coralbank-backend/internal/usecase/ledger"
	"github.com/coralbank/coralbank-backend/internal/usecase/loan"
	"github.com/coralbank/coralbank-backend/internal/usecase/transfer"
)

const paramCountMessage = "The number of specified parameters in the command is incorrect.\n" +
	"Type INFO to see a list of all commands with their corresponding parameters.\n" +
	"FAIL"

const infoText = `
Welcome!
To navigate the application and complete actions you must enter a command into the terminal.
The commands consist of a command name followed by the parameters needed to complete the request:

SHOWMYACCOUNTS
Show all the accounts owned by you and the balance of each.

NEWACCOUNT <account type> <account name>
Open a new account. The account type is CURRENT or SAVINGS.

MOVE <amount> <fromAccountName> <toAccountName>
Move money between your own accounts. Example: MOVE 100 Main Savings

PAY <amount> <fromAccountIBAN> <toAccountIBAN>
Send money to another customer.

PRINTSTATEMENT <accountIBAN>
See all transactions on this account in the last 12 months.

LOAN <lenderAccountType> <username> <amount>
Loan another customer money from the account of the given type.

REPAY
Repay your active loan plus interest from your current account.

EXIT
Log out of your session.

What do you want to do?`

// Processor is the single serialization point for customer commands. One
// exclusive mutex guards every mutating access to the shared ledger,
// registry, limit tracker and loan state, so at most one command runs at a
// time system-wide. The background timers go through the exported hooks,
// which take the same lock.
type Processor struct {
	mu sync.Mutex

	ledger      *ledger.Service
	transfers   *transfer.Service
	loans       *loan.Service
	savingsRate decimal.Decimal
}

// NewProcessor wires the engines behind one lock
func NewProcessor(ledgerSvc *ledger.Service, transfers *transfer.Service, loans *loan.Service, savingsRate decimal.Decimal) *Processor {
	return &Processor{
		ledger:      ledgerSvc,
		transfers:   transfers,
		loans:       loans,
		savingsRate: savingsRate,
	}
}

// Process parses one command line and dispatches it. It always returns a
// response string: failures are encoded in the text with a terminal FAIL
// line, never as an error.
func (p *Processor) Process(id credential.Identity, line string) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	verb, args := splitCommand(line)

	customer, ok := p.ledger.Customer(id.Username)
	if !ok {
		return "There is no information about this customer in the bank's database.\nFAIL"
	}

	logrus.WithFields(logrus.Fields{"username": id.Username, "command": verb}).Debug("processing command")

	switch verb {
	case "INFO":
		return infoText
	case "SHOWMYACCOUNTS":
		return customer.AccountsSummary()
	case "NEWACCOUNT":
		if len(args) != 2 {
			return paramCountMessage
		}
		return p.newAccount(customer, args[0], args[1])
	case "MOVE":
		// extra parameters beyond the third are ignored
		if len(args) < 3 {
			return paramCountMessage
		}
		return p.move(customer, args[0], args[1], args[2])
	case "PAY":
		if len(args) != 3 {
			return paramCountMessage
		}
		return p.pay(customer, args[0], args[1], args[2])
	case "PRINTSTATEMENT":
		if len(args) != 1 {
			return paramCountMessage
		}
		return p.printStatement(customer, args[0])
	case "LOAN":
		if len(args) != 3 {
			return paramCountMessage
		}
		return p.processLoan(customer, args[0], args[1], args[2])
	case "REPAY":
		return p.repay()
	default:
		return "Your command " + verb + " is invalid.\n" +
			"Type INFO to see a list of all commands with their corresponding parameters.\n" +
			"FAIL"
	}
}

// ConfirmationMessage returns a pre-execution preview for commands that
// move money or create accounts. The session layer displays it and only
// calls Process after an explicit yes.
func (p *Processor) ConfirmationMessage(id credential.Identity, line string) (string, bool) {
	verb, args := splitCommand(line)
	switch verb {
	case "MOVE":
		if len(args) >= 3 {
			return fmt.Sprintf("You are attempting to move %s from %s to %s", args[0], args[1], args[2]), true
		}
	case "PAY":
		if len(args) == 3 {
			return fmt.Sprintf("You are attempting to send %s from %s to %s", args[0], args[1], args[2]), true
		}
	case "NEWACCOUNT":
		if len(args) == 2 {
			return fmt.Sprintf("You are attempting to create a new %s account called %s", args[0], args[1]), true
		}
	case "LOAN":
		if len(args) == 3 {
			return fmt.Sprintf("You are attempting to loan %s from your %s account to %s", args[2], args[0], args[1]), true
		}
	case "REPAY":
		return "You are attempting to repay your loan", true
	}
	return "", false
}

// ResetDailyLimits is the hook for the external midnight timer
func (p *Processor) ResetDailyLimits() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.transfers.Limits().ResetAll()
	logrus.Info("daily payment totals reset")
}

// AccrueInterest is the hook for the external interest timer
func (p *Processor) AccrueInterest() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ledger.AccrueInterest(p.savingsRate)
	logrus.Info("savings interest accrued")
}

func (p *Processor) newAccount(customer *domain.Customer, kindArg, name string) string {
	kind, err := domain.ParseAccountKind(kindArg)
	if err != nil || kind == domain.AccountKindLoan {
		return "Invalid account type! Account types are CURRENT and SAVINGS.\nFAIL"
	}

	p.ledger.OpenAccount(customer, kind, name, decimal.Zero)
	return fmt.Sprintf("New %s account named %s has been created.\nSUCCESS", kind, name)
}

func (p *Processor) move(customer *domain.Customer, amountText, fromName, toName string) string {
	amount, err := decimal.NewFromString(amountText)
	if err != nil || !amount.IsPositive() {
		return "Invalid amount input.\nFAIL"
	}

	from := customer.AccountByName(fromName)
	to := customer.AccountByName(toName)
	if from == nil || to == nil {
		return "Invalid account names.\nFAIL"
	}

	if _, err := p.transfers.Move(amount, from.IBAN, to.IBAN); err != nil {
		return fmt.Sprintf("Insufficient funds in the %s account. Its balance is %s.\nFAIL",
			fromName, from.Balance.String())
	}
	return "SUCCESS"
}

func (p *Processor) pay(customer *domain.Customer, amountText, fromIBAN, toIBAN string) string {
	_, err := p.transfers.Pay(customer, amountText, fromIBAN, toIBAN)
	switch {
	case err == nil:
		return "The payment was successful!\nSUCCESS"
	case errors.Is(err, domain.ErrInvalidAmount):
		return "Invalid amount input.\nFAIL"
	case errors.Is(err, domain.ErrAccountNotFound):
		return "No account found for the given IBAN.\nFAIL"
	case errors.Is(err, domain.ErrNotAccountOwner):
		return "Payment not initiated by the account owner.\nFAIL"
	case errors.Is(err, domain.ErrSelfPayment):
		return "Sender is the recipient.\nFAIL"
	case errors.Is(err, domain.ErrInsufficientFunds):
		from, _ := p.ledger.AccountByIBAN(fromIBAN)
		return fmt.Sprintf("Insufficient funds in this account to send %s.\n"+
			"The funds in the account %s (%s) are %s.\nFAIL",
			amountText, from.Name, fromIBAN, from.Balance.String())
	case errors.Is(err, domain.ErrDailyLimitExceeded):
		return "Transaction amount exceeds daily limit.\nFAIL"
	default:
		return "The payment could not be completed.\nFAIL"
	}
}

func (p *Processor) printStatement(customer *domain.Customer, iban string) string {
	account, ok := p.ledger.AccountByIBAN(iban)
	if !ok {
		return "Invalid IBAN.\nFAIL"
	}
	if account.Owner != customer {
		return fmt.Sprintf("Print statement request not initiated by the account owner (%s).\nFAIL",
			account.Owner.Username)
	}
	return account.Statement(time.Now())
}

func (p *Processor) processLoan(lender *domain.Customer, kindArg, borrowerUsername, amountText string) string {
	borrower, ok := p.ledger.Customer(borrowerUsername)
	if !ok {
		return "Borrower not found.\nFAIL"
	}

	kind, err := domain.ParseAccountKind(kindArg)
	if err != nil {
		return "Invalid account type! Account types are CURRENT and SAVINGS.\nFAIL"
	}
	lenderAccount := lender.AccountByKind(kind)
	if lenderAccount == nil {
		return fmt.Sprintf("You have no %s account to lend from.\nFAIL", kind)
	}

	borrowerAccount := borrower.AccountByKind(domain.AccountKindCurrent)
	if borrowerAccount == nil {
		return "Borrower's current account not found.\nFAIL"
	}

	amount, err := decimal.NewFromString(amountText)
	if err != nil {
		return "Invalid amount input.\nFAIL"
	}

	agreement := p.loans.Propose(amount, borrower, lender, borrowerAccount, lenderAccount)
	switch err := p.loans.ValidateOrigination(agreement); {
	case err == nil:
	case errors.Is(err, domain.ErrBorrowerHasActiveLoan):
		return "Borrower already has an active loan.\nFAIL"
	case errors.Is(err, domain.ErrNonPositiveLoanAmount):
		return "Please enter a valid loan amount.\nFAIL"
	case errors.Is(err, domain.ErrLoanAmountExceedsCap):
		return "The amount exceeds the maximum loan amount.\nFAIL"
	case errors.Is(err, domain.ErrLenderInsufficientFunds):
		return "Insufficient balance in lender's account.\nFAIL"
	default:
		return "The loan could not be completed.\nFAIL"
	}

	p.loans.Originate(agreement)
	return "SUCCESS"
}

func (p *Processor) repay() string {
	agreement := p.loans.Current()
	if agreement == nil {
		return "No active loan to repay.\nFAIL"
	}

	switch err := p.loans.ValidateRepayment(agreement); {
	case err == nil:
	case errors.Is(err, domain.ErrNoActiveLoanToRepay):
		return "No active loan to repay.\nFAIL"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "Repayment failed due to insufficient balance.\nFAIL"
	default:
		return "The repayment could not be completed.\nFAIL"
	}

	p.loans.Repay(agreement)
	return "SUCCESS"
}

// splitCommand separates the verb from its positional arguments.
// Arguments may not themselves contain the space delimiter.
func splitCommand(line string) (string, []string) {
	parts := strings.Split(strings.TrimSpace(line), " ")
	return parts[0], parts[1:]
}
