package atmgo

import (
	"github.com/shopspring/decimal"
)

// Account holds a balance, its owner's identity and credential, and the
// append-only log of every event that moved the balance. The balance always
// equals the signed sum of the log: deposits and transfers-in add, withdrawals
// and transfers-out subtract.
type Account struct {
	Number  string          `json:"number"`
	Holder  string          `json:"holder"`
	PIN     int             `json:"pin"`
	Balance decimal.Decimal `json:"balance"`

	Transactions []Transaction `json:"transactions"`
}

func NewAccount(number, holder string, pin int) *Account {
	return &Account{
		Number:  number,
		Holder:  holder,
		PIN:     pin,
		Balance: decimal.Zero,
	}
}

// Deposit credits the account and logs a DEPOSIT entry. A non-positive
// amount is rejected outright; balance and log stay untouched.
func (a *Account) Deposit(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	a.Balance = a.Balance.Add(amount)
	a.Transactions = append(a.Transactions, NewTransaction(TxnDeposit, amount, "Self Deposit"))
	return nil
}

// Withdraw debits the account and logs a WITHDRAW entry. It never applies
// partially: on any rejection, balance and log stay untouched.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if a.Balance.LessThan(amount) {
		return ErrInsufficientFunds
	}
	a.Balance = a.Balance.Sub(amount)
	a.Transactions = append(a.Transactions, NewTransaction(TxnWithdraw, amount, "Self Withdraw"))
	return nil
}

// Record appends a pre-built entry without touching the balance. Transfer
// orchestration uses it to log the counterparty-visible side after applying
// the balance moves itself.
func (a *Account) Record(t Transaction) {
	a.Transactions = append(a.Transactions, t)
}

// History returns the full transaction log in append order. The slice is a
// copy; an empty log is a normal state, not an error.
func (a *Account) History() []Transaction {
	out := make([]Transaction, len(a.Transactions))
	copy(out, a.Transactions)
	return out
}

// snapshot returns a detached copy safe to hand outside the exclusive
// section without exposing internal state to mutation.
func (a *Account) snapshot() *Account {
	cp := *a
	cp.Transactions = a.History()
	return &cp
}
