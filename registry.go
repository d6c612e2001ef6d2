package atmgo

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Registry is the bank directory and the root of the persisted state. It
// owns every Bank and, transitively, every Account and Transaction. All
// access runs through the service's exclusive section, so the registry
// itself carries no locking.
type Registry struct {
	banks map[string]*Bank

	known          map[string]bool
	maxGenAttempts int
}

func NewRegistry(cfg Config) *Registry {
	known := make(map[string]bool, len(cfg.Banks))
	for _, b := range cfg.Banks {
		known[b] = true
	}
	return &Registry{
		banks:          make(map[string]*Bank),
		known:          known,
		maxGenAttempts: cfg.Accounts.MaxGenAttempts,
	}
}

// Bank returns the institution for the given identifier, instantiating it
// on first use. Identifiers outside the configured set fail with
// ErrUnknownBank.
func (r *Registry) Bank(name string) (*Bank, error) {
	if !r.known[name] {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBank, name)
	}
	bank, ok := r.banks[name]
	if !ok {
		bank = NewBank(name, r.maxGenAttempts)
		r.banks[name] = bank
	}
	return bank, nil
}

// ResolveBank derives the owning institution from the fixed-length prefix
// of an account number.
func (r *Registry) ResolveBank(number string) (*Bank, error) {
	if len(number) <= BankCodeLen {
		return nil, fmt.Errorf("%w: account number too short", ErrUnknownBank)
	}
	return r.Bank(number[:BankCodeLen])
}

// Transfer moves amount from sender to the account behind receiverNo. Every
// precondition is checked before anything mutates; on success both balance
// moves and both TRANSFER log entries apply as one step, so no partial
// transfer is ever observable.
func (r *Registry) Transfer(sender *Account, receiverNo string, amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if sender.Balance.LessThan(amount) {
		return ErrInsufficientFunds
	}
	bank, err := r.ResolveBank(receiverNo)
	if err != nil {
		return err
	}
	receiver, err := bank.Lookup(receiverNo)
	if err != nil {
		return err
	}

	sender.Balance = sender.Balance.Sub(amount)
	receiver.Balance = receiver.Balance.Add(amount)
	sender.Record(NewTransaction(TxnTransfer, amount, "To "+receiverNo))
	receiver.Record(NewTransaction(TxnTransfer, amount, "From "+sender.Number))
	return nil
}

// Snapshot exports the registry into the persistable form, deterministically
// ordered so saved files diff cleanly.
func (r *Registry) Snapshot() Snapshot {
	snap := Snapshot{
		Meta: Meta{Version: snapshotVersion, SavedAt: time.Now()},
	}
	names := make([]string, 0, len(r.banks))
	for name := range r.banks {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		bank := r.banks[name]
		pb := PersistBank{Name: name}
		nums := make([]string, 0, bank.size())
		for num := range bank.accounts {
			nums = append(nums, num)
		}
		sort.Strings(nums)
		for _, num := range nums {
			acct := bank.accounts[num]
			pb.Accounts = append(pb.Accounts, PersistAccount{
				Number:       acct.Number,
				Holder:       acct.Holder,
				PIN:          acct.PIN,
				Balance:      acct.Balance,
				Transactions: acct.History(),
			})
		}
		snap.Banks = append(snap.Banks, pb)
	}
	return snap
}

// Restore rebuilds the registry from a snapshot, replacing any current
// contents. Banks present in the snapshot but absent from the configured
// set are restored anyway; existing customers outlive config edits.
func (r *Registry) Restore(snap Snapshot) {
	r.banks = make(map[string]*Bank, len(snap.Banks))
	for _, pb := range snap.Banks {
		bank := NewBank(pb.Name, r.maxGenAttempts)
		for _, pa := range pb.Accounts {
			acct := &Account{
				Number:  pa.Number,
				Holder:  pa.Holder,
				PIN:     pa.PIN,
				Balance: pa.Balance,
			}
			acct.Transactions = append(acct.Transactions, pa.Transactions...)
			bank.accounts[acct.Number] = acct
		}
		r.banks[pb.Name] = bank
		r.known[pb.Name] = true
	}
}
