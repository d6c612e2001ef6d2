package atmgo

import (
	"fmt"
	"math/rand"
)

// BankCodeLen is the fixed length of the alphabetic institution code that
// prefixes every account number. The prefix doubles as the routing key: the
// shell and the registry both derive the owning bank from it.
const BankCodeLen = 3

const (
	acctSuffixMin  = 10000000
	acctSuffixSpan = 90000000
)

// Bank is one institution: a name and the accounts it holds, keyed by
// account number. Every key equals the Number field of its value.
type Bank struct {
	Name string

	maxGenAttempts int
	accounts       map[string]*Account
}

func NewBank(name string, maxGenAttempts int) *Bank {
	return &Bank{
		Name:           name,
		maxGenAttempts: maxGenAttempts,
		accounts:       make(map[string]*Account),
	}
}

// OpenAccount creates an account with zero balance and an empty log under a
// freshly generated number. Generation retries on collision; the retry loop
// is bounded so a misbehaving random source cannot spin forever.
func (b *Bank) OpenAccount(holder string, pin int) (*Account, error) {
	num, err := b.newAccountNumber()
	if err != nil {
		return nil, err
	}
	acct := NewAccount(num, holder, pin)
	b.accounts[num] = acct
	return acct, nil
}

func (b *Bank) newAccountNumber() (string, error) {
	for i := 0; i < b.maxGenAttempts; i++ {
		num := b.Name + fmt.Sprintf("%d", acctSuffixMin+rand.Intn(acctSuffixSpan))
		if _, taken := b.accounts[num]; !taken {
			return num, nil
		}
	}
	return "", fmt.Errorf("%w after %d attempts", ErrAccountNumGen, b.maxGenAttempts)
}

// Authenticate returns the account only when it exists and its PIN matches.
// A missing account and a wrong PIN fail identically, so account numbers
// cannot be enumerated through the login prompt.
func (b *Bank) Authenticate(number string, pin int) (*Account, error) {
	acct, ok := b.accounts[number]
	if !ok || acct.PIN != pin {
		return nil, ErrAuthenticationFailed
	}
	return acct, nil
}

// Lookup retrieves an account with no credential check. It exists for
// resolving transfer receivers; callers must not leak the result's balance
// or PIN to the initiating party.
func (b *Bank) Lookup(number string) (*Account, error) {
	acct, ok := b.accounts[number]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return acct, nil
}

func (b *Bank) size() int {
	return len(b.accounts)
}
