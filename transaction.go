package atmgo

import (
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// TxnKind discriminates the balance-affecting events an account records.
type TxnKind string

const (
	TxnDeposit  TxnKind = "DEPOSIT"
	TxnWithdraw TxnKind = "WITHDRAW"
	TxnTransfer TxnKind = "TRANSFER"
)

// Transaction is one immutable log entry. Once appended to an account it is
// never shared with, nor mutated by, anything else.
type Transaction struct {
	ID     snowflake.ID    `json:"id"`
	Kind   TxnKind         `json:"kind"`
	Amount decimal.Decimal `json:"amount"`
	Detail string          `json:"detail"`
	Time   time.Time       `json:"time"`
}

func NewTransaction(kind TxnKind, amount decimal.Decimal, detail string) Transaction {
	return Transaction{
		ID:     newTxnID(),
		Kind:   kind,
		Amount: amount,
		Detail: detail,
		Time:   time.Now(),
	}
}

func (t Transaction) String() string {
	return fmt.Sprintf("%s | %s | %s | %s",
		t.Time.Format(time.RFC3339), t.Kind, t.Amount.String(), t.Detail)
}

var (
	txnNodeOnce sync.Once
	txnNode     *snowflake.Node
)

func newTxnID() snowflake.ID {
	txnNodeOnce.Do(func() {
		n, err := snowflake.NewNode(1)
		if err != nil {
			panic(err)
		}
		txnNode = n
	})
	return txnNode.Generate()
}
