package atmgo_test

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"atmgo"
	"atmgo/mocks"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var loadFails = errors.New("no snapshot")

func newMockedService(t *testing.T) (*mocks.MockSnapshotStore, atmgo.Service) {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSnapshotStore(ctrl)
	store.EXPECT().Load().Return(atmgo.Snapshot{}, loadFails)
	log := zerolog.Nop()
	return store, atmgo.NewService(store, atmgo.DefaultConfig(), &log)
}

func TestServiceOpenAccount(t *testing.T) {
	t.Run("creates the account and saves the snapshot", func(tt *testing.T) {
		as := assert.New(tt)
		store, svc := newMockedService(tt)
		store.EXPECT().Save(gomock.Any()).Return(nil).Times(1)

		acct, err := svc.OpenAccount(atmgo.OpenAccountReq{Bank: "SBI", Holder: "Alice", PIN: 1234})
		as.Nil(err)
		as.Regexp(`^SBI[0-9]{8}$`, acct.Number)
		as.True(acct.Balance.IsZero())
	})

	t.Run("rejects an unknown institution without saving", func(tt *testing.T) {
		as := assert.New(tt)
		_, svc := newMockedService(tt)

		_, err := svc.OpenAccount(atmgo.OpenAccountReq{Bank: "XYZ", Holder: "Alice", PIN: 1234})
		as.ErrorIs(err, atmgo.ErrUnknownBank)
	})
}

func TestServiceDepositWithdraw(t *testing.T) {
	as := assert.New(t)
	reqrd := require.New(t)
	store, svc := newMockedService(t)
	store.EXPECT().Save(gomock.Any()).Return(nil).AnyTimes()

	acct, err := svc.OpenAccount(atmgo.OpenAccountReq{Bank: "SBI", Holder: "Alice", PIN: 1234})
	reqrd.Nil(err)

	bal, err := svc.Deposit(atmgo.ChargeReq{Number: acct.Number, Amount: decimal.NewFromInt(500)})
	as.Nil(err)
	as.Equal("500", bal.String())

	_, err = svc.Withdraw(atmgo.ChargeReq{Number: acct.Number, Amount: decimal.NewFromInt(600)})
	as.ErrorIs(err, atmgo.ErrInsufficientFunds)

	bal, err = svc.Balance(acct.Number)
	as.Nil(err)
	as.Equal("500", bal.String())

	bal, err = svc.Withdraw(atmgo.ChargeReq{Number: acct.Number, Amount: decimal.NewFromInt(120)})
	as.Nil(err)
	as.Equal("380", bal.String())

	txns, err := svc.History(acct.Number)
	as.Nil(err)
	as.Len(txns, 2)
}

func TestServiceSaveFailureKeepsMutation(t *testing.T) {
	as := assert.New(t)
	reqrd := require.New(t)
	store, svc := newMockedService(t)

	store.EXPECT().Save(gomock.Any()).Return(nil).Times(1)
	acct, err := svc.OpenAccount(atmgo.OpenAccountReq{Bank: "SBI", Holder: "Alice", PIN: 1234})
	reqrd.Nil(err)

	store.EXPECT().Save(gomock.Any()).Return(errors.New("disk gone")).Times(1)
	bal, err := svc.Deposit(atmgo.ChargeReq{Number: acct.Number, Amount: decimal.NewFromInt(500)})
	as.ErrorIs(err, atmgo.ErrPersistenceUnavailable)
	as.Equal("500", bal.String())

	// the in-memory mutation stands despite the failed save
	bal, err = svc.Balance(acct.Number)
	as.Nil(err)
	as.Equal("500", bal.String())
}

func TestServiceAuthenticate(t *testing.T) {
	as := assert.New(t)
	reqrd := require.New(t)
	store, svc := newMockedService(t)
	store.EXPECT().Save(gomock.Any()).Return(nil).AnyTimes()

	acct, err := svc.OpenAccount(atmgo.OpenAccountReq{Bank: "SBI", Holder: "Alice", PIN: 1234})
	reqrd.Nil(err)

	got, err := svc.Authenticate(atmgo.AuthReq{Number: acct.Number, PIN: 1234})
	as.Nil(err)
	as.Equal(acct.Number, got.Number)

	// returned account is detached; mutating it must not affect the core
	got.Balance = decimal.NewFromInt(1000000)
	bal, err := svc.Balance(acct.Number)
	as.Nil(err)
	as.True(bal.IsZero())

	_, errPin := svc.Authenticate(atmgo.AuthReq{Number: acct.Number, PIN: 4321})
	_, errNum := svc.Authenticate(atmgo.AuthReq{Number: "SBI00000000", PIN: 1234})
	as.ErrorIs(errPin, atmgo.ErrAuthenticationFailed)
	as.ErrorIs(errNum, atmgo.ErrAuthenticationFailed)
	as.Equal(errPin, errNum)
}

func TestServiceTransfer(t *testing.T) {
	as := assert.New(t)
	reqrd := require.New(t)
	store, svc := newMockedService(t)
	store.EXPECT().Save(gomock.Any()).Return(nil).AnyTimes()

	alice, err := svc.OpenAccount(atmgo.OpenAccountReq{Bank: "SBI", Holder: "Alice", PIN: 1234})
	reqrd.Nil(err)
	bob, err := svc.OpenAccount(atmgo.OpenAccountReq{Bank: "SBI", Holder: "Bob", PIN: 5678})
	reqrd.Nil(err)
	_, err = svc.Deposit(atmgo.ChargeReq{Number: alice.Number, Amount: decimal.NewFromInt(500)})
	reqrd.Nil(err)

	bal, err := svc.Transfer(atmgo.TransferReq{From: alice.Number, To: bob.Number, Amount: decimal.NewFromInt(200)})
	as.Nil(err)
	as.Equal("300", bal.String())

	bobBal, err := svc.Balance(bob.Number)
	as.Nil(err)
	as.Equal("200", bobBal.String())

	bobTxns, err := svc.History(bob.Number)
	as.Nil(err)
	reqrd.Len(bobTxns, 1)
	as.Equal("From "+alice.Number, bobTxns[0].Detail)
}

func TestServicePersistsAcrossRestarts(t *testing.T) {
	as := assert.New(t)
	reqrd := require.New(t)
	path := filepath.Join(t.TempDir(), "atm_data.json")
	log := zerolog.Nop()
	cfg := atmgo.DefaultConfig()
	cfg.Snapshot.Path = path

	svc := atmgo.NewService(atmgo.NewFileStore(path), cfg, &log)
	acct, err := svc.OpenAccount(atmgo.OpenAccountReq{Bank: "BOB", Holder: "Carol", PIN: 2468})
	reqrd.Nil(err)
	_, err = svc.Deposit(atmgo.ChargeReq{Number: acct.Number, Amount: decimal.RequireFromString("12.34")})
	reqrd.Nil(err)

	// second process lifetime over the same file
	svc2 := atmgo.NewService(atmgo.NewFileStore(path), cfg, &log)
	got, err := svc2.Authenticate(atmgo.AuthReq{Number: acct.Number, PIN: 2468})
	reqrd.Nil(err)
	as.Equal("Carol", got.Holder)
	as.Equal("12.34", got.Balance.String())
	reqrd.Len(got.Transactions, 1)
	as.Equal(atmgo.TxnDeposit, got.Transactions[0].Kind)
}

func TestServiceStatement(t *testing.T) {
	as := assert.New(t)
	reqrd := require.New(t)
	store, svc := newMockedService(t)
	store.EXPECT().Save(gomock.Any()).Return(nil).AnyTimes()

	acct, err := svc.OpenAccount(atmgo.OpenAccountReq{Bank: "SBI", Holder: "Alice", PIN: 1234})
	reqrd.Nil(err)
	_, err = svc.Deposit(atmgo.ChargeReq{Number: acct.Number, Amount: decimal.NewFromInt(500)})
	reqrd.Nil(err)

	var buf bytes.Buffer
	reqrd.Nil(svc.Statement(&buf, atmgo.StatementReq{Number: acct.Number}))
	as.True(bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")), "statement must be a PDF document")
	as.Greater(buf.Len(), 500)

	_, err = svc.Balance("SBI00000000")
	as.ErrorIs(err, atmgo.ErrAccountNotFound)
}
