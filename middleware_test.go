package atmgo_test

import (
	"testing"

	"atmgo"
	"atmgo/mocks"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestValidationMiddleware(t *testing.T) {
	t.Run("short-circuits malformed account numbers", func(tt *testing.T) {
		as := assert.New(tt)
		ctrl := gomock.NewController(tt)
		next := mocks.NewMockService(ctrl)
		svc := atmgo.NewValidationMiddleware()(next)

		// no EXPECT set: reaching the inner service would fail the test
		for _, num := range []string{"", "SBI123", "sbi12345678", "SBI1234567X", "SBI123456789"} {
			_, err := svc.Authenticate(atmgo.AuthReq{Number: num, PIN: 1234})
			as.ErrorIs(err, atmgo.ErrAuthenticationFailed, "number %q", num)

			_, err = svc.Balance(num)
			as.ErrorIs(err, atmgo.ErrAccountNotFound, "number %q", num)

			_, err = svc.History(num)
			as.ErrorIs(err, atmgo.ErrAccountNotFound, "number %q", num)

			_, err = svc.Transfer(atmgo.TransferReq{From: "SBI12345678", To: num, Amount: decimal.NewFromInt(1)})
			as.ErrorIs(err, atmgo.ErrUnknownBank, "number %q", num)
		}
	})

	t.Run("short-circuits non-positive amounts", func(tt *testing.T) {
		as := assert.New(tt)
		ctrl := gomock.NewController(tt)
		next := mocks.NewMockService(ctrl)
		svc := atmgo.NewValidationMiddleware()(next)

		_, err := svc.Deposit(atmgo.ChargeReq{Number: "SBI12345678", Amount: decimal.Zero})
		as.ErrorIs(err, atmgo.ErrInvalidAmount)
		_, err = svc.Withdraw(atmgo.ChargeReq{Number: "SBI12345678", Amount: decimal.NewFromInt(-7)})
		as.ErrorIs(err, atmgo.ErrInvalidAmount)
		_, err = svc.Transfer(atmgo.TransferReq{From: "SBI12345678", To: "SBI87654321", Amount: decimal.Zero})
		as.ErrorIs(err, atmgo.ErrInvalidAmount)
	})

	t.Run("passes well-formed requests through", func(tt *testing.T) {
		as := assert.New(tt)
		ctrl := gomock.NewController(tt)
		next := mocks.NewMockService(ctrl)
		svc := atmgo.NewValidationMiddleware()(next)

		amt := decimal.NewFromInt(100)
		next.EXPECT().
			Transfer(atmgo.TransferReq{From: "SBI12345678", To: "BOB87654321", Amount: amt}).
			Return(decimal.NewFromInt(400), nil).
			Times(1)

		bal, err := svc.Transfer(atmgo.TransferReq{From: "SBI12345678", To: "BOB87654321", Amount: amt})
		as.Nil(err)
		as.Equal("400", bal.String())
	})
}

func TestLoggingMiddleware(t *testing.T) {
	as := assert.New(t)
	ctrl := gomock.NewController(t)
	next := mocks.NewMockService(ctrl)
	nooplog := zerolog.Nop()
	svc := atmgo.NewLoggingMiddleware(&nooplog)(next)

	next.EXPECT().
		Deposit(gomock.AssignableToTypeOf(atmgo.ChargeReq{})).
		Return(decimal.NewFromInt(500), nil).
		Times(1)

	bal, err := svc.Deposit(atmgo.ChargeReq{Number: "SBI12345678", Amount: decimal.NewFromInt(500)})
	as.Nil(err)
	as.Equal("500", bal.String())
}
