package atmgo_test

import (
	"bytes"
	"testing"
	"time"

	"atmgo"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestWriteSlip(t *testing.T) {
	as := assert.New(t)
	var buf bytes.Buffer

	err := atmgo.WriteSlip(&buf, atmgo.Slip{
		Bank:    "SBI",
		Number:  "SBI12345678",
		Holder:  "Alice",
		Kind:    atmgo.TxnWithdraw,
		Amount:  decimal.NewFromInt(120),
		Balance: decimal.RequireFromString("380.50"),
		Time:    time.Date(2026, 8, 30, 10, 30, 0, 0, time.UTC),
	})
	as.Nil(err)

	out := buf.String()
	as.Contains(out, "ATM RECEIPT")
	as.Contains(out, "Bank Name      : SBI")
	as.Contains(out, "Account Number : SBI12345678")
	as.Contains(out, "Account Holder : Alice")
	as.Contains(out, "Transaction    : WITHDRAW")
	as.Contains(out, "Amount         : 120.00")
	as.Contains(out, "Available Bal  : 380.50")
	as.Contains(out, "THANK YOU FOR BANKING")
}
