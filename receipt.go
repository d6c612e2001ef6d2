package atmgo

import (
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

// Slip carries everything printed on the paper receipt after a successful
// deposit, withdrawal, or transfer.
type Slip struct {
	Bank    string
	Number  string
	Holder  string
	Kind    TxnKind
	Amount  decimal.Decimal
	Balance decimal.Decimal
	Time    time.Time
}

const slipRule = "================================="

// WriteSlip renders the receipt in the classic fixed-width ATM layout.
func WriteSlip(w io.Writer, s Slip) error {
	_, err := fmt.Fprintf(w, `
%[1]s
           ATM RECEIPT
%[1]s
Bank Name      : %s
Account Number : %s
Account Holder : %s
---------------------------------
Transaction    : %s
Amount         : %s
Available Bal  : %s
Date & Time    : %s
---------------------------------
     THANK YOU FOR BANKING
%[1]s

`, slipRule, s.Bank, s.Number, s.Holder, s.Kind,
		s.Amount.StringFixed(2), s.Balance.StringFixed(2),
		s.Time.Format(time.RFC1123))
	return err
}
