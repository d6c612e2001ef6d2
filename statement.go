package atmgo

import (
	"io"
	"time"

	"github.com/go-pdf/fpdf"
)

// writeStatementPDF renders an account's full transaction history as a
// one-column-per-field PDF table with a closing balance line.
func writeStatementPDF(w io.Writer, bankName string, acct *Account) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Account Statement", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, bankName+" Account Statement", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Account Number: "+acct.Number, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Account Holder: "+acct.Holder, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Generated: "+time.Now().Format(time.RFC1123), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(50, 7, "Date", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, "Type", "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 7, "Amount", "1", 0, "R", false, 0, "")
	pdf.CellFormat(75, 7, "Detail", "1", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	if len(acct.Transactions) == 0 {
		pdf.CellFormat(190, 7, "No transactions yet.", "1", 1, "C", false, 0, "")
	}
	for _, t := range acct.Transactions {
		pdf.CellFormat(50, 7, t.Time.Format("2006-01-02 15:04:05"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, string(t.Kind), "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 7, t.Amount.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(75, 7, t.Detail, "1", 1, "L", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, "Available Balance: "+acct.Balance.StringFixed(2), "", 1, "R", false, 0, "")

	return pdf.Output(w)
}
