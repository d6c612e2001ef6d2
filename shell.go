package atmgo

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Shell is the interactive menu surface. It owns input parsing, menu flow,
// and receipt printing; every state change goes through the Service.
type Shell struct {
	svc   Service
	banks []string
	in    *bufio.Scanner
	out   io.Writer
	log   *zerolog.Logger
}

func NewShell(svc Service, banks []string, in io.Reader, out io.Writer, log *zerolog.Logger) *Shell {
	return &Shell{
		svc:   svc,
		banks: banks,
		in:    bufio.NewScanner(in),
		out:   out,
		log:   log,
	}
}

// Run drives the top-level menu until the user exits or input runs out.
// The snapshot is synced once more on the way out.
func (sh *Shell) Run() {
	for {
		fmt.Fprintln(sh.out, "\n===== MULTI BANK ATM SYSTEM =====")
		fmt.Fprintln(sh.out, "1. Open Account")
		fmt.Fprintln(sh.out, "2. Login")
		fmt.Fprintln(sh.out, "3. Exit")

		choice, ok := sh.readInt("Choice: ")
		if !ok {
			choice = 3
		}
		switch choice {
		case 1:
			sh.openAccount()
		case 2:
			sh.login()
		case 3:
			if err := sh.svc.Sync(); err != nil {
				fmt.Fprintln(sh.out, "Warning: could not save data!")
			}
			fmt.Fprintln(sh.out, "Thank You!")
			return
		default:
			fmt.Fprintln(sh.out, "Invalid Choice")
		}
	}
}

func (sh *Shell) openAccount() {
	fmt.Fprint(sh.out, "Select Bank:")
	for i, b := range sh.banks {
		fmt.Fprintf(sh.out, " %d.%s", i+1, b)
	}
	fmt.Fprintln(sh.out)

	choice, ok := sh.readInt("Choice: ")
	if !ok || choice < 1 || choice > len(sh.banks) {
		fmt.Fprintln(sh.out, "Invalid Bank Choice!")
		return
	}
	bank := sh.banks[choice-1]

	name, ok := sh.readLine("Enter Name: ")
	if !ok {
		return
	}
	pin, ok := sh.readInt("Set 4-digit PIN: ")
	if !ok {
		return
	}

	acct, err := sh.svc.OpenAccount(OpenAccountReq{Bank: bank, Holder: name, PIN: pin})
	if err != nil && !errors.Is(err, ErrPersistenceUnavailable) {
		fmt.Fprintln(sh.out, "Could not open account:", err)
		return
	}
	sh.warnUnsaved(err)
	fmt.Fprintln(sh.out, "Account Created Successfully!")
	fmt.Fprintln(sh.out, "Account Number:", acct.Number)
}

func (sh *Shell) login() {
	number, ok := sh.readLine("Enter Account Number: ")
	if !ok {
		return
	}
	pin, ok := sh.readInt("Enter PIN: ")
	if !ok {
		return
	}

	acct, err := sh.svc.Authenticate(AuthReq{Number: number, PIN: pin})
	if err != nil {
		if errors.Is(err, ErrUnknownBank) {
			fmt.Fprintln(sh.out, "Invalid Bank!")
		} else {
			fmt.Fprintln(sh.out, "Authentication Failed!")
		}
		return
	}
	sh.session(acct)
}

func (sh *Shell) session(acct *Account) {
	session := uuid.NewString()
	sh.log.Info().Str("session", session).Str("account", acct.Number).Msg("session start")
	defer sh.log.Info().Str("session", session).Msg("session end")

	bank := acct.Number[:BankCodeLen]
	for {
		fmt.Fprintln(sh.out, "\n--- ATM MENU ---")
		fmt.Fprintln(sh.out, "1. Check Balance")
		fmt.Fprintln(sh.out, "2. Deposit")
		fmt.Fprintln(sh.out, "3. Withdraw")
		fmt.Fprintln(sh.out, "4. Transfer")
		fmt.Fprintln(sh.out, "5. Transaction History")
		fmt.Fprintln(sh.out, "6. Export Statement")
		fmt.Fprintln(sh.out, "7. Logout")

		choice, ok := sh.readInt("Choice: ")
		if !ok {
			choice = 7
		}
		switch choice {
		case 1:
			bal, err := sh.svc.Balance(acct.Number)
			if err != nil {
				fmt.Fprintln(sh.out, "Could not read balance:", err)
				break
			}
			fmt.Fprintln(sh.out, "Balance:", bal.StringFixed(2))

		case 2:
			amt, ok := sh.readDecimal("Enter Amount: ")
			if !ok {
				break
			}
			bal, err := sh.svc.Deposit(ChargeReq{Number: acct.Number, Amount: amt})
			if err != nil && !errors.Is(err, ErrPersistenceUnavailable) {
				fmt.Fprintln(sh.out, "Amount must be positive!")
				break
			}
			sh.warnUnsaved(err)
			fmt.Fprintln(sh.out, "Deposited Successfully!")
			sh.printSlip(bank, acct, TxnDeposit, amt, bal)

		case 3:
			amt, ok := sh.readDecimal("Enter Amount: ")
			if !ok {
				break
			}
			bal, err := sh.svc.Withdraw(ChargeReq{Number: acct.Number, Amount: amt})
			if err != nil && !errors.Is(err, ErrPersistenceUnavailable) {
				fmt.Fprintln(sh.out, "Insufficient Balance or Invalid Amount!")
				break
			}
			sh.warnUnsaved(err)
			fmt.Fprintln(sh.out, "Withdraw Successful!")
			sh.printSlip(bank, acct, TxnWithdraw, amt, bal)

		case 4:
			to, ok := sh.readLine("Enter Receiver Acc No: ")
			if !ok {
				break
			}
			amt, ok := sh.readDecimal("Enter Amount: ")
			if !ok {
				break
			}
			bal, err := sh.svc.Transfer(TransferReq{From: acct.Number, To: to, Amount: amt})
			switch {
			case err == nil || errors.Is(err, ErrPersistenceUnavailable):
				sh.warnUnsaved(err)
				fmt.Fprintln(sh.out, "Transfer Successful!")
				sh.printSlip(bank, acct, TxnTransfer, amt, bal)
			case errors.Is(err, ErrUnknownBank):
				fmt.Fprintln(sh.out, "Invalid Receiver Bank!")
			case errors.Is(err, ErrAccountNotFound):
				fmt.Fprintln(sh.out, "Receiver Not Found!")
			default:
				fmt.Fprintln(sh.out, "Insufficient Balance or Invalid Amount!")
			}

		case 5:
			txns, err := sh.svc.History(acct.Number)
			if err != nil {
				fmt.Fprintln(sh.out, "Could not read history:", err)
				break
			}
			if len(txns) == 0 {
				fmt.Fprintln(sh.out, "No Transactions Yet.")
				break
			}
			for _, t := range txns {
				fmt.Fprintln(sh.out, t)
			}

		case 6:
			path := acct.Number + "_statement.pdf"
			f, err := os.Create(path)
			if err != nil {
				fmt.Fprintln(sh.out, "Could not create statement file:", err)
				break
			}
			err = sh.svc.Statement(f, StatementReq{Number: acct.Number})
			f.Close()
			if err != nil {
				fmt.Fprintln(sh.out, "Could not export statement:", err)
				break
			}
			fmt.Fprintln(sh.out, "Statement saved to", path)

		case 7:
			if err := sh.svc.Sync(); err != nil {
				fmt.Fprintln(sh.out, "Warning: could not save data!")
			}
			return

		default:
			fmt.Fprintln(sh.out, "Invalid Choice")
		}
	}
}

func (sh *Shell) printSlip(bank string, acct *Account, kind TxnKind, amount, balance decimal.Decimal) {
	slip := Slip{
		Bank:    bank,
		Number:  acct.Number,
		Holder:  acct.Holder,
		Kind:    kind,
		Amount:  amount,
		Balance: balance,
		Time:    time.Now(),
	}
	if err := WriteSlip(sh.out, slip); err != nil {
		sh.log.Err(err).Msg("receipt print failed")
	}
}

func (sh *Shell) warnUnsaved(err error) {
	if errors.Is(err, ErrPersistenceUnavailable) {
		fmt.Fprintln(sh.out, "Warning: could not save data!")
	}
}

// readLine prompts until a non-empty line arrives. ok is false when input
// is exhausted.
func (sh *Shell) readLine(prompt string) (string, bool) {
	for {
		fmt.Fprint(sh.out, prompt)
		if !sh.in.Scan() {
			return "", false
		}
		line := strings.TrimSpace(sh.in.Text())
		if line != "" {
			return line, true
		}
	}
}

func (sh *Shell) readInt(prompt string) (int, bool) {
	for {
		line, ok := sh.readLine(prompt)
		if !ok {
			return 0, false
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(sh.out, "Invalid Input! Try again.")
			continue
		}
		return n, true
	}
}

func (sh *Shell) readDecimal(prompt string) (decimal.Decimal, bool) {
	for {
		line, ok := sh.readLine(prompt)
		if !ok {
			return decimal.Zero, false
		}
		d, err := decimal.NewFromString(line)
		if err != nil {
			fmt.Fprintln(sh.out, "Invalid Amount! Try again.")
			continue
		}
		return d, true
	}
}
