package atmgo

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type Middleware func(Service) Service

// validationMiddleware rejects malformed input before it reaches the core:
// non-positive amounts and account numbers that do not follow the
// fixed-length code + digits convention. The core re-checks amounts; the
// middleware exists so the shell gets uniform errors without the core ever
// parsing junk.
type validationMiddleware struct {
	next Service
}

var (
	_ Service = (*validationMiddleware)(nil)
)

func NewValidationMiddleware() Middleware {
	return func(next Service) Service {
		return &validationMiddleware{next: next}
	}
}

// validAccountNumber reports whether number is a BankCodeLen uppercase
// alphabetic code followed by exactly eight decimal digits.
func validAccountNumber(number string) bool {
	if len(number) != BankCodeLen+8 {
		return false
	}
	for _, c := range number[:BankCodeLen] {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	for _, c := range number[BankCodeLen:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func (v *validationMiddleware) OpenAccount(req OpenAccountReq) (*Account, error) {
	return v.next.OpenAccount(req)
}

func (v *validationMiddleware) Authenticate(req AuthReq) (*Account, error) {
	if !validAccountNumber(req.Number) {
		return nil, ErrAuthenticationFailed
	}
	return v.next.Authenticate(req)
}

func (v *validationMiddleware) Balance(number string) (decimal.Decimal, error) {
	if !validAccountNumber(number) {
		return decimal.Zero, ErrAccountNotFound
	}
	return v.next.Balance(number)
}

func (v *validationMiddleware) Deposit(req ChargeReq) (decimal.Decimal, error) {
	if req.Amount.Sign() <= 0 {
		return decimal.Zero, ErrInvalidAmount
	}
	return v.next.Deposit(req)
}

func (v *validationMiddleware) Withdraw(req ChargeReq) (decimal.Decimal, error) {
	if req.Amount.Sign() <= 0 {
		return decimal.Zero, ErrInvalidAmount
	}
	return v.next.Withdraw(req)
}

func (v *validationMiddleware) Transfer(req TransferReq) (decimal.Decimal, error) {
	if req.Amount.Sign() <= 0 {
		return decimal.Zero, ErrInvalidAmount
	}
	if !validAccountNumber(req.To) {
		return decimal.Zero, ErrUnknownBank
	}
	return v.next.Transfer(req)
}

func (v *validationMiddleware) History(number string) ([]Transaction, error) {
	if !validAccountNumber(number) {
		return nil, ErrAccountNotFound
	}
	return v.next.History(number)
}

func (v *validationMiddleware) Statement(w io.Writer, req StatementReq) error {
	if !validAccountNumber(req.Number) {
		return ErrAccountNotFound
	}
	return v.next.Statement(w, req)
}

func (v *validationMiddleware) Sync() error {
	return v.next.Sync()
}

// loggingMiddleware records every operation and its outcome. Failures log
// at debug level: domain rejections are normal traffic here, not incidents.
type loggingMiddleware struct {
	next Service
	log  *zerolog.Logger
}

var (
	_ Service = (*loggingMiddleware)(nil)
)

func NewLoggingMiddleware(log *zerolog.Logger) Middleware {
	return func(next Service) Service {
		return &loggingMiddleware{next: next, log: log}
	}
}

func (l *loggingMiddleware) OpenAccount(req OpenAccountReq) (*Account, error) {
	acct, err := l.next.OpenAccount(req)
	evt := l.log.Debug().Str("op", "open_account").Str("bank", req.Bank)
	if err != nil {
		evt.Err(err).Msg("rejected")
		return acct, err
	}
	evt.Str("account", acct.Number).Msg("ok")
	return acct, err
}

func (l *loggingMiddleware) Authenticate(req AuthReq) (*Account, error) {
	acct, err := l.next.Authenticate(req)
	l.log.Debug().Str("op", "authenticate").Str("account", req.Number).Err(err).Msg("done")
	return acct, err
}

func (l *loggingMiddleware) Balance(number string) (decimal.Decimal, error) {
	bal, err := l.next.Balance(number)
	l.log.Debug().Str("op", "balance").Str("account", number).Err(err).Msg("done")
	return bal, err
}

func (l *loggingMiddleware) Deposit(req ChargeReq) (decimal.Decimal, error) {
	bal, err := l.next.Deposit(req)
	l.log.Debug().Str("op", "deposit").Str("account", req.Number).
		Str("amount", req.Amount.String()).Err(err).Msg("done")
	return bal, err
}

func (l *loggingMiddleware) Withdraw(req ChargeReq) (decimal.Decimal, error) {
	bal, err := l.next.Withdraw(req)
	l.log.Debug().Str("op", "withdraw").Str("account", req.Number).
		Str("amount", req.Amount.String()).Err(err).Msg("done")
	return bal, err
}

func (l *loggingMiddleware) Transfer(req TransferReq) (decimal.Decimal, error) {
	bal, err := l.next.Transfer(req)
	l.log.Debug().Str("op", "transfer").Str("from", req.From).Str("to", req.To).
		Str("amount", req.Amount.String()).Err(err).Msg("done")
	return bal, err
}

func (l *loggingMiddleware) History(number string) ([]Transaction, error) {
	txns, err := l.next.History(number)
	l.log.Debug().Str("op", "history").Str("account", number).Err(err).Msg("done")
	return txns, err
}

func (l *loggingMiddleware) Statement(w io.Writer, req StatementReq) error {
	err := l.next.Statement(w, req)
	l.log.Debug().Str("op", "statement").Str("account", req.Number).Err(err).Msg("done")
	return err
}

func (l *loggingMiddleware) Sync() error {
	return l.next.Sync()
}
