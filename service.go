package atmgo

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type OpenAccountReq struct {
	Bank   string
	Holder string
	PIN    int
}

type AuthReq struct {
	Number string
	PIN    int
}

type ChargeReq struct {
	Number string
	Amount decimal.Decimal
}

type TransferReq struct {
	From   string
	To     string
	Amount decimal.Decimal
}

type StatementReq struct {
	Number string
}

//go:generate mockgen -source=service.go -destination=mocks/service.go -package=mocks

// Service is the single entry point the shell talks to. Mutating operations
// persist the whole snapshot before returning; Sync persists on demand for
// logout and graceful shutdown.
type Service interface {
	OpenAccount(OpenAccountReq) (*Account, error)
	Authenticate(AuthReq) (*Account, error)
	Balance(number string) (decimal.Decimal, error)
	Deposit(ChargeReq) (decimal.Decimal, error)
	Withdraw(ChargeReq) (decimal.Decimal, error)
	Transfer(TransferReq) (decimal.Decimal, error)
	History(number string) ([]Transaction, error)
	Statement(w io.Writer, req StatementReq) error
	Sync() error
}

type serviceImpl struct {
	// mu is the one exclusive section. The system is single-threaded by
	// design; the mutex keeps that safe should a second entry point ever
	// appear.
	mu    sync.Mutex
	reg   *Registry
	store SnapshotStore
	log   *zerolog.Logger
}

var (
	_ Service = (*serviceImpl)(nil)
)

// NewService loads the last snapshot into a fresh registry. A missing or
// undecodable snapshot is not fatal: the service starts empty and the
// condition is logged for the operator.
func NewService(store SnapshotStore, cfg Config, log *zerolog.Logger) *serviceImpl {
	reg := NewRegistry(cfg)
	snap, err := store.Load()
	if err != nil {
		log.Warn().Err(err).Msg("no usable snapshot, starting empty")
	} else {
		reg.Restore(snap)
	}
	return &serviceImpl{
		reg:   reg,
		store: store,
		log:   log,
	}
}

func (s *serviceImpl) OpenAccount(req OpenAccountReq) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bank, err := s.reg.Bank(req.Bank)
	if err != nil {
		return nil, err
	}
	acct, err := bank.OpenAccount(req.Holder, req.PIN)
	if err != nil {
		return nil, err
	}
	return acct.snapshot(), s.save()
}

func (s *serviceImpl) Authenticate(req AuthReq) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bank, err := s.reg.ResolveBank(req.Number)
	if err != nil {
		return nil, err
	}
	acct, err := bank.Authenticate(req.Number, req.PIN)
	if err != nil {
		return nil, err
	}
	return acct.snapshot(), nil
}

func (s *serviceImpl) Balance(number string) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, err := s.lookup(number)
	if err != nil {
		return decimal.Zero, err
	}
	return acct.Balance, nil
}

func (s *serviceImpl) Deposit(req ChargeReq) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, err := s.lookup(req.Number)
	if err != nil {
		return decimal.Zero, err
	}
	if err = acct.Deposit(req.Amount); err != nil {
		return decimal.Zero, err
	}
	return acct.Balance, s.save()
}

func (s *serviceImpl) Withdraw(req ChargeReq) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, err := s.lookup(req.Number)
	if err != nil {
		return decimal.Zero, err
	}
	if err = acct.Withdraw(req.Amount); err != nil {
		return decimal.Zero, err
	}
	return acct.Balance, s.save()
}

func (s *serviceImpl) Transfer(req TransferReq) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sender, err := s.lookup(req.From)
	if err != nil {
		return decimal.Zero, err
	}
	if err = s.reg.Transfer(sender, req.To, req.Amount); err != nil {
		return decimal.Zero, err
	}
	return sender.Balance, s.save()
}

func (s *serviceImpl) History(number string) ([]Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, err := s.lookup(number)
	if err != nil {
		return nil, err
	}
	return acct.History(), nil
}

func (s *serviceImpl) Statement(w io.Writer, req StatementReq) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bank, err := s.reg.ResolveBank(req.Number)
	if err != nil {
		return err
	}
	acct, err := bank.Lookup(req.Number)
	if err != nil {
		return err
	}
	return writeStatementPDF(w, bank.Name, acct)
}

func (s *serviceImpl) Sync() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

func (s *serviceImpl) lookup(number string) (*Account, error) {
	bank, err := s.reg.ResolveBank(number)
	if err != nil {
		return nil, err
	}
	return bank.Lookup(number)
}

// save persists the whole registry. A failure is reported to the caller but
// the in-memory mutation that preceded it stands; memory and disk diverge
// until the next successful save.
func (s *serviceImpl) save() error {
	err := s.store.Save(s.reg.Snapshot())
	if err == nil {
		return nil
	}
	s.log.Error().Err(err).Msg("snapshot save failed, in-memory state retained")
	if !errors.Is(err, ErrPersistenceUnavailable) {
		err = fmt.Errorf("%w: %v", ErrPersistenceUnavailable, err)
	}
	return err
}
