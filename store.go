package atmgo

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"
)

const snapshotVersion = 1

// Meta tags every snapshot with its schema version and save time, for the
// day the layout has to migrate.
type Meta struct {
	Version int       `json:"version"`
	SavedAt time.Time `json:"saved_at"`
}

type PersistAccount struct {
	Number       string          `json:"number"`
	Holder       string          `json:"holder"`
	PIN          int             `json:"pin"`
	Balance      decimal.Decimal `json:"balance"`
	Transactions []Transaction   `json:"transactions"`
}

type PersistBank struct {
	Name     string           `json:"name"`
	Accounts []PersistAccount `json:"accounts"`
}

// Snapshot is the whole persisted state: the full registry, every account,
// every log entry. It is always written and read as one document.
type Snapshot struct {
	Meta  Meta          `json:"_meta"`
	Banks []PersistBank `json:"banks"`
}

//go:generate mockgen -source=store.go -destination=mocks/store.go -package=mocks

// SnapshotStore loads and saves whole snapshots. Save replaces the previous
// snapshot entirely.
type SnapshotStore interface {
	Load() (Snapshot, error)
	Save(Snapshot) error
}

// FileStore keeps the snapshot as a single JSON file. Saves go to a
// temporary sibling first and land with an atomic rename, so an interrupted
// write never corrupts the previous snapshot.
type FileStore struct {
	path string
}

var (
	_ SnapshotStore = (*FileStore)(nil)
)

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (fs *FileStore) Load() (Snapshot, error) {
	var snap Snapshot
	f, err := os.Open(fs.path)
	if err != nil {
		return snap, fmt.Errorf("%w: %v", ErrPersistenceUnavailable, err)
	}
	defer f.Close()
	if err = json.NewDecoder(f).Decode(&snap); err != nil {
		return snap, fmt.Errorf("%w: %v", ErrPersistenceUnavailable, err)
	}
	return snap, nil
}

func (fs *FileStore) Save(snap Snapshot) error {
	tmp := fs.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistenceUnavailable, err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err = enc.Encode(snap); err != nil {
		f.Close()
		return fmt.Errorf("%w: %v", ErrPersistenceUnavailable, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistenceUnavailable, err)
	}
	if err = os.Rename(tmp, fs.path); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistenceUnavailable, err)
	}
	return nil
}

// breakerStore decorates a SnapshotStore with a circuit breaker per
// direction. When the disk keeps failing, subsequent operations fail fast
// as ErrPersistenceUnavailable instead of retrying a dead medium on every
// menu action.
type breakerStore struct {
	next SnapshotStore
	load *gobreaker.CircuitBreaker[Snapshot]
	save *gobreaker.CircuitBreaker[any]
}

var (
	_ SnapshotStore = (*breakerStore)(nil)
)

func NewBreakerStore(next SnapshotStore) SnapshotStore {
	trip := func(counts gobreaker.Counts) bool {
		return counts.ConsecutiveFailures >= 3
	}
	return &breakerStore{
		next: next,
		load: gobreaker.NewCircuitBreaker[Snapshot](gobreaker.Settings{
			Name:        "snapshot-load",
			Timeout:     10 * time.Second,
			ReadyToTrip: trip,
		}),
		save: gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
			Name:        "snapshot-save",
			Timeout:     10 * time.Second,
			ReadyToTrip: trip,
		}),
	}
}

func (bs *breakerStore) Load() (Snapshot, error) {
	snap, err := bs.load.Execute(func() (Snapshot, error) {
		return bs.next.Load()
	})
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return snap, fmt.Errorf("%w: %v", ErrPersistenceUnavailable, err)
	}
	return snap, err
}

func (bs *breakerStore) Save(snap Snapshot) error {
	_, err := bs.save.Execute(func() (any, error) {
		return nil, bs.next.Save(snap)
	})
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return fmt.Errorf("%w: %v", ErrPersistenceUnavailable, err)
	}
	return err
}
