package badger

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/felixgeelhaar/goap-go/domain/ledger"
)

// LedgerStore is a BadgerDB-backed implementation of ledger.Store.
// Entries are keyed per run by a monotonic sequence number so List
// returns them in append order.
type LedgerStore struct {
	db        *badger.DB
	keyPrefix string
	gcStop    chan struct{}
	gcWg      sync.WaitGroup
	closeOnce sync.Once
}

// NewLedgerStore creates a new BadgerDB ledger store with the given configuration.
func NewLedgerStore(cfg Config, opts ...Option) (*LedgerStore, error) {
	for _, opt := range opts {
		opt(&cfg)
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}

	s := &LedgerStore{
		db:        db,
		keyPrefix: cfg.KeyPrefix,
		gcStop:    make(chan struct{}),
	}

	if cfg.GCInterval > 0 {
		s.startGC(cfg.GCInterval, cfg.GCDiscardRatio)
	}

	return s, nil
}

// NewLedgerStoreFromDB creates a ledger store from an existing BadgerDB database.
func NewLedgerStoreFromDB(db *badger.DB, keyPrefix string) *LedgerStore {
	return &LedgerStore{
		db:        db,
		keyPrefix: keyPrefix,
		gcStop:    make(chan struct{}),
	}
}

// startGC runs value log garbage collection periodically.
func (s *LedgerStore) startGC(interval time.Duration, discardRatio float64) {
	s.gcWg.Add(1)
	go func() {
		defer s.gcWg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				// RunValueLogGC returns an error when nothing was
				// collected; that is expected and ignored.
				for s.db.RunValueLogGC(discardRatio) == nil {
				}
			case <-s.gcStop:
				return
			}
		}
	}()
}

// Key format: prefix:entries:runID:sequence (8 bytes, big-endian)
func (s *LedgerStore) entryKey(runID string, seq uint64) []byte {
	seqBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(seqBytes, seq)
	return append([]byte(s.keyPrefix+"entries:"+runID+":"), seqBytes...)
}

// Key format: prefix:seq:runID for storing the sequence counter
func (s *LedgerStore) seqKey(runID string) []byte {
	return []byte(s.keyPrefix + "seq:" + runID)
}

// Append persists one or more entries atomically.
func (s *LedgerStore) Append(ctx context.Context, entries ...ledger.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(entries) == 0 {
		return nil
	}

	// Group entries by run ID to keep per-run sequences contiguous.
	byRun := make(map[string][]ledger.Entry)
	runOrder := make([]string, 0, 1)
	for _, e := range entries {
		if _, seen := byRun[e.RunID]; !seen {
			runOrder = append(runOrder, e.RunID)
		}
		byRun[e.RunID] = append(byRun[e.RunID], e)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		for _, runID := range runOrder {
			var seq uint64
			seqKey := s.seqKey(runID)

			item, err := txn.Get(seqKey)
			if err == nil {
				err = item.Value(func(val []byte) error {
					if len(val) == 8 {
						seq = binary.BigEndian.Uint64(val)
					}
					return nil
				})
				if err != nil {
					return err
				}
			} else if !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}

			for i := range byRun[runID] {
				e := byRun[runID][i]

				if e.ID == "" {
					e.ID = uuid.NewString()
				}
				if e.Timestamp.IsZero() {
					e.Timestamp = time.Now()
				}

				seq++
				data, err := json.Marshal(e)
				if err != nil {
					return err
				}
				if err := txn.Set(s.entryKey(runID, seq), data); err != nil {
					return err
				}
			}

			seqBytes := make([]byte, 8)
			binary.BigEndian.PutUint64(seqBytes, seq)
			if err := txn.Set(seqKey, seqBytes); err != nil {
				return err
			}
		}
		return nil
	})
}

// List returns all persisted entries for a run in append order.
func (s *LedgerStore) List(ctx context.Context, runID string) ([]ledger.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prefix := []byte(s.keyPrefix + "entries:" + runID + ":")
	var entries []ledger.Entry

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var e ledger.Entry
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &e)
			})
			if err != nil {
				continue // Skip malformed entries
			}
			entries = append(entries, e)
		}
		return nil
	})

	return entries, err
}

// Runs returns the IDs of all runs with persisted entries.
func (s *LedgerStore) Runs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prefix := []byte(s.keyPrefix + "seq:")
	var runs []string

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			key := string(it.Item().Key())
			runs = append(runs, strings.TrimPrefix(key, string(prefix)))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(runs)
	return runs, nil
}

// SaveLedger persists the full contents of an in-memory ledger.
func (s *LedgerStore) SaveLedger(ctx context.Context, l *ledger.Ledger) error {
	return s.Append(ctx, l.Entries()...)
}

// Close stops background GC and closes the database.
func (s *LedgerStore) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.gcStop)
		s.gcWg.Wait()
		err = s.db.Close()
	})
	return err
}

// Ensure LedgerStore implements ledger.Store
var _ ledger.Store = (*LedgerStore)(nil)
