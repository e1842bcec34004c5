package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	model "card-orderbook/internal/models"
	"card-orderbook/utils"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
)

var (
	bidPrefix  = []byte("bid/")
	lockPrefix = []byte("lock/")
	savedAtKey = []byte("meta/saved_at")
)

// Source is what gets snapshotted: the in-memory orderbook
type Source interface {
	Export() ([]model.Bid, []model.LockEntry)
}

// Sink rebuilds state from a snapshot
type Sink interface {
	Restore(bids []model.Bid, locks []model.LockEntry) error
}

// Store keeps the latest orderbook snapshot in a pebble database.
// Bids are stored in export order so a restore rebuilds every list as it was.
type Store struct {
	db *pebble.DB
}

// Open opens (or creates) the store at dir. fs may be nil to use the OS filesystem.
func Open(dir string, fs vfs.FS) (*Store, error) {
	opts := &pebble.Options{}
	if fs != nil {
		opts.FS = fs
	}
	db, err := pebble.Open(dir, opts)
	if err != nil {
		return nil, fmt.Errorf("snapshot: open %s: %w", dir, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save replaces the stored snapshot with src's current state in one batch
func (s *Store) Save(src Source) error {
	bids, locks := src.Export()

	batch := s.db.NewBatch()
	defer batch.Close()

	if err := batch.DeleteRange(bidPrefix, upperBound(bidPrefix), nil); err != nil {
		return fmt.Errorf("snapshot: clear bids: %w", err)
	}
	if err := batch.DeleteRange(lockPrefix, upperBound(lockPrefix), nil); err != nil {
		return fmt.Errorf("snapshot: clear locks: %w", err)
	}

	for i, bid := range bids {
		val, err := json.Marshal(bid)
		if err != nil {
			return fmt.Errorf("snapshot: encode bid %s: %w", bid.BidID, err)
		}
		if err := batch.Set(seqKey(bidPrefix, i), val, nil); err != nil {
			return fmt.Errorf("snapshot: write bid %s: %w", bid.BidID, err)
		}
	}
	for i, lock := range locks {
		val, err := json.Marshal(lock)
		if err != nil {
			return fmt.Errorf("snapshot: encode lock on %s: %w", lock.Card, err)
		}
		if err := batch.Set(seqKey(lockPrefix, i), val, nil); err != nil {
			return fmt.Errorf("snapshot: write lock on %s: %w", lock.Card, err)
		}
	}

	savedAt, _ := time.Now().UTC().MarshalText()
	if err := batch.Set(savedAtKey, savedAt, nil); err != nil {
		return fmt.Errorf("snapshot: write timestamp: %w", err)
	}
	if err := batch.Commit(pebble.Sync); err != nil {
		return fmt.Errorf("snapshot: commit: %w", err)
	}

	utils.Info("snapshot saved", map[string]any{
		"bids":  len(bids),
		"locks": len(locks),
	})
	return nil
}

// Load returns the stored bids and locks in the order they were saved
func (s *Store) Load() ([]model.Bid, []model.LockEntry, error) {
	var bids []model.Bid
	err := s.scan(bidPrefix, func(val []byte) error {
		var bid model.Bid
		if err := json.Unmarshal(val, &bid); err != nil {
			return err
		}
		bids = append(bids, bid)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("snapshot: load bids: %w", err)
	}

	var locks []model.LockEntry
	err = s.scan(lockPrefix, func(val []byte) error {
		var lock model.LockEntry
		if err := json.Unmarshal(val, &lock); err != nil {
			return err
		}
		locks = append(locks, lock)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("snapshot: load locks: %w", err)
	}
	return bids, locks, nil
}

// SavedAt returns when the snapshot was last written; ok is false when none was
func (s *Store) SavedAt() (at time.Time, ok bool, err error) {
	val, closer, err := s.db.Get(savedAtKey)
	if errors.Is(err, pebble.ErrNotFound) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("snapshot: read timestamp: %w", err)
	}
	defer closer.Close()

	if err := at.UnmarshalText(val); err != nil {
		return time.Time{}, false, fmt.Errorf("snapshot: decode timestamp: %w", err)
	}
	return at, true, nil
}

// RestoreInto loads the snapshot into sink. An empty store restores nothing.
func (s *Store) RestoreInto(sink Sink) (int, error) {
	bids, locks, err := s.Load()
	if err != nil {
		return 0, err
	}
	if err := sink.Restore(bids, locks); err != nil {
		return 0, fmt.Errorf("snapshot: %w", err)
	}
	return len(bids), nil
}

func (s *Store) scan(prefix []byte, fn func(val []byte) error) error {
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: upperBound(prefix),
	})
	if err != nil {
		return err
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		if err := fn(iter.Value()); err != nil {
			return fmt.Errorf("key %s: %w", iter.Key(), err)
		}
	}
	return iter.Error()
}

func seqKey(prefix []byte, i int) []byte {
	return []byte(fmt.Sprintf("%s%020d", prefix, i))
}

// upperBound returns the first key past every key starting with prefix
func upperBound(prefix []byte) []byte {
	end := append([]byte{}, prefix...)
	end[len(end)-1]++
	return end
}
