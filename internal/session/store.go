//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=../mocks/mock_store.go -package=mocks
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
)

type Store interface {
	// Load returns the session for id, or a fresh one when id is unknown or expired.
	Load(id string) (*Session, error)
	Save(s *Session) error
	Close() error
}

// BadgerStore keeps sessions in an in-memory badger instance. Every save
// resets the idle TTL.
type BadgerStore struct {
	db  *badger.DB
	ttl time.Duration
	log *slog.Logger
}

func OpenBadgerStore(ttl time.Duration, log *slog.Logger) (*BadgerStore, error) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	return NewBadgerStore(db, ttl, log), nil
}

func NewBadgerStore(db *badger.DB, ttl time.Duration, log *slog.Logger) *BadgerStore {
	if log == nil {
		log = slog.Default()
	}
	return &BadgerStore{
		db:  db,
		ttl: ttl,
		log: log,
	}
}

func key(id string) []byte {
	return []byte("session:" + id)
}

func (b *BadgerStore) Load(id string) (*Session, error) {
	var s *Session

	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(id))
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error {
			s = &Session{}
			return json.Unmarshal(v, s)
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		b.log.Debug("new session", "session_id", id)
		return New(id), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}

	return s, nil
}

func (b *BadgerStore) Save(s *Session) error {
	s.UpdatedAt = time.Now()

	data, err := json.Marshal(s)
	if err != nil {
		return err
	}

	err = b.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry(key(s.ID), data)
		if b.ttl > 0 {
			e = e.WithTTL(b.ttl)
		}
		return txn.SetEntry(e)
	})
	if err != nil {
		return fmt.Errorf("save session %s: %w", s.ID, err)
	}

	return nil
}

func (b *BadgerStore) Close() error {
	return b.db.Close()
}
