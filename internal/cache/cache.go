// Package cache stores answered questions in BadgerDB.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/post-qa/internal/domain"
	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
)

const (
	keyPrefix  = "response:"
	DefaultTTL = 10 * time.Minute
)

type Config struct {
	Enabled  bool          `yaml:"enabled"`
	Path     string        `yaml:"path"`
	InMemory bool          `yaml:"in_memory"`
	TTL      time.Duration `yaml:"ttl"`
}

// badgerLogger routes badger logs to slog.
type badgerLogger struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLogger)(nil)

func (l *badgerLogger) Errorf(msg string, items ...any) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(msg, items...)))
}

func (l *badgerLogger) Warningf(msg string, items ...any) {
	l.logger.Warn(strings.TrimSpace(fmt.Sprintf(msg, items...)))
}

func (l *badgerLogger) Infof(msg string, items ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(msg, items...)))
}

func (l *badgerLogger) Debugf(msg string, items ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(msg, items...)))
}

// Badger caches responses keyed by user and question. Entries expire after
// the configured TTL.
type Badger struct {
	db  *badger.DB
	ttl time.Duration
}

func Open(cfg Config) (*Badger, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Path == "" {
			return nil, errors.New("cache path is required unless the cache is in memory")
		}
		if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
			return nil, fmt.Errorf("create cache directory: %w", err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}

	opts.Logger = &badgerLogger{logger: slog.Default()}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	slog.Info("Response cache opened", "in_memory", cfg.InMemory, "path", cfg.Path, "ttl", ttl)
	return &Badger{db: db, ttl: ttl}, nil
}

func (b *Badger) Close() error {
	return b.db.Close()
}

// Get returns the cached response, or false when there is none.
func (b *Badger) Get(_ context.Context, userID, question string) (*domain.ResponseRecord, bool, error) {
	var res domain.ResponseRecord
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(userID, question))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &res)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get: %w", err)
	}
	return &res, true, nil
}

func (b *Badger) Set(_ context.Context, userID, question string, res *domain.ResponseRecord) error {
	val, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}

	err = b.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(key(userID, question), val).WithTTL(b.ttl))
	})
	if err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

func key(userID, question string) []byte {
	sum := sha256.Sum256([]byte(userID + "\x00" + strings.TrimSpace(question)))
	return []byte(keyPrefix + hex.EncodeToString(sum[:]))
}
