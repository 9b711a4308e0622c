package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/inkwell-ai/inkwell/pkg/logging"
)

const defaultCapacity = 4096

// Result is a cached task payload with its expiry
type Result struct {
	Payload   []byte
	StoredAt  time.Time
	ExpiresAt time.Time
}

// Store is the process-wide response cache. Entries are evicted by LRU
// pressure or by TTL on read. Writers are last-write-wins.
type Store struct {
	entries    *lru.Cache[string, Result]
	defaultTTL time.Duration
	logger     *logging.Logger
	now        func() time.Time
}

// NewStore creates a response cache with the given default TTL.
func NewStore(defaultTTL time.Duration, logger *logging.Logger) (*Store, error) {
	entries, err := lru.New[string, Result](defaultCapacity)
	if err != nil {
		return nil, fmt.Errorf("creating cache: %w", err)
	}
	return &Store{
		entries:    entries,
		defaultTTL: defaultTTL,
		logger:     logger,
		now:        time.Now,
	}, nil
}

// Fingerprint derives the cache key for a task invocation. The owner is
// part of the key only for personalized tasks so anonymous callers can
// share results while personalized ones stay isolated.
func Fingerprint(task, content string, ownerID int64, personalized, hasPhoto bool) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00", task, content)
	if personalized {
		fmt.Fprintf(h, "owner:%d\x00", ownerID)
	}
	fmt.Fprintf(h, "photo:%t\x00personalized:%t", hasPhoto, personalized)
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached payload for a fingerprint, or absent when the
// entry is missing or past its TTL.
func (s *Store) Get(fingerprint string) ([]byte, bool) {
	result, ok := s.entries.Get(fingerprint)
	if !ok {
		missesTotal.Inc()
		return nil, false
	}

	if s.now().After(result.ExpiresAt) {
		s.entries.Remove(fingerprint)
		missesTotal.Inc()
		s.logger.Debug(logging.CategoryCache, "expired", "", map[string]any{"fingerprint": fingerprint[:12]})
		return nil, false
	}

	hitsTotal.Inc()
	return result.Payload, true
}

// Put stores a payload under a fingerprint with the default TTL.
func (s *Store) Put(fingerprint string, payload []byte) {
	s.PutTTL(fingerprint, payload, s.defaultTTL)
}

// PutTTL stores a payload with an explicit TTL.
func (s *Store) PutTTL(fingerprint string, payload []byte, ttl time.Duration) {
	now := s.now()
	s.entries.Add(fingerprint, Result{
		Payload:   payload,
		StoredAt:  now,
		ExpiresAt: now.Add(ttl),
	})
	writesTotal.Inc()
}

// Len reports how many entries the cache currently holds.
func (s *Store) Len() int {
	return s.entries.Len()
}

// Purge drops every cached entry.
func (s *Store) Purge() {
	s.entries.Purge()
}
