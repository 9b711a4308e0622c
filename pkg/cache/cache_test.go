package cache

import (
	"io"
	"testing"
	"time"

	"github.com/inkwell-ai/inkwell/pkg/logging"
)

func newTestStore(t *testing.T, ttl time.Duration) *Store {
	t.Helper()
	store, err := NewStore(ttl, logging.NewWriterLogger(io.Discard))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func TestGetPutRoundTrip(t *testing.T) {
	store := newTestStore(t, time.Hour)
	fp := Fingerprint("entry", "a quiet day", 0, false, false)

	if _, ok := store.Get(fp); ok {
		t.Fatal("empty cache should miss")
	}

	store.Put(fp, []byte(`{"title":"Quiet"}`))
	payload, ok := store.Get(fp)
	if !ok {
		t.Fatal("expected hit")
	}
	if string(payload) != `{"title":"Quiet"}` {
		t.Errorf("payload = %s", payload)
	}
}

func TestTTLExpiry(t *testing.T) {
	store := newTestStore(t, time.Hour)
	fp := Fingerprint("entry", "note", 0, false, false)

	store.Put(fp, []byte("x"))

	// Advance the clock past the TTL
	store.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	if _, ok := store.Get(fp); ok {
		t.Error("expired entry should miss")
	}
	if store.Len() != 0 {
		t.Error("expired entry should be evicted on read")
	}
}

func TestLastWriteWins(t *testing.T) {
	store := newTestStore(t, time.Hour)
	fp := Fingerprint("entry", "note", 0, false, false)

	store.Put(fp, []byte("first"))
	store.Put(fp, []byte("second"))

	payload, _ := store.Get(fp)
	if string(payload) != "second" {
		t.Errorf("payload = %s, want second", payload)
	}
}

func TestFingerprintOwnerIsolation(t *testing.T) {
	anon := Fingerprint("entry", "note", 0, false, false)
	personalizedA := Fingerprint("entry", "note", 1, true, false)
	personalizedB := Fingerprint("entry", "note", 2, true, false)

	if personalizedA == personalizedB {
		t.Error("personalized fingerprints must differ per owner")
	}
	if anon == personalizedA {
		t.Error("personalized and anonymous fingerprints must differ")
	}

	// Owner must not leak into non-personalized fingerprints
	if Fingerprint("entry", "note", 1, false, false) != Fingerprint("entry", "note", 2, false, false) {
		t.Error("owner should not affect non-personalized fingerprints")
	}
}

func TestFingerprintPhotoChangesKey(t *testing.T) {
	if Fingerprint("entry", "note", 0, false, false) == Fingerprint("entry", "note", 0, false, true) {
		t.Error("photo flag must change the fingerprint")
	}
}
