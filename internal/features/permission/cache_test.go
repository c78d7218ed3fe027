package permission

import (
	"testing"
	"time"
)

func countingEval(result bool, calls *int) func(*Subject, string) bool {
	return func(*Subject, string) bool {
		*calls++
		return result
	}
}

func TestCacheHitSkipsRecompute(t *testing.T) {
	cache := NewCache()
	subject := &Subject{ID: "u1"}

	calls := 0
	eval := countingEval(true, &calls)

	if !cache.Check(subject, "borclar_ekleme", eval) {
		t.Fatal("first check should compute true")
	}
	if !cache.Check(subject, "borclar_ekleme", eval) {
		t.Fatal("second check should serve cached true")
	}
	if calls != 1 {
		t.Errorf("evaluator called %d times, want 1", calls)
	}

	// a different code is its own key
	cache.Check(subject, "borclar_silme", eval)
	if calls != 2 {
		t.Errorf("evaluator called %d times, want 2", calls)
	}
}

func TestCacheInvalidateUser(t *testing.T) {
	cache := NewCache()
	u1 := &Subject{ID: "u1"}
	u2 := &Subject{ID: "u2"}

	calls := 0
	eval := countingEval(false, &calls)

	cache.Check(u1, "kisiler_goruntuleme", eval)
	cache.Check(u1, "borclar_ekleme", eval)
	cache.Check(u2, "kisiler_goruntuleme", eval)

	cache.InvalidateUser("u1")

	cache.Check(u1, "kisiler_goruntuleme", eval) // recompute
	cache.Check(u2, "kisiler_goruntuleme", eval) // still cached

	if calls != 4 {
		t.Errorf("evaluator called %d times, want 4", calls)
	}
}

func TestCacheExpiry(t *testing.T) {
	cache := NewCache()
	now := time.Now()
	cache.now = func() time.Time { return now }

	subject := &Subject{ID: "u1"}
	calls := 0
	eval := countingEval(true, &calls)

	cache.Check(subject, "borclar_ekleme", eval)

	// just inside the TTL: still cached
	now = now.Add(cacheTTL - time.Second)
	cache.Check(subject, "borclar_ekleme", eval)
	if calls != 1 {
		t.Fatalf("evaluator called %d times before expiry, want 1", calls)
	}

	// past the TTL: treated as absent and recomputed
	now = now.Add(2 * time.Second)
	cache.Check(subject, "borclar_ekleme", eval)
	if calls != 2 {
		t.Errorf("evaluator called %d times after expiry, want 2", calls)
	}
}

func TestCacheBypassWithoutID(t *testing.T) {
	cache := NewCache()

	calls := 0
	eval := countingEval(true, &calls)

	anon := &Subject{}
	cache.Check(anon, "borclar_ekleme", eval)
	cache.Check(anon, "borclar_ekleme", eval)
	cache.Check(nil, "borclar_ekleme", eval)

	if calls != 3 {
		t.Errorf("evaluator called %d times, want 3 (no caching without id)", calls)
	}
	if cache.Len() != 0 {
		t.Errorf("cache stored %d entries for id-less subjects, want 0", cache.Len())
	}
}
