package cache

import (
	"context"
	"path"
	"testing"

	dom "github.com/WindyDante/Clear/internal/domain"
)

func fp(userID int64, page, size int) Fingerprint {
	return Fingerprint{UserID: userID, Page: page, PageSize: size}
}

func TestFingerprintKey_DistinctAcrossUsers(t *testing.T) {
	a := fp(1, 1, 10).Key()
	b := fp(2, 1, 10).Key()
	if a == b {
		t.Fatalf("fingerprints for different users collide: %q", a)
	}
	// u1 must not be a key-prefix of u12, or pattern invalidation for user 1
	// would wipe user 12's pages.
	ok, err := path.Match(UserPattern(1), fp(12, 1, 10).Key())
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatalf("user 1 pattern matches user 12 key %q", fp(12, 1, 10).Key())
	}
}

func TestFingerprintKey_FiltersArePartOfKey(t *testing.T) {
	cat := int64(3)
	status := dom.StatusEnabled

	plain := Fingerprint{UserID: 1, Page: 1, PageSize: 10}
	byCat := Fingerprint{UserID: 1, Page: 1, PageSize: 10, Filter: dom.TodoFilter{CategoryID: &cat}}
	byStatus := Fingerprint{UserID: 1, Page: 1, PageSize: 10, Filter: dom.TodoFilter{Status: &status}}

	keys := map[string]bool{plain.Key(): true, byCat.Key(): true, byStatus.Key(): true}
	if len(keys) != 3 {
		t.Fatalf("filtered and unfiltered fingerprints collide: %v", keys)
	}
}

func TestPageCache_HitAndMissCounters(t *testing.T) {
	ctx := context.Background()
	c := NewPageCache(NewMemoryBackend(), 0)
	f := fp(1, 1, 10)

	if _, ok, err := c.Get(ctx, f); err != nil || ok {
		t.Fatalf("Get on empty cache = ok=%v err=%v; want miss", ok, err)
	}
	if c.Misses() != 1 {
		t.Fatalf("Misses = %d; want 1", c.Misses())
	}

	want := CachedPage{Total: 1, Items: []dom.TodoView{{ID: 42, Title: "buy milk"}}}
	if err := c.Put(ctx, f, want); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := c.Get(ctx, f)
	if err != nil || !ok {
		t.Fatalf("Get after Put = ok=%v err=%v; want hit", ok, err)
	}
	if c.Hits() != 1 {
		t.Fatalf("Hits = %d; want 1", c.Hits())
	}
	if got.Total != want.Total || len(got.Items) != 1 || got.Items[0].Title != "buy milk" {
		t.Fatalf("Get = %+v; want %+v", got, want)
	}
}

func TestPageCache_InvalidateUserIsScoped(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	c := NewPageCache(backend, 0)

	page := CachedPage{Total: 1}
	for _, f := range []Fingerprint{fp(1, 1, 10), fp(1, 2, 10), fp(1, 1, 25), fp(2, 1, 10)} {
		if err := c.Put(ctx, f, page); err != nil {
			t.Fatalf("Put %v: %v", f, err)
		}
	}

	if err := c.InvalidateUser(ctx, 1); err != nil {
		t.Fatalf("InvalidateUser: %v", err)
	}

	for _, f := range []Fingerprint{fp(1, 1, 10), fp(1, 2, 10), fp(1, 1, 25)} {
		if _, ok, _ := c.Get(ctx, f); ok {
			t.Fatalf("user 1 entry %q survived invalidation", f.Key())
		}
	}
	if _, ok, _ := c.Get(ctx, fp(2, 1, 10)); !ok {
		t.Fatal("user 2 entry was dropped by user 1's invalidation")
	}
	if backend.Len() != 1 {
		t.Fatalf("backend holds %d entries; want 1", backend.Len())
	}
}

func TestPageCache_CorruptEntryIsAMiss(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	c := NewPageCache(backend, 0)
	f := fp(1, 1, 10)

	if err := backend.Set(ctx, f.Key(), []byte("{not json"), 0); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := c.Get(ctx, f); err != nil || ok {
		t.Fatalf("Get on corrupt entry = ok=%v err=%v; want clean miss", ok, err)
	}
}
