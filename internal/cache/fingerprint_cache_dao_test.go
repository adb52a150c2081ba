package cache

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return db
}

func TestUpsertThenLookupHitsOnMatchingModTime(t *testing.T) {
	db := openTestDB(t)
	dao := NewFingerprintCacheDAOWithDB(db)
	ctx := context.Background()

	entry := Entry{WithHeaderFP: "sha1:aaaa", WithoutHeaderFP: "sha1:bbbb"}
	if err := dao.Upsert(ctx, "/roms/game.nes", 100, entry); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, ok, err := dao.Lookup(ctx, "/roms/game.nes", 100)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !ok {
		t.Fatalf("expected cache hit")
	}
	if got != entry {
		t.Fatalf("got %+v, want %+v", got, entry)
	}
}

func TestLookupMissesOnModTimeChange(t *testing.T) {
	db := openTestDB(t)
	dao := NewFingerprintCacheDAOWithDB(db)
	ctx := context.Background()

	if err := dao.Upsert(ctx, "/roms/game.nes", 100, Entry{WithHeaderFP: "sha1:aaaa"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	_, ok, err := dao.Lookup(ctx, "/roms/game.nes", 200)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if ok {
		t.Fatalf("expected cache miss after modtime change")
	}
}

func TestUpsertOverwritesExistingEntry(t *testing.T) {
	db := openTestDB(t)
	dao := NewFingerprintCacheDAOWithDB(db)
	ctx := context.Background()

	if err := dao.Upsert(ctx, "/roms/game.nes", 100, Entry{WithHeaderFP: "sha1:aaaa"}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	updated := Entry{WithHeaderFP: "sha1:cccc", WithoutHeaderFP: "sha1:dddd"}
	if err := dao.Upsert(ctx, "/roms/game.nes", 150, updated); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	got, ok, err := dao.Lookup(ctx, "/roms/game.nes", 150)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !ok || got != updated {
		t.Fatalf("got %+v ok=%v, want %+v", got, ok, updated)
	}
}

func TestLookupMissesOnUnknownLocation(t *testing.T) {
	db := openTestDB(t)
	dao := NewFingerprintCacheDAOWithDB(db)

	_, ok, err := dao.Lookup(context.Background(), "/roms/nonexistent.nes", 0)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if ok {
		t.Fatalf("expected cache miss for unknown location")
	}
}
