package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newSessionStoreTest(t *testing.T) (*Store, *miniredis.Miniredis, *redis.Client, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis start: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewStore(rdb, "cs")
	return store, mr, rdb, func() {
		rdb.Close()
		mr.Close()
	}
}

func testSession() *Session {
	now := time.Now()
	return &Session{
		SessionID:   "sid-1",
		UserID:      "operator",
		AccessToken: "tok-1",
		CreatedAt:   now.Unix(),
		ExpiresAt:   now.Add(time.Hour).Unix(),
	}
}

func TestStoreSaveGetRoundTrip(t *testing.T) {
	store, _, _, done := newSessionStoreTest(t)
	defer done()
	ctx := context.Background()
	sess := testSession()

	if err := store.Save(ctx, sess, time.Hour); err != nil {
		t.Fatalf("save session: %v", err)
	}

	got, err := store.Get(ctx, sess.SessionID)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if *got != *sess {
		t.Fatalf("expected %+v, got %+v", sess, got)
	}
}

func TestStoreGetMissingReturnsNotFound(t *testing.T) {
	store, _, _, done := newSessionStoreTest(t)
	defer done()

	_, err := store.Get(context.Background(), "missing")
	if !errors.Is(err, ErrSessionNotFound) || !errors.Is(err, redis.Nil) {
		t.Fatalf("expected not-found sentinel, got %v", err)
	}
}

func TestStoreGetExpiredRemovesSession(t *testing.T) {
	store, _, rdb, done := newSessionStoreTest(t)
	defer done()
	ctx := context.Background()

	sess := testSession()
	sess.ExpiresAt = time.Now().Add(-time.Minute).Unix()
	if err := store.Save(ctx, sess, time.Hour); err != nil {
		t.Fatalf("save session: %v", err)
	}

	if _, err := store.Get(ctx, sess.SessionID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected not-found for expired session, got %v", err)
	}

	exists, err := rdb.Exists(ctx, store.key(sess.SessionID)).Result()
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if exists != 0 {
		t.Fatal("expected expired session key to be deleted")
	}
}

func TestStoreGetCorruptBlob(t *testing.T) {
	store, _, rdb, done := newSessionStoreTest(t)
	defer done()
	ctx := context.Background()

	if err := rdb.Set(ctx, store.key("sid-corrupt"), []byte("bad"), time.Hour).Err(); err != nil {
		t.Fatalf("seed corrupt blob: %v", err)
	}
	if _, err := store.Get(ctx, "sid-corrupt"); !errors.Is(err, ErrSessionCorrupt) {
		t.Fatalf("expected corrupt sentinel, got %v", err)
	}
}

func TestDeleteSessionIdempotentAndIndex(t *testing.T) {
	store, _, rdb, done := newSessionStoreTest(t)
	defer done()
	ctx := context.Background()
	sess := testSession()

	if err := store.Save(ctx, sess, time.Hour); err != nil {
		t.Fatalf("save session: %v", err)
	}
	if err := store.Delete(ctx, sess.SessionID); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := store.Delete(ctx, sess.SessionID); err != nil {
		t.Fatalf("second delete: %v", err)
	}

	members, err := rdb.SMembers(ctx, store.userKey(sess.UserID)).Result()
	if err != nil {
		t.Fatalf("smembers: %v", err)
	}
	if len(members) != 0 {
		t.Fatalf("expected no user index members, got %v", members)
	}
}

func TestDeleteAllForUser(t *testing.T) {
	store, _, _, done := newSessionStoreTest(t)
	defer done()
	ctx := context.Background()

	for _, sid := range []string{"a", "b", "c"} {
		sess := testSession()
		sess.SessionID = sid
		if err := store.Save(ctx, sess, time.Hour); err != nil {
			t.Fatalf("save %s: %v", sid, err)
		}
	}

	ids, err := store.ActiveSessionIDs(ctx, "operator")
	if err != nil {
		t.Fatalf("active ids: %v", err)
	}
	if len(ids) != 3 {
		t.Fatalf("expected 3 active sessions, got %v", ids)
	}

	if err := store.DeleteAllForUser(ctx, "operator"); err != nil {
		t.Fatalf("delete all: %v", err)
	}
	for _, sid := range []string{"a", "b", "c"} {
		if _, err := store.Get(ctx, sid); !errors.Is(err, ErrSessionNotFound) {
			t.Fatalf("expected %s deleted, got %v", sid, err)
		}
	}
}

func TestStoreRedisDownWrapsUnavailable(t *testing.T) {
	store, mr, _, done := newSessionStoreTest(t)
	defer done()
	mr.Close()

	err := store.Save(context.Background(), testSession(), time.Hour)
	if !errors.Is(err, ErrRedisUnavailable) {
		t.Fatalf("expected redis unavailable, got %v", err)
	}
}

func TestStoreSaveRejectsInvalidInput(t *testing.T) {
	store, _, _, done := newSessionStoreTest(t)
	defer done()
	ctx := context.Background()

	if err := store.Save(ctx, &Session{}, time.Hour); err == nil {
		t.Fatal("expected error for missing session id")
	}
	if err := store.Save(ctx, testSession(), 0); err == nil {
		t.Fatal("expected error for zero ttl")
	}
}
