package session

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
)

type mockStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newMockStore() *mockStore {
	return &mockStore{data: make(map[string]string)}
}

func (m *mockStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = fmt.Sprint(value)
	return nil
}

func (m *mockStore) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.data[key]
	if !ok {
		return "", redislib.Nil
	}
	return val, nil
}

func (m *mockStore) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

func (m *mockStore) SessionKey(sessionID string) string {
	return fmt.Sprintf("sess:%s", sessionID)
}

func newTestManager(store *mockStore) *Manager {
	return &Manager{store: store, keyer: store, ttl: time.Hour}
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newMockStore()
	manager := newTestManager(store)

	sid := NewSessionID()
	if err := manager.Start(ctx, sid, "user-1"); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	ok, err := manager.HasSession(ctx, sid)
	if err != nil {
		t.Fatalf("has session failed: %v", err)
	}
	if !ok {
		t.Fatal("expected session to be live")
	}

	if err := manager.Revoke(ctx, sid); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}

	ok, err = manager.HasSession(ctx, sid)
	if err != nil {
		t.Fatalf("has session after revoke failed: %v", err)
	}
	if ok {
		t.Fatal("expected session to be gone after revoke")
	}
}

func TestStartValidatesInput(t *testing.T) {
	manager := newTestManager(newMockStore())
	if err := manager.Start(context.Background(), "", "user-1"); err == nil {
		t.Fatal("expected error for empty session id")
	}
	if err := manager.Start(context.Background(), "sid", " "); err == nil {
		t.Fatal("expected error for empty user id")
	}
}

func TestHasSessionUnknownIDIsFalseNotError(t *testing.T) {
	manager := newTestManager(newMockStore())
	ok, err := manager.HasSession(context.Background(), "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected false for unknown session")
	}
}
