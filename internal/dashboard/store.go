package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store keeps view state per session id.
type Store interface {
	Get(ctx context.Context, sessionID string) (State, error)
	Put(ctx context.Context, sessionID string, state State) error
}

// MemoryStore is a process-local Store.
type MemoryStore struct {
	mu     sync.Mutex
	states map[string]State
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]State)}
}

// Get returns the stored state or a fresh one.
func (m *MemoryStore) Get(_ context.Context, sessionID string) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, ok := m.states[sessionID]
	if !ok {
		return NewState(), nil
	}
	return cloneState(state), nil
}

// Put replaces the stored state.
func (m *MemoryStore) Put(_ context.Context, sessionID string, state State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[sessionID] = cloneState(state)
	return nil
}

func cloneState(s State) State {
	out := s
	out.Slots = make(map[Slot]json.RawMessage, len(s.Slots))
	for k, v := range s.Slots {
		out.Slots[k] = v
	}
	return out
}

// RedisStore keeps view state in Redis for the lifetime of the session.
type RedisStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisStore wires a RedisStore. ttl should match the session TTL.
func NewRedisStore(client redis.Cmdable, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (r *RedisStore) key(sessionID string) string {
	return "dashboard:view:" + sessionID
}

// Get loads the state, returning a fresh one when nothing is stored.
func (r *RedisStore) Get(ctx context.Context, sessionID string) (State, error) {
	payload, err := r.client.Get(ctx, r.key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return NewState(), nil
	}
	if err != nil {
		return State{}, err
	}
	state := NewState()
	if err := json.Unmarshal(payload, &state); err != nil {
		return State{}, err
	}
	if state.Slots == nil {
		state.Slots = map[Slot]json.RawMessage{}
	}
	if state.ActiveTab == "" {
		state.ActiveTab = TabDashboard
	}
	return state, nil
}

// Put overwrites the state and refreshes its expiry.
func (r *RedisStore) Put(ctx context.Context, sessionID string, state State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(sessionID), payload, r.ttl).Err()
}
