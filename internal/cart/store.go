package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gelaboca/gelaboca-backend/pkg/redis"
)

const (
	fieldItems     = "items"
	fieldFinalized = "finalized"
	fieldCancelled = "cancelled"
	fieldCompleted = "completed"
)

// Store persists cart state per session.
type Store interface {
	// Load returns the stored cart, or an empty cart when nothing is stored.
	Load(ctx context.Context, sessionID string) (State, error)
	// Save writes the cart.
	Save(ctx context.Context, sessionID string, state State) error
	// Erase drops the stored cart entirely.
	Erase(ctx context.Context, sessionID string) error
}

// RedisStore keeps each cart as four JSON values so partial reads of a
// session's cart stay cheap.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore builds a Redis-backed cart store. Carts expire after ttl of
// inactivity; zero means no expiry.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Load(ctx context.Context, sessionID string) (State, error) {
	state := NewState()

	if err := s.loadField(ctx, sessionID, fieldItems, &state.Items); err != nil {
		return NewState(), err
	}
	if err := s.loadField(ctx, sessionID, fieldFinalized, &state.FinalizedIDs); err != nil {
		return NewState(), err
	}
	if err := s.loadField(ctx, sessionID, fieldCancelled, &state.CancelledIDs); err != nil {
		return NewState(), err
	}
	if err := s.loadField(ctx, sessionID, fieldCompleted, &state.OrderCompleted); err != nil {
		return NewState(), err
	}

	return state, nil
}

func (s *RedisStore) loadField(ctx context.Context, sessionID, field string, target any) error {
	raw, err := s.client.Get(ctx, s.client.CartKey(sessionID, field))
	if errors.Is(err, redis.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading cart field %s: %w", field, err)
	}
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		// A corrupt value behaves like an absent one so the session can
		// keep ordering.
		return nil
	}
	return nil
}

func (s *RedisStore) Save(ctx context.Context, sessionID string, state State) error {
	fields := map[string]any{
		fieldItems:     state.Items,
		fieldFinalized: state.FinalizedIDs,
		fieldCancelled: state.CancelledIDs,
		fieldCompleted: state.OrderCompleted,
	}
	for field, value := range fields {
		encoded, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encoding cart field %s: %w", field, err)
		}
		if err := s.client.Set(ctx, s.client.CartKey(sessionID, field), string(encoded), s.ttl); err != nil {
			return fmt.Errorf("saving cart field %s: %w", field, err)
		}
	}
	return nil
}

func (s *RedisStore) Erase(ctx context.Context, sessionID string) error {
	keys := []string{
		s.client.CartKey(sessionID, fieldItems),
		s.client.CartKey(sessionID, fieldFinalized),
		s.client.CartKey(sessionID, fieldCancelled),
		s.client.CartKey(sessionID, fieldCompleted),
	}
	if err := s.client.Del(ctx, keys...); err != nil {
		return fmt.Errorf("erasing cart: %w", err)
	}
	return nil
}

// MemoryStore is an in-process cart store for tests and local development.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string]State
}

// NewMemoryStore builds an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string]State)}
}

func (s *MemoryStore) Load(_ context.Context, sessionID string) (State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if state, ok := s.carts[sessionID]; ok {
		return state, nil
	}
	return NewState(), nil
}

func (s *MemoryStore) Save(_ context.Context, sessionID string, state State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[sessionID] = state
	return nil
}

func (s *MemoryStore) Erase(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
	return nil
}
