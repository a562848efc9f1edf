package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gelaboca/gelaboca-backend/pkg/redis"
)

// Message roles mirror the completion API roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// HistoryStore persists conversation histories per session.
type HistoryStore interface {
	// Get returns the stored history, or nil when nothing is stored.
	Get(ctx context.Context, sessionID string) ([]Message, error)
	// Set replaces the stored history.
	Set(ctx context.Context, sessionID string, history []Message) error
	// Delete drops the stored history.
	Delete(ctx context.Context, sessionID string) error
}

// seedHistory returns a fresh history opened by the persona system message.
func seedHistory() []Message {
	return []Message{{Role: RoleSystem, Content: SeedSystemMessage}}
}

// capHistory bounds a history to limit messages, always keeping the opening
// system message and the most recent turns.
func capHistory(history []Message, limit int) []Message {
	if limit <= 0 || len(history) <= limit {
		return history
	}
	capped := make([]Message, 0, limit)
	capped = append(capped, history[0])
	capped = append(capped, history[len(history)-(limit-1):]...)
	return capped
}

// RedisHistory stores each session's history as one JSON value.
type RedisHistory struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisHistory builds a Redis-backed history store. Histories expire after
// ttl of inactivity; zero means no expiry.
func NewRedisHistory(client *redis.Client, ttl time.Duration) *RedisHistory {
	return &RedisHistory{client: client, ttl: ttl}
}

func (s *RedisHistory) Get(ctx context.Context, sessionID string) ([]Message, error) {
	raw, err := s.client.Get(ctx, s.client.ChatHistoryKey(sessionID))
	if errors.Is(err, redis.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}

	var history []Message
	if err := json.Unmarshal([]byte(raw), &history); err != nil {
		// Corrupt history is discarded; the conversation restarts.
		return nil, nil
	}
	return history, nil
}

func (s *RedisHistory) Set(ctx context.Context, sessionID string, history []Message) error {
	encoded, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	if err := s.client.Set(ctx, s.client.ChatHistoryKey(sessionID), string(encoded), s.ttl); err != nil {
		return fmt.Errorf("saving history: %w", err)
	}
	return nil
}

func (s *RedisHistory) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.client.ChatHistoryKey(sessionID)); err != nil {
		return fmt.Errorf("deleting history: %w", err)
	}
	return nil
}

// MemoryHistory is an in-process history store for tests and local development.
type MemoryHistory struct {
	mu        sync.RWMutex
	histories map[string][]Message
}

// NewMemoryHistory builds an empty in-memory store.
func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{histories: make(map[string][]Message)}
}

func (s *MemoryHistory) Get(_ context.Context, sessionID string) ([]Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	history, ok := s.histories[sessionID]
	if !ok {
		return nil, nil
	}
	return append([]Message(nil), history...), nil
}

func (s *MemoryHistory) Set(_ context.Context, sessionID string, history []Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.histories[sessionID] = append([]Message(nil), history...)
	return nil
}

func (s *MemoryHistory) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.histories, sessionID)
	return nil
}
