package navigation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"storefront/internal/shared/constants"
)

// Store keeps navigation contexts behind one-shot tokens. Take removes the
// context, so a reload of the target view finds nothing.
type Store interface {
	Put(ctx context.Context, kind Kind, payload interface{}) (string, error)
	Take(ctx context.Context, kind Kind, token string, dest interface{}) error
}

type entry struct {
	data      []byte
	expiresAt time.Time
}

type memoryStore struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore creates a process-local store
func NewMemoryStore(ttl time.Duration) Store {
	if ttl <= 0 {
		ttl = constants.TTL_NAV_CONTEXT
	}
	return &memoryStore{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *memoryStore) Put(ctx context.Context, kind Kind, payload interface{}) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode %s context: %w", kind, err)
	}

	token := uuid.New().String()
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, key)
		}
	}
	s.entries[constants.BuildNavContextKey(string(kind), token)] = entry{
		data:      data,
		expiresAt: now.Add(s.ttl),
	}
	return token, nil
}

func (s *memoryStore) Take(ctx context.Context, kind Kind, token string, dest interface{}) error {
	if strings.TrimSpace(token) == "" {
		return ErrContextNotFound
	}
	key := constants.BuildNavContextKey(string(kind), token)

	s.mu.Lock()
	e, ok := s.entries[key]
	delete(s.entries, key)
	s.mu.Unlock()

	if !ok || s.now().After(e.expiresAt) {
		return ErrContextNotFound
	}
	if err := json.Unmarshal(e.data, dest); err != nil {
		return fmt.Errorf("failed to decode %s context: %w", kind, err)
	}
	return nil
}

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a store shared by every BFF instance
func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	if ttl <= 0 {
		ttl = constants.TTL_NAV_CONTEXT
	}
	return &redisStore{client: client, ttl: ttl}
}

func (s *redisStore) Put(ctx context.Context, kind Kind, payload interface{}) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode %s context: %w", kind, err)
	}

	token := uuid.New().String()
	key := constants.BuildNavContextKey(string(kind), token)
	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store %s context: %w", kind, err)
	}
	return token, nil
}

func (s *redisStore) Take(ctx context.Context, kind Kind, token string, dest interface{}) error {
	if strings.TrimSpace(token) == "" {
		return ErrContextNotFound
	}

	data, err := s.client.GetDel(ctx, constants.BuildNavContextKey(string(kind), token)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return ErrContextNotFound
		}
		return fmt.Errorf("failed to take %s context: %w", kind, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to decode %s context: %w", kind, err)
	}
	return nil
}

// PutCheckout stores a checkout context and returns its token
func PutCheckout(ctx context.Context, store Store, c CheckoutContext) (string, error) {
	if !c.Valid() {
		return "", ErrInvalidContext
	}
	return store.Put(ctx, KindCheckout, c)
}

// TakeCheckout consumes the checkout context behind token. A missing or
// incomplete context is ErrContextNotFound or ErrInvalidContext.
func TakeCheckout(ctx context.Context, store Store, token string) (*CheckoutContext, error) {
	var c CheckoutContext
	if err := store.Take(ctx, KindCheckout, token, &c); err != nil {
		return nil, err
	}
	if !c.Valid() {
		return nil, ErrInvalidContext
	}
	return &c, nil
}

// PutConfirmation stores a confirmation context and returns its token
func PutConfirmation(ctx context.Context, store Store, c ConfirmationContext) (string, error) {
	if c.ReferenceID == "" {
		return "", ErrInvalidContext
	}
	return store.Put(ctx, KindConfirmation, c)
}

// TakeConfirmation consumes the confirmation context behind token
func TakeConfirmation(ctx context.Context, store Store, token string) (*ConfirmationContext, error) {
	var c ConfirmationContext
	if err := store.Take(ctx, KindConfirmation, token, &c); err != nil {
		return nil, err
	}
	if c.ReferenceID == "" {
		return nil, ErrInvalidContext
	}
	return &c, nil
}
