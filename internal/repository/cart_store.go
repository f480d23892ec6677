package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"vision-vogue/internal/domain"

	"github.com/redis/go-redis/v9"
)

// Session state lives under one key per concern, mirroring the two
// local-storage keys the storefront UI persists:
//   cart:<session>  - JSON array of cart items
//   likes:<session> - JSON array of liked products
const (
	cartKeyPrefix  = "cart:"
	likesKeyPrefix = "likes:"

	// defaultSessionTTL bounds how long abandoned carts and likes are
	// kept when no TTL is configured.
	defaultSessionTTL = 30 * 24 * time.Hour
)

// CartStore persists per-session carts.
type CartStore interface {
	Load(ctx context.Context, session string) (*domain.Cart, error)
	Save(ctx context.Context, session string, cart *domain.Cart) error
	Clear(ctx context.Context, session string) error
}

// LikesStore persists per-session liked products.
type LikesStore interface {
	Load(ctx context.Context, session string) ([]domain.Product, error)
	Save(ctx context.Context, session string, liked []domain.Product) error
}

type redisCartStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCartStore creates a CartStore backed by redis. Keys expire
// after ttl; a non-positive ttl falls back to the default.
func NewRedisCartStore(client *redis.Client, ttl time.Duration) CartStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &redisCartStore{client: client, ttl: ttl}
}

func (s *redisCartStore) Load(ctx context.Context, session string) (*domain.Cart, error) {
	data, err := s.client.Get(ctx, cartKeyPrefix+session).Bytes()
	if err == redis.Nil {
		return domain.NewCart(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var items []domain.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}

	cart := &domain.Cart{Items: items}
	cart.Recalculate()
	return cart, nil
}

func (s *redisCartStore) Save(ctx context.Context, session string, cart *domain.Cart) error {
	// Only the items are persisted; totals are derived on load.
	data, err := json.Marshal(cart.Items)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	if err := s.client.Set(ctx, cartKeyPrefix+session, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

func (s *redisCartStore) Clear(ctx context.Context, session string) error {
	if err := s.client.Del(ctx, cartKeyPrefix+session).Err(); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

type redisLikesStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisLikesStore creates a LikesStore backed by redis. Keys expire
// after ttl; a non-positive ttl falls back to the default.
func NewRedisLikesStore(client *redis.Client, ttl time.Duration) LikesStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &redisLikesStore{client: client, ttl: ttl}
}

func (s *redisLikesStore) Load(ctx context.Context, session string) ([]domain.Product, error) {
	data, err := s.client.Get(ctx, likesKeyPrefix+session).Bytes()
	if err == redis.Nil {
		return []domain.Product{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load likes: %w", err)
	}

	var liked []domain.Product
	if err := json.Unmarshal(data, &liked); err != nil {
		return nil, fmt.Errorf("failed to decode likes: %w", err)
	}
	return liked, nil
}

func (s *redisLikesStore) Save(ctx context.Context, session string, liked []domain.Product) error {
	data, err := json.Marshal(liked)
	if err != nil {
		return fmt.Errorf("failed to encode likes: %w", err)
	}

	if err := s.client.Set(ctx, likesKeyPrefix+session, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save likes: %w", err)
	}
	return nil
}

// memoryCartStore keeps carts in process memory. Used when redis is not
// configured; sessions do not survive a restart.
type memoryCartStore struct {
	mu    sync.RWMutex
	carts map[string][]domain.CartItem
}

// NewMemoryCartStore creates an in-memory CartStore.
func NewMemoryCartStore() CartStore {
	return &memoryCartStore{carts: make(map[string][]domain.CartItem)}
}

func (s *memoryCartStore) Load(ctx context.Context, session string) (*domain.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items, ok := s.carts[session]
	if !ok {
		return domain.NewCart(), nil
	}

	cart := &domain.Cart{Items: make([]domain.CartItem, len(items))}
	copy(cart.Items, items)
	cart.Recalculate()
	return cart, nil
}

func (s *memoryCartStore) Save(ctx context.Context, session string, cart *domain.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]domain.CartItem, len(cart.Items))
	copy(items, cart.Items)
	s.carts[session] = items
	return nil
}

func (s *memoryCartStore) Clear(ctx context.Context, session string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, session)
	return nil
}

type memoryLikesStore struct {
	mu    sync.RWMutex
	likes map[string][]domain.Product
}

// NewMemoryLikesStore creates an in-memory LikesStore.
func NewMemoryLikesStore() LikesStore {
	return &memoryLikesStore{likes: make(map[string][]domain.Product)}
}

func (s *memoryLikesStore) Load(ctx context.Context, session string) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	liked := make([]domain.Product, len(s.likes[session]))
	copy(liked, s.likes[session])
	return liked, nil
}

func (s *memoryLikesStore) Save(ctx context.Context, session string, liked []domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]domain.Product, len(liked))
	copy(copied, liked)
	s.likes[session] = copied
	return nil
}
