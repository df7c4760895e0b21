package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
	goredis "github.com/redis/go-redis/v9"
)

var _ ports.CartStorage = (*CartSlot)(nil)

// DefaultKeyPrefix — префикс ключей слотов корзины.
const DefaultKeyPrefix = "storefront:cart:"

// CartSlot — слот корзины в одном ключе Redis (GET/SET, без TTL).
type CartSlot struct {
	client goredis.UniversalClient
	key    string
}

// NewClient — клиент Redis с проверкой соединения (fail-fast).
func NewClient(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis %s: %w", addr, err)
	}
	return client, nil
}

// NewCartSlot — слот с ключом keyPrefix+slotKey; пустой префикс → DefaultKeyPrefix.
func NewCartSlot(client goredis.UniversalClient, keyPrefix, slotKey string) *CartSlot {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}
	return &CartSlot{client: client, key: keyPrefix + slotKey}
}

// Key — полный ключ слота.
func (s *CartSlot) Key() string { return s.key }

func (s *CartSlot) Load(ctx context.Context) ([]byte, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: redis get %s: %v", domain.ErrPersistence, s.key, err)
	}
	return raw, nil
}

// Save — SET перезаписывает значение атомарно.
func (s *CartSlot) Save(ctx context.Context, raw []byte) error {
	if err := s.client.Set(ctx, s.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("%w: redis set %s: %v", domain.ErrPersistence, s.key, err)
	}
	return nil
}
