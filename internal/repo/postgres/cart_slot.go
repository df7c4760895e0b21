package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Проверка, что CartSlot удовлетворяет интерфейсу CartStorage.
var _ ports.CartStorage = (*CartSlot)(nil)

// CartSlot — слот корзины в таблице cart_slots (одна строка на ключ слота).
type CartSlot struct {
	pool *pgxpool.Pool
	key  string
}

// NewCartSlot - конструктор CartSlot.
func NewCartSlot(pool *pgxpool.Pool, key string) *CartSlot { return &CartSlot{pool: pool, key: key} }

// Load — payload слота; нет строки — (nil, nil).
func (s *CartSlot) Load(ctx context.Context) ([]byte, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `
		SELECT payload FROM cart_slots WHERE slot_key = $1
	`, s.key).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: select cart slot: %v", domain.ErrPersistence, err)
	}
	return raw, nil
}

// Save — upsert по slot_key одной командой.
func (s *CartSlot) Save(ctx context.Context, raw []byte) error {
	if _, err := s.pool.Exec(ctx, `
		INSERT INTO cart_slots (slot_key, payload, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (slot_key) DO UPDATE SET
			payload = EXCLUDED.payload,
			updated_at = EXCLUDED.updated_at
	`, s.key, string(raw)); err != nil {
		return fmt.Errorf("%w: upsert cart slot: %v", domain.ErrPersistence, err)
	}
	return nil
}
