package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
)

// PostgresStore persists the cart as one JSON row keyed by StorageKey.
// Single shopper, single writer; every operation replaces the whole blob.
type PostgresStore struct {
	db     *sql.DB
	key    string
	logger *log.Logger
}

func NewPostgresStore(db *sql.DB, logger *log.Logger) *PostgresStore {
	return &PostgresStore{db: db, key: StorageKey, logger: logger}
}

func (s *PostgresStore) Load(ctx context.Context) (*Cart, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM cart_store WHERE storage_key = $1`, s.key).Scan(&payload)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("load cart: %w", err)
	}

	c, err := Decode(payload)
	if err != nil {
		if errors.Is(err, ErrCorrupt) {
			// Recoverable: a blob we cannot read is the same as no saved cart.
			if s.logger != nil {
				s.logger.Printf("discarding saved cart: %v", err)
			}
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func (s *PostgresStore) Save(ctx context.Context, c *Cart) error {
	payload, err := Encode(c)
	if err != nil {
		return err
	}

	const upsertSQL = `
INSERT INTO cart_store (storage_key, payload, updated_at)
VALUES ($1, $2, NOW())
ON CONFLICT (storage_key) DO UPDATE
SET payload = EXCLUDED.payload, updated_at = NOW()
`
	if _, err := s.db.ExecContext(ctx, upsertSQL, s.key, payload); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func (s *PostgresStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM cart_store WHERE storage_key = $1`, s.key); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
