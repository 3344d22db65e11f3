package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// StorageKey is the single well-known key the cart is persisted under.
const StorageKey = "flappCart"

// schemaVersion tags the persisted blob so a future field change can be
// migrated instead of silently corrupting Load into "absent".
const schemaVersion = 1

// ErrCorrupt marks a persisted payload that cannot be decoded or carries an
// unknown schema version. Callers treat it as "no saved cart".
var ErrCorrupt = errors.New("cart payload corrupt")

// Store is the single source of truth for durable cart state.
//
// Load returns (nil, nil) when no cart is saved. Save is a full overwrite,
// last-writer-wins. Clear is idempotent and does not touch in-memory copies.
type Store interface {
	Load(ctx context.Context) (*Cart, error)
	Save(ctx context.Context, c *Cart) error
	Clear(ctx context.Context) error
}

type envelope struct {
	SchemaVersion int `json:"schemaVersion"`
	Cart
}

// Encode serializes a cart into the versioned persistence payload.
func Encode(c *Cart) ([]byte, error) {
	body, err := json.Marshal(envelope{SchemaVersion: schemaVersion, Cart: *c})
	if err != nil {
		return nil, fmt.Errorf("encode cart: %w", err)
	}
	return body, nil
}

// Decode parses a persistence payload. Malformed JSON or a schema version
// this build does not know yields ErrCorrupt.
func Decode(payload []byte) (*Cart, error) {
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if env.SchemaVersion != schemaVersion {
		return nil, fmt.Errorf("%w: unknown schema version %d", ErrCorrupt, env.SchemaVersion)
	}
	c := env.Cart
	return &c, nil
}
