package cart_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flappshop/shop-service/internal/cart"
	"github.com/flappshop/shop-service/internal/testutil"
)

func TestPostgresStore(t *testing.T) {
	db := testutil.StartPostgres(t)
	ctx := context.Background()

	store := cart.NewPostgresStore(db, nil)

	t.Run("load absent", func(t *testing.T) {
		c, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Nil(t, c)
	})

	saved := &cart.Cart{
		Products: []cart.Item{
			{ProductID: 3, Quantity: 1, Price: 12.5, Discount: 5, Title: "thing", Thumbnail: "https://img/t"},
		},
		CustomerData: cart.CustomerData{Name: "n", Phone: "p", Address: "a", Commune: "c", ShippingStreet: "a"},
	}

	t.Run("save and load round trip", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, saved))

		got, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, saved, got)
	})

	t.Run("save overwrites wholesale", func(t *testing.T) {
		replacement := saved.Clone()
		replacement.Products = []cart.Item{{ProductID: 9, Quantity: 2, Price: 1}}
		require.NoError(t, store.Save(ctx, replacement))

		got, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, replacement, got)
	})

	t.Run("corrupt payload treated as absent", func(t *testing.T) {
		_, err := db.ExecContext(ctx,
			`UPDATE cart_store SET payload = '{"schemaVersion": 99}' WHERE storage_key = $1`, cart.StorageKey)
		require.NoError(t, err)

		got, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("clear removes entry and is idempotent", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, saved))
		require.NoError(t, store.Clear(ctx))

		got, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Nil(t, got)

		require.NoError(t, store.Clear(ctx))
	})
}
