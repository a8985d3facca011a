package repositories_test

import (
	"fmt"
	"sync"
	"testing"

	"computershop/internal/models"
	"computershop/internal/repositories"

	"github.com/stretchr/testify/assert"
)

func TestSessionCartStore_GetCreatesLazily(t *testing.T) {
	store := repositories.NewSessionCartStore()

	cart, err := store.Get("session-1")
	assert.NoError(t, err)
	assert.NotEmpty(t, cart.ID)
	assert.Empty(t, cart.Items)

	// The same token keeps yielding the same cart
	again, err := store.Get("session-1")
	assert.NoError(t, err)
	assert.Equal(t, cart.ID, again.ID)

	// A different token gets its own cart
	other, err := store.Get("session-2")
	assert.NoError(t, err)
	assert.NotEqual(t, cart.ID, other.ID)
}

func TestSessionCartStore_GetReturnsCopy(t *testing.T) {
	store := repositories.NewSessionCartStore()
	assert.NoError(t, store.AddItem("session-1", models.CartItem{ProductID: "prod-1", Quantity: 1, Price: 10}))

	cart, err := store.Get("session-1")
	assert.NoError(t, err)
	cart.Items[0].Quantity = 99

	// Mutating the snapshot must not touch the stored cart
	cart, err = store.Get("session-1")
	assert.NoError(t, err)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestSessionCartStore_ItemLifecycle(t *testing.T) {
	store := repositories.NewSessionCartStore()

	assert.NoError(t, store.AddItem("session-1", models.CartItem{ProductID: "prod-1", Quantity: 2, Price: 10}))
	cart, err := store.Get("session-1")
	assert.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.NotEmpty(t, cart.Items[0].ID) // line IDs are assigned on add
	assert.Equal(t, cart.ID, cart.Items[0].CartID)
	itemID := cart.Items[0].ID

	assert.NoError(t, store.UpdateItem("session-1", itemID, 4))
	cart, _ = store.Get("session-1")
	assert.Equal(t, 4, cart.Items[0].Quantity)

	assert.ErrorIs(t, store.UpdateItem("session-1", "item-404", 1), models.ErrNotFound)
	assert.ErrorIs(t, store.RemoveItem("session-1", "item-404"), models.ErrNotFound)

	assert.NoError(t, store.RemoveItem("session-1", itemID))
	cart, _ = store.Get("session-1")
	assert.Empty(t, cart.Items)

	// Clear works on an already-empty cart
	assert.NoError(t, store.Clear("session-1"))
	assert.NoError(t, store.Clear("session-1"))
}

func TestSessionCartStore_ConcurrentSessions(t *testing.T) {
	store := repositories.NewSessionCartStore()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			token := fmt.Sprintf("session-%d", n)
			for j := 0; j < 20; j++ {
				_ = store.AddItem(token, models.CartItem{ProductID: "prod-1", Quantity: 1, Price: 1})
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < 10; i++ {
		cart, err := store.Get(fmt.Sprintf("session-%d", i))
		assert.NoError(t, err)
		assert.Len(t, cart.Items, 20)
	}
}
