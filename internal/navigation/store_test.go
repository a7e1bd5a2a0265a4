package navigation

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkoutContext() CheckoutContext {
	return CheckoutContext{
		ExperienceID:    "1",
		ExperienceTitle: "Kayaking",
		Date:            "Oct 22",
		Time:            "07:00 am",
		Quantity:        2,
		UnitPrice:       999,
		Subtotal:        1998,
		Taxes:           59,
		Total:           2057,
	}
}

func TestCheckoutContext_Valid(t *testing.T) {
	var missing *CheckoutContext
	assert.False(t, missing.Valid())

	c := checkoutContext()
	assert.True(t, c.Valid())

	noTime := checkoutContext()
	noTime.Time = ""
	assert.False(t, noTime.Valid())

	noQuantity := checkoutContext()
	noQuantity.Quantity = 0
	assert.False(t, noQuantity.Valid())
}

func TestMemoryStore_OneShot(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	token, err := PutCheckout(ctx, store, checkoutContext())
	require.NoError(t, err)

	got, err := TakeCheckout(ctx, store, token)
	require.NoError(t, err)
	assert.Equal(t, checkoutContext(), *got)

	_, err = TakeCheckout(ctx, store, token)
	assert.ErrorIs(t, err, ErrContextNotFound)
}

func TestMemoryStore_KindsDoNotMix(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	token, err := PutConfirmation(ctx, store, ConfirmationContext{ReferenceID: "HD-1"})
	require.NoError(t, err)

	_, err = TakeCheckout(ctx, store, token)
	assert.ErrorIs(t, err, ErrContextNotFound)

	got, err := TakeConfirmation(ctx, store, token)
	require.NoError(t, err)
	assert.Equal(t, "HD-1", got.ReferenceID)
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore(time.Minute).(*memoryStore)
	now := time.Date(2025, 10, 20, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	token, err := PutCheckout(ctx, store, checkoutContext())
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = TakeCheckout(ctx, store, token)
	assert.ErrorIs(t, err, ErrContextNotFound)
}

func TestStore_MissingAndInvalid(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	_, err := TakeCheckout(ctx, store, "")
	assert.ErrorIs(t, err, ErrContextNotFound)

	_, err = TakeCheckout(ctx, store, "does-not-exist")
	assert.ErrorIs(t, err, ErrContextNotFound)

	incomplete := checkoutContext()
	incomplete.Date = ""
	_, err = PutCheckout(ctx, store, incomplete)
	assert.ErrorIs(t, err, ErrInvalidContext)

	token, err := store.Put(ctx, KindCheckout, map[string]string{"experienceId": "1"})
	require.NoError(t, err)
	_, err = TakeCheckout(ctx, store, token)
	assert.ErrorIs(t, err, ErrInvalidContext)

	_, err = PutConfirmation(ctx, store, ConfirmationContext{})
	assert.ErrorIs(t, err, ErrInvalidContext)
}

func TestRedisStore_OneShot(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr, DialTimeout: 200 * time.Millisecond})
	defer client.Close()

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis not available at %s: %v", addr, err)
	}

	store := NewRedisStore(client, time.Minute)
	token, err := PutCheckout(ctx, store, checkoutContext())
	require.NoError(t, err)

	got, err := TakeCheckout(ctx, store, token)
	require.NoError(t, err)
	assert.Equal(t, checkoutContext(), *got)

	_, err = TakeCheckout(ctx, store, token)
	assert.ErrorIs(t, err, ErrContextNotFound)
}
