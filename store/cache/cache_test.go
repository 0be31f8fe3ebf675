package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache_BasicOperations(t *testing.T) {
	ctx := context.Background()
	c := New(Config{DefaultTTL: time.Minute})
	defer c.Close()

	t.Run("SetAndGet", func(t *testing.T) {
		c.Set(ctx, "key1", "value1")

		val, ok := c.Get(ctx, "key1")
		assert.True(t, ok)
		assert.Equal(t, "value1", val)
	})

	t.Run("GetNonExistent", func(t *testing.T) {
		val, ok := c.Get(ctx, "nonexistent")
		assert.False(t, ok)
		assert.Nil(t, val)
	})

	t.Run("UpdateExisting", func(t *testing.T) {
		c.Set(ctx, "key2", "original")
		c.Set(ctx, "key2", "updated")

		val, ok := c.Get(ctx, "key2")
		assert.True(t, ok)
		assert.Equal(t, "updated", val)
	})

	t.Run("Delete", func(t *testing.T) {
		c.Set(ctx, "key3", "value3")
		c.Delete(ctx, "key3")

		_, ok := c.Get(ctx, "key3")
		assert.False(t, ok)
	})
}

func TestCache_Expiration(t *testing.T) {
	ctx := context.Background()
	c := New(Config{DefaultTTL: time.Minute})
	defer c.Close()

	c.SetWithTTL(ctx, "expiring", "value", 30*time.Millisecond)

	val, ok := c.Get(ctx, "expiring")
	assert.True(t, ok)
	assert.Equal(t, "value", val)

	time.Sleep(40 * time.Millisecond)

	_, ok = c.Get(ctx, "expiring")
	assert.False(t, ok)
}

func TestCache_NoTTL(t *testing.T) {
	ctx := context.Background()
	c := New(Config{})
	defer c.Close()

	c.Set(ctx, "forever", 42)
	time.Sleep(10 * time.Millisecond)

	val, ok := c.Get(ctx, "forever")
	assert.True(t, ok)
	assert.Equal(t, 42, val)
}

func TestCache_MaxItems(t *testing.T) {
	ctx := context.Background()
	c := New(Config{MaxItems: 2})
	defer c.Close()

	c.Set(ctx, "a", 1)
	c.Set(ctx, "b", 2)
	c.Set(ctx, "c", 3)

	assert.LessOrEqual(t, c.Size(), int64(2))
	_, ok := c.Get(ctx, "c")
	assert.True(t, ok)
}

func TestCache_Clear(t *testing.T) {
	ctx := context.Background()
	evicted := 0
	c := New(Config{OnEviction: func(string, any) { evicted++ }})
	defer c.Close()

	c.Set(ctx, "a", 1)
	c.Set(ctx, "b", 2)
	c.Clear(ctx)

	assert.Equal(t, int64(0), c.Size())
	assert.Equal(t, 2, evicted)
}
