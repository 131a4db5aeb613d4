package cache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skillhub/learnkit/pkg/cache"
)

func TestLRU_Basic(t *testing.T) {
	t.Run("put and get", func(t *testing.T) {
		c := cache.NewLRU[string, int](3)

		c.Put("a", 1)
		c.Put("b", 2)
		c.Put("c", 3)

		val, ok := c.Get("a")
		assert.True(t, ok)
		assert.Equal(t, 1, val)

		assert.Equal(t, 3, c.Len())
	})

	t.Run("get non-existent", func(t *testing.T) {
		c := cache.NewLRU[string, int](3)

		val, ok := c.Get("missing")
		assert.False(t, ok)
		assert.Equal(t, 0, val)
	})

	t.Run("put replaces existing", func(t *testing.T) {
		c := cache.NewLRU[string, int](3)

		c.Put("a", 1)
		c.Put("a", 2)

		val, ok := c.Get("a")
		assert.True(t, ok)
		assert.Equal(t, 2, val)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("remove", func(t *testing.T) {
		c := cache.NewLRU[string, int](3)

		c.Put("a", 1)
		assert.True(t, c.Remove("a"))
		assert.False(t, c.Remove("a"))

		_, ok := c.Get("a")
		assert.False(t, ok)
	})

	t.Run("purge", func(t *testing.T) {
		c := cache.NewLRU[string, int](3)

		c.Put("a", 1)
		c.Put("b", 2)
		c.Purge()

		assert.Equal(t, 0, c.Len())
	})

	t.Run("zero capacity panics", func(t *testing.T) {
		assert.Panics(t, func() {
			cache.NewLRU[string, int](0)
		})
	})
}

func TestLRU_Eviction(t *testing.T) {
	t.Run("evicts least recently used", func(t *testing.T) {
		c := cache.NewLRU[string, int](2)

		c.Put("a", 1)
		c.Put("b", 2)
		c.Put("c", 3) // evicts "a"

		_, ok := c.Get("a")
		assert.False(t, ok)

		val, ok := c.Get("b")
		assert.True(t, ok)
		assert.Equal(t, 2, val)

		assert.Equal(t, 2, c.Len())
	})

	t.Run("get refreshes recency", func(t *testing.T) {
		c := cache.NewLRU[string, int](2)

		c.Put("a", 1)
		c.Put("b", 2)

		// Touch "a" so "b" becomes the eviction candidate.
		_, _ = c.Get("a")
		c.Put("c", 3)

		_, ok := c.Get("b")
		assert.False(t, ok)

		_, ok = c.Get("a")
		assert.True(t, ok)
	})
}
