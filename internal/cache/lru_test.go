package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLRU(t *testing.T) {
	t.Run("basic operations", func(t *testing.T) {
		c := NewLRU[int](4)

		_, found := c.Get("missing")
		assert.False(t, found)

		c.Set("a", 1)
		got, found := c.Get("a")
		assert.True(t, found)
		assert.Equal(t, 1, got)
		assert.Equal(t, 1, c.Len())

		c.Set("a", 2)
		got, _ = c.Get("a")
		assert.Equal(t, 2, got, "set overwrites")
		assert.Equal(t, 1, c.Len())

	})

	t.Run("evicts least recently used", func(t *testing.T) {
		c := NewLRU[string](2)
		assert.False(t, c.Set("a", "A"))
		assert.False(t, c.Set("b", "B"))

		// Touch a so b becomes the eviction candidate.
		_, _ = c.Get("a")
		assert.True(t, c.Set("c", "C"))

		_, found := c.Get("b")
		assert.False(t, found)
		_, found = c.Get("a")
		assert.True(t, found)
		_, found = c.Get("c")
		assert.True(t, found)
		assert.Equal(t, 2, c.Len())
	})

	t.Run("entries stay until evicted", func(t *testing.T) {
		c := NewLRU[int](2)
		c.Set("k", 1)
		for i := 0; i < 5; i++ {
			got, found := c.Get("k")
			assert.True(t, found)
			assert.Equal(t, 1, got)
		}
		c.Set("x", 2)
		_, found := c.Get("k")
		assert.True(t, found, "recently read entry survives a new insert")
	})

	t.Run("default capacity", func(t *testing.T) {
		assert.Equal(t, DefaultCapacity, NewLRU[int](0).Capacity())
	})

	t.Run("clear", func(t *testing.T) {
		c := NewLRU[int](2)
		c.Set("a", 1)
		c.Set("b", 2)
		c.Clear()
		assert.Equal(t, 0, c.Len())
		_, found := c.Get("a")
		assert.False(t, found)
	})
}
