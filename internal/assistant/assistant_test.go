package assistant

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeHash(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, ComputeHash("resistor", "led"), ComputeHash("resistor", "led"))
	})

	t.Run("query and context are hashed separately", func(t *testing.T) {
		// The separator keeps ("ab","c") and ("a","bc") distinct.
		assert.NotEqual(t, ComputeHash("ab", "c"), ComputeHash("a", "bc"))
	})

	t.Run("context participates in the key", func(t *testing.T) {
		assert.NotEqual(t, ComputeHash("resistor", ""), ComputeHash("resistor", "led"))
	})
}

func TestCache(t *testing.T) {
	t.Run("set then get", func(t *testing.T) {
		c := NewCache(10)
		c.Set("k1", "enhanced")

		got, ok := c.Get("k1")
		require.True(t, ok)
		assert.Equal(t, "enhanced", got)
	})

	t.Run("miss", func(t *testing.T) {
		c := NewCache(10)
		_, ok := c.Get("absent")
		assert.False(t, ok)
	})

	t.Run("lru eviction at capacity", func(t *testing.T) {
		c := NewCache(2)
		c.Set("a", "1")
		c.Set("b", "2")
		c.Set("c", "3")

		_, ok := c.Get("a")
		assert.False(t, ok, "oldest entry should be evicted")
		assert.Equal(t, 2, c.Size())
	})

	t.Run("non-positive capacity falls back to a default", func(t *testing.T) {
		c := NewCache(0)
		for i := 0; i < 50; i++ {
			c.Set(fmt.Sprintf("k%d", i), "v")
		}
		assert.Equal(t, 50, c.Size())
	})
}
