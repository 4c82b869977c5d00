package calculate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorOrder(t *testing.T) {
	for _, src := range []string{"123", "123.2", "123e-1", "123.2e-1", "π×2"} {
		c := newCursor(src)
		for _, want := range src {
			got, ok := c.read()
			require.True(t, ok, "reading %q", src)
			assert.Equal(t, want, got, "reading %q", src)
		}
		_, ok := c.read()
		assert.False(t, ok, "reading %q past the end", src)
		_, ok = c.peek()
		assert.False(t, ok)
		assert.Equal(t, len([]rune(src)), c.offset())
	}
}

func TestCursorPeek(t *testing.T) {
	c := newCursor("ab")
	r, ok := c.peek()
	require.True(t, ok)
	assert.Equal(t, 'a', r)
	assert.Equal(t, 0, c.offset())
	c.read()
	r, _ = c.peek()
	assert.Equal(t, 'b', r)
}

func TestCursorRestore(t *testing.T) {
	for saved := 0; saved < 5; saved++ {
		c := newCursor("12345")
		for i := 0; i < saved; i++ {
			c.read()
		}
		want, _ := c.peek()
		cp := c.checkpoint()
		for {
			if _, ok := c.read(); !ok {
				break
			}
		}
		c.restore(cp)
		got, ok := c.peek()
		require.True(t, ok)
		assert.Equal(t, want, got)
		assert.Equal(t, saved, c.offset())
		assert.Empty(t, c.marks)
	}
}

func TestCursorNested(t *testing.T) {
	c := newCursor("abcdef")
	outer := c.checkpoint()
	c.read()
	mid := c.checkpoint()
	c.read()
	inner := c.checkpoint()
	c.read()
	c.commit(inner)
	assert.Equal(t, 3, c.offset())
	assert.Len(t, c.marks, 2)
	c.restore(mid)
	assert.Equal(t, 1, c.offset())
	c.read()
	c.read()
	// Restoring an outer checkpoint discards everything taken after it.
	c.checkpoint()
	c.restore(outer)
	assert.Equal(t, 0, c.offset())
	assert.Empty(t, c.marks)
	assert.Panics(t, func() { c.restore(mid) })
}

func TestCursorText(t *testing.T) {
	c := newCursor("1.5e3+2")
	for i := 0; i < 5; i++ {
		c.read()
	}
	assert.Equal(t, "1.5e3", c.text(0))
	assert.Equal(t, "e3", c.text(3))
}
