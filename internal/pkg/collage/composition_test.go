package collage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func comp(urls ...string) Composition {
	c := Composition{}
	for _, u := range urls {
		c = c.Append(NewLayer(u))
	}
	return c
}

func urls(c Composition) []string {
	out := make([]string, 0, len(c))
	for _, l := range c {
		out = append(out, l.ImageURL)
	}
	return out
}

func TestCompositionAppendLeavesOriginal(t *testing.T) {
	a := comp("a.png")
	b := a.Append(NewLayer("b.png"))

	assert.Len(t, a, 1)
	assert.Len(t, b, 2)
	assert.Equal(t, []string{"a.png", "b.png"}, urls(b))
}

func TestCompositionRemoveAtShiftsIndices(t *testing.T) {
	c := comp("a.png", "b.png", "c.png")
	next := c.RemoveAt(1)

	assert.Equal(t, []string{"a.png", "c.png"}, urls(next))
	assert.Equal(t, []string{"a.png", "b.png", "c.png"}, urls(c), "old snapshot untouched")

	// what used to be index 2 is now addressable at index 1
	moved := next.ReplaceAt(1, func(l Layer) Layer { return l.WithPosition(9, 9) })
	assert.Equal(t, "c.png", moved[1].ImageURL)
	assert.Equal(t, float64(9), moved[1].X)
}

func TestCompositionReplaceAtCopies(t *testing.T) {
	c := comp("a.png", "b.png")
	next := c.ReplaceAt(0, func(l Layer) Layer { return l.WithOpacity(0.5) })

	assert.Equal(t, 0.5, next[0].Opacity)
	assert.Equal(t, float64(1), c[0].Opacity)
	assert.Equal(t, c[1], next[1])
}

func TestCompositionDuplicateImagesAllowed(t *testing.T) {
	c := comp("a.png", "a.png")
	assert.Len(t, c, 2)
}

func TestCompositionInBounds(t *testing.T) {
	c := comp("a.png", "b.png")

	assert.True(t, c.InBounds(0))
	assert.True(t, c.InBounds(1))
	assert.False(t, c.InBounds(2))
	assert.False(t, c.InBounds(-1))
	assert.False(t, Composition{}.InBounds(0))
}

func TestCompositionCloneNil(t *testing.T) {
	var c Composition
	clone := c.Clone()
	assert.NotNil(t, clone)
	assert.Len(t, clone, 0)
}
