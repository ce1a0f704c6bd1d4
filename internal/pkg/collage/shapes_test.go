package collage

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftItemNormalizedFillsDefaults(t *testing.T) {
	n := DraftItem{ImageURL: "a.png"}.Normalized()

	assert.Equal(t, float64(0), *n.X)
	assert.Equal(t, float64(0), *n.Y)
	assert.Equal(t, float64(100), *n.Width)
	assert.Equal(t, float64(100), *n.Height)
	assert.Equal(t, float64(0), *n.Rotation)
	assert.Equal(t, 0, *n.ZIndex)
	assert.Equal(t, float64(1), *n.Opacity)
	assert.False(t, *n.Flipped)
}

func TestDraftItemNormalizedIdempotent(t *testing.T) {
	it := DraftItem{ImageURL: "a.png", X: ptrFloat(12), Opacity: ptrFloat(0.4)}
	once := it.Normalized()
	twice := once.Normalized()
	assert.Equal(t, once, twice)
}

// Zero opacity is a legal stored value and must not be replaced by the
// default.
func TestNormalizedKeepsExplicitZeroOpacity(t *testing.T) {
	n := DraftItem{ImageURL: "a.png", Opacity: ptrFloat(0)}.Normalized()
	assert.Equal(t, float64(0), *n.Opacity)

	c := CollageItem{ImageURL: "a.png", Opacity: ptrFloat(0)}.Normalized()
	assert.Equal(t, float64(0), *c.Opacity)
}

// A published record missing the layout block entirely normalizes to the
// documented defaults.
func TestCollageItemMissingLayout(t *testing.T) {
	l := CollageItem{ImageURL: "a.png"}.Layer()

	assert.Equal(t, Layer{
		ImageURL: "a.png",
		X:        0, Y: 0,
		Width: 100, Height: 100,
		Rotation: 0, ZIndex: 0,
		Opacity: 1, Flipped: false,
	}, l)
}

func TestDraftShapeRoundTrip(t *testing.T) {
	raw := []DraftItem{
		{ImageURL: "a.png", X: ptrFloat(10), Y: ptrFloat(20), Width: ptrFloat(150), Height: ptrFloat(90), Rotation: ptrFloat(450), ZIndex: ptrInt(2), Opacity: ptrFloat(0.7), Flipped: ptrBool(true)},
		{ImageURL: "b.png"},
	}

	got := ToDraftItems(FromDraftItems(raw))

	require.Len(t, got, 2)
	assert.Equal(t, raw[0], got[0])
	// missing fields come back filled with their defaults
	assert.Equal(t, raw[1].Normalized(), got[1])
}

func TestCollageShapeRoundTrip(t *testing.T) {
	raw := []CollageItem{
		{
			ImageURL: "a.png",
			Layout:   &Layout{X: ptrFloat(5), Y: ptrFloat(6), Width: ptrFloat(200), Height: ptrFloat(120), Rotation: ptrFloat(180), ZIndex: ptrInt(1)},
			Opacity:  ptrFloat(0.2),
			Flipped:  ptrBool(true),
		},
		{ImageURL: "b.png"},
	}

	got := ToCollageItems(FromCollageItems(raw))

	require.Len(t, got, 2)
	assert.Equal(t, raw[0], got[0])
	assert.Equal(t, raw[1].Normalized(), got[1])
}

// The two shapes converge on the same in-memory layer.
func TestShapesConvergeOnCanonicalLayer(t *testing.T) {
	d := DraftItem{ImageURL: "a.png", X: ptrFloat(3), Width: ptrFloat(80), Flipped: ptrBool(true)}
	c := CollageItem{ImageURL: "a.png", Layout: &Layout{X: ptrFloat(3), Width: ptrFloat(80)}, Flipped: ptrBool(true)}
	assert.Equal(t, d.Layer(), c.Layer())
}

func TestShapeJSONFieldNames(t *testing.T) {
	data, err := json.Marshal(ToCollageItems(Composition{NewLayer("a.png")})[0])
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Contains(t, m, "imageUrl")
	assert.Contains(t, m, "layout")
	assert.Contains(t, m, "opacity")
	assert.Contains(t, m, "flipped")

	layout := m["layout"].(map[string]any)
	for _, k := range []string{"x", "y", "width", "height", "rotation", "zIndex"} {
		assert.Contains(t, layout, k)
	}
}
