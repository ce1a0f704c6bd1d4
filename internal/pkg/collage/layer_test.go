package collage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLayerDefaults(t *testing.T) {
	l := NewLayer("https://img.example/a.png")

	assert.Equal(t, "https://img.example/a.png", l.ImageURL)
	assert.Equal(t, float64(0), l.X)
	assert.Equal(t, float64(0), l.Y)
	assert.Equal(t, float64(100), l.Width)
	assert.Equal(t, float64(100), l.Height)
	assert.Equal(t, float64(0), l.Rotation)
	assert.Equal(t, 0, l.ZIndex)
	assert.Equal(t, float64(1), l.Opacity)
	assert.False(t, l.Flipped)
}

func TestLayerTransformsReturnCopies(t *testing.T) {
	orig := NewLayer("a.png")

	moved := orig.WithPosition(50, 75)
	assert.Equal(t, float64(50), moved.X)
	assert.Equal(t, float64(75), moved.Y)
	assert.Equal(t, float64(0), orig.X, "original must stay untouched")

	sized := orig.WithSize(120, 140)
	assert.Equal(t, float64(120), sized.Width)
	assert.Equal(t, float64(140), sized.Height)
	assert.Equal(t, float64(100), orig.Width)

	flipped := orig.FlippedCopy()
	assert.True(t, flipped.Flipped)
	assert.False(t, orig.Flipped)
	assert.False(t, flipped.FlippedCopy().Flipped)

	faded := orig.WithOpacity(0.3)
	assert.Equal(t, 0.3, faded.Opacity)
	assert.Equal(t, float64(1), orig.Opacity)
}

// Rotation accumulates without modulo reduction; only the display value is
// reduced.
func TestLayerRotationAccumulates(t *testing.T) {
	l := NewLayer("a.png")
	for i := 0; i < 4; i++ {
		l = l.Rotated()
	}

	assert.Equal(t, float64(360), l.Rotation)
	assert.Equal(t, float64(0), l.DisplayRotation())

	l = l.Rotated()
	assert.Equal(t, float64(450), l.Rotation)
	assert.Equal(t, float64(90), l.DisplayRotation())
}

func TestLayerRotateThreeTimes(t *testing.T) {
	l := NewLayer("a.png")
	l = l.Rotated().Rotated().Rotated()
	assert.Equal(t, float64(270), l.Rotation)
}

func TestClampSize(t *testing.T) {
	tests := []struct {
		name     string
		in       float64
		expected float64
	}{
		{"Below minimum", 10, 50},
		{"At minimum", 50, 50},
		{"In range", 180, 180},
		{"At maximum", 300, 300},
		{"Above maximum", 900, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClampSize(tt.in))
		})
	}
}

func TestClampOpacity(t *testing.T) {
	assert.Equal(t, float64(0), ClampOpacity(-0.5))
	assert.Equal(t, 0.4, ClampOpacity(0.4))
	assert.Equal(t, float64(1), ClampOpacity(1.7))
}
