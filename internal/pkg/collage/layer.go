package collage

import "math"

// Default placement and appearance values applied wherever a persisted
// record does not carry the attribute.
const (
	DefaultX        float64 = 0
	DefaultY        float64 = 0
	DefaultWidth    float64 = 100
	DefaultHeight   float64 = 100
	DefaultRotation float64 = 0
	DefaultZIndex   int     = 0
	DefaultOpacity  float64 = 1
)

// Interactive resize bounds. The editor clamps to this range before the
// model is touched; the model itself accepts any positive size.
const (
	MinLayerSize float64 = 50
	MaxLayerSize float64 = 300
)

// RotationStep is the increment applied per rotate action, in degrees.
const RotationStep float64 = 90

// Layer is one positioned image instance inside a composition. A layer has
// no stable id: for the lifetime of an editing session it is addressed by
// its index in the composition. In-memory layers are always fully
// normalized; absence of attributes only exists on the wire shapes.
type Layer struct {
	ImageURL string  `json:"imageUrl"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation float64 `json:"rotation"`
	ZIndex   int     `json:"zIndex"`
	Opacity  float64 `json:"opacity"`
	Flipped  bool    `json:"flipped"`
}

// NewLayer returns a layer for the given image with every attribute set to
// its default. Freshly added layers always start at the canvas origin.
func NewLayer(imageURL string) Layer {
	return Layer{
		ImageURL: imageURL,
		X:        DefaultX,
		Y:        DefaultY,
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		Rotation: DefaultRotation,
		ZIndex:   DefaultZIndex,
		Opacity:  DefaultOpacity,
		Flipped:  false,
	}
}

// WithPosition returns a copy of the layer moved to x,y. The canvas is
// unbounded, off-canvas positions are legal.
func (l Layer) WithPosition(x, y float64) Layer {
	l.X = x
	l.Y = y
	return l
}

// WithSize returns a copy of the layer resized to width,height.
func (l Layer) WithSize(width, height float64) Layer {
	l.Width = width
	l.Height = height
	return l
}

// Rotated returns a copy of the layer rotated by another 90 degrees. The
// stored value accumulates without modulo reduction so that records that
// already hold values beyond 360 keep their meaning.
func (l Layer) Rotated() Layer {
	l.Rotation += RotationStep
	return l
}

// FlippedCopy returns a copy with the horizontal mirror flag toggled.
func (l Layer) FlippedCopy() Layer {
	l.Flipped = !l.Flipped
	return l
}

// WithOpacity returns a copy with the given opacity. The caller constrains
// the value to [0,1].
func (l Layer) WithOpacity(value float64) Layer {
	l.Opacity = value
	return l
}

// WithImageURL returns a copy pointing at a different image asset. Used
// when background removal swaps the visual in place.
func (l Layer) WithImageURL(url string) Layer {
	l.ImageURL = url
	return l
}

// DisplayRotation reduces the accumulated rotation to [0,360) for
// rendering. The stored value is untouched.
func (l Layer) DisplayRotation() float64 {
	r := math.Mod(l.Rotation, 360)
	if r < 0 {
		r += 360
	}
	return r
}

// ClampSize forces a size into the interactive resize bounds.
func ClampSize(v float64) float64 {
	if v < MinLayerSize {
		return MinLayerSize
	}
	if v > MaxLayerSize {
		return MaxLayerSize
	}
	return v
}

// ClampOpacity forces an opacity value into [0,1].
func ClampOpacity(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
