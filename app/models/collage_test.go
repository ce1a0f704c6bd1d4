package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/picpatch/PicPatch/internal/pkg/collage"
)

func TestCollageThumbnailURL(t *testing.T) {
	c := &Collage{}
	assert.Equal(t, "", c.ThumbnailURL())

	c.Items = []collage.CollageItem{
		{ImageURL: "https://img.example.com/first.png"},
		{ImageURL: "https://img.example.com/second.png"},
	}
	assert.Equal(t, "https://img.example.com/first.png", c.ThumbnailURL())
}

func TestCollageComposition(t *testing.T) {
	c := &Collage{Items: []collage.CollageItem{
		{ImageURL: "https://img.example.com/a.png"},
	}}

	comp := c.Composition()
	assert.Len(t, comp, 1)
	// missing layout normalizes to the defaults
	assert.Equal(t, collage.DefaultWidth, comp[0].Width)
	assert.Equal(t, collage.DefaultOpacity, comp[0].Opacity)
}

func TestDraftCompositionRoundTrip(t *testing.T) {
	d := &Draft{}
	comp := collage.Composition{
		collage.NewLayer("https://img.example.com/a.png").WithPosition(10, 20),
	}
	d.SetComposition(comp)

	restored := d.Composition()
	assert.Equal(t, comp, restored)
}

func TestChallengeIsOpen(t *testing.T) {
	assert.True(t, (&Challenge{}).IsOpen())

	past := time.Now().Add(-time.Hour)
	assert.False(t, (&Challenge{Deadline: &past}).IsOpen())

	future := time.Now().Add(time.Hour)
	assert.True(t, (&Challenge{Deadline: &future}).IsOpen())
}
