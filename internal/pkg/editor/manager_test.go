package editor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/picpatch/PicPatch/internal/pkg/collage"
)

func TestManagerOpenAndGet(t *testing.T) {
	m := NewManager(time.Hour)

	s := m.Open(7, collage.Composition{collage.NewLayer("a.png")}, nil)
	require.NotEmpty(t, s.ID)
	assert.Equal(t, 1, m.Count())

	got, err := m.Get(s.ID, 7)
	require.NoError(t, err)
	assert.Same(t, s, got)
	assert.Len(t, got.Editor.Current(), 1)
}

func TestManagerGetUnknownSession(t *testing.T) {
	m := NewManager(time.Hour)

	_, err := m.Get("nope", 1)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

// A foreign user must not be able to address or probe the session.
func TestManagerGetForeignSession(t *testing.T) {
	m := NewManager(time.Hour)
	s := m.Open(7, nil, nil)

	_, err := m.Get(s.ID, 8)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManagerClose(t *testing.T) {
	m := NewManager(time.Hour)
	s := m.Open(7, nil, nil)

	// foreign user cannot close it
	m.Close(s.ID, 8)
	assert.Equal(t, 1, m.Count())

	m.Close(s.ID, 7)
	assert.Equal(t, 0, m.Count())

	// closing again is a no-op
	m.Close(s.ID, 7)
}

func TestManagerSweep(t *testing.T) {
	m := NewManager(time.Minute)
	fresh := m.Open(1, nil, nil)
	stale := m.Open(2, nil, nil)

	m.mu.Lock()
	m.sessions[stale.ID].lastUsed = time.Now().Add(-2 * time.Minute)
	m.mu.Unlock()

	removed := m.sweep(time.Now())

	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, m.Count())
	_, err := m.Get(fresh.ID, 1)
	assert.NoError(t, err)
	_, err = m.Get(stale.ID, 2)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManagerStartStop(t *testing.T) {
	m := NewManager(time.Hour)
	m.Start()
	m.Start() // second start is a no-op
	m.Stop()
	m.Stop() // second stop is a no-op

	// restart works
	m.Start()
	m.Stop()
}
