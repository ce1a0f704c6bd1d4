package editor

import (
	"errors"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"github.com/picpatch/PicPatch/internal/pkg/collage"
)

// ErrSessionNotFound is returned for unknown or expired session ids, and
// for sessions owned by another user so their existence is not leaked.
var ErrSessionNotFound = errors.New("editor: session not found")

// DefaultIdleTTL is how long an untouched session survives before the
// sweeper discards it. History is session-local and never persisted, so an
// expired session simply loses its undo stack.
const DefaultIdleTTL = 2 * time.Hour

const sweepInterval = 10 * time.Minute

// Session is one live editing session: a collage editor bound to a user
// and optionally to the draft or board it was opened from.
type Session struct {
	ID       string
	UserID   uint
	DraftID  uint // 0 when not opened from a draft
	BoardID  uint // 0 when not opened from a board
	Editor   *collage.Editor
	lastUsed time.Time
}

// Manager keeps the live editing sessions in memory
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	idleTTL  time.Duration
	stopCh   chan struct{}
	running  bool
}

var (
	manager     *Manager
	managerOnce sync.Once
)

// GetManager returns the global editor session manager (singleton)
func GetManager() *Manager {
	managerOnce.Do(func() {
		manager = NewManager(DefaultIdleTTL)
	})
	return manager
}

// NewManager creates a session manager with the given idle TTL
func NewManager(idleTTL time.Duration) *Manager {
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}
	return &Manager{
		sessions: make(map[string]*Session),
		idleTTL:  idleTTL,
		stopCh:   make(chan struct{}),
	}
}

// Start launches the idle session sweeper
func (m *Manager) Start() {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return
	}
	m.running = true
	// Recreate stop channel for each start cycle so the manager can be restarted safely.
	m.stopCh = make(chan struct{})
	stopCh := m.stopCh
	m.mu.Unlock()

	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				removed := m.sweep(time.Now())
				if removed > 0 {
					log.Infof("[Editor] Swept %d idle sessions", removed)
				}
			case <-stopCh:
				return
			}
		}
	}()

	log.Info("[Editor] Session manager started")
}

// Stop stops the sweeper
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.running {
		return
	}
	m.running = false
	close(m.stopCh)
}

// Open creates a new session for the user over the given initial
// composition and returns it.
func (m *Manager) Open(userID uint, initial collage.Composition, remover collage.BackgroundRemover) *Session {
	s := &Session{
		ID:       uuid.New().String(),
		UserID:   userID,
		Editor:   collage.NewEditor(initial, remover),
		lastUsed: time.Now(),
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	return s
}

// Get returns the session with the given id if it belongs to the user,
// refreshing its idle timer.
func (m *Manager) Get(id string, userID uint) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if s.UserID != userID {
		// Do not leak session existence to other users
		return nil, ErrSessionNotFound
	}
	s.lastUsed = time.Now()
	return s, nil
}

// Close discards a session. Closing an unknown id is a no-op.
func (m *Manager) Close(id string, userID uint) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok && s.UserID == userID {
		delete(m.sessions, id)
	}
}

// Count returns the number of live sessions
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// sweep removes sessions idle for longer than the TTL and returns how many
// were removed.
func (m *Manager) sweep(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, s := range m.sessions {
		if now.Sub(s.lastUsed) > m.idleTTL {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}
