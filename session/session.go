// Package session is the concurrency shell around the engine. The
// engine itself is strictly synchronous; this layer lets many games
// run side by side and lets a human UI and an AI decision loop act on
// the same game without seeing mid-turn state. Each session holds the
// exclusive write lock for its game: a turn executes only once both
// players' orders are in, and every read sees a state boundary.
package session

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/space-conquest/conquest"
	"github.com/space-conquest/conquest/visibility"
)

var (
	ErrOrdersNotReady  = errors.New("both players' orders are required")
	ErrSessionNotFound = errors.New("session not found")
)

// Hint describes what a session is waiting on. It exists for UIs only
// and is not part of the game-logic state machine.
type Hint string

const (
	HintAwaitingOrders Hint = "awaiting_orders"
	HintAIThinking     Hint = "ai_thinking"
)

// Session wraps one game with its lock and pending orders.
type Session struct {
	ID uuid.UUID

	mu   sync.RWMutex
	game *conquest.Game
	hint Hint

	// Pending order lists; nil means not yet submitted, a pointer to
	// an empty list is a valid no-op turn.
	pendingP1 *[]conquest.Order
	pendingP2 *[]conquest.Order
}

// New creates a session around a fresh game.
func New(seed int64) *Session {
	return Wrap(conquest.NewGame(seed))
}

// Wrap creates a session around an existing game, e.g. one restored
// from a snapshot.
func Wrap(g *conquest.Game) *Session {
	return &Session{
		ID:   uuid.New(),
		game: g,
		hint: HintAwaitingOrders,
	}
}

// Hint returns the current UI hint.
func (s *Session) Hint() Hint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hint
}

// SetHint publishes a UI hint, typically HintAIThinking while a
// provider decides.
func (s *Session) SetHint(h Hint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hint = h
}

// SubmitOrders stores a player's order list for the next turn. The
// submission is idempotent per player per turn: resubmitting replaces
// the previous list. Validation happens at execution; an abandoned AI
// can always submit an empty list as a no-op.
func (s *Session) SubmitOrders(player conquest.Owner, orders []conquest.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := append([]conquest.Order(nil), orders...)
	switch player {
	case conquest.OwnerP1:
		s.pendingP1 = &list
	case conquest.OwnerP2:
		s.pendingP2 = &list
	}
}

// Ready reports whether both players have submitted for this turn.
func (s *Session) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pendingP1 != nil && s.pendingP2 != nil
}

// Step executes the next turn with the submitted orders. It fails with
// ErrOrdersNotReady until both players have submitted. On a validation
// error the offending player's submission is cleared so it can be
// corrected and resubmitted; on success both submissions are consumed.
func (s *Session) Step() (*conquest.TurnResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pendingP1 == nil || s.pendingP2 == nil {
		return nil, ErrOrdersNotReady
	}

	res, err := s.game.ExecuteTurn(*s.pendingP1, *s.pendingP2)
	if err != nil {
		var rejected *conquest.OrdersRejectedError
		if errors.As(err, &rejected) {
			if rejected.Player == conquest.OwnerP1 {
				s.pendingP1 = nil
			} else {
				s.pendingP2 = nil
			}
		}
		return nil, err
	}

	s.pendingP1 = nil
	s.pendingP2 = nil
	s.hint = HintAwaitingOrders
	return res, nil
}

// Observe returns a player's fog-filtered view at the current state
// boundary. Safe to call concurrently from many readers.
func (s *Session) Observe(player conquest.Owner) (*visibility.Observation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return visibility.Observe(s.game, player)
}

// Game exposes the underlying game for trusted single-threaded
// callers such as the CLI shell and snapshot writers.
func (s *Session) Game() *conquest.Game {
	return s.game
}

// Manager tracks concurrent sessions by id. Sessions share nothing,
// so the manager only guards its own map.
type Manager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[uuid.UUID]*Session)}
}

// Create starts a new game session under the manager.
func (m *Manager) Create(seed int64) *Session {
	s := New(seed)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return s
}

// Adopt registers an existing session, e.g. one wrapped around a
// loaded snapshot.
func (m *Manager) Adopt(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
}

// Get looks a session up by id.
func (m *Manager) Get(id uuid.UUID) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Remove drops a session from the manager.
func (m *Manager) Remove(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}
