// Package conquest implements the Space Conquest game engine core: a
// deterministic, turn-based two-player 4X on a small grid of stars.
// The engine is a value; it owns its random generator, advances one
// turn at a time through ExecuteTurn, and exposes read-only projections
// through the visibility package.
package conquest

import (
	"errors"
	"fmt"
	"sort"

	"github.com/space-conquest/conquest/rng"
)

var (
	ErrUnknownStar   = errors.New("unknown star id")
	ErrUnknownPlayer = errors.New("unknown player id")
	ErrGameCompleted = errors.New("game is completed")
)

// Phase is the lifecycle state of a game.
type Phase string

const (
	PhaseRunning   Phase = "running"
	PhaseCompleted Phase = "completed"
)

// Winner identifies the game result once Phase is completed.
type Winner string

const (
	WinnerNone Winner = ""
	WinnerP1   Winner = "p1"
	WinnerP2   Winner = "p2"
	WinnerDraw Winner = "draw"
)

// Game is the authoritative state of one match. All mutation goes
// through ExecuteTurn; everything else reads a state-boundary snapshot.
type Game struct {
	Turn    int
	Phase   Phase
	Stars   map[StarID]*Star
	Fleets  []*Fleet
	Players map[Owner]*Player
	Winner  Winner

	// RNG is the single generator every random draw goes through. Its
	// state round-trips through snapshots so replays stay aligned.
	RNG *rng.Generator

	// NextFleetID is the id the next accepted order will get.
	NextFleetID FleetID
}

// NewGame generates a fresh galaxy from the seed and returns a game at
// turn 0 awaiting both players' first orders. The same seed always
// yields the identical starting state.
func NewGame(seed int64) *Game {
	g := &Game{
		Turn:        0,
		Phase:       PhaseRunning,
		Stars:       make(map[StarID]*Star),
		Players:     make(map[Owner]*Player),
		RNG:         rng.New(seed),
		NextFleetID: 1,
	}
	g.generateGalaxy()

	// Players start with intel on their own home.
	for _, p := range g.Players {
		p.MarkVisited(p.HomeStar)
	}
	return g
}

// Star returns a star by id.
func (g *Game) Star(id StarID) (*Star, bool) {
	s, ok := g.Stars[id]
	return s, ok
}

// Player returns a player by id.
func (g *Game) Player(id Owner) (*Player, bool) {
	p, ok := g.Players[id]
	return p, ok
}

// Distance returns the Manhattan distance between two stars, which is
// also the travel time in turns.
func (g *Game) Distance(a, b StarID) (int, error) {
	sa, ok := g.Stars[a]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownStar, a)
	}
	sb, ok := g.Stars[b]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownStar, b)
	}
	return sa.Distance(sb), nil
}

// StarIDs returns all star ids in lexicographic order. The executor
// iterates stars in this order so random draws stay deterministic.
func (g *Game) StarIDs() []StarID {
	ids := make([]StarID, 0, len(g.Stars))
	for id := range g.Stars {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// FleetsOf returns the live fleets belonging to a player, in id order.
func (g *Game) FleetsOf(owner Owner) []*Fleet {
	var out []*Fleet
	for _, f := range g.Fleets {
		if f.Owner == owner {
			out = append(out, f)
		}
	}
	return out
}

// TotalShips counts all ships in play for an owner, stationed plus in
// transit. Used by invariant checks and tests.
func (g *Game) TotalShips(owner Owner) int {
	total := 0
	for _, s := range g.Stars {
		if s.Owner == owner {
			total += s.Stationed
		}
	}
	for _, f := range g.Fleets {
		if f.Owner == owner {
			total += f.Ships
		}
	}
	return total
}
