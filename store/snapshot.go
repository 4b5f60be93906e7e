// Package store serializes full game snapshots. A snapshot is a plain
// JSON document carrying everything needed to resume a game, including
// the generator state — without it, replays diverge after the first
// random draw. Loading is all-or-nothing: a document that violates any
// state invariant is rejected without producing a partial game.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/space-conquest/conquest"
	"github.com/space-conquest/conquest/rng"
)

var (
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)

// Snapshot is the stable wire form of a game. Breaking changes to this
// layout require a major version bump.
type Snapshot struct {
	Turn     int             `json:"turn"`
	Phase    conquest.Phase  `json:"phase"`
	RNGState rng.State       `json:"rng_state"`
	Stars    []StarRecord    `json:"stars"`
	Fleets   []FleetRecord   `json:"fleets"`
	Players  []PlayerRecord  `json:"players"`
	Winner   conquest.Winner `json:"winner,omitempty"`
}

// StarRecord is one star with its dynamic fields.
type StarRecord struct {
	ID        conquest.StarID `json:"id"`
	Name      string          `json:"name"`
	X         int             `json:"x"`
	Y         int             `json:"y"`
	BaseRU    int             `json:"base_ru"`
	IsHome    bool            `json:"is_home"`
	Owner     conquest.Owner  `json:"owner"`
	Stationed int             `json:"stationed_ships"`
}

// FleetRecord is one in-transit fleet.
type FleetRecord struct {
	ID             conquest.FleetID `json:"id"`
	Owner          conquest.Owner   `json:"owner"`
	Origin         conquest.StarID  `json:"origin"`
	Dest           conquest.StarID  `json:"dest"`
	Ships          int              `json:"ships"`
	TurnsRemaining int              `json:"turns_remaining"`
}

// PlayerRecord is one player with their intel set.
type PlayerRecord struct {
	ID             conquest.Owner    `json:"id"`
	HomeStar       conquest.StarID   `json:"home_star_id"`
	VisitedStarIDs []conquest.StarID `json:"visited_star_ids"`
}

// Save exports a game as a snapshot. Stars, fleets and visited sets
// are emitted in id order so equal states produce equal documents.
func Save(g *conquest.Game) *Snapshot {
	snap := &Snapshot{
		Turn:     g.Turn,
		Phase:    g.Phase,
		RNGState: g.RNG.State(),
		Winner:   g.Winner,
	}

	for _, id := range g.StarIDs() {
		s := g.Stars[id]
		snap.Stars = append(snap.Stars, StarRecord{
			ID:        s.ID,
			Name:      s.Name,
			X:         s.X,
			Y:         s.Y,
			BaseRU:    s.BaseRU,
			IsHome:    s.IsHome,
			Owner:     s.Owner,
			Stationed: s.Stationed,
		})
	}

	for _, f := range g.Fleets {
		snap.Fleets = append(snap.Fleets, FleetRecord{
			ID:             f.ID,
			Owner:          f.Owner,
			Origin:         f.Origin,
			Dest:           f.Dest,
			Ships:          f.Ships,
			TurnsRemaining: f.TurnsRemaining,
		})
	}

	for _, id := range []conquest.Owner{conquest.OwnerP1, conquest.OwnerP2} {
		p := g.Players[id]
		snap.Players = append(snap.Players, PlayerRecord{
			ID:             p.ID,
			HomeStar:       p.HomeStar,
			VisitedStarIDs: p.VisitedStars(),
		})
	}

	return snap
}

// Marshal serializes a game to snapshot JSON.
func Marshal(g *conquest.Game) ([]byte, error) {
	return json.MarshalIndent(Save(g), "", "  ")
}

// Load reconstructs a game from a snapshot, restoring the generator
// state. The snapshot carries no fleet id counter, so the next fleet
// id is set to one past the highest in-flight fleet id (1 when no
// fleet is in flight). The snapshot is validated first; on
// any violation the returned error wraps ErrInvalidSnapshot and no
// game is produced.
func Load(snap *Snapshot) (*conquest.Game, error) {
	if err := validate(snap); err != nil {
		return nil, err
	}

	g := &conquest.Game{
		Turn:        snap.Turn,
		Phase:       snap.Phase,
		Stars:       make(map[conquest.StarID]*conquest.Star),
		Players:     make(map[conquest.Owner]*conquest.Player),
		Winner:      snap.Winner,
		RNG:         rng.Restore(snap.RNGState),
		NextFleetID: 1,
	}

	for _, r := range snap.Stars {
		g.Stars[r.ID] = &conquest.Star{
			ID:        r.ID,
			Name:      r.Name,
			X:         r.X,
			Y:         r.Y,
			BaseRU:    r.BaseRU,
			IsHome:    r.IsHome,
			Owner:     r.Owner,
			Stationed: r.Stationed,
		}
	}

	fleets := append([]FleetRecord(nil), snap.Fleets...)
	sort.Slice(fleets, func(i, j int) bool { return fleets[i].ID < fleets[j].ID })
	for _, r := range fleets {
		g.Fleets = append(g.Fleets, &conquest.Fleet{
			ID:             r.ID,
			Owner:          r.Owner,
			Origin:         r.Origin,
			Dest:           r.Dest,
			Ships:          r.Ships,
			TurnsRemaining: r.TurnsRemaining,
		})
		if r.ID >= g.NextFleetID {
			g.NextFleetID = r.ID + 1
		}
	}

	for _, r := range snap.Players {
		p := conquest.NewPlayer(r.ID, r.HomeStar)
		for _, id := range r.VisitedStarIDs {
			p.MarkVisited(id)
		}
		g.Players[r.ID] = p
	}

	return g, nil
}

// Unmarshal parses snapshot JSON and reconstructs the game.
func Unmarshal(data []byte) (*conquest.Game, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	return Load(&snap)
}
