// Package visibility builds fog-of-war-limited views of a game for one
// player. The projection is pure and read-only: it never mutates the
// game and always reflects a state boundary.
//
// The fog rules draw one bright line: a star's stationed ship count is
// exposed only while the querying player currently owns the star.
// Softer intel (RU, owner) unlocks once the player has visited the
// star — owned it or fought there. Position, name and home status are
// always public.
package visibility

import (
	"encoding/json"
	"fmt"

	"github.com/space-conquest/conquest"
)

// Intel carries a fog-gated value. Unknown values marshal as null so
// agents see an explicit "you don't know this" rather than a missing
// key.
type Intel[T any] struct {
	Value T
	Known bool
}

// Known wraps a revealed value.
func Known[T any](v T) Intel[T] {
	return Intel[T]{Value: v, Known: true}
}

// MarshalJSON encodes the value, or null when unknown.
func (i Intel[T]) MarshalJSON() ([]byte, error) {
	if !i.Known {
		return []byte("null"), nil
	}
	return json.Marshal(i.Value)
}

// UnmarshalJSON decodes null as unknown and anything else as a value.
func (i *Intel[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*i = Intel[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*i = Intel[T]{Value: v, Known: true}
	return nil
}

// StarView is one star as seen by a player.
type StarView struct {
	ID        conquest.StarID       `json:"id"`
	Name      string                `json:"name"`
	X         int                   `json:"x"`
	Y         int                   `json:"y"`
	IsHome    bool                  `json:"is_home"`
	BaseRU    Intel[int]            `json:"base_ru"`
	Owner     Intel[conquest.Owner] `json:"owner"`
	Stationed Intel[int]            `json:"stationed_ships"`
}

// FleetView is one of the player's own fleets. Enemy fleets are never
// observable.
type FleetView struct {
	ID             conquest.FleetID `json:"id"`
	Origin         conquest.StarID  `json:"origin"`
	Dest           conquest.StarID  `json:"dest"`
	Ships          int              `json:"ships"`
	TurnsRemaining int              `json:"turns_remaining"`
}

// Rules are the static game constants, restated per observation so an
// agent needs no out-of-band rulebook.
type Rules struct {
	HyperspaceLossChance float64 `json:"hyperspace_loss"`
	RebellionChance      float64 `json:"rebellion_chance"`
	ProductionFormula    string  `json:"production_formula"`
}

// Observation is the complete fog-filtered view for one player at a
// state boundary.
type Observation struct {
	Player   conquest.Owner  `json:"player"`
	Turn     int             `json:"turn"`
	Phase    conquest.Phase  `json:"phase"`
	HomeStar conquest.StarID `json:"home_star"`
	Stars    []StarView      `json:"stars"`
	Fleets   []FleetView     `json:"fleets"`
	Rules    Rules           `json:"rules"`
	Winner   conquest.Winner `json:"winner,omitempty"`
}

// GameRules returns the engine's static rule constants.
func GameRules() Rules {
	return Rules{
		HyperspaceLossChance: 1.0 / float64(conquest.HyperspaceLossDie),
		RebellionChance:      conquest.RebellionChance,
		ProductionFormula:    conquest.ProductionFormula,
	}
}

// Observe builds the fog-filtered view of the game for one player.
func Observe(g *conquest.Game, player conquest.Owner) (*Observation, error) {
	p, ok := g.Player(player)
	if !ok {
		return nil, fmt.Errorf("%w: %s", conquest.ErrUnknownPlayer, player)
	}

	obs := &Observation{
		Player:   player,
		Turn:     g.Turn,
		Phase:    g.Phase,
		HomeStar: p.HomeStar,
		Rules:    GameRules(),
		Winner:   g.Winner,
	}

	for _, id := range g.StarIDs() {
		obs.Stars = append(obs.Stars, viewStar(g.Stars[id], p))
	}
	for _, f := range g.FleetsOf(player) {
		obs.Fleets = append(obs.Fleets, FleetView{
			ID:             f.ID,
			Origin:         f.Origin,
			Dest:           f.Dest,
			Ships:          f.Ships,
			TurnsRemaining: f.TurnsRemaining,
		})
	}
	return obs, nil
}

// QueryStar returns the fog-filtered view of a single star, applying
// the same rules as Observe.
func QueryStar(g *conquest.Game, player conquest.Owner, id conquest.StarID) (StarView, error) {
	p, ok := g.Player(player)
	if !ok {
		return StarView{}, fmt.Errorf("%w: %s", conquest.ErrUnknownPlayer, player)
	}
	s, ok := g.Star(id)
	if !ok {
		return StarView{}, fmt.Errorf("%w: %s", conquest.ErrUnknownStar, id)
	}
	return viewStar(s, p), nil
}

func viewStar(s *conquest.Star, p *conquest.Player) StarView {
	v := StarView{
		ID:     s.ID,
		Name:   s.Name,
		X:      s.X,
		Y:      s.Y,
		IsHome: s.IsHome,
	}
	if p.HasVisited(s.ID) {
		v.BaseRU = Known(s.BaseRU)
		v.Owner = Known(s.Owner)
	}
	if s.Owner == p.ID {
		v.Stationed = Known(s.Stationed)
	}
	return v
}
