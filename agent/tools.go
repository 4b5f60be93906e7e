// Package agent exposes the engine to external decision loops: the
// fog-limited tool surface an LLM calls while choosing orders, the
// Provider adapter those loops implement, and a deterministic built-in
// bot for play without a model.
package agent

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/space-conquest/conquest"
	"github.com/space-conquest/conquest/visibility"
)

// Tool names as exposed to the model.
const (
	ToolGetObservation    = "get_observation"
	ToolQueryStar         = "query_star"
	ToolCalculateDistance = "calculate_distance"
)

var ErrUnknownTool = errors.New("unknown tool")

// Tools is the per-player tool surface. Every call is read-only and
// fog-filtered; nothing here can leak another player's garrisons or
// fleets.
type Tools struct {
	game   *conquest.Game
	player conquest.Owner
}

// NewTools binds the tool surface to a game and a player.
func NewTools(g *conquest.Game, player conquest.Owner) *Tools {
	return &Tools{game: g, player: player}
}

// GetObservation returns the player's full fog-filtered view.
func (t *Tools) GetObservation() (*visibility.Observation, error) {
	return visibility.Observe(t.game, t.player)
}

// QueryStarResult is the typed result of the query_star tool. An
// unknown id is reported through Found, never as an error: agents
// probe ids freely.
type QueryStarResult struct {
	Found bool                `json:"found"`
	Star  visibility.StarView `json:"star,omitempty"`
}

// QueryStar returns the fog-filtered view of one star.
func (t *Tools) QueryStar(id conquest.StarID) QueryStarResult {
	view, err := visibility.QueryStar(t.game, t.player, id)
	if err != nil {
		return QueryStarResult{Found: false}
	}
	return QueryStarResult{Found: true, Star: view}
}

// DistanceResult is the typed result of the calculate_distance tool.
type DistanceResult struct {
	Found    bool `json:"found"`
	Distance int  `json:"distance,omitempty"`
}

// CalculateDistance returns the Manhattan distance (= travel turns)
// between two stars.
func (t *Tools) CalculateDistance(a, b conquest.StarID) DistanceResult {
	d, err := t.game.Distance(a, b)
	if err != nil {
		return DistanceResult{Found: false}
	}
	return DistanceResult{Found: true, Distance: d}
}

type queryStarArgs struct {
	StarID conquest.StarID `json:"star_id"`
}

type distanceArgs struct {
	StarA conquest.StarID `json:"star_a"`
	StarB conquest.StarID `json:"star_b"`
}

// Dispatch routes a named tool call with JSON arguments to its
// implementation. This is the single entry point a provider wires into
// its function-calling loop.
func (t *Tools) Dispatch(name string, args json.RawMessage) (any, error) {
	switch name {
	case ToolGetObservation:
		return t.GetObservation()
	case ToolQueryStar:
		var a queryStarArgs
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, fmt.Errorf("%s: bad arguments: %w", name, err)
		}
		return t.QueryStar(a.StarID), nil
	case ToolCalculateDistance:
		var a distanceArgs
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, fmt.Errorf("%s: bad arguments: %w", name, err)
		}
		return t.CalculateDistance(a.StarA, a.StarB), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
}
