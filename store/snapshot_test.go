package store

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/space-conquest/conquest"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	g := conquest.NewGame(4242)

	// Put some dynamics in: a fleet in flight and some history.
	ids := g.StarIDs()
	home := g.Players[conquest.OwnerP1].HomeStar
	var target conquest.StarID
	for _, id := range ids {
		if g.Stars[id].Owner == conquest.OwnerNPC {
			target = id
			break
		}
	}
	require.NotEmpty(t, target)
	_, err := g.ExecuteTurn([]conquest.Order{{From: home, To: target, Ships: 1}}, nil)
	require.NoError(t, err)

	loaded, err := Load(Save(g))
	require.NoError(t, err)

	assert.Equal(t, g.Turn, loaded.Turn)
	assert.Equal(t, g.Phase, loaded.Phase)
	assert.Equal(t, g.Winner, loaded.Winner)
	assert.Equal(t, g.RNG.State(), loaded.RNG.State())
	if len(g.Fleets) > 0 {
		assert.Equal(t, g.NextFleetID, loaded.NextFleetID)
	}

	require.Equal(t, len(g.Stars), len(loaded.Stars))
	for id, s := range g.Stars {
		assert.Equal(t, *s, *loaded.Stars[id])
	}
	require.Equal(t, len(g.Fleets), len(loaded.Fleets))
	for i, f := range g.Fleets {
		assert.Equal(t, *f, *loaded.Fleets[i])
	}
	for _, id := range []conquest.Owner{conquest.OwnerP1, conquest.OwnerP2} {
		assert.Equal(t, g.Players[id].VisitedStars(), loaded.Players[id].VisitedStars())
		assert.Equal(t, g.Players[id].HomeStar, loaded.Players[id].HomeStar)
	}

	// Saving the loaded game reproduces the identical document.
	a, err := Marshal(g)
	require.NoError(t, err)
	b, err := Marshal(loaded)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

// A loaded game replays exactly like the original: the generator state
// carries across the snapshot boundary.
func TestLoadedGameReplaysIdentically(t *testing.T) {
	g := conquest.NewGame(777)
	loaded, err := Load(Save(g))
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		resA, errA := g.ExecuteTurn(nil, nil)
		resB, errB := loaded.ExecuteTurn(nil, nil)
		require.NoError(t, errA)
		require.NoError(t, errB)
		assert.Equal(t, resA.Events, resB.Events, "turn %d diverged", i)
		assert.Equal(t, g.RNG.State(), loaded.RNG.State())
	}
}

func TestMarshalUnmarshal(t *testing.T) {
	g := conquest.NewGame(1)
	data, err := Marshal(g)
	require.NoError(t, err)

	// The document carries the contract's top-level fields.
	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	for _, field := range []string{"turn", "phase", "rng_state", "stars", "fleets", "players"} {
		assert.Contains(t, doc, field)
	}

	loaded, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, g.Turn, loaded.Turn)
}

func TestUnmarshalGarbage(t *testing.T) {
	_, err := Unmarshal([]byte("{not json"))
	assert.ErrorIs(t, err, ErrInvalidSnapshot)
}

func TestLoadRejectsInvalidSnapshots(t *testing.T) {
	base := func() *Snapshot {
		return Save(conquest.NewGame(10))
	}

	tests := []struct {
		name   string
		mutate func(*Snapshot)
	}{
		{"unknown phase", func(s *Snapshot) { s.Phase = "paused" }},
		{"negative turn", func(s *Snapshot) { s.Turn = -1 }},
		{"duplicate star id", func(s *Snapshot) { s.Stars = append(s.Stars, s.Stars[0]) }},
		{"shared cell", func(s *Snapshot) {
			s.Stars[2].X = s.Stars[0].X
			s.Stars[2].Y = s.Stars[0].Y
		}},
		{"star off grid", func(s *Snapshot) { s.Stars[0].X = 99 }},
		{"ru out of range", func(s *Snapshot) { s.Stars[2].BaseRU = 9 }},
		{"negative garrison", func(s *Snapshot) { s.Stars[0].Stationed = -1 }},
		{"bad owner", func(s *Snapshot) { s.Stars[0].Owner = "p3" }},
		{"home with wrong ru", func(s *Snapshot) { s.Stars[0].BaseRU = 2 }},
		{"missing player", func(s *Snapshot) { s.Players = s.Players[:1] }},
		{"duplicate player", func(s *Snapshot) { s.Players[1] = s.Players[0] }},
		{"home star missing", func(s *Snapshot) { s.Players[0].HomeStar = "ZZ" }},
		{"owned but not visited", func(s *Snapshot) { s.Players[0].VisitedStarIDs = nil }},
		{"visited unknown star", func(s *Snapshot) {
			s.Players[0].VisitedStarIDs = append(s.Players[0].VisitedStarIDs, "ZZ")
		}},
		{"fleet with zero ships", func(s *Snapshot) {
			s.Fleets = append(s.Fleets, FleetRecord{
				ID: 99, Owner: conquest.OwnerP1, Origin: "A", Dest: "B", Ships: 0, TurnsRemaining: 2,
			})
		}},
		{"fleet already resolved", func(s *Snapshot) {
			s.Fleets = append(s.Fleets, FleetRecord{
				ID: 99, Owner: conquest.OwnerP1, Origin: "A", Dest: "B", Ships: 2, TurnsRemaining: 0,
			})
		}},
		{"fleet owned by npc", func(s *Snapshot) {
			s.Fleets = append(s.Fleets, FleetRecord{
				ID: 99, Owner: conquest.OwnerNPC, Origin: "A", Dest: "B", Ships: 2, TurnsRemaining: 2,
			})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := base()
			tt.mutate(snap)
			_, err := Load(snap)
			assert.ErrorIs(t, err, ErrInvalidSnapshot)
		})
	}
}
