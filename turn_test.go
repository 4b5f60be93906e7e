package conquest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Simple capture: two ships sent two cells away take a one-ship
// neutral star on the second turn.
func TestTurnSimpleCapture(t *testing.T) {
	seed := seedAvoidingLoss(t, 2)
	stars := []*Star{
		{ID: "A", Name: "Altair", X: 0, Y: 0, BaseRU: HomeRU, IsHome: true, Owner: OwnerP1, Stationed: 4},
		{ID: "B", Name: "Bellatrix", X: 11, Y: 9, BaseRU: HomeRU, IsHome: true, Owner: OwnerP2, Stationed: 4},
		{ID: "C", Name: "Canopus", X: 2, Y: 0, BaseRU: 1, Owner: OwnerNPC, Stationed: 1},
	}
	g := newTestGame(t, seed, stars, nil)

	res, err := g.ExecuteTurn([]Order{{From: "A", To: "C", Ships: 2}}, nil)
	require.NoError(t, err)
	assert.Empty(t, eventsOfType(res, EventCombat))

	require.Len(t, g.Fleets, 1)
	assert.Equal(t, 1, g.Fleets[0].TurnsRemaining)
	assert.Equal(t, 6, g.Stars["A"].Stationed, "4 - 2 sent + 4 produced")
	assert.Equal(t, OwnerNPC, g.Stars["C"].Owner)

	res, err = g.ExecuteTurn(nil, nil)
	require.NoError(t, err)

	assert.Empty(t, g.Fleets)
	assert.Equal(t, OwnerP1, g.Stars["C"].Owner)
	// Survivors 2 - ceil(1/2) = 1, plus the star's own production tick.
	assert.Equal(t, 2, g.Stars["C"].Stationed)
	assert.Equal(t, 10, g.Stars["A"].Stationed)
	assert.True(t, g.Players[OwnerP1].HasVisited("C"))

	combats := eventsOfType(res, EventCombat)
	require.Len(t, combats, 1)
	ev := combats[0].(*CombatEvent)
	assert.Equal(t, 1, ev.AttackerSurvivors)
	assert.Equal(t, WinnerNone, res.Winner)
	assert.Equal(t, PhaseRunning, g.Phase)
}

// Mutual home capture on the same turn ends in a draw.
func TestTurnMutualHomeCaptureDraw(t *testing.T) {
	seed := seedAvoidingLoss(t, 2)
	g := newTestGame(t, seed, twoHomes(6, 6), nil)

	res, err := g.ExecuteTurn(
		[]Order{{From: "A", To: "B", Ships: 5}},
		[]Order{{From: "B", To: "A", Ships: 5}},
	)
	require.NoError(t, err)

	assert.Equal(t, PhaseCompleted, g.Phase)
	assert.Equal(t, WinnerDraw, res.Winner)
	assert.Equal(t, WinnerDraw, g.Winner)

	combats := eventsOfType(res, EventCombat)
	require.Len(t, combats, 2)
	for _, ev := range combats {
		assert.True(t, ev.(*CombatEvent).WasHomeCapture)
	}

	_, err = g.ExecuteTurn(nil, nil)
	assert.ErrorIs(t, err, ErrGameCompleted)
}

func TestTurnSingleHomeCaptureWins(t *testing.T) {
	seed := seedAvoidingLoss(t, 1)
	g := newTestGame(t, seed, twoHomes(6, 2), nil)

	res, err := g.ExecuteTurn([]Order{{From: "A", To: "B", Ships: 5}}, nil)
	require.NoError(t, err)

	assert.Equal(t, WinnerP1, res.Winner)
	assert.Equal(t, PhaseCompleted, g.Phase)
	assert.Equal(t, OwnerP1, g.Stars["B"].Owner)
}

// An under-garrisoned captured star reverts to neutral control when
// the rebellion roll succeeds.
func TestTurnRebellionLost(t *testing.T) {
	seed := seedWithRebellion(t, true)
	stars := append(twoHomes(4, 4),
		&Star{ID: "C", Name: "Canopus", X: 5, Y: 5, BaseRU: 3, Owner: OwnerP1, Stationed: 1})
	g := newTestGame(t, seed, stars, nil)

	res, err := g.ExecuteTurn(nil, nil)
	require.NoError(t, err)

	assert.Equal(t, OwnerNPC, g.Stars["C"].Owner)
	assert.Equal(t, 3, g.Stars["C"].Stationed)

	rebellions := eventsOfType(res, EventRebellion)
	require.Len(t, rebellions, 1)
	ev := rebellions[0].(RebellionEvent)
	assert.Equal(t, RebellionLost, ev.Outcome)
	assert.Equal(t, 1, ev.GarrisonBefore)
	assert.Equal(t, 3, ev.GarrisonAfter)
}

func TestTurnRebellionSuppressed(t *testing.T) {
	seed := seedWithRebellion(t, false)
	stars := append(twoHomes(4, 4),
		&Star{ID: "C", Name: "Canopus", X: 5, Y: 5, BaseRU: 3, Owner: OwnerP1, Stationed: 1})
	g := newTestGame(t, seed, stars, nil)

	res, err := g.ExecuteTurn(nil, nil)
	require.NoError(t, err)

	assert.Equal(t, OwnerP1, g.Stars["C"].Owner)
	// Held through the unrest, then produced as usual.
	assert.Equal(t, 1+3, g.Stars["C"].Stationed)

	rebellions := eventsOfType(res, EventRebellion)
	require.Len(t, rebellions, 1)
	assert.Equal(t, RebellionSuppressed, rebellions[0].(RebellionEvent).Outcome)
}

func TestTurnHomeNeverRebels(t *testing.T) {
	seed := seedWithRebellion(t, true)
	g := newTestGame(t, seed, twoHomes(1, 1), nil)

	res, err := g.ExecuteTurn(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, eventsOfType(res, EventRebellion))
	assert.Equal(t, OwnerP1, g.Stars["A"].Owner)
}

// Hyperspace eats the fleet before it can arrive.
func TestTurnHyperspaceLoss(t *testing.T) {
	seed := seedWithImmediateLoss(t)
	stars := append(twoHomes(8, 4),
		&Star{ID: "C", Name: "Canopus", X: 4, Y: 4, BaseRU: 2, Owner: OwnerNPC, Stationed: 2})
	g := newTestGame(t, seed, stars, nil)

	res, err := g.ExecuteTurn([]Order{{From: "A", To: "C", Ships: 3}}, nil)
	require.NoError(t, err)

	assert.Empty(t, g.Fleets)
	assert.Empty(t, eventsOfType(res, EventCombat))
	assert.Equal(t, OwnerNPC, g.Stars["C"].Owner)

	losses := eventsOfType(res, EventHyperspaceLoss)
	require.Len(t, losses, 1)
	ev := losses[0].(HyperspaceLossEvent)
	assert.Equal(t, FleetID(1), ev.Fleet)
	assert.Equal(t, OwnerP1, ev.Owner)
	assert.Equal(t, 3, ev.Ships)
}

// Three-way battle: both players and the garrison meet on one turn.
func TestTurnThreeWayBattle(t *testing.T) {
	seed := seedAvoidingLoss(t, 2)
	stars := append(twoHomes(8, 8),
		&Star{ID: "S", Name: "Spica", X: 1, Y: 1, BaseRU: 4, Owner: OwnerNPC, Stationed: 4})
	// Both fleets already one turn out from arrival.
	fleets := []*Fleet{
		{ID: 1, Owner: OwnerP1, Origin: "A", Dest: "S", Ships: 5, TurnsRemaining: 1},
		{ID: 2, Owner: OwnerP2, Origin: "B", Dest: "S", Ships: 3, TurnsRemaining: 1},
	}
	g := newTestGame(t, seed, stars, fleets)

	res, err := g.ExecuteTurn(nil, nil)
	require.NoError(t, err)

	assert.Equal(t, OwnerNone, g.Stars["S"].Owner)
	assert.Equal(t, 0, g.Stars["S"].Stationed)
	assert.Len(t, eventsOfType(res, EventCombat), 2)
	assert.True(t, g.Players[OwnerP1].HasVisited("S"))
	assert.True(t, g.Players[OwnerP2].HasVisited("S"))
}

// Over-committing a garrison across multiple orders rejects the whole
// list and leaves the state untouched.
func TestTurnCommitmentOverspendRejected(t *testing.T) {
	stars := append(twoHomes(4, 4),
		&Star{ID: "C", Name: "Canopus", X: 4, Y: 4, BaseRU: 2, Owner: OwnerNPC, Stationed: 2})
	g := newTestGame(t, 7, stars, nil)

	_, err := g.ExecuteTurn([]Order{
		{From: "A", To: "B", Ships: 3},
		{From: "A", To: "C", Ships: 2},
	}, nil)

	var rejected *OrdersRejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, OwnerP1, rejected.Player)

	assert.Empty(t, g.Fleets)
	assert.Equal(t, 4, g.Stars["A"].Stationed, "state unchanged")
	assert.Equal(t, 0, g.Turn)
}

func TestTurnEmptyOrdersAreANoOpTurn(t *testing.T) {
	seed := seedAvoidingLoss(t, 0)
	g := newTestGame(t, seed, twoHomes(4, 4), nil)

	res, err := g.ExecuteTurn(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, g.Turn)
	assert.Equal(t, 8, g.Stars["A"].Stationed, "production still runs")
	assert.Len(t, eventsOfType(res, EventProduction), 2)
}

// Replay law: the same seed and order script give identical states.
func TestTurnReplayLaw(t *testing.T) {
	script := [][2][]Order{
		{{{From: "A", To: "C", Ships: 2}}, nil},
		{nil, {{From: "B", To: "C", Ships: 3}}},
		{nil, nil},
		{nil, nil},
	}

	build := func() *Game {
		stars := []*Star{
			{ID: "A", Name: "Altair", X: 0, Y: 0, BaseRU: HomeRU, IsHome: true, Owner: OwnerP1, Stationed: 4},
			{ID: "B", Name: "Bellatrix", X: 7, Y: 7, BaseRU: HomeRU, IsHome: true, Owner: OwnerP2, Stationed: 4},
			{ID: "C", Name: "Canopus", X: 3, Y: 2, BaseRU: 2, Owner: OwnerNPC, Stationed: 2},
		}
		return newTestGame(t, 424242, stars, nil)
	}

	a, b := build(), build()
	for _, turn := range script {
		resA, errA := a.ExecuteTurn(turn[0], turn[1])
		resB, errB := b.ExecuteTurn(turn[0], turn[1])
		require.NoError(t, errA)
		require.NoError(t, errB)
		assert.Equal(t, resA.Events, resB.Events)
		assert.Equal(t, a.RNG.State(), b.RNG.State())
		for id, sa := range a.Stars {
			assert.Equal(t, *sa, *b.Stars[id])
		}
	}
}

// Ship conservation: without combat, losses or production, totals only
// move between garrisons and fleets.
func TestTurnShipAccounting(t *testing.T) {
	seed := seedAvoidingLoss(t, 4)
	stars := append(twoHomes(10, 10),
		&Star{ID: "C", Name: "Canopus", X: 8, Y: 0, BaseRU: 2, Owner: OwnerNPC, Stationed: 2})
	g := newTestGame(t, seed, stars, nil)

	before := g.TotalShips(OwnerP1)
	res, err := g.ExecuteTurn([]Order{{From: "A", To: "C", Ships: 3}}, nil)
	require.NoError(t, err)

	produced := 0
	for _, ev := range eventsOfType(res, EventProduction) {
		if p := ev.(ProductionEvent); p.Player == OwnerP1 {
			produced += p.ShipsAdded
		}
	}
	assert.Equal(t, before+produced, g.TotalShips(OwnerP1))
}

// Invariants that must hold after any turn.
func TestTurnInvariants(t *testing.T) {
	g := NewGame(99)
	bot := scriptedExpansion{}
	for turn := 0; turn < 30 && g.Phase == PhaseRunning; turn++ {
		_, err := g.ExecuteTurn(bot.orders(g, OwnerP1), bot.orders(g, OwnerP2))
		require.NoError(t, err)

		for id, s := range g.Stars {
			assert.GreaterOrEqual(t, s.Stationed, 0, "star %s", id)
			if s.Owner.IsPlayer() {
				assert.True(t, g.Players[s.Owner].HasVisited(id),
					"owned star %s must be visited by %s", id, s.Owner)
			}
		}
		for _, f := range g.Fleets {
			assert.GreaterOrEqual(t, f.Ships, 1)
			assert.GreaterOrEqual(t, f.TurnsRemaining, 1)
		}
	}
}

// scriptedExpansion sends two ships from each player's home toward the
// first neutral star, exercising spawn/travel/combat across many turns.
type scriptedExpansion struct{}

func (scriptedExpansion) orders(g *Game, player Owner) []Order {
	home := g.Players[player].HomeStar
	s := g.Stars[home]
	if s.Owner != player || s.Stationed < 6 {
		return nil
	}
	for _, id := range g.StarIDs() {
		if g.Stars[id].Owner == OwnerNPC {
			return []Order{{From: home, To: id, Ships: 2}}
		}
	}
	return nil
}

func eventsOfType(res *TurnResult, typ EventType) []Event {
	var out []Event
	for _, ev := range res.Events {
		if ev.Type() == typ {
			out = append(out, ev)
		}
	}
	return out
}
