package conquest

import (
	"testing"

	"github.com/space-conquest/conquest/rng"
)

// newTestGame builds a game directly from hand-written stars and
// fleets. Exactly one home per player must be present. Owned stars are
// pre-marked visited so test fixtures satisfy the state invariants.
func newTestGame(t *testing.T, seed int64, stars []*Star, fleets []*Fleet) *Game {
	t.Helper()

	g := &Game{
		Turn:        0,
		Phase:       PhaseRunning,
		Stars:       make(map[StarID]*Star),
		Players:     make(map[Owner]*Player),
		RNG:         rng.New(seed),
		NextFleetID: 1,
	}

	for _, s := range stars {
		g.Stars[s.ID] = s
		if s.IsHome {
			switch s.Owner {
			case OwnerP1, OwnerP2:
				g.Players[s.Owner] = NewPlayer(s.Owner, s.ID)
			}
		}
	}
	if g.Players[OwnerP1] == nil || g.Players[OwnerP2] == nil {
		t.Fatal("test galaxy needs a home star for both players")
	}

	for _, s := range stars {
		if s.Owner.IsPlayer() {
			g.Players[s.Owner].MarkVisited(s.ID)
		}
	}

	for _, f := range fleets {
		g.Fleets = append(g.Fleets, f)
		if f.ID >= g.NextFleetID {
			g.NextFleetID = f.ID + 1
		}
	}

	return g
}

// seedAvoidingLoss finds a seed whose first n hyperspace rolls all
// miss, so tests exercising travel are not interrupted by losses.
func seedAvoidingLoss(t *testing.T, n int) int64 {
	t.Helper()
	for seed := int64(0); seed < 100000; seed++ {
		g := rng.New(seed)
		ok := true
		for i := 0; i < n; i++ {
			if g.UniformInt(HyperspaceLossDie) == 0 {
				ok = false
				break
			}
		}
		if ok {
			return seed
		}
	}
	t.Fatal("no loss-free seed found")
	return 0
}

// seedWithImmediateLoss finds a seed whose first hyperspace roll hits.
func seedWithImmediateLoss(t *testing.T) int64 {
	t.Helper()
	for seed := int64(0); seed < 100000; seed++ {
		if rng.New(seed).UniformInt(HyperspaceLossDie) == 0 {
			return seed
		}
	}
	t.Fatal("no immediate-loss seed found")
	return 0
}

// seedWithRebellion finds a seed whose first percent roll decides a
// rebellion the given way.
func seedWithRebellion(t *testing.T, succeeds bool) int64 {
	t.Helper()
	for seed := int64(0); seed < 100000; seed++ {
		p := rng.New(seed).Percent()
		if (p < RebellionChance) == succeeds {
			return seed
		}
	}
	t.Fatal("no matching rebellion seed found")
	return 0
}

// twoHomes is the minimal fixture: both homes one cell apart.
func twoHomes(p1Garrison, p2Garrison int) []*Star {
	return []*Star{
		{ID: "A", Name: "Altair", X: 0, Y: 0, BaseRU: HomeRU, IsHome: true, Owner: OwnerP1, Stationed: p1Garrison},
		{ID: "B", Name: "Bellatrix", X: 1, Y: 0, BaseRU: HomeRU, IsHome: true, Owner: OwnerP2, Stationed: p2Garrison},
	}
}
