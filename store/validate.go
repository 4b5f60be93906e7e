package store

import (
	"fmt"

	"github.com/space-conquest/conquest"
)

// validate rejects snapshots that could not have come from a reachable
// game state. The engine never repairs a bad document.
func validate(snap *Snapshot) error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidSnapshot, fmt.Sprintf(format, args...))
	}

	if snap.Phase != conquest.PhaseRunning && snap.Phase != conquest.PhaseCompleted {
		return fail("unknown phase %q", snap.Phase)
	}
	if snap.Turn < 0 {
		return fail("negative turn %d", snap.Turn)
	}

	stars := make(map[conquest.StarID]StarRecord, len(snap.Stars))
	coords := make(map[[2]int]conquest.StarID)
	homes := make(map[conquest.Owner]conquest.StarID)
	for _, s := range snap.Stars {
		if s.ID == "" {
			return fail("star with empty id")
		}
		if _, dup := stars[s.ID]; dup {
			return fail("duplicate star id %s", s.ID)
		}
		stars[s.ID] = s

		if s.X < 0 || s.X >= conquest.GridWidth || s.Y < 0 || s.Y >= conquest.GridHeight {
			return fail("star %s off grid at (%d,%d)", s.ID, s.X, s.Y)
		}
		at := [2]int{s.X, s.Y}
		if other, taken := coords[at]; taken {
			return fail("stars %s and %s share cell (%d,%d)", other, s.ID, s.X, s.Y)
		}
		coords[at] = s.ID

		if s.BaseRU < 1 || s.BaseRU > 5 {
			return fail("star %s has RU %d outside 1..5", s.ID, s.BaseRU)
		}
		if s.Stationed < 0 {
			return fail("star %s has negative garrison", s.ID)
		}
		switch s.Owner {
		case conquest.OwnerNone, conquest.OwnerNPC, conquest.OwnerP1, conquest.OwnerP2:
		default:
			return fail("star %s has unknown owner %q", s.ID, s.Owner)
		}
		if s.IsHome {
			if s.BaseRU != conquest.HomeRU {
				return fail("home star %s has RU %d, want %d", s.ID, s.BaseRU, conquest.HomeRU)
			}
		}
	}

	if len(snap.Players) != 2 {
		return fail("want 2 players, got %d", len(snap.Players))
	}
	seen := make(map[conquest.Owner]bool)
	for _, p := range snap.Players {
		if !p.ID.IsPlayer() {
			return fail("player record with id %q", p.ID)
		}
		if seen[p.ID] {
			return fail("duplicate player %s", p.ID)
		}
		seen[p.ID] = true

		home, ok := stars[p.HomeStar]
		if !ok {
			return fail("player %s home star %s does not exist", p.ID, p.HomeStar)
		}
		if !home.IsHome {
			return fail("player %s home star %s is not flagged as home", p.ID, p.HomeStar)
		}
		if prev, dup := homes[p.ID]; dup {
			return fail("player %s has two homes %s and %s", p.ID, prev, p.HomeStar)
		}
		homes[p.ID] = p.HomeStar

		visited := make(map[conquest.StarID]bool, len(p.VisitedStarIDs))
		for _, id := range p.VisitedStarIDs {
			if _, ok := stars[id]; !ok {
				return fail("player %s visited unknown star %s", p.ID, id)
			}
			visited[id] = true
		}
		for _, s := range snap.Stars {
			if s.Owner == p.ID && !visited[s.ID] {
				return fail("player %s owns %s but has not visited it", p.ID, s.ID)
			}
		}
	}
	if homes[conquest.OwnerP1] == homes[conquest.OwnerP2] {
		return fail("both players share home star %s", homes[conquest.OwnerP1])
	}
	for _, s := range snap.Stars {
		if s.IsHome && s.ID != homes[conquest.OwnerP1] && s.ID != homes[conquest.OwnerP2] {
			return fail("star %s is flagged home but belongs to no player", s.ID)
		}
	}

	fleetIDs := make(map[conquest.FleetID]bool)
	for _, f := range snap.Fleets {
		if fleetIDs[f.ID] {
			return fail("duplicate fleet id %d", f.ID)
		}
		fleetIDs[f.ID] = true
		if !f.Owner.IsPlayer() {
			return fail("fleet %d owned by %q", f.ID, f.Owner)
		}
		if _, ok := stars[f.Origin]; !ok {
			return fail("fleet %d origin %s does not exist", f.ID, f.Origin)
		}
		if _, ok := stars[f.Dest]; !ok {
			return fail("fleet %d destination %s does not exist", f.ID, f.Dest)
		}
		if f.Ships < 1 {
			return fail("fleet %d has %d ships", f.ID, f.Ships)
		}
		if f.TurnsRemaining < 1 {
			return fail("fleet %d has %d turns remaining; resolved fleets do not persist", f.ID, f.TurnsRemaining)
		}
	}

	return nil
}
