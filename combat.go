package conquest

import "sort"

// combatParty is one side of a battle: all arriving ships of an owner,
// plus the garrison when the owner already holds the star.
type combatParty struct {
	owner      Owner
	ships      int
	isDefender bool
}

// resolveStar resolves all same-turn arrivals at one star. Arrivals
// are grouped into one resolution against the pre-turn owner, so a
// star captured this turn is never fought over twice in the same turn.
// It returns the emitted events and the players who fought here.
func (g *Game) resolveStar(star *Star, arrivals []*Fleet) ([]Event, []Owner) {
	var events []Event

	totals := make(map[Owner]int)
	for _, f := range arrivals {
		totals[f.Owner] += f.Ships
	}

	// Reinforcement: only the current owner's fleets arrived.
	if len(totals) == 1 && totals[star.Owner] > 0 {
		star.Stationed += totals[star.Owner]
		for _, f := range arrivals {
			events = append(events, ArrivalEvent{Fleet: f.ID, Star: star.ID, Owner: f.Owner, Ships: f.Ships})
		}
		return events, nil
	}

	prevOwner := star.Owner

	var defender *combatParty
	if star.Owner != OwnerNone {
		defender = &combatParty{
			owner:      star.Owner,
			ships:      star.Stationed + totals[star.Owner],
			isDefender: true,
		}
	}

	var attackers []*combatParty
	for owner, ships := range totals {
		if owner == star.Owner {
			continue
		}
		attackers = append(attackers, &combatParty{owner: owner, ships: ships})
	}
	// Biggest attacker fights first; equal sizes resolve p1 before p2.
	sort.Slice(attackers, func(i, j int) bool {
		if attackers[i].ships != attackers[j].ships {
			return attackers[i].ships > attackers[j].ships
		}
		return attackers[i].owner < attackers[j].owner
	})

	standing := defender
	defenderRouted := false
	var lastCombat *CombatEvent

	for _, atk := range attackers {
		if standing == nil {
			standing = atk
			continue
		}
		ev := fight(atk, standing, star.ID)
		events = append(events, ev)
		lastCombat = ev
		if standing.isDefender && standing.ships == 0 && ev.Winner == OutcomeAttacker {
			defenderRouted = true
		}
		switch {
		case atk.ships > 0:
			standing = atk
		case standing.ships == 0:
			standing = nil
		}
	}

	// Apply the outcome. A surviving party garrisons the star; with no
	// survivor the garrison is wiped, and the star is left unowned when
	// the defender was routed outright rather than lost in a tie.
	switch {
	case standing != nil && standing.ships > 0:
		star.Owner = standing.owner
		star.Stationed = standing.ships
	default:
		star.Stationed = 0
		if defenderRouted {
			star.Owner = OwnerNone
		}
	}

	if lastCombat != nil && star.IsHome && prevOwner.IsPlayer() &&
		star.Owner.IsPlayer() && star.Owner != prevOwner {
		lastCombat.WasHomeCapture = true
	}

	// Winning arrivals land.
	if standing != nil && standing.ships > 0 {
		for _, f := range arrivals {
			if f.Owner == standing.owner {
				events = append(events, ArrivalEvent{Fleet: f.ID, Star: star.ID, Owner: f.Owner, Ships: f.Ships})
			}
		}
	}

	var fought []Owner
	for _, o := range []Owner{OwnerP1, OwnerP2} {
		if totals[o] > 0 || prevOwner == o {
			fought = append(fought, o)
		}
	}
	return events, fought
}

// fight resolves one pairing in place. Equal forces destroy each other;
// otherwise the larger side survives minus half the smaller side,
// rounded up.
func fight(attacker, defender *combatParty, star StarID) *CombatEvent {
	ev := &CombatEvent{
		Star:          star,
		Attacker:      attacker.owner,
		Defender:      defender.owner,
		AttackerShips: attacker.ships,
		DefenderShips: defender.ships,
	}

	switch {
	case attacker.ships == defender.ships:
		attacker.ships = 0
		defender.ships = 0
		ev.Winner = OutcomeMutual
	case attacker.ships > defender.ships:
		attacker.ships -= (defender.ships + 1) / 2
		defender.ships = 0
		ev.Winner = OutcomeAttacker
	default:
		defender.ships -= (attacker.ships + 1) / 2
		attacker.ships = 0
		ev.Winner = OutcomeDefender
	}

	ev.AttackerSurvivors = attacker.ships
	ev.DefenderSurvivors = defender.ships
	return ev
}
