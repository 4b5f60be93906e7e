package conquest

import (
	"sort"

	"github.com/space-conquest/conquest/log"
)

// TurnResult is what one executed turn produced: the ordered event
// stream and the winner, if the game just ended.
type TurnResult struct {
	Turn   int
	Events []Event
	Winner Winner
}

// ExecuteTurn advances the game one turn given both players' orders.
// The sub-phase order is fixed and is the replay contract: validation
// and fleet spawn, hyperspace loss, travel, grouped arrivals and
// combat, rebellion, production, visibility, victory. Every random
// draw goes through the game's generator in this order.
//
// On validation failure the state is untouched and an
// *OrdersRejectedError for the offending player is returned (p1's list
// is checked first).
func (g *Game) ExecuteTurn(p1Orders, p2Orders []Order) (*TurnResult, error) {
	if g.Phase == PhaseCompleted {
		return nil, ErrGameCompleted
	}

	if errs := ValidateOrders(g, OwnerP1, p1Orders); len(errs) > 0 {
		return nil, &OrdersRejectedError{Player: OwnerP1, Errors: errs}
	}
	if errs := ValidateOrders(g, OwnerP2, p2Orders); len(errs) > 0 {
		return nil, &OrdersRejectedError{Player: OwnerP2, Errors: errs}
	}

	res := &TurnResult{Turn: g.Turn}

	// Accepted orders become fleets immediately; the ships leave their
	// garrison before anything else happens this turn.
	g.spawnFleets(OwnerP1, p1Orders)
	g.spawnFleets(OwnerP2, p2Orders)

	res.Events = append(res.Events, g.hyperspaceLossPass()...)
	for _, f := range g.Fleets {
		f.TurnsRemaining--
	}

	arrivals := g.collectArrivals()

	fought := make(map[Owner]map[StarID]struct{})
	for _, o := range []Owner{OwnerP1, OwnerP2} {
		fought[o] = make(map[StarID]struct{})
	}

	// Combat resolves star by star in id order.
	dests := make([]StarID, 0, len(arrivals))
	for id := range arrivals {
		dests = append(dests, id)
	}
	sort.Slice(dests, func(i, j int) bool { return dests[i] < dests[j] })
	for _, id := range dests {
		star := g.Stars[id]
		events, combatants := g.resolveStar(star, arrivals[id])
		res.Events = append(res.Events, events...)
		for _, o := range combatants {
			fought[o][id] = struct{}{}
		}
	}

	res.Events = append(res.Events, g.rebellionPass()...)
	res.Events = append(res.Events, g.productionPass()...)

	// Visibility: everything a player owns now, plus everywhere they
	// fought this turn.
	for _, o := range []Owner{OwnerP1, OwnerP2} {
		p := g.Players[o]
		for _, id := range g.StarIDs() {
			if g.Stars[id].Owner == o {
				p.MarkVisited(id)
			}
		}
		for id := range fought[o] {
			p.MarkVisited(id)
		}
	}

	res.Winner = g.checkVictory()
	g.Turn++

	log.Debug("turn executed",
		log.F("turn", res.Turn),
		log.F("events", len(res.Events)),
		log.F("fleets", len(g.Fleets)),
		log.F("winner", string(res.Winner)))

	return res, nil
}

// spawnFleets turns pre-validated orders into fleets and debits the
// source garrisons.
func (g *Game) spawnFleets(player Owner, orders []Order) {
	for _, o := range orders {
		from := g.Stars[o.From]
		to := g.Stars[o.To]
		from.Stationed -= o.Ships
		f := &Fleet{
			ID:             g.NextFleetID,
			Owner:          player,
			Origin:         o.From,
			Dest:           o.To,
			Ships:          o.Ships,
			TurnsRemaining: from.Distance(to),
		}
		g.NextFleetID++
		g.Fleets = append(g.Fleets, f)
	}
}

// hyperspaceLossPass rolls the in-transit loss die for every fleet in
// id order and removes the unlucky ones.
func (g *Game) hyperspaceLossPass() []Event {
	var events []Event
	survivors := g.Fleets[:0]
	for _, f := range g.Fleets {
		if g.RNG.UniformInt(HyperspaceLossDie) == 0 {
			events = append(events, HyperspaceLossEvent{
				Fleet:  f.ID,
				Owner:  f.Owner,
				Origin: f.Origin,
				Dest:   f.Dest,
				Ships:  f.Ships,
			})
			log.Debug("fleet lost in hyperspace",
				log.F("fleet", int(f.ID)), log.F("ships", f.Ships))
			continue
		}
		survivors = append(survivors, f)
	}
	g.Fleets = survivors
	return events
}

// collectArrivals removes fleets that have reached their destination
// and groups them by star.
func (g *Game) collectArrivals() map[StarID][]*Fleet {
	arrivals := make(map[StarID][]*Fleet)
	remaining := g.Fleets[:0]
	for _, f := range g.Fleets {
		if f.TurnsRemaining <= 0 {
			arrivals[f.Dest] = append(arrivals[f.Dest], f)
			continue
		}
		remaining = append(remaining, f)
	}
	g.Fleets = remaining
	return arrivals
}

// rebellionPass rolls for every under-garrisoned, non-home player star
// in id order. A lost roll hands the star back to neutral control with
// a fresh garrison equal to its RU.
func (g *Game) rebellionPass() []Event {
	var events []Event
	for _, id := range g.StarIDs() {
		s := g.Stars[id]
		if !s.Owner.IsPlayer() || s.IsHome || s.Stationed >= s.BaseRU {
			continue
		}
		before := s.Stationed
		if g.RNG.Percent() < RebellionChance {
			s.Owner = OwnerNPC
			s.Stationed = s.BaseRU
			events = append(events, RebellionEvent{
				Star:           id,
				GarrisonBefore: before,
				RebelShips:     s.BaseRU,
				Outcome:        RebellionLost,
				GarrisonAfter:  s.Stationed,
			})
			continue
		}
		events = append(events, RebellionEvent{
			Star:           id,
			GarrisonBefore: before,
			RebelShips:     s.BaseRU,
			Outcome:        RebellionSuppressed,
			GarrisonAfter:  before,
		})
	}
	return events
}

// productionPass adds each owned star's RU to its garrison.
func (g *Game) productionPass() []Event {
	var events []Event
	for _, id := range g.StarIDs() {
		s := g.Stars[id]
		if !s.Owner.IsPlayer() {
			continue
		}
		s.Stationed += s.BaseRU
		events = append(events, ProductionEvent{
			Player:     s.Owner,
			Star:       id,
			ShipsAdded: s.BaseRU,
		})
	}
	return events
}
