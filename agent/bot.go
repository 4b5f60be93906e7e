package agent

import (
	"context"
	"sort"

	"github.com/space-conquest/conquest"
	"github.com/space-conquest/conquest/visibility"
)

// BotProviderName is the registered name of the built-in heuristic
// player.
const BotProviderName = "bot"

// Bot is a deterministic, credential-free Provider. It sees only the
// fog-filtered observation, exactly like an LLM player, and makes no
// random draws, so games between bots replay identically. Strategy:
// keep each held star's garrison at its RU, push the surplus toward
// the nearest star not yet held, and once a star holds at least
// 3*HomeRU ships send its surplus at the enemy home instead.
type Bot struct{}

func init() {
	Register(Bot{})
}

func (Bot) Name() string { return BotProviderName }

// DecideOrders implements Provider.
func (Bot) DecideOrders(_ context.Context, obs *visibility.Observation, _ *Tools) ([]conquest.Order, error) {
	var orders []conquest.Order

	// The enemy home's position is public; once we can muster a real
	// strike force, the surplus converges on it.
	var enemyHome conquest.StarID
	for _, s := range obs.Stars {
		if s.IsHome && s.ID != obs.HomeStar {
			enemyHome = s.ID
		}
	}

	for _, s := range obs.Stars {
		if !s.Stationed.Known {
			continue // not ours
		}
		garrison := s.Stationed.Value

		// Never strip a star below its RU: that invites rebellion.
		keep := s.BaseRU.Value
		if !s.BaseRU.Known {
			keep = 1
		}
		surplus := garrison - keep
		if surplus < 1 {
			continue
		}

		if garrison >= 3*conquest.HomeRU && enemyHome != "" && s.ID != enemyHome {
			orders = append(orders, conquest.Order{From: s.ID, To: enemyHome, Ships: surplus})
			continue
		}

		target := nearestTarget(s, obs.Stars)
		if target == "" {
			continue
		}
		orders = append(orders, conquest.Order{From: s.ID, To: target, Ships: surplus})
	}

	return orders, nil
}

// nearestTarget picks the closest star we do not hold, preferring the
// lower id on ties so the choice is stable.
func nearestTarget(from visibility.StarView, stars []visibility.StarView) conquest.StarID {
	type candidate struct {
		id   conquest.StarID
		dist int
	}
	var cands []candidate
	for _, s := range stars {
		if s.ID == from.ID || s.Stationed.Known {
			continue
		}
		d := absInt(s.X-from.X) + absInt(s.Y-from.Y)
		cands = append(cands, candidate{id: s.ID, dist: d})
	}
	if len(cands) == 0 {
		return ""
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].dist != cands[j].dist {
			return cands[i].dist < cands[j].dist
		}
		return cands[i].id < cands[j].id
	})
	return cands[0].id
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
