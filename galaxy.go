package conquest

import (
	"github.com/space-conquest/conquest/data"
)

// ruWeights biases neutral-star resource values toward the low end.
// Index i holds the weight of RU value i+1; weights sum to 10.
var ruWeights = [5]int{3, 3, 2, 1, 1}

type cell struct{ x, y int }

// generateGalaxy populates the game's stars and players from the
// generator. Draw order is fixed: star count, home positions, the two
// home names, then per neutral star its position, RU and name. Changing this order changes
// what every seed produces.
func (g *Game) generateGalaxy() {
	count := MinStars + g.RNG.UniformInt(MaxStars-MinStars+1)

	occupied := make(map[cell]bool)
	names := append([]string(nil), data.StarNames...)

	takeName := func() string {
		i := g.RNG.UniformInt(len(names))
		name := names[i]
		names = append(names[:i], names[i+1:]...)
		return name
	}

	randomCell := func() cell {
		return cell{x: g.RNG.UniformInt(GridWidth), y: g.RNG.UniformInt(GridHeight)}
	}

	// Homes first, far enough apart to give both players room.
	home1 := randomCell()
	home2 := randomCell()
	for home2 == home1 || manhattan(home1, home2) < MinHomeDistance {
		home2 = randomCell()
	}
	occupied[home1] = true
	occupied[home2] = true

	addStar := func(index int, c cell, ru int, owner Owner, home bool) *Star {
		stationed := ru
		if home {
			stationed = HomeRU
		}
		s := &Star{
			ID:        starID(index),
			Name:      takeName(),
			X:         c.x,
			Y:         c.y,
			BaseRU:    ru,
			IsHome:    home,
			Owner:     owner,
			Stationed: stationed,
		}
		g.Stars[s.ID] = s
		return s
	}

	h1 := addStar(0, home1, HomeRU, OwnerP1, true)
	h2 := addStar(1, home2, HomeRU, OwnerP2, true)

	for i := 2; i < count; i++ {
		c := randomCell()
		for occupied[c] {
			c = randomCell()
		}
		occupied[c] = true
		addStar(i, c, g.rollRU(), OwnerNPC, false)
	}

	g.Players[OwnerP1] = NewPlayer(OwnerP1, h1.ID)
	g.Players[OwnerP2] = NewPlayer(OwnerP2, h2.ID)
}

// rollRU draws a resource value 1..5 from the weighted distribution.
func (g *Game) rollRU() int {
	roll := g.RNG.UniformInt(10)
	for ru, w := range ruWeights {
		if roll < w {
			return ru + 1
		}
		roll -= w
	}
	return len(ruWeights)
}

// starID maps a placement index to its single-letter id.
func starID(index int) StarID {
	return StarID(rune('A' + index))
}

func manhattan(a, b cell) int {
	return abs(a.x-b.x) + abs(a.y-b.y)
}
