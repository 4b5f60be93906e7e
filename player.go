package conquest

import "sort"

// Player holds a player's home star and the set of stars they have
// intel on. Visited gates what the observation layer reveals: a player
// sees the RU and owner of a star only after owning or fighting there.
type Player struct {
	ID       Owner
	HomeStar StarID
	visited  map[StarID]struct{}
}

// NewPlayer creates a player with an empty visited set.
func NewPlayer(id Owner, home StarID) *Player {
	return &Player{
		ID:       id,
		HomeStar: home,
		visited:  make(map[StarID]struct{}),
	}
}

// MarkVisited records that the player has owned or fought at a star.
func (p *Player) MarkVisited(id StarID) {
	p.visited[id] = struct{}{}
}

// HasVisited reports whether the player has intel on a star.
func (p *Player) HasVisited(id StarID) bool {
	_, ok := p.visited[id]
	return ok
}

// VisitedStars returns the visited set as a sorted slice, for
// serialization and deterministic iteration.
func (p *Player) VisitedStars() []StarID {
	ids := make([]StarID, 0, len(p.visited))
	for id := range p.visited {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
