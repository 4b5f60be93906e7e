package conquest

// checkVictory decides the game after a turn's combat has settled.
// Capturing the opponent's home wins; capturing each other's homes on
// the same turn is a draw. A home left unowned by mutual destruction
// decides nothing.
func (g *Game) checkVictory() Winner {
	h1 := g.Stars[g.Players[OwnerP1].HomeStar]
	h2 := g.Stars[g.Players[OwnerP2].HomeStar]

	p1Captured := h2.Owner == OwnerP1
	p2Captured := h1.Owner == OwnerP2

	switch {
	case p1Captured && p2Captured:
		g.Winner = WinnerDraw
	case p1Captured:
		g.Winner = WinnerP1
	case p2Captured:
		g.Winner = WinnerP2
	default:
		return WinnerNone
	}

	g.Phase = PhaseCompleted
	return g.Winner
}
