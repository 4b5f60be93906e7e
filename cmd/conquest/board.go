package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/space-conquest/conquest"
)

// printBoard draws the full (unfogged) grid. The board is a referee
// view for two humans sharing a terminal; fogged per-player views come
// from printObservation.
func printBoard(g *conquest.Game) {
	grid := make(map[[2]int]*conquest.Star)
	for _, s := range g.Stars {
		grid[[2]int{s.X, s.Y}] = s
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("turn %d\n", g.Turn))
	for y := 0; y < conquest.GridHeight; y++ {
		for x := 0; x < conquest.GridWidth; x++ {
			s, ok := grid[[2]int{x, y}]
			if !ok {
				b.WriteString(" . ")
				continue
			}
			mark := string(s.ID)
			switch s.Owner {
			case conquest.OwnerP1:
				mark = "+" + mark
			case conquest.OwnerP2:
				mark = "-" + mark
			default:
				mark = " " + mark
			}
			b.WriteString(fmt.Sprintf("%-3s", mark))
		}
		b.WriteString("\n")
	}
	fmt.Print(b.String())
}

func printEvents(res *conquest.TurnResult) {
	for _, ev := range res.Events {
		switch e := ev.(type) {
		case *conquest.CombatEvent:
			suffix := ""
			if e.WasHomeCapture {
				suffix = " (home captured!)"
			}
			fmt.Printf("battle at %s: %s(%d) vs %s(%d), %s wins%s\n",
				e.Star, e.Attacker, e.AttackerShips, e.Defender, e.DefenderShips, e.Winner, suffix)
		case conquest.HyperspaceLossEvent:
			fmt.Printf("fleet %d (%s, %d ships) lost in hyperspace\n", e.Fleet, e.Owner, e.Ships)
		case conquest.RebellionEvent:
			if e.Outcome == conquest.RebellionLost {
				fmt.Printf("rebellion at %s: garrison of %d overthrown\n", e.Star, e.GarrisonBefore)
			}
		case conquest.ArrivalEvent:
			fmt.Printf("fleet %d arrived at %s with %d ships\n", e.Fleet, e.Star, e.Ships)
		}
	}
}

func printRejection(err *conquest.OrdersRejectedError) {
	fmt.Printf("orders rejected for %s:\n", err.Player)
	for _, e := range err.Errors {
		fmt.Printf("  %s\n", e.Error())
	}
}

func printResult(g *conquest.Game) {
	switch g.Winner {
	case conquest.WinnerDraw:
		fmt.Println("mutual conquest: the war ends in a draw")
	case conquest.WinnerP1, conquest.WinnerP2:
		fmt.Printf("%s wins on turn %d\n", g.Winner, g.Turn)
	default:
		fmt.Println("game over")
	}
}

func asOrdersRejected(err error, target **conquest.OrdersRejectedError) bool {
	return errors.As(err, target)
}
