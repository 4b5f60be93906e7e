// Example of driving the engine as a library: two built-in bots play
// a full game and the final snapshot is printed to stdout.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/space-conquest/conquest"
	"github.com/space-conquest/conquest/agent"
	"github.com/space-conquest/conquest/store"
)

func main() {
	g := conquest.NewGame(20260801)
	bot := agent.Bot{}

	for g.Phase == conquest.PhaseRunning && g.Turn < 200 {
		var lists [2][]conquest.Order
		for i, id := range []conquest.Owner{conquest.OwnerP1, conquest.OwnerP2} {
			tools := agent.NewTools(g, id)
			obs, err := tools.GetObservation()
			if err != nil {
				fmt.Fprintln(os.Stderr, "observe:", err)
				os.Exit(1)
			}
			orders, err := bot.DecideOrders(context.Background(), obs, tools)
			if err != nil {
				fmt.Fprintln(os.Stderr, "decide:", err)
				os.Exit(1)
			}
			lists[i] = orders
		}

		res, err := g.ExecuteTurn(lists[0], lists[1])
		if err != nil {
			fmt.Fprintln(os.Stderr, "turn:", err)
			os.Exit(1)
		}
		for _, ev := range res.Events {
			if c, ok := ev.(*conquest.CombatEvent); ok && c.WasHomeCapture {
				fmt.Printf("turn %d: home %s captured by %s\n", res.Turn, c.Star, c.Attacker)
			}
		}
	}

	fmt.Printf("finished on turn %d, winner: %q\n", g.Turn, g.Winner)

	data, err := store.Marshal(g)
	if err != nil {
		fmt.Fprintln(os.Stderr, "snapshot:", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}
