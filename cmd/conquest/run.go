package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/space-conquest/conquest"
	"github.com/space-conquest/conquest/agent"
	"github.com/space-conquest/conquest/maprender"
	"github.com/space-conquest/conquest/session"
	"github.com/space-conquest/conquest/store"
	"github.com/space-conquest/conquest/visibility"
)

// player is how the CLI gathers one side's orders each turn.
type player interface {
	Orders(sess *session.Session, id conquest.Owner) ([]conquest.Order, error)
}

func run(opts *options) error {
	// Credentials are checked before any game state exists so a
	// misconfigured LLM game fails fast.
	needsLLM := opts.Mode == "hvl" || opts.Mode == "lvl"
	if needsLLM {
		if _, err := agent.LoadCredentials(opts.Provider, opts.Model); err != nil {
			return err
		}
	}

	stdin := bufio.NewReader(os.Stdin)
	players := map[conquest.Owner]player{
		conquest.OwnerP1: humanPlayer{in: stdin},
		conquest.OwnerP2: humanPlayer{in: stdin},
	}
	if needsLLM {
		prov, err := agent.Lookup(opts.Provider)
		if err != nil {
			return fmt.Errorf("%w (is the %s adapter linked into this binary?)", err, opts.Provider)
		}
		players[conquest.OwnerP2] = providerPlayer{provider: prov}
		if opts.Mode == "lvl" {
			players[conquest.OwnerP1] = providerPlayer{provider: prov}
		}
	}

	sess, err := openSession(opts)
	if err != nil {
		return err
	}

	// Players whose order list for the current turn is already settled
	// by a forfeit and must not be asked again.
	forfeited := make(map[conquest.Owner]bool)

	for sess.Game().Phase == conquest.PhaseRunning {
		if opts.TUI {
			printBoard(sess.Game())
		}

		for _, id := range []conquest.Owner{conquest.OwnerP1, conquest.OwnerP2} {
			if forfeited[id] {
				continue
			}
			orders, err := players[id].Orders(sess, id)
			if err != nil {
				return fmt.Errorf("gathering orders for %s: %w", id, err)
			}
			sess.SubmitOrders(id, orders)
		}

		res, err := sess.Step()
		if err != nil {
			var rejected *conquest.OrdersRejectedError
			if ok := asOrdersRejected(err, &rejected); ok {
				printRejection(rejected)
				// Humans get another go; an AI that submits invalid
				// orders forfeits its turn with an empty list.
				if _, human := players[rejected.Player].(humanPlayer); !human {
					sess.SubmitOrders(rejected.Player, nil)
					forfeited[rejected.Player] = true
				}
				continue
			}
			return err
		}
		forfeited = make(map[conquest.Owner]bool)

		printEvents(res)

		if opts.Save != "" {
			if err := writeSnapshot(sess.Game(), opts.Save); err != nil {
				return err
			}
		}
		if opts.Map != "" {
			if err := maprender.New(sess.Game()).SavePNG(opts.Map, nil); err != nil {
				return err
			}
		}
	}

	printResult(sess.Game())
	return nil
}

func openSession(opts *options) (*session.Session, error) {
	if opts.Load != "" {
		data, err := os.ReadFile(opts.Load)
		if err != nil {
			return nil, fmt.Errorf("failed to read snapshot: %w", err)
		}
		g, err := store.Unmarshal(data)
		if err != nil {
			return nil, err
		}
		return session.Wrap(g), nil
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	fmt.Printf("new galaxy, seed %d\n", seed)
	return session.New(seed), nil
}

func writeSnapshot(g *conquest.Game, filename string) error {
	data, err := store.Marshal(g)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// humanPlayer reads orders from the terminal, one per line as
// "FROM TO SHIPS", ended by an empty line or "done".
type humanPlayer struct {
	in *bufio.Reader
}

func (h humanPlayer) Orders(sess *session.Session, id conquest.Owner) ([]conquest.Order, error) {
	obs, err := sess.Observe(id)
	if err != nil {
		return nil, err
	}
	printObservation(obs)

	var orders []conquest.Order
	fmt.Printf("%s orders (FROM TO SHIPS per line, empty line to finish):\n", id)
	for {
		fmt.Printf("%s> ", id)
		line, err := h.in.ReadString('\n')
		if err != nil {
			return orders, nil
		}
		line = strings.TrimSpace(line)
		if line == "" || line == "done" {
			return orders, nil
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			fmt.Println("  expected: FROM TO SHIPS, e.g. A C 2")
			continue
		}
		ships, err := strconv.Atoi(fields[2])
		if err != nil {
			fmt.Println("  ship count must be a number")
			continue
		}
		orders = append(orders, conquest.Order{
			From:  conquest.StarID(strings.ToUpper(fields[0])),
			To:    conquest.StarID(strings.ToUpper(fields[1])),
			Ships: ships,
		})
	}
}

// providerPlayer asks a decision provider (LLM adapter or the built-in
// bot) for orders.
type providerPlayer struct {
	provider agent.Provider
}

func (p providerPlayer) Orders(sess *session.Session, id conquest.Owner) ([]conquest.Order, error) {
	sess.SetHint(session.HintAIThinking)
	defer sess.SetHint(session.HintAwaitingOrders)

	obs, err := sess.Observe(id)
	if err != nil {
		return nil, err
	}
	tools := agent.NewTools(sess.Game(), id)
	return p.provider.DecideOrders(context.Background(), obs, tools)
}

func printObservation(obs *visibility.Observation) {
	fmt.Printf("--- turn %d, %s ---\n", obs.Turn, obs.Player)
	for _, s := range obs.Stars {
		line := fmt.Sprintf("  %s %-10s (%2d,%2d)", s.ID, s.Name, s.X, s.Y)
		if s.IsHome {
			line += " [home]"
		}
		if s.Owner.Known {
			line += fmt.Sprintf(" owner=%s", s.Owner.Value)
		}
		if s.BaseRU.Known {
			line += fmt.Sprintf(" ru=%d", s.BaseRU.Value)
		}
		if s.Stationed.Known {
			line += fmt.Sprintf(" ships=%d", s.Stationed.Value)
		}
		fmt.Println(line)
	}
	for _, f := range obs.Fleets {
		fmt.Printf("  fleet %d: %s->%s, %d ships, %d turns out\n",
			f.ID, f.Origin, f.Dest, f.Ships, f.TurnsRemaining)
	}
}
