// Command conquest plays Space Conquest games from the terminal.
//
// Usage:
//
//	conquest [options]
//
// Modes:
//
//	hvh   two humans at one terminal
//	hvl   human as p1 against an LLM as p2
//	lvl   two LLM players against each other
//
// LLM modes require the provider's credentials in the environment and
// refuse to start without them.
package main

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"

	"github.com/space-conquest/conquest/log"
)

var version = "dev"

type options struct {
	Mode     string `long:"mode" choice:"hvh" choice:"hvl" choice:"lvl" default:"hvh" description:"Who plays: humans, human vs LLM, or LLM vs LLM"`
	Seed     int64  `long:"seed" description:"Galaxy seed (defaults to the current time)"`
	Load     string `long:"load" description:"Resume from a snapshot file"`
	Save     string `long:"save" description:"Write a snapshot file after every turn"`
	TUI      bool   `long:"tui" description:"Draw the galaxy board between turns"`
	Provider string `long:"provider" default:"bot" description:"Decision provider for LLM players"`
	Model    string `long:"model" description:"Model id passed to the provider"`
	Map      string `long:"map" description:"Write a PNG galaxy map after every turn"`
	Debug    bool   `long:"debug" description:"Verbose engine logging"`
	Version  func() `short:"V" long:"version" description:"Print version and exit"`
}

func main() {
	var opts options
	opts.Version = func() {
		fmt.Printf("conquest %s\n", version)
		os.Exit(0)
	}

	parser := flags.NewParser(&opts, flags.Default)
	parser.Name = "conquest"
	parser.LongDescription = "A deterministic turn-based 4X played on a small grid of stars"

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	level := zerolog.InfoLevel
	if opts.Debug {
		level = zerolog.DebugLevel
	}
	zlog := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
	log.SetLogger(log.NewZerologAdapter(zlog))

	if err := run(&opts); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
