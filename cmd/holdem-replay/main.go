// Command holdem-replay drives the engine's hand-log replay adapter
// (spec §4.8) against a JSON HandSpec file and reports the resulting
// settlement, grounded in lox-pokerforbots's cmd/pokerforbots CLI
// shape (kong subcommands) and cmd/holdem's charmbracelet/log setup.
package main

import (
	"encoding/json"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"holdem-engine/card"
	"holdem-engine/replay"
)

var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Replay  ReplayCmd        `cmd:"" help:"Replay a recorded hand log against the engine"`
}

type ReplayCmd struct {
	Spec     string `arg:"" help:"Path to a HandSpec JSON file"`
	LogLevel string `help:"Set the log level" enum:"debug,info,warn,error" default:"info"`
}

func (c *ReplayCmd) Run() error {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return err
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "holdem-replay",
		Level:           level,
	})

	raw, err := os.ReadFile(c.Spec)
	if err != nil {
		return err
	}
	var spec replay.HandSpec
	if err := json.Unmarshal(raw, &spec); err != nil {
		return err
	}

	snap, result, err := replay.RunReplay(spec)
	if err != nil {
		logger.Error("replay failed", "error", err)
		return err
	}

	logger.Info("replay complete",
		"round", snap.Round,
		"board", cardsString(snap.CommunityCards),
	)
	for _, pr := range result.PlayerResults {
		if pr.IsWinner {
			logger.Info("winner",
				"chair", pr.Chair,
				"amount", pr.WinAmount,
				"hand_class", pr.HandClass,
			)
		}
	}
	return nil
}

func cardsString(cards []card.Card) string {
	out := ""
	for i, c := range cards {
		if i > 0 {
			out += " "
		}
		out += c.String()
	}
	return out
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("holdem-replay"),
		kong.Description("Replay a recorded no-limit hold'em hand against the engine"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
