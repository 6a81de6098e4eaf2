package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nelhage/isolation/cmd/internal/analyze"
	"github.com/nelhage/isolation/cmd/internal/history"
	"github.com/nelhage/isolation/cmd/internal/play"
	"github.com/nelhage/isolation/cmd/internal/selfplay"
	"github.com/nelhage/isolation/cmd/internal/serve"
)

var logLevel = flag.String("log-level", "info", "log level: debug, info, warn, error")

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")

	subcommands.Register(&play.Command{}, "")
	subcommands.Register(&selfplay.Command{}, "")
	subcommands.Register(&analyze.Command{}, "")
	subcommands.Register(&serve.Command{}, "")
	subcommands.Register(&history.Command{}, "")

	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("-log-level")
	}
	zerolog.SetGlobalLevel(level)

	ctx := context.Background()
	os.Exit(int(subcommands.Execute(ctx)))
}
