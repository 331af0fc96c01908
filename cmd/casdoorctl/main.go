package main

import (
	"os"

	"github.com/rs/zerolog"
)

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		log.Error().Err(err).Msg("casdoorctl failed")
		os.Exit(1)
	}
}
