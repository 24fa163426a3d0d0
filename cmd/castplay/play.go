package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/castplay/internal/fetch"
	"github.com/san-kum/castplay/internal/tui"
	"github.com/san-kum/castplay/internal/viz"
)

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := playbackConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := playerOptions(cfg, args[0])
	if err != nil {
		return err
	}
	return tui.Play(cmd.Context(), tui.Options{
		Player:  opts,
		Fetcher: fetch.New(),
		Logger:  slog.Default(),
		Speed:   speed,
		Loop:    loop,
		In:      os.Stdin,
		Out:     os.Stdout,
	})
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := playbackConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := playerOptions(cfg, args[0])
	if err != nil {
		return err
	}
	return viz.Run(cmd.Context(), viz.Options{
		Player:  opts,
		Fetcher: fetch.New(),
		Logger:  slog.Default(),
		Theme:   cfg.Theme,
		Speed:   speed,
		Loop:    loop,
	})
}
