package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/san-kum/castplay/internal/config"
	"github.com/san-kum/castplay/internal/fetch"
	"github.com/san-kum/castplay/internal/player"
	"github.com/san-kum/castplay/internal/storage"
)

var (
	dataDir    string
	configFile string
	logLevel   string

	// playback
	idleLimit float64
	startAt   string
	preset    string
	theme     string
	speed     float64
	loop      bool

	// inspection
	posterAt     string
	posterPlain  bool
	posterRaw    bool
	posterFormat string
	frameFormat  string
	bucket       float64
	activitySVG  string
	importName   string
)

// main registers the castplay commands and exits with status 1 when the
// selected command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "castplay",
		Short:         "asciicast recording player",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "library directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "debug, info, warn or error")

	playCmd := &cobra.Command{
		Use:   "play [src]",
		Short: "play a recording in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlay,
	}
	addTimingFlags(playCmd, true)
	playCmd.Flags().Float64Var(&speed, "speed", 1, "playback speed multiplier")
	playCmd.Flags().BoolVar(&loop, "loop", false, "restart when playback finishes")

	viewCmd := &cobra.Command{
		Use:   "view [src]",
		Short: "play a recording in the interactive viewer",
		Args:  cobra.ExactArgs(1),
		RunE:  runView,
	}
	addTimingFlags(viewCmd, true)
	viewCmd.Flags().Float64Var(&speed, "speed", 1, "playback speed multiplier")
	viewCmd.Flags().BoolVar(&loop, "loop", false, "restart when playback finishes")
	viewCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme")

	infoCmd := &cobra.Command{
		Use:   "info [src]",
		Short: "show recording details",
		Args:  cobra.ExactArgs(1),
		RunE:  runInfo,
	}
	addTimingFlags(infoCmd, false)

	posterCmd := &cobra.Command{
		Use:   "poster [src]",
		Short: "render the screen at a point in time",
		Args:  cobra.ExactArgs(1),
		RunE:  runPoster,
	}
	addTimingFlags(posterCmd, false)
	posterCmd.Flags().StringVar(&posterAt, "at", "", "time: seconds, m:ss or NN% (default: end)")
	posterCmd.Flags().BoolVar(&posterPlain, "plain", false, "print text with escape sequences stripped")
	posterCmd.Flags().BoolVar(&posterRaw, "raw", false, "print the raw output chunks")
	posterCmd.Flags().StringVar(&posterFormat, "format", "text", "text or svg")

	framesCmd := &cobra.Command{
		Use:   "frames [src]",
		Short: "export the frame table",
		Args:  cobra.ExactArgs(1),
		RunE:  runFrames,
	}
	addTimingFlags(framesCmd, false)
	framesCmd.Flags().StringVar(&frameFormat, "format", "json", "json, csv or cast")

	activityCmd := &cobra.Command{
		Use:   "activity [src]",
		Short: "chart output volume over time",
		Args:  cobra.ExactArgs(1),
		RunE:  runActivity,
	}
	addTimingFlags(activityCmd, false)
	activityCmd.Flags().Float64Var(&bucket, "bucket", config.DefaultBucket, "bucket width in seconds")
	activityCmd.Flags().StringVar(&activitySVG, "svg", "", "also write the chart as svg to this file")

	importCmd := &cobra.Command{
		Use:   "import [src...]",
		Short: "copy recordings into the library",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runImport,
	}
	importCmd.Flags().StringVar(&importName, "name", "", "library name (default: file name)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list library recordings",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}

	rmCmd := &cobra.Command{
		Use:   "rm [ref]",
		Short: "remove a recording from the library",
		Args:  cobra.ExactArgs(1),
		RunE:  runRemove,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list playback presets",
		Args:  cobra.NoArgs,
		RunE:  runPresets,
	}

	rootCmd.AddCommand(playCmd, viewCmd, infoCmd, posterCmd, framesCmd, activityCmd,
		importCmd, listCmd, rmCmd, presetsCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func addTimingFlags(cmd *cobra.Command, withStart bool) {
	cmd.Flags().Float64Var(&idleLimit, "idle-time-limit", 0, "cap pauses at this many seconds")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset playback settings")
	if withStart {
		cmd.Flags().StringVar(&startAt, "start-at", "", "start position: seconds, m:ss or NN%")
	}
}

func setupLogging(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// loadConfig reads --config, or config.yaml in the data directory when it
// exists, and layers the global flags on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	path := configFile
	if path == "" {
		candidate := filepath.Join(dataDir, "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		}
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}

// playbackConfig applies --preset, then the explicit timing flags.
func playbackConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if preset != "" {
		if err := cfg.ApplyPreset(preset); err != nil {
			return nil, err
		}
	}
	if flags.Changed("idle-time-limit") {
		v := idleLimit
		cfg.IdleTimeLimit = &v
	}
	if flags.Changed("start-at") {
		cfg.StartAt = startAt
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("bucket") {
		cfg.Activity.Bucket = bucket
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func playerOptions(cfg *config.Config, src string) (player.Options, error) {
	sa, err := cfg.StartPosition()
	if err != nil {
		return player.Options{}, err
	}
	url, err := resolveSource(cfg, src)
	if err != nil {
		return player.Options{}, err
	}
	return player.Options{
		URL:           url,
		Fetch:         cfg.FetchOptions(),
		IdleTimeLimit: cfg.IdleTimeLimit,
		StartAt:       sa,
	}, nil
}

// resolveSource maps src to a fetchable location. URLs pass through,
// existing files win over library entries, and anything else is looked up
// in the library.
func resolveSource(cfg *config.Config, src string) (string, error) {
	if fetch.IsRemote(src) {
		return src, nil
	}
	if _, err := os.Stat(src); err == nil {
		return src, nil
	}

	store := storage.New(cfg.DataDir)
	meta, err := store.Resolve(src)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", fmt.Errorf("%s: %w", src, fs.ErrNotExist)
		}
		return "", err
	}
	slog.Debug("resolved library recording", "ref", src, "id", meta.ID)
	return store.Path(meta.ID), nil
}
