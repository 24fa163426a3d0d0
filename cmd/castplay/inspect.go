package main

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/san-kum/castplay/internal/analysis"
	"github.com/san-kum/castplay/internal/config"
	"github.com/san-kum/castplay/internal/export"
	"github.com/san-kum/castplay/internal/fetch"
	"github.com/san-kum/castplay/internal/player"
	"github.com/san-kum/castplay/internal/screen"
	"github.com/san-kum/castplay/internal/viz"
)

// openRecording loads src into a driver that is never started.
func openRecording(cmd *cobra.Command, src string) (*player.Driver, *config.Config, error) {
	cfg, err := playbackConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	opts, err := playerOptions(cfg, src)
	if err != nil {
		return nil, nil, err
	}
	drv := player.New(opts, player.Ports{Fetcher: fetch.New(), Logger: slog.Default()})
	if _, err := drv.Init(cmd.Context()); err != nil {
		return nil, nil, err
	}
	return drv, cfg, nil
}

func formatLimit(t float64, limited bool) string {
	if !limited {
		return "none"
	}
	return fmt.Sprintf("%gs", t)
}

func runInfo(cmd *cobra.Command, args []string) error {
	drv, _, err := openRecording(cmd, args[0])
	if err != nil {
		return err
	}
	h, tbl := drv.Header(), drv.Table()
	sum := analysis.Summarize(tbl.Frames, 1)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendRows([]table.Row{
		{"title", h.Title},
		{"format", fmt.Sprintf("asciicast v%d", h.Version)},
		{"size", fmt.Sprintf("%dx%d", tbl.Cols, tbl.Rows)},
		{"events", tbl.Events},
		{"frames", tbl.Len()},
		{"bytes", sum.Bytes},
		{"duration", fmt.Sprintf("%s (%.3fs)", viz.FormatClock(tbl.Duration), tbl.Duration)},
		{"idle limit", formatLimit(tbl.IdleTimeLimit, tbl.Limited())},
		{"start at", fmt.Sprintf("%.3fs", tbl.EffectiveStartAt)},
		{"longest gap", fmt.Sprintf("%.3fs at %.3fs", sum.MaxGap, sum.MaxGapAt)},
	})
	if h.Timestamp > 0 {
		t.AppendRow(table.Row{"recorded", time.Unix(h.Timestamp, 0).Format(time.RFC3339)})
	}
	for _, k := range []string{"SHELL", "TERM"} {
		if v, ok := h.Env[k]; ok {
			t.AppendRow(table.Row{strings.ToLower(k), v})
		}
	}
	t.Render()
	return nil
}

func runPoster(cmd *cobra.Command, args []string) error {
	drv, cfg, err := openRecording(cmd, args[0])
	if err != nil {
		return err
	}

	at := math.Inf(1)
	if posterAt != "" {
		target, err := player.ParseTarget(posterAt)
		if err != nil {
			return err
		}
		at = target.Resolve(0, drv.Duration())
	}
	chunks, err := drv.Poster(at)
	if err != nil {
		return err
	}

	switch {
	case posterRaw:
		fmt.Print(strings.Join(chunks, ""))
		return nil
	case posterPlain:
		fmt.Println(screen.Plain(chunks))
		return nil
	}

	tbl := drv.Table()
	scr := screen.Render(tbl.Cols, tbl.Rows, chunks)
	switch posterFormat {
	case "text":
		fmt.Println(scr.String())
	case "svg":
		th, _ := viz.GetTheme(cfg.Theme)
		fmt.Println(export.ScreenSVG(scr.Lines(), tbl.Cols, tbl.Rows, th.ScreenFG, th.ScreenBG))
	default:
		return fmt.Errorf("unknown poster format %q (text, svg)", posterFormat)
	}
	return nil
}

func runFrames(cmd *cobra.Command, args []string) error {
	drv, _, err := openRecording(cmd, args[0])
	if err != nil {
		return err
	}
	return export.WriteTable(os.Stdout, export.Format(frameFormat), drv.Table(), drv.Header())
}

func runActivity(cmd *cobra.Command, args []string) error {
	drv, cfg, err := openRecording(cmd, args[0])
	if err != nil {
		return err
	}
	tbl := drv.Table()
	if tbl.Len() == 0 {
		fmt.Println("no output")
		return nil
	}

	buckets := analysis.Activity(tbl.Frames, tbl.Duration, cfg.Activity.Bucket)
	peak, peakBytes := analysis.Peak(buckets)
	sum := analysis.Summarize(tbl.Frames, cfg.Activity.Bucket)

	if len(buckets) > 1 {
		graph := asciigraph.Plot(buckets,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("bytes per %gs", cfg.Activity.Bucket)),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	fmt.Printf("frames: %d  bytes: %d  duration: %s\n", sum.Frames, sum.Bytes, viz.FormatClock(sum.Duration))
	fmt.Printf("peak: %.0f bytes at %s\n", peakBytes, viz.FormatClock(float64(peak)*cfg.Activity.Bucket))
	fmt.Printf("gaps over %gs: %d (%.2fs beyond)\n", cfg.Activity.Bucket, sum.IdleGaps, sum.IdleTime)

	if activitySVG != "" {
		svg := export.SeriesSVG(buckets, 800, 200, "#00d7ff")
		if svg == "" {
			return fmt.Errorf("not enough buckets for a chart")
		}
		if err := os.WriteFile(activitySVG, []byte(svg), 0644); err != nil {
			return err
		}
		slog.Info("wrote chart", "path", activitySVG)
	}
	return nil
}
