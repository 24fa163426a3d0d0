package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/san-kum/castplay/internal/config"
	"github.com/san-kum/castplay/internal/fetch"
	"github.com/san-kum/castplay/internal/storage"
	"github.com/san-kum/castplay/internal/viz"
)

func openStore(cmd *cobra.Command) (*config.Config, *storage.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	store := storage.New(cfg.DataDir)
	if err := store.Init(); err != nil {
		return nil, nil, err
	}
	return cfg, store, nil
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, store, err := openStore(cmd)
	if err != nil {
		return err
	}
	if importName != "" && len(args) > 1 {
		return fmt.Errorf("--name needs a single source, got %d", len(args))
	}

	var failed int
	for _, res := range fetch.All(cmd.Context(), fetch.New(), args, cfg.FetchOptions(), 4) {
		if res.Err != nil {
			slog.Error("fetch failed", "src", res.URL, "err", res.Err)
			failed++
			continue
		}
		name := importName
		if name == "" {
			base := filepath.Base(strings.TrimPrefix(res.URL, "file://"))
			name = strings.TrimSuffix(base, filepath.Ext(base))
		}
		meta, err := store.Import(name, res.URL, res.Data)
		if err != nil {
			slog.Error("import failed", "src", res.URL, "err", err)
			failed++
			continue
		}
		slog.Info("imported recording", "id", meta.ID, "name", meta.Name)
		fmt.Printf("imported %s as %s (%s)\n", res.URL, meta.Name, meta.ID[:8])
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d imports failed", failed, len(args))
	}
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	_, store, err := openStore(cmd)
	if err != nil {
		return err
	}
	recs, err := store.List()
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Println("library is empty")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Name", "Title", "Size", "Duration", "Imported"})
	for _, m := range recs {
		t.AppendRow(table.Row{
			m.ID[:8],
			m.Name,
			m.Title,
			fmt.Sprintf("%dx%d", m.Cols, m.Rows),
			viz.FormatClock(m.Duration),
			m.Imported.Format("2006-01-02 15:04"),
		})
	}
	t.Render()
	return nil
}

func runRemove(cmd *cobra.Command, args []string) error {
	_, store, err := openStore(cmd)
	if err != nil {
		return err
	}
	meta, err := store.Remove(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("removed %s (%s)\n", meta.Name, meta.ID[:8])
	return nil
}

func runPresets(cmd *cobra.Command, args []string) error {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Preset", "Idle limit", "Start", "Description"})
	for _, name := range config.ListPresets() {
		p, _ := config.GetPreset(name)
		limit := "none"
		if p.IdleTimeLimit != nil {
			limit = fmt.Sprintf("%gs", *p.IdleTimeLimit)
		}
		t.AppendRow(table.Row{name, limit, p.StartAt, p.Description})
	}
	t.Render()
	return nil
}
