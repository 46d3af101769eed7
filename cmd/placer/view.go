package main

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"placer/internal/config"
	"placer/internal/editor"
	"placer/internal/engine"
	"placer/internal/viewer"
	"placer/internal/world"

	"github.com/spf13/cobra"
)

var viewCmd = &cobra.Command{
	Use:   "view [project.json]",
	Short: "Open a project in the interactive editor",
	Long:  "Open a project file in a window. A missing file starts an empty project that is created on first save (Ctrl+S).",
	Args:  cobra.ExactArgs(1),
	RunE:  runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	path := args[0]
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	f, err := world.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		f = world.ProjectFile{ID: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))}
		slog.Info("starting new project", "path", path)
	} else if err != nil {
		return err
	}

	log := slog.Default()
	scene := engine.NewScene(engine.WithLogger(log), engine.WithSettings(cfg.SceneSettings()))
	scene.SetProjectContext(f.ID, f.SceneParts())
	if lifted := scene.Revalidate(); len(lifted) > 0 {
		slog.Warn("parts below ground were lifted", "count", len(lifted))
	}
	ctrl := editor.NewController(scene, editor.WithLogger(log), editor.WithSettings(cfg.EditorSettings()))

	reloads := make(chan config.Config, 1)
	if w, err := config.NewWatcher(configPath, 200*time.Millisecond, log); err != nil {
		slog.Warn("config hot reload disabled", "err", err)
	} else {
		defer w.Close()
		w.Start(func(c config.Config) {
			// keep only the newest pending config
			select {
			case <-reloads:
			default:
			}
			reloads <- c
		})
	}

	viewer.Run(scene, ctrl, viewer.Options{
		Title:       "placer - " + f.ID,
		ProjectPath: path,
		Reloads:     reloads,
		Logger:      log,
	})
	return nil
}
