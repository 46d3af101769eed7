package main

import (
	"fmt"

	"placer/internal/engine"
	"placer/internal/world"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [project.json]",
	Short: "Report overlapping parts and parts below the ground",
	Long:  "Load a project with the current config and list every overlapping pair and every part that dips below the ground. Exits non-zero when overlaps are found and overlap is not allowed.",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	f, err := world.Load(args[0])
	if err != nil {
		return err
	}

	scene := engine.NewScene(engine.WithSettings(cfg.SceneSettings()))
	scene.SetProjectContext(f.ID, f.SceneParts())

	pairs := scene.OverlappingPairs()
	lifted := scene.Revalidate()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Project: %s (%d parts)\n", f.ID, scene.Len())
	fmt.Fprintf(out, "Overlapping pairs: %d\n", len(pairs))
	for _, p := range pairs {
		fmt.Fprintf(out, "  %s <-> %s\n", p[0], p[1])
	}
	fmt.Fprintf(out, "Below ground: %d\n", len(lifted))
	for _, id := range lifted {
		fmt.Fprintf(out, "  %s\n", id)
	}

	if len(pairs) > 0 && !cfg.AllowOverlap {
		return fmt.Errorf("%d overlapping pairs", len(pairs))
	}
	return nil
}
