package main

import (
	"fmt"

	"placer/internal/store"
	"placer/internal/world"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import [project.json]",
	Short: "Copy a project file into the project database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := world.Load(args[0])
		if err != nil {
			return err
		}
		if f.ID == "" {
			return fmt.Errorf("%s has no project id", args[0])
		}
		st, err := store.Open(cmd.Context(), dbPath)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Save(cmd.Context(), f); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %s (%d parts)\n", f.ID, len(f.Parts))
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [id] [project.json]",
	Short: "Write a stored project to a project file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open(cmd.Context(), dbPath)
		if err != nil {
			return err
		}
		defer st.Close()
		f, err := st.Load(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return world.Save(args[1], f)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored projects",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open(cmd.Context(), dbPath)
		if err != nil {
			return err
		}
		defer st.Close()
		list, err := st.List(cmd.Context())
		if err != nil {
			return err
		}
		for _, p := range list {
			fmt.Fprintf(cmd.OutOrStdout(), "%-36s %4d parts  %s  %s\n", p.ID, p.PartCount, p.UpdatedAt.Format("2006-01-02 15:04"), p.Name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd, exportCmd, listCmd)
}
