package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/talgya/socialsim/internal/persistence"
)

func newRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("db") {
				cfg.Storage.Path, _ = cmd.Flags().GetString("db")
			}
			if cfg.Storage.Path == "" {
				return errors.New("no database: pass --db or set storage.path")
			}
			limit, _ := cmd.Flags().GetInt("limit")

			db, err := persistence.Open(cfg.Storage.Path)
			if err != nil {
				return err
			}
			defer db.Close()

			runs, err := db.RecentRuns(limit)
			if err != nil {
				return fmt.Errorf("list runs: %w", err)
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(runs)
			}

			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
				return nil
			}
			for _, r := range runs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s agents  %s rounds  pull %.3f  final %.4f\n",
					r.ID, humanize.Time(r.CreatedAt),
					humanize.Comma(int64(r.Size)), humanize.Comma(int64(r.Iterations)),
					r.Pull, r.FinalMean)
			}
			return nil
		},
	}

	cmd.Flags().String("db", "", "SQLite database holding recorded runs")
	cmd.Flags().Int("limit", 20, "Maximum number of runs to list")
	return cmd
}
