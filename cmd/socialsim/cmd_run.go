package main

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/talgya/socialsim/internal/agents"
	"github.com/talgya/socialsim/internal/engine"
	"github.com/talgya/socialsim/internal/persistence"
)

type runOutput struct {
	RunID      string    `json:"run_id,omitempty"`
	Seed       int64     `json:"seed"`
	Population int       `json:"population"`
	Iterations int       `json:"iterations"`
	Pull       float64   `json:"pull"`
	Series     []float64 `json:"series"`
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a simulation and print the average attachment per round",
		Long: `Builds a community, runs the requested number of pairing rounds under the
opinion-pull rule and prints the average attachment before the first round and
after every round (iterations+1 values).

Averages can be restricted to one gender or one area, not both.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("size") {
				cfg.Simulation.Size, _ = flags.GetInt("size")
			}
			if flags.Changed("iterations") {
				cfg.Simulation.Iterations, _ = flags.GetInt("iterations")
			}
			if flags.Changed("pull") {
				cfg.Simulation.Pull, _ = flags.GetFloat64("pull")
			}
			if flags.Changed("seed") {
				cfg.Simulation.Seed, _ = flags.GetInt64("seed")
			}
			if flags.Changed("db") {
				cfg.Storage.Path, _ = flags.GetString("db")
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			filter, err := filterFromFlags(cmd)
			if err != nil {
				return err
			}

			params := cfg.Params()
			sim, err := engine.NewSimulation(params)
			if err != nil {
				return err
			}
			sim.Engine.Filter = filter

			rec := &persistence.Recorder{}
			sim.Engine.OnRound = rec.Observe

			summaries, err := sim.Engine.Run(cfg.Simulation.Iterations)
			if err != nil {
				return err
			}

			out := runOutput{
				Seed:       sim.Source.Seed(),
				Population: sim.Community.Size(),
				Iterations: cfg.Simulation.Iterations,
				Pull:       params.Pull,
				Series:     engine.Series(summaries),
			}

			if cfg.Storage.Path != "" {
				db, err := persistence.Open(cfg.Storage.Path)
				if err != nil {
					return err
				}
				defer db.Close()

				run := persistence.NewRun(params, out.Seed, out.Iterations)
				if err := db.SaveRun(run, rec.Rounds()); err != nil {
					return fmt.Errorf("save run: %w", err)
				}
				out.RunID = run.ID
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s agents, %s rounds, pull %.3f, seed %d\n",
				humanize.Comma(int64(out.Population)), humanize.Comma(int64(out.Iterations)), out.Pull, out.Seed)
			for i, v := range out.Series {
				fmt.Fprintf(w, "%d\t%.4f\n", i, v)
			}
			if out.RunID != "" {
				fmt.Fprintf(w, "recorded as %s\n", out.RunID)
			}
			slog.Debug("run output written", "values", len(out.Series))
			return nil
		},
	}

	cmd.Flags().Int("size", 0, "Population size (default from config: 1000)")
	cmd.Flags().Int("iterations", 0, "Number of rounds (default from config: 250)")
	cmd.Flags().Float64("pull", engine.DefaultPull, "Opinion-pull constant")
	cmd.Flags().Int64("seed", 0, "Random seed (0 seeds from the clock)")
	cmd.Flags().String("db", "", "Record the run in this SQLite database")
	cmd.Flags().String("gender", "", "Average only agents of this gender (Male, Female)")
	cmd.Flags().String("area", "", "Average only agents in this area (Urban, Semi-Urban, Rural)")
	cmd.MarkFlagsMutuallyExclusive("gender", "area")

	return cmd
}

func filterFromFlags(cmd *cobra.Command) (engine.Filter, error) {
	if g, _ := cmd.Flags().GetString("gender"); g != "" {
		gender, err := agents.ParseGender(g)
		if err != nil {
			return nil, err
		}
		return engine.ByGender(gender), nil
	}
	if a, _ := cmd.Flags().GetString("area"); a != "" {
		area, err := agents.ParseArea(a)
		if err != nil {
			return nil, err
		}
		return engine.ByArea(area), nil
	}
	return nil, nil
}
