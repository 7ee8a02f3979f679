package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/talgya/socialsim/internal/agents"
	"github.com/talgya/socialsim/internal/entropy"
)

type agentOutput struct {
	*agents.Agent
	Origin agents.Origin `json:"origin"`
}

func newAgentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agents",
		Short: "Print a sample of randomly generated agents",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			count, _ := cmd.Flags().GetInt("count")
			if count < 0 {
				return fmt.Errorf("count must be non-negative, got %d", count)
			}
			seed := cfg.Simulation.Seed
			if cmd.Flags().Changed("seed") {
				seed, _ = cmd.Flags().GetInt64("seed")
			}

			src := entropy.NewFromTime()
			if seed != 0 {
				src = entropy.New(seed)
			}
			spawner := agents.NewSpawner(src)
			if err := spawner.SetBaseRange(cfg.Simulation.BaseRange); err != nil {
				return err
			}
			population := spawner.Population(count)

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				out := make([]agentOutput, len(population))
				for i, a := range population {
					out[i] = agentOutput{Agent: a, Origin: a.Origin()}
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			for _, a := range population {
				fmt.Fprintln(cmd.OutOrStdout(), a)
			}
			return nil
		},
	}

	cmd.Flags().Int("count", 10, "Number of agents to generate")
	cmd.Flags().Int64("seed", 0, "Random seed (0 seeds from the clock)")
	return cmd
}
