package benchmarks

import (
	"context"
	"fmt"
	"path"

	"github.com/Jjschwartz/gym-cyber-attack/netsim"
	"github.com/Jjschwartz/gym-cyber-attack/policies"
	"github.com/Jjschwartz/gym-cyber-attack/types"
	"github.com/spf13/cobra"
)

func Attack(episodes, horizon int, saveFile string, runs int, scenario *netsim.Scenario, ctx context.Context) {

	c := types.NewComparison(&types.ComparisonConfig{
		Runs:       runs,
		Episodes:   episodes,
		Horizon:    horizon,
		RecordPath: saveFile,
		// record flags
		RecordTraces: false,
		RecordPolicy: true,
	})

	plots := path.Join(saveFile, "plots")
	c.AddAnalysis("Coverage", types.NewCoverageAnalyzer(nil), types.CoveragePlotter(path.Join(plots, "coverage")))
	c.AddAnalysis("FootholdCoverage", types.NewCoverageAnalyzer(netsim.CompromiseAbstractor()), types.CoveragePlotter(path.Join(plots, "footholds")))
	c.AddAnalysis("Reward", types.NewRewardAnalyzer(), types.RewardPlotter(plots))
	c.AddAnalysis("Goal", types.NewPropertyAnalyzer(netsim.GoalMonitor()), types.PropertyPlotter(plots, "goal"))
	c.AddAnalysis("Caught", types.NewPropertyAnalyzer(netsim.CaughtMonitor()), types.PropertyPlotter(plots, "caught"))
	c.AddAnalysis("Documents", netsim.NewDocumentsAnalyzer(), netsim.DocumentsPlotter(plots))

	c.AddExperiment(types.NewExperiment(
		"Random",
		types.NewRandomPolicy(),
		netsim.NewEnvironment(scenario, 1),
	))
	c.AddExperiment(types.NewExperiment(
		"NegFreq",
		policies.NewSoftMaxNegFreqPolicy(0.3, 0.7, 1, false),
		netsim.NewEnvironment(scenario, 2),
	))
	c.AddExperiment(types.NewExperiment(
		"Greedy",
		policies.NewEpsilonGreedyPolicy(0.1, 0.99, 0.02),
		netsim.NewEnvironment(scenario, 3),
	))

	c.Run(ctx)
}

func AttackCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attack",
		Short: "Compare attacker policies on a scenario",
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := loadScenario()
			if err != nil {
				return err
			}
			fmt.Printf("Scenario: %d machines, %d documents\n", len(scenario.Topology.Machines), scenario.Documents())
			Attack(episodes, horizon, saveFile, runs, scenario, context.Background())
			return nil
		},
	}
	return cmd
}
