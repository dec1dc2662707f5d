package benchmarks

import (
	"fmt"

	"github.com/Jjschwartz/gym-cyber-attack/netsim"
	"github.com/spf13/cobra"
)

var (
	episodes int
	horizon  int
	saveFile string
	runs     int

	// scenario selection, shared by the subcommands
	scenarioFile string
	machines     int
	services     int
	detection    float64
	seed         int64
)

func GetRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{Use: "gym-cyber-attack"}
	rootCommand.PersistentFlags().IntVarP(&episodes, "episodes", "e", 10000, "Number of episodes to run")
	rootCommand.PersistentFlags().IntVar(&horizon, "horizon", 100, "Horizon of each episode")
	rootCommand.PersistentFlags().StringVarP(&saveFile, "save", "s", "results", "Save the result data in the specified folder")
	rootCommand.PersistentFlags().IntVar(&runs, "runs", 1, "Number of experiment runs")
	rootCommand.PersistentFlags().StringVar(&scenarioFile, "scenario", "", "Path to a yaml scenario file (generated network used when empty)")
	rootCommand.PersistentFlags().IntVarP(&machines, "machines", "m", 5, "Number of machines in the generated network")
	rootCommand.PersistentFlags().IntVar(&services, "services", 3, "Number of service types in the generated network")
	rootCommand.PersistentFlags().Float64Var(&detection, "detection", 0.0, "Detection probability of generated exploits")
	rootCommand.PersistentFlags().Int64Var(&seed, "seed", 1, "Seed of the generated network")
	// adding the subcommands here
	rootCommand.AddCommand(AttackCommand())
	rootCommand.AddCommand(PlayCommand())
	rootCommand.AddCommand(ServeCommand())
	rootCommand.AddCommand(GenerateCommand())
	return rootCommand
}

// loadScenario picks the configured scenario file or falls back to a
// generated network.
func loadScenario() (*netsim.Scenario, error) {
	if scenarioFile != "" {
		scenario, err := netsim.LoadScenario(scenarioFile)
		if err != nil {
			return nil, fmt.Errorf("loading scenario %s: %w", scenarioFile, err)
		}
		return scenario, nil
	}
	return netsim.Generate(machines, services, detection, seed)
}
