package benchmarks

import (
	"fmt"

	"github.com/Jjschwartz/gym-cyber-attack/netsim"
	"github.com/spf13/cobra"
)

func GenerateCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a scenario and write it to a yaml file",
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := netsim.Generate(machines, services, detection, seed)
			if err != nil {
				return err
			}
			if err := scenario.WriteConfig(out); err != nil {
				return err
			}
			fmt.Printf("Wrote scenario with %d machines and %d documents to %s\n",
				len(scenario.Topology.Machines), scenario.Documents(), out)
			return nil
		},
	}
	cmd.PersistentFlags().StringVarP(&out, "out", "o", "scenario.yaml", "Output file for the generated scenario")
	return cmd
}
