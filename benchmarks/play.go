package benchmarks

import (
	"github.com/Jjschwartz/gym-cyber-attack/explorer"
	"github.com/spf13/cobra"
)

func PlayCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play the attacker interactively on a scenario",
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := loadScenario()
			if err != nil {
				return err
			}
			e, err := explorer.NewExplorer(scenario, seed)
			if err != nil {
				return err
			}
			e.Interact()
			return nil
		},
	}
	return cmd
}
