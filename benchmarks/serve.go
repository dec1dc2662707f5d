package benchmarks

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/Jjschwartz/gym-cyber-attack/server"
	"github.com/spf13/cobra"
)

func ServeCommand() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve an environment over a json api",
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := loadScenario()
			if err != nil {
				return err
			}
			srv := server.NewServer(scenario, port, seed)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				srv.Shutdown(shutdownCtx)
			}()

			fmt.Printf("Serving environment on localhost:%d\n", port)
			return srv.Start()
		},
	}
	cmd.PersistentFlags().IntVarP(&port, "port", "p", 8080, "Port to serve the environment on")
	return cmd
}
