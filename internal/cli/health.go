package cli

import (
	"time"

	"github.com/spf13/cobra"
)

func newHealthCmd() *cobra.Command {
	var wait time.Duration

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check server health and room count",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := checkHealth(wait, 200*time.Millisecond)
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().DurationVar(&wait, "wait", 0, "Keep retrying for this long until the server answers")

	return cmd
}

// checkHealth polls the health endpoint until it answers or wait elapses
func checkHealth(wait, interval time.Duration) (HealthResult, error) {
	deadline := time.Now().Add(wait)
	for {
		var result HealthResult
		err := client.Get("/api/v1/health", &result)
		if err == nil || time.Now().Add(interval).After(deadline) {
			return result, err
		}
		time.Sleep(interval)
	}
}
