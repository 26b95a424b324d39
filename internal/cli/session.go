package cli

import (
	"github.com/spf13/cobra"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect sessions",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show [session-id]",
		Short: "Show a session, defaulting to the saved one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var id string
			if len(args) == 1 {
				id = args[0]
			} else {
				saved, err := cfg.LoadSession()
				if err != nil {
					return err
				}
				id = saved.SessionID
			}

			var result SessionInfo
			if err := client.Get("/api/v1/sessions/"+id, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	})

	return cmd
}
