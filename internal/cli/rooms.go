package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newRoomsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rooms",
		Short: "Inspect rooms",
	}

	cmd.AddCommand(newRoomsListCmd())
	cmd.AddCommand(newRoomsGetCmd())
	cmd.AddCommand(newRoomsMovesCmd())
	cmd.AddCommand(newRoomsGamesCmd())
	cmd.AddCommand(newRoomsSessionsCmd())

	return cmd
}

func newRoomsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all rooms",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result RoomList
			if err := client.Get("/api/v1/rooms", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newRoomsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <number>",
		Short: "Show a room and its game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseRoomNumber(args[0])
			if err != nil {
				return err
			}

			var result Room
			if err := client.Get(fmt.Sprintf("/api/v1/rooms/%d", number), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newRoomsMovesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "moves <number>",
		Short: "Show the move log of a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseRoomNumber(args[0])
			if err != nil {
				return err
			}

			var result MoveList
			if err := client.Get(fmt.Sprintf("/api/v1/rooms/%d/moves", number), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newRoomsGamesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "games <number>",
		Short: "Show the finished games of a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseRoomNumber(args[0])
			if err != nil {
				return err
			}

			var result GameList
			if err := client.Get(fmt.Sprintf("/api/v1/rooms/%d/games", number), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newRoomsSessionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sessions <number>",
		Short: "Show the persisted sessions of a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseRoomNumber(args[0])
			if err != nil {
				return err
			}

			var result SessionList
			if err := client.Get(fmt.Sprintf("/api/v1/rooms/%d/sessions", number), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func parseRoomNumber(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid room number %q", s)
	}
	return n, nil
}
