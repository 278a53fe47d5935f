package main

import (
	"github.com/spf13/cobra"

	"snapvote/internal/api"
	"snapvote/internal/config"
)

func newLeaderboardCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the top images by votes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				entries, err := client.Leaderboard(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(entries)
				}
				return writeLeaderboard(entries)
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "number of entries (default from server config)")
	return cmd
}
