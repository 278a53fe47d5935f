package main

import (
	"github.com/spf13/cobra"

	"snapvote/internal/api"
	"snapvote/internal/config"
)

func newInfoCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show database and gallery info",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.GetInfo(cmd.Context())
				if err != nil {
					return err
				}

				if *jsonOutput {
					return writeJSON(resp)
				}

				_ = writePlain("db_path: %s\n", resp.DBPath)
				_ = writePlain("blob_root: %s\n", resp.BlobRoot)
				_ = writePlain("schema_version: %d\n", resp.SchemaVersion)
				_ = writePlain("images: %d\n", resp.ImageCount)
				return writePlain("total_votes: %d\n", resp.TotalVotes)
			})
		},
	}
}
