package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"snapvote/internal/api"
	"snapvote/internal/config"
)

func newResetCmd(cfg *config.Config) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all images and votes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return fmt.Errorf("reset deletes all images and votes; re-run with --force to confirm")
			}
			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.Reset(cmd.Context(), true)
				if err != nil {
					return err
				}
				if resp.Reset {
					return writePlain("gallery reset\n")
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "confirm the reset")
	return cmd
}
