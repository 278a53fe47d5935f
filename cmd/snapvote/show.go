package main

import (
	"os"

	"github.com/spf13/cobra"

	"snapvote/internal/api"
	"snapvote/internal/config"
)

func newShowCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var savePath string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show an image's record, optionally saving its bytes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return withClient(cfg, func(client *api.Client) error {
				record, err := client.GetImage(cmd.Context(), id)
				if err != nil {
					return err
				}

				if savePath != "" {
					out, err := os.Create(savePath)
					if err != nil {
						return err
					}
					if err := client.ImageContent(cmd.Context(), id, out); err != nil {
						out.Close()
						return err
					}
					if err := out.Close(); err != nil {
						return err
					}
				}

				if *jsonOutput {
					return writeJSON(record)
				}
				return writeImageDetail(record)
			})
		},
	}

	cmd.Flags().StringVarP(&savePath, "output", "o", "", "save image bytes to this file")
	return cmd
}
