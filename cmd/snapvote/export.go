package main

import (
	"os"

	"github.com/spf13/cobra"

	"snapvote/internal/api"
	"snapvote/internal/config"
	"snapvote/internal/format"
)

func newExportCmd(cfg *config.Config) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all image records as JSON, in upload order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				export, err := client.Export(cmd.Context())
				if err != nil {
					return err
				}

				formatter := format.IndentedJSONFormatter{}
				if outPath == "" {
					return formatter.Write(os.Stdout, export)
				}

				file, err := os.Create(outPath)
				if err != nil {
					return err
				}
				if err := formatter.Write(file, export); err != nil {
					file.Close()
					return err
				}
				return file.Close()
			})
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "write export to this file instead of stdout")
	return cmd
}
