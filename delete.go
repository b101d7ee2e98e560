package main

import (
	"github.com/spf13/cobra"

	"github.com/mogaika/meshcat_client/logger"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <path>",
	Short: "Delete a scene path and everything below it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := connect(cmd.Context())
		if err != nil {
			return err
		}
		defer client.Close()

		ack, err := client.Delete(args[0])
		if err != nil {
			return err
		}
		logger.Log.Infof("Deleted %q: %s", args[0], ack)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
