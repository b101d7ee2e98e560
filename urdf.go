package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mogaika/meshcat_client/urdf"
)

var urdfCmd = &cobra.Command{
	Use:   "urdf <file>...",
	Short: "Publish URDF robots",
	Long: `Publishes every link of each robot as an object and every joint as a
transform. Old objects at the same paths are deleted first.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		collision, _ := cmd.Flags().GetBool("collision")

		robots := make([]*urdf.Robot, len(args))
		for i, path := range args {
			robot, err := urdf.Open(path)
			if err != nil {
				return err
			}
			robots[i] = robot
		}

		client, err := connect(cmd.Context())
		if err != nil {
			return err
		}
		defer client.Close()

		for i, robot := range robots {
			opts := urdf.Options{
				BaseDir:   filepath.Dir(args[i]),
				Collision: collision,
			}
			if err := urdf.Publish(client, robot, opts); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	urdfCmd.Flags().Bool("collision", false, "Publish collision geometry instead of visuals")
	rootCmd.AddCommand(urdfCmd)
}
