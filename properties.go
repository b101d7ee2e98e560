package main

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/cobra"

	"github.com/mogaika/meshcat_client/command"
	"github.com/mogaika/meshcat_client/scene"
	"github.com/mogaika/meshcat_client/utils"
)

// torusFrame returns the property updates of animation step i.
func torusFrame(i int) []command.Property {
	angle := 0.1 * float64(i)
	s := math.Sin(angle)
	return []command.Property{
		command.Scale(mgl64.Vec3{1, 1, 1}.Mul(1 + s*s)),
		command.Position{0, 0, s},
		command.QuaternionOf(utils.EulerToQuat(mgl64.Vec3{0, angle, 0})),
		command.Color{0.5, 0.8, 0.5, 0.5},
	}
}

var propertiesCmd = &cobra.Command{
	Use:   "properties",
	Short: "Animate a torus through property updates",
	RunE: func(cmd *cobra.Command, args []string) error {
		frames, _ := cmd.Flags().GetInt("frames")

		client, err := connect(cmd.Context())
		if err != nil {
			return err
		}
		defer client.Close()

		torus, err := primitive(scene.Torus{Radius: 0.5, Tube: 0.2, RadialSegments: 12, TubularSegments: 48}, 0x00ff00, 0, 0)
		if err != nil {
			return err
		}
		if _, err := client.SetObject("/torus", torus); err != nil {
			return err
		}
		if _, err := client.SetProperty("/Axes", command.Visible(false)); err != nil {
			return err
		}
		if _, err := client.SetProperty("/Background", command.TopColor{0.5, 0.8, 0.5}); err != nil {
			return err
		}
		if _, err := client.SetProperty("/Background", command.BottomColor{0.6, 0, 0.5}); err != nil {
			return err
		}

		for i := 1; i <= frames; i++ {
			for _, p := range torusFrame(i) {
				if _, err := client.SetProperty("/torus", p); err != nil {
					return err
				}
			}
			time.Sleep(100 * time.Millisecond)
		}
		return nil
	},
}

func init() {
	propertiesCmd.Flags().Int("frames", 100, "Animation frames")
	rootCmd.AddCommand(propertiesCmd)
}
