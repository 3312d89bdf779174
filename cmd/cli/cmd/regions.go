package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/picogrid/cosim-input/pkg/logger"
	"github.com/picogrid/cosim-input/pkg/regions"
	"github.com/picogrid/cosim-input/pkg/session"
)

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "Show the clickable regions of the system diagram",
	RunE:  listRegions,
}

var regionsLocateCmd = &cobra.Command{
	Use:   "locate X Y",
	Short: "Resolve a diagram click to the editor it opens",
	Args:  cobra.ExactArgs(2),
	RunE:  locateRegion,
}

func init() {
	regionsCmd.AddCommand(regionsLocateCmd)
}

func listRegions(_ *cobra.Command, _ []string) error {
	table := logger.NewTable("REGION", "FROM", "TO", "EDITOR")
	for _, r := range appConfig.RegionMap() {
		lo, hi := r.Rect.Bounds()
		target, _ := session.TargetForRegion(r.Name)
		table.AddRow(r.Name, formatPoint(lo), formatPoint(hi), string(target))
	}
	table.Print()
	return nil
}

func locateRegion(_ *cobra.Command, args []string) error {
	x, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid x coordinate %q", args[0])
	}
	y, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid y coordinate %q", args[1])
	}

	target, region, ok := session.Locate(appConfig.RegionMap(), regions.Point{X: x, Y: y})
	switch {
	case region == "":
		fmt.Println("No region at that point")
	case !ok:
		fmt.Printf("%s (no editor)\n", region)
	default:
		fmt.Printf("%s -> %s\n", region, target)
	}
	return nil
}

func formatPoint(p regions.Point) string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}
