package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/picogrid/cosim-input/pkg/simulation"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available simulations",
	Long:  `List all registered simulations with their descriptions`,
	RunE:  listSimulations,
}

func listSimulations(_ *cobra.Command, _ []string) error {
	names := simulation.DefaultRegistry.List()
	if len(names) == 0 {
		fmt.Println("No simulations registered")
		return nil
	}

	// Create tabwriter for formatted output
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tDEFAULT\tDESCRIPTION")
	_, _ = fmt.Fprintln(w, "----\t-------\t-----------")

	for _, name := range names {
		sim, err := simulation.DefaultRegistry.Get(name)
		if err != nil {
			return err
		}
		def := ""
		if name == appConfig.Simulation {
			def = "*"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", name, def, sim.Description())
	}

	return w.Flush()
}
