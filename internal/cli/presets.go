package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ironsheep/region-hierarchy/internal/hierarchy"
)

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the named threshold presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFromContext(cmd.Context())
			active, err := cfg.Options()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tMIN AREA\tMIN X\tMIN Y\tDESCRIPTION")
			for _, p := range hierarchy.Presets() {
				name := p.Name
				if p.Name == cfg.Preset {
					name += "*"
				}
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\n",
					name, p.Options.MinArea, p.Options.MinXOffset, p.Options.MinYOffset, p.Description)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\nactive: min area %d, min x %d, min y %d\n",
				active.MinArea, active.MinXOffset, active.MinYOffset)
			return nil
		},
	}
}
