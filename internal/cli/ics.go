package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"coursecal/internal/config"
	"coursecal/internal/ics"
)

func newICSCmd(a *app) *cobra.Command {
	var (
		out  string
		name string
	)

	cmd := &cobra.Command{
		Use:   "ics",
		Short: "Export the academic weeks as an iCalendar feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := a.resolve()
			if err != nil {
				return err
			}
			if name == "" {
				name = inv.cfg.Key()
			}
			body, err := ics.Export(inv.cfg, name, a.now())
			if err != nil {
				return err
			}
			if out == "-" || out == "" {
				_, err = cmd.OutOrStdout().Write(body)
				return err
			}
			if err := config.WriteFileAtomic(out, body); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			a.logger.Info("ics feed written", "path", out, "name", name)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "-", "Output path (\"-\" for stdout)")
	cmd.Flags().StringVar(&name, "name", "", "Calendar name (defaults to the output key)")
	return cmd
}
