package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"coursecal/internal/config"
)

func newBuildCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Write the site configuration with the context attached under extra",
		Long: `build computes the calendar context and attaches it to the extra section
of the site configuration under the configured output_key (default "cal").
The result is written to --out, or to stdout when --out is "-".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := a.build(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "-", "Output path (\"-\" for stdout)")
	return cmd
}

// build runs one resolve + compute pass and delivers the result. On error
// nothing is written.
func (a *app) build(stdout io.Writer, out string) (*invocation, error) {
	inv, err := a.resolve()
	if err != nil {
		return nil, err
	}

	key := inv.cfg.Key()
	inv.doc.Attach(key, inv.ctx)

	if out == "-" || out == "" {
		data, err := yaml.Marshal(inv.doc)
		if err != nil {
			return nil, fmt.Errorf("encode document: %w", err)
		}
		if _, err := stdout.Write(data); err != nil {
			return nil, err
		}
		return inv, nil
	}

	if err := config.Save(out, inv.doc); err != nil {
		return nil, fmt.Errorf("write %s: %w", out, err)
	}
	a.logger.Info("calendar context written",
		"path", out,
		"output_key", key,
		"today", inv.ctx["today"],
		"academic_week", inv.ctx["academic_week"],
	)
	return inv, nil
}
