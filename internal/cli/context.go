package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"coursecal/internal/model"
)

func newContextCmd(a *app) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "context",
		Short: "Print the computed calendar context",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := a.resolve()
			if err != nil {
				return err
			}
			return writeContext(cmd.OutOrStdout(), inv.ctx, jsonOutput)
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func writeContext(w io.Writer, ctx model.Context, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(ctx)
	}
	out, err := yaml.Marshal(ctx)
	if err != nil {
		return fmt.Errorf("encode context: %w", err)
	}
	_, err = w.Write(out)
	return err
}
