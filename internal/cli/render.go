package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anglinb/snowforge/pkg/manifest"
)

func newRenderCommand(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the statements a manifest would run",
		Long: `Render every step of a manifest to SQL without connecting to Snowflake.
Statements are printed in execution order, one per block.`,
		Example: `  snowforge render -f pipeline.yaml > pipeline.sql`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := manifest.Load(file)
			if err != nil {
				return err
			}
			statements, err := m.Statements()
			if err != nil {
				return err
			}

			a.logger.Debug().Str("manifest", file).Int("steps", len(statements)).Msg("rendered manifest")
			out := cmd.OutOrStdout()
			for i, statement := range statements {
				if i > 0 {
					_, _ = fmt.Fprintln(out)
				}
				_, _ = fmt.Fprintf(out, "%s;\n", statement)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "manifest file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
