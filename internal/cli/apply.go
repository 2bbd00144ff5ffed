package cli

import (
	"fmt"

	"github.com/pingcap/errors"
	"github.com/spf13/cobra"

	"github.com/anglinb/snowforge/internal/dbops"
	"github.com/anglinb/snowforge/pkg/manifest"
)

func newApplyCommand(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Run a manifest against Snowflake in one transaction",
		Long: `Apply every step of a manifest in a single transaction. The first failing
step rolls back everything that ran before it.`,
		Example: `  SNOWFLAKE_PASSWORD=... snowforge apply -f pipeline.yaml --warehouse LOAD_WH`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := manifest.Load(file)
			if err != nil {
				return err
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			session, err := a.openSession(a.cfg.ClientConfig(), a.logger)
			if err != nil {
				return errors.WithMessage(err, "error opening snowflake session")
			}
			client, err := dbops.NewClient(session, a.logger)
			if err != nil {
				return err
			}
			defer func() {
				if err := client.Close(); err != nil {
					a.logger.Warn().Err(err).Msg("error closing snowflake session")
				}
			}()

			wf := client.Workflow()
			if err := m.Apply(wf); err != nil {
				return err
			}
			if err := wf.Execute(cmd.Context()); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "applied %d steps (run %s)\n", len(wf.Steps()), wf.RunID())
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "manifest file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
