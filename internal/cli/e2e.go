package cli

import (
	"fmt"

	"github.com/tuannt39-study/jhipster-sample/internal/client"
	"github.com/tuannt39-study/jhipster-sample/internal/e2e"
	"github.com/tuannt39-study/jhipster-sample/internal/view"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newE2ECmd(g *globalOptions) *cobra.Command {
	var (
		baseURL string
		only    []string
	)
	cmd := &cobra.Command{
		Use:   "e2e",
		Short: "Run the scripted list/create/edit/delete flows against a running server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, logger, err := g.setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			c := client.New(baseURL, logger)
			cat := view.NewCatalog(c, view.Env{})
			suites := e2e.Select(e2e.Suites(cat, c, logger), only...)
			if len(suites) == 0 {
				return fmt.Errorf("no suites match %v", only)
			}

			report := e2e.Run(cmd.Context(), suites...)
			if err := report.Write(cmd.OutOrStdout()); err != nil {
				return err
			}
			logger.Info("e2e finished",
				zap.Int("passed", report.Passed()),
				zap.Int("failed", report.Failed()),
				zap.Int("skipped", report.Skipped()))
			if !report.OK() {
				return fmt.Errorf("%d scenario(s) failed", report.Failed())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&baseURL, "base-url", defaultBaseURL, "hr-admin API base URL")
	cmd.Flags().StringSliceVar(&only, "only", nil, "run only these resources (e.g. jobs,tasks)")
	return cmd
}
