package cli

import (
	"fmt"
	"os"

	"github.com/tuannt39-study/jhipster-sample/internal/client"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newExportCmd(g *globalOptions) *cobra.Command {
	var (
		baseURL string
		output  string
	)
	cmd := &cobra.Command{
		Use:   "export <resource>",
		Short: "Download an entity collection as an .xlsx workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, err := g.setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			resource := args[0]
			if output == "" {
				output = resource + ".xlsx"
			}
			c := client.New(baseURL, logger)
			resp, err := c.Resty().R().SetContext(cmd.Context()).Get("/api/" + resource + "/export")
			if err != nil {
				return fmt.Errorf("failed to export %s: %w", resource, err)
			}
			if resp.IsError() {
				return fmt.Errorf("failed to export %s: %s", resource, resp.Status())
			}
			if err := os.WriteFile(output, resp.Body(), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			logger.Info("Export written", zap.String("resource", resource), zap.String("file", output), zap.Int("bytes", len(resp.Body())))
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVar(&baseURL, "base-url", defaultBaseURL, "hr-admin API base URL")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <resource>.xlsx)")
	return cmd
}
