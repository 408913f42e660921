package cli

import (
	"fmt"
	"strings"

	"github.com/tuannt39-study/jhipster-sample/internal/client"
	"github.com/tuannt39-study/jhipster-sample/internal/view"

	"github.com/spf13/cobra"
)

const defaultBaseURL = "http://localhost:8080"

func newListCmd(g *globalOptions) *cobra.Command {
	var (
		baseURL string
		query   string
	)
	cmd := &cobra.Command{
		Use:   "list <resource>",
		Short: "Render an entity list page as a terminal table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, err := g.setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			cat := view.NewCatalog(client.New(baseURL, logger), view.Env{})
			l, ok := cat.Listers()[args[0]]
			if !ok {
				return fmt.Errorf("unknown resource %q (one of: %s)", args[0], strings.Join(cat.Resources(), ", "))
			}
			out, err := l.Load(cmd.Context(), query)
			fmt.Fprint(cmd.OutOrStdout(), view.RenderText(out))
			return err
		},
	}
	cmd.Flags().StringVar(&baseURL, "base-url", defaultBaseURL, "hr-admin API base URL")
	cmd.Flags().StringVarP(&query, "search", "q", "", "search query (free text or field:value)")
	return cmd
}
