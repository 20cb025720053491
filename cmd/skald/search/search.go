// Package searchcmder provides the search command for querying the
// knowledge base.
package searchcmder

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/useskald/skald-go/pkg/config"
	"github.com/useskald/skald-go/pkg/logger"
	"github.com/useskald/skald-go/pkg/skald"
	"github.com/useskald/skald-go/pkg/utils"
)

var (
	rankStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)
	scoreStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
	previewStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type searchCommander struct {
	query  string
	method string
	limit  int

	apiKey         string
	baseURL        string
	timeoutSeconds int

	debug bool
}

const searchLongDesc string = `Search memos in the Skald knowledge base.

The default method, chunk_vector_search, ranks memo chunks by semantic
similarity to the query and reports a distance per match. The title
methods (title_contains, title_startswith) match on memo titles and carry
no distance.

Examples:
  skald search "how to configure logging"
  skald search "error handling" --limit 10
  skald search "Runbook" --method title_startswith`

const searchShortDesc string = "Search the knowledge base"

func NewSearchCmd() *cobra.Command {
	cmder := &searchCommander{}

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: searchShortDesc,
		Long:  searchLongDesc,
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			v, err := config.InitViper(configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			if !cmd.Flags().Changed("api-key") {
				cmder.apiKey = v.GetString("api.key")
			}
			if !cmd.Flags().Changed("base-url") {
				cmder.baseURL = v.GetString("api.base_url")
			}
			cmder.timeoutSeconds = v.GetInt("client.timeout_seconds")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmder.query = args[0]

			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}

			return cmder.run()
		},
	}

	defaults := config.NewDefaultConfig()
	cmd.Flags().StringVar(&cmder.apiKey, "api-key", "", "Skald API key")
	cmd.Flags().StringVar(&cmder.baseURL, "base-url", defaults.API.BaseURL, "Skald API URL")
	cmd.Flags().StringVarP(&cmder.method, "method", "m", string(skald.SearchMethodChunkVector), "Search method: chunk_vector_search, title_contains, title_startswith")
	cmd.Flags().IntVarP(&cmder.limit, "limit", "k", 5, "Number of results to return")

	return cmd
}

func (c *searchCommander) run() error {
	log := logger.New(logger.WithPretty(true), logger.WithDebug(c.debug), logger.WithWriter(os.Stderr))

	client, err := skald.New(skald.Config{
		APIKey:  c.apiKey,
		BaseURL: c.baseURL,
		Timeout: time.Duration(c.timeoutSeconds) * time.Second,
	}, log)
	if err != nil {
		return err
	}

	results, err := client.Search(context.Background(), skald.SearchRequest{
		Query:  c.query,
		Method: skald.SearchMethod(c.method),
		Limit:  c.limit,
	})
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Println(dimStyle.Render("No matches."))
		return nil
	}

	for i, result := range results {
		rank := rankStyle.Render(fmt.Sprintf("%d.", i+1))

		score := ""
		if result.Distance != nil {
			score = scoreStyle.Render(fmt.Sprintf(" (distance %.4f)", *result.Distance))
		}

		fmt.Printf("%s %s%s\n", rank, titleStyle.Render(result.Title), score)
		if result.MemoUUID != "" {
			fmt.Printf("   %s\n", dimStyle.Render(result.MemoUUID))
		}
		if result.Content != "" {
			fmt.Printf("   %s\n", previewStyle.Render(utils.Truncate(result.Content, 120)))
		}
		fmt.Println()
	}

	return nil
}
