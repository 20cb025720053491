// Package memocmder provides the memo command group for storing,
// fetching, listing, updating and deleting memos.
package memocmder

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/useskald/skald-go/pkg/config"
	"github.com/useskald/skald-go/pkg/skald"
)

const memoLongDesc string = `Work with memos in the Skald knowledge base.

A memo is the core content resource Skald stores and indexes: title,
content, optional summary, tags, free-form metadata and a caller-assigned
reference id. All subcommands talk to the configured Skald API.`

const memoShortDesc string = "Store, fetch, list, update and delete memos"

func NewMemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "memo",
		Short: memoShortDesc,
		Long:  memoLongDesc,
	}

	cmd.AddCommand(newCreateCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newUpdateCmd())
	cmd.AddCommand(newDeleteCmd())

	return cmd
}

// apiSettings holds the connection settings every memo subcommand needs,
// resolved from flags, environment and config.toml in that order.
type apiSettings struct {
	apiKey         string
	baseURL        string
	timeoutSeconds int
}

// resolve fills settings from viper for any flag the user did not set
// explicitly.
func (s *apiSettings) resolve(cmd *cobra.Command) error {
	configDir, _ := cmd.Flags().GetString("config-dir")
	v, err := config.InitViper(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if !cmd.Flags().Changed("api-key") {
		s.apiKey = v.GetString("api.key")
	}
	if !cmd.Flags().Changed("base-url") {
		s.baseURL = v.GetString("api.base_url")
	}
	s.timeoutSeconds = v.GetInt("client.timeout_seconds")

	return nil
}

// client builds a skald.Client from the resolved settings.
func (s *apiSettings) client(logger *slog.Logger) (*skald.Client, error) {
	return skald.New(skald.Config{
		APIKey:  s.apiKey,
		BaseURL: s.baseURL,
		Timeout: time.Duration(s.timeoutSeconds) * time.Second,
	}, logger)
}

// registerFlags adds the shared connection flags to a memo subcommand.
func (s *apiSettings) registerFlags(cmd *cobra.Command) {
	defaults := config.NewDefaultConfig()
	cmd.Flags().StringVar(&s.apiKey, "api-key", "", "Skald API key")
	cmd.Flags().StringVar(&s.baseURL, "base-url", defaults.API.BaseURL, "Skald API URL")
}
