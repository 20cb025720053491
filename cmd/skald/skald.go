// Package skaldcmder
package skaldcmder

import (
	"github.com/spf13/cobra"

	chatcmder "github.com/useskald/skald-go/cmd/skald/chat"
	configcmder "github.com/useskald/skald-go/cmd/skald/config"
	generatecmder "github.com/useskald/skald-go/cmd/skald/generate"
	memocmder "github.com/useskald/skald-go/cmd/skald/memo"
	searchcmder "github.com/useskald/skald-go/cmd/skald/search"
	versioncmder "github.com/useskald/skald-go/cmd/version"
)

const skaldLongDesc string = `Skald is a hosted knowledge base for your agents and apps.

Work with memos using:
  skald memo create    Store a new memo
  skald memo list      List stored memos
  skald search         Search the knowledge base
  skald chat           Ask questions grounded in your memos
  skald generate       Generate documents from your memos

Authentication comes from SKALD_API_KEY, the api.key config value, or the
--api-key flag on each command.`

const skaldShortDesc string = "Skald - knowledge-base client"

func NewSkaldCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skald",
		Short: skaldShortDesc,
		Long:  skaldLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override the .skald/ config directory")

	// Add subcommands
	cmd.AddCommand(memocmder.NewMemoCmd())
	cmd.AddCommand(searchcmder.NewSearchCmd())
	cmd.AddCommand(chatcmder.NewChatCmd())
	cmd.AddCommand(generatecmder.NewGenerateCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
