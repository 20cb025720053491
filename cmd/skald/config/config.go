// Package configcmder provides the config command group for reading and
// writing the skald CLI configuration.
package configcmder

import (
	"github.com/spf13/cobra"
)

const configLongDesc string = `View and edit the skald configuration.

Settings live in config.toml inside the resolved .skald/ directory
(override, local ./.skald/, then ~/.skald/). Keys use dotted notation
matching the TOML section structure.`

const configShortDesc string = "View and edit configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}
