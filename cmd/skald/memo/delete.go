package memocmder

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/useskald/skald-go/pkg/cliui"
	"github.com/useskald/skald-go/pkg/logger"
	"github.com/useskald/skald-go/pkg/skald"
)

type deleteCommander struct {
	apiSettings

	id     string
	idType string

	debug bool
}

const deleteLongDesc string = `Delete a memo from the knowledge base.

The id is a memo UUID by default, or a reference id with
--id-type reference_id. Deletion is permanent.

Examples:
  skald memo delete 4f8a2a9e-...-c0ffee
  skald memo delete docs/howto --id-type reference_id`

const deleteShortDesc string = "Delete a memo"

func newDeleteCmd() *cobra.Command {
	cmder := &deleteCommander{}

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: deleteShortDesc,
		Long:  deleteLongDesc,
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return cmder.resolve(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmder.id = args[0]

			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}

			return cmder.run()
		},
	}

	cmder.registerFlags(cmd)
	cmd.Flags().StringVar(&cmder.idType, "id-type", string(skald.IDTypeMemoUUID), "Id type: memo_uuid or reference_id")

	return cmd
}

func (c *deleteCommander) run() error {
	log := logger.New(logger.WithPretty(true), logger.WithDebug(c.debug), logger.WithWriter(os.Stderr))

	client, err := c.client(log)
	if err != nil {
		return err
	}

	if err := client.DeleteMemo(context.Background(), c.id, skald.IDType(c.idType)); err != nil {
		return err
	}

	fmt.Printf("%s memo deleted\n", cliui.SuccessMark)
	return nil
}
