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

type updateCommander struct {
	apiSettings

	id      string
	idType  string
	title   string
	content string
	summary string
	source  string
	tags    []string

	flagsChanged map[string]bool

	debug bool
}

const updateLongDesc string = `Update fields of an existing memo.

Only the flags you pass are sent to the server; everything else is left
untouched. The id is a memo UUID by default, or a reference id with
--id-type reference_id.

Examples:
  skald memo update 4f8a2a9e-...-c0ffee --title "New title"
  skald memo update docs/howto --id-type reference_id --summary "Short form"`

const updateShortDesc string = "Update fields of a memo"

func newUpdateCmd() *cobra.Command {
	cmder := &updateCommander{}

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: updateShortDesc,
		Long:  updateLongDesc,
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return cmder.resolve(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmder.id = args[0]

			cmder.flagsChanged = map[string]bool{
				"title":   cmd.Flags().Changed("title"),
				"content": cmd.Flags().Changed("content"),
				"summary": cmd.Flags().Changed("summary"),
				"source":  cmd.Flags().Changed("source"),
				"tag":     cmd.Flags().Changed("tag"),
			}

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
	cmd.Flags().StringVarP(&cmder.title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&cmder.content, "content", "c", "", "New content")
	cmd.Flags().StringVar(&cmder.summary, "summary", "", "New summary")
	cmd.Flags().StringVar(&cmder.source, "source", "", "New source")
	cmd.Flags().StringArrayVar(&cmder.tags, "tag", nil, "Replacement tag set (repeatable)")

	return cmd
}

func (c *updateCommander) run() error {
	log := logger.New(logger.WithPretty(true), logger.WithDebug(c.debug), logger.WithWriter(os.Stderr))

	req := skald.UpdateMemoRequest{}
	changed := false
	if c.flagsChanged["title"] {
		req.Title = &c.title
		changed = true
	}
	if c.flagsChanged["content"] {
		req.Content = &c.content
		changed = true
	}
	if c.flagsChanged["summary"] {
		req.Summary = &c.summary
		changed = true
	}
	if c.flagsChanged["source"] {
		req.Source = &c.source
		changed = true
	}
	if c.flagsChanged["tag"] {
		req.Tags = c.tags
		changed = true
	}

	if !changed {
		return fmt.Errorf("nothing to update: pass at least one field flag")
	}

	client, err := c.client(log)
	if err != nil {
		return err
	}

	memo, err := client.UpdateMemo(context.Background(), c.id, req, skald.IDType(c.idType))
	if err != nil {
		return err
	}

	fmt.Printf("%s memo updated\n\n", cliui.SuccessMark)
	printMemo(memo)
	return nil
}
