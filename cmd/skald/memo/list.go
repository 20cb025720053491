package memocmder

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/useskald/skald-go/pkg/cliui"
	"github.com/useskald/skald-go/pkg/logger"
	"github.com/useskald/skald-go/pkg/skald"
	"github.com/useskald/skald-go/pkg/utils"
)

type listCommander struct {
	apiSettings

	page     int
	pageSize int

	debug bool
}

const listLongDesc string = `List memos stored in the knowledge base, one page at a time.

Examples:
  skald memo list
  skald memo list --page 2 --page-size 50`

const listShortDesc string = "List stored memos"

func newListCmd() *cobra.Command {
	cmder := &listCommander{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: listShortDesc,
		Long:  listLongDesc,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return cmder.resolve(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}

			return cmder.run()
		},
	}

	cmder.registerFlags(cmd)
	cmd.Flags().IntVarP(&cmder.page, "page", "p", 0, "Page number (server default when 0)")
	cmd.Flags().IntVar(&cmder.pageSize, "page-size", 0, "Page size (server default when 0)")

	return cmd
}

func (c *listCommander) run() error {
	log := logger.New(logger.WithPretty(true), logger.WithDebug(c.debug), logger.WithWriter(os.Stderr))

	client, err := c.client(log)
	if err != nil {
		return err
	}

	page, err := client.ListMemos(context.Background(), skald.ListMemosRequest{
		Page:     c.page,
		PageSize: c.pageSize,
	})
	if err != nil {
		return err
	}

	fmt.Printf("%s %d\n\n", cliui.KeyStyle.Render("Total memos:"), page.Count)

	for _, memo := range page.Results {
		id := memo.MemoUUID
		if memo.ReferenceID != "" {
			id = memo.ReferenceID
		}
		fmt.Printf("  %s  %s\n",
			cliui.DimStyle.Render(utils.Truncate(id, 36)),
			utils.Truncate(memo.Title, 60),
		)
	}

	if page.Next != nil {
		fmt.Printf("\n%s\n", cliui.DimStyle.Render("More results available; use --page to continue."))
	}

	return nil
}
