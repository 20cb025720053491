package memocmder

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/useskald/skald-go/pkg/cliui"
	"github.com/useskald/skald-go/pkg/logger"
	"github.com/useskald/skald-go/pkg/skald"
)

type getCommander struct {
	apiSettings

	id     string
	idType string
	asJSON bool

	debug bool
}

const getLongDesc string = `Fetch a single memo by id.

By default the id is the server-assigned memo UUID. Pass
--id-type reference_id to address the memo by the reference id supplied
at creation.

Examples:
  skald memo get 4f8a2a9e-...-c0ffee
  skald memo get docs/howto --id-type reference_id
  skald memo get 4f8a2a9e-...-c0ffee --json`

const getShortDesc string = "Fetch a single memo"

func newGetCmd() *cobra.Command {
	cmder := &getCommander{}

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: getShortDesc,
		Long:  getLongDesc,
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
	cmd.Flags().BoolVar(&cmder.asJSON, "json", false, "Print the raw memo JSON")

	return cmd
}

func (c *getCommander) run() error {
	log := logger.New(logger.WithPretty(true), logger.WithDebug(c.debug), logger.WithWriter(os.Stderr))

	client, err := c.client(log)
	if err != nil {
		return err
	}

	memo, err := client.GetMemo(context.Background(), c.id, skald.IDType(c.idType))
	if err != nil {
		return err
	}

	if c.asJSON {
		data, err := json.MarshalIndent(memo, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding memo: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	printMemo(memo)
	return nil
}

func printMemo(memo *skald.Memo) {
	fmt.Printf("%s %s\n", cliui.KeyStyle.Render("Title:"), memo.Title)
	if memo.MemoUUID != "" {
		fmt.Printf("%s %s\n", cliui.KeyStyle.Render("UUID:"), cliui.DimStyle.Render(memo.MemoUUID))
	}
	if memo.ReferenceID != "" {
		fmt.Printf("%s %s\n", cliui.KeyStyle.Render("Reference:"), cliui.DimStyle.Render(memo.ReferenceID))
	}
	if memo.Summary != "" {
		fmt.Printf("%s %s\n", cliui.KeyStyle.Render("Summary:"), memo.Summary)
	}
	if len(memo.Tags) > 0 {
		names := make([]string, 0, len(memo.Tags))
		for _, tag := range memo.Tags {
			names = append(names, tag.Name)
		}
		fmt.Printf("%s %s\n", cliui.KeyStyle.Render("Tags:"), strings.Join(names, ", "))
	}
	if !memo.CreatedAt.IsZero() {
		fmt.Printf("%s %s\n", cliui.KeyStyle.Render("Created:"), cliui.DimStyle.Render(memo.CreatedAt.Format("2006-01-02 15:04:05")))
	}
	if memo.Content != "" {
		fmt.Printf("\n%s\n", memo.Content)
	}
}
