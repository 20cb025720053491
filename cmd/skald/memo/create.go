package memocmder

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/useskald/skald-go/pkg/cliui"
	"github.com/useskald/skald-go/pkg/logger"
	"github.com/useskald/skald-go/pkg/skald"
)

type createCommander struct {
	apiSettings

	title       string
	content     string
	referenceID string
	summary     string
	source      string
	tags        []string
	meta        map[string]string

	debug bool
}

const createLongDesc string = `Store a new memo in the knowledge base.

Content comes from --content, or from stdin when --content is omitted, so
memos can be piped in:

  cat notes.md | skald memo create --title "Release notes"
  skald memo create --title "Howto" --content "..." --tag ops --tag infra
  skald memo create --title "Ref'd" --content "..." --reference-id docs/howto`

const createShortDesc string = "Store a new memo"

func newCreateCmd() *cobra.Command {
	cmder := &createCommander{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: createShortDesc,
		Long:  createLongDesc,
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
	cmd.Flags().StringVarP(&cmder.title, "title", "t", "", "Memo title (required)")
	cmd.Flags().StringVarP(&cmder.content, "content", "c", "", "Memo content (stdin when omitted)")
	cmd.Flags().StringVar(&cmder.referenceID, "reference-id", "", "Caller-assigned reference id")
	cmd.Flags().StringVar(&cmder.summary, "summary", "", "Memo summary")
	cmd.Flags().StringVar(&cmder.source, "source", "", "Memo source")
	cmd.Flags().StringArrayVar(&cmder.tags, "tag", nil, "Tag to attach (repeatable)")
	cmd.Flags().StringToStringVar(&cmder.meta, "meta", nil, "Metadata key=value pair (repeatable)")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func (c *createCommander) run() error {
	log := logger.New(logger.WithPretty(true), logger.WithDebug(c.debug), logger.WithWriter(os.Stderr))

	if c.content == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading content from stdin: %w", err)
		}
		c.content = string(data)
	}

	client, err := c.client(log)
	if err != nil {
		return err
	}

	req := skald.CreateMemoRequest{
		Title:       c.title,
		Content:     c.content,
		ReferenceID: c.referenceID,
		Summary:     c.summary,
		Source:      c.source,
		Tags:        c.tags,
	}
	if len(c.meta) > 0 {
		req.Metadata = make(map[string]any, len(c.meta))
		for k, v := range c.meta {
			req.Metadata[k] = v
		}
	}

	resp, err := client.CreateMemo(context.Background(), req)
	if err != nil {
		return err
	}

	if !resp.OK {
		return fmt.Errorf("server did not acknowledge memo creation")
	}

	fmt.Printf("%s memo created\n", cliui.SuccessMark)
	return nil
}
