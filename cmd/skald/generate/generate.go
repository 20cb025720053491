// Package generatecmder provides the generate command for producing
// documents grounded in the knowledge base.
package generatecmder

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/useskald/skald-go/pkg/cliui"
	"github.com/useskald/skald-go/pkg/config"
	"github.com/useskald/skald-go/pkg/logger"
	"github.com/useskald/skald-go/pkg/skald"
)

type generateCommander struct {
	prompt string
	rules  []string
	stream bool

	apiKey         string
	baseURL        string
	timeoutSeconds int
	markdown       bool

	debug bool
}

const generateLongDesc string = `Generate a document from the memos in your knowledge base.

The prompt describes the document to produce; optional --rule flags add
generation rules the server applies verbatim. With --stream the text is
printed token by token as it is produced; otherwise the command waits and
renders the finished document (as markdown unless output.markdown is
disabled).

Examples:
  skald generate "Write a runbook for the nightly sync job"
  skald generate "Summarize Q3 incidents" --rule "bullet points only"
  skald generate "Draft the changelog" --stream`

const generateShortDesc string = "Generate a document from the knowledge base"

func NewGenerateCmd() *cobra.Command {
	cmder := &generateCommander{}

	cmd := &cobra.Command{
		Use:   "generate <prompt>",
		Short: generateShortDesc,
		Long:  generateLongDesc,
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
			cmder.markdown = v.GetBool("output.markdown")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmder.prompt = args[0]

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
	cmd.Flags().StringArrayVar(&cmder.rules, "rule", nil, "Generation rule (repeatable)")
	cmd.Flags().BoolVar(&cmder.stream, "stream", false, "Stream the document as it is produced")

	return cmd
}

func (c *generateCommander) run() error {
	log := logger.New(logger.WithPretty(true), logger.WithDebug(c.debug), logger.WithWriter(os.Stderr))

	client, err := skald.New(skald.Config{
		APIKey:  c.apiKey,
		BaseURL: c.baseURL,
		Timeout: time.Duration(c.timeoutSeconds) * time.Second,
	}, log)
	if err != nil {
		return err
	}

	req := skald.GenerateRequest{
		Prompt: c.prompt,
		Rules:  c.rules,
	}

	if c.stream {
		return c.runStream(client, req)
	}

	var resp *skald.GenerateResponse
	err = cliui.Step(os.Stderr, "Generating document", func() error {
		var stepErr error
		resp, stepErr = client.Generate(context.Background(), req)
		return stepErr
	})
	if err != nil {
		return err
	}

	if c.markdown {
		rendered, err := cliui.RenderMarkdown(resp.Response)
		if err == nil {
			fmt.Print(rendered)
			return nil
		}
		// Fall through to raw output when rendering fails.
	}

	fmt.Println(resp.Response)
	return nil
}

func (c *generateCommander) runStream(client *skald.Client, req skald.GenerateRequest) error {
	stream, err := client.GenerateStream(context.Background(), req)
	if err != nil {
		return err
	}
	defer stream.Close()

	for {
		event, err := stream.Next()
		if err != nil {
			return err
		}
		if event == nil {
			break
		}

		if event.Type == skald.StreamEventToken {
			fmt.Print(event.Content)
		}
	}
	fmt.Println()

	return nil
}
