// Package chatcmder provides the chat command for retrieval-augmented
// chat over the knowledge base.
package chatcmder

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/useskald/skald-go/pkg/config"
	"github.com/useskald/skald-go/pkg/logger"
	"github.com/useskald/skald-go/pkg/skald"
)

var (
	userPrompt      = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true).Render("you> ")
	assistantPrompt = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render("skald> ")
)

type chatCommander struct {
	query   string
	logFile string

	apiKey         string
	baseURL        string
	timeoutSeconds int

	debug  bool
	logger *slog.Logger
}

const chatLongDesc string = `Ask questions answered from your stored memos.

With a query argument the command asks once, streams the answer token by
token and exits. Without one it starts an interactive session; exit with
Ctrl-D or "/quit".

Examples:
  skald chat "what did we decide about retries?"
  skald chat
  skald chat --log-file ./chat.log`

const chatShortDesc string = "Chat with the knowledge base"

func NewChatCmd() *cobra.Command {
	cmder := &chatCommander{}

	cmd := &cobra.Command{
		Use:   "chat [query]",
		Short: chatShortDesc,
		Long:  chatLongDesc,
		Args:  cobra.MaximumNArgs(1),
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
			if len(args) == 1 {
				cmder.query = args[0]
			}

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
	cmd.Flags().StringVar(&cmder.logFile, "log-file", "", "Also write JSON logs to this file")

	return cmd
}

func (c *chatCommander) run() error {
	if err := c.setupLogger(); err != nil {
		return err
	}

	client, err := skald.New(skald.Config{
		APIKey:  c.apiKey,
		BaseURL: c.baseURL,
		Timeout: time.Duration(c.timeoutSeconds) * time.Second,
	}, c.logger)
	if err != nil {
		return err
	}

	if c.query != "" {
		return c.ask(client, c.query)
	}

	// Interactive session.
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(userPrompt)
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "/quit" || line == "/exit" {
			return nil
		}

		if err := c.ask(client, line); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}
}

// ask streams one answer, printing tokens as they arrive.
func (c *chatCommander) ask(client *skald.Client, query string) error {
	stream, err := client.ChatStream(context.Background(), skald.ChatRequest{Query: query})
	if err != nil {
		return err
	}
	defer stream.Close()

	fmt.Print(assistantPrompt)
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

// setupLogger builds a pretty stderr logger, fanned out to a JSON log
// file when --log-file is set.
func (c *chatCommander) setupLogger() error {
	pretty := logger.New(logger.WithPretty(true), logger.WithDebug(c.debug), logger.WithWriter(os.Stderr))

	if c.logFile == "" {
		c.logger = pretty
		return nil
	}

	f, err := os.OpenFile(c.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}

	jsonLogger := logger.New(logger.WithJSON(true), logger.WithDebug(c.debug), logger.WithWriter(f))
	c.logger = logger.Multi(pretty, jsonLogger)
	return nil
}
