package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/zhouzirui/debate-arena/backend/internal/client"
)

type options struct {
	server  string
	timeout time.Duration
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if err := godotenv.Load(); err != nil {
		log.Printf("[WARN] .env not loaded, using system environment: %v", err)
	}

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	defaultServer := os.Getenv("DEBATE_SERVER")
	if defaultServer == "" {
		defaultServer = "http://localhost:8080"
	}

	root := &cobra.Command{
		Use:          "debatectl",
		Short:        "Drive a running debate backend from the terminal",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.server, "server", defaultServer, "debate backend base URL")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 15*time.Second, "request timeout")

	root.AddCommand(
		newStartCmd(opts),
		newSayCmd(opts),
		newShowCmd(opts),
		newHistoryCmd(opts),
		newHealthCmd(opts),
	)
	return root
}

func (o *options) client() *client.Client {
	return client.New(strings.TrimRight(o.server, "/"), o.timeout)
}

func (o *options) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), o.timeout)
}

func newStartCmd(opts *options) *cobra.Command {
	var topic, position string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Open a new debate",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			out, err := opts.client().Start(ctx, topic, position)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "session: %s\njames:   %s\nlinda:   %s\n\n%s\n",
				out.SessionID, out.FirstPersonaPosition, out.SecondPersonaPosition, out.OpeningMessage)
			return nil
		},
	}
	cmd.Flags().StringVar(&topic, "topic", "", "debate topic")
	cmd.Flags().StringVar(&position, "position", "pro", "your stance: pro or con")
	_ = cmd.MarkFlagRequired("topic")
	return cmd
}

func newSayCmd(opts *options) *cobra.Command {
	var sessionID, target, message string

	cmd := &cobra.Command{
		Use:   "say",
		Short: "Send a message to James or Linda",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			out, err := opts.client().Send(ctx, sessionID, message, target)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n", out.Persona, out.Message)
			return nil
		},
	}
	cmd.Flags().StringVar(&sessionID, "session", "", "session id")
	cmd.Flags().StringVar(&target, "to", "james", "target persona: james or linda")
	cmd.Flags().StringVarP(&message, "message", "m", "", "message text")
	_ = cmd.MarkFlagRequired("session")
	_ = cmd.MarkFlagRequired("message")
	return cmd
}

func newShowCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show <session-id>",
		Short: "Print the session view as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			view, err := opts.client().Session(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, view)
		},
	}
}

func newHistoryCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "history <session-id>",
		Short: "Print the transcript of a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			history, err := opts.client().History(ctx, args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, turn := range history.Messages {
				fmt.Fprintf(w, "%s  %-6s %s\n", turn.Timestamp.Local().Format(time.TimeOnly), turn.Role, turn.Message)
			}
			fmt.Fprintf(w, "(%d turns)\n", history.TotalCount)
			return nil
		},
	}
}

func newHealthCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the backend is up",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			status, err := opts.client().Health(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd, status)
		},
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
