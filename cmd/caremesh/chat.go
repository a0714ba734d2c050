package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/spf13/cobra"

	"github.com/caremesh/caremesh"
	"github.com/caremesh/caremesh/config"
	"github.com/caremesh/caremesh/model"
	"github.com/caremesh/caremesh/model/anthropic"
	"github.com/caremesh/caremesh/model/openai"
	"github.com/caremesh/caremesh/store"
)

var exitCommands = map[string]struct{}{"exit": {}, "quit": {}}

func newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive assistant session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadRuntime()
			if err != nil {
				return err
			}

			st, err := store.Open(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}

			decider, err := buildDecider(cfg)
			if err != nil {
				return err
			}

			a, err := caremesh.New(st, decider, func(o *caremesh.Options) {
				o.Logger = logger
			})
			if err != nil {
				return err
			}

			return chatLoop(cmd, a)
		},
	}
}

func chatLoop(cmd *cobra.Command, a *caremesh.Assistant) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Health Assistant")
	fmt.Fprintln(out, "Agent: Hello! To proceed, please provide your user ID.")
	fmt.Fprintln(out, `(type "exit" or "quit" to leave)`)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(out, "You: ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			fmt.Fprintln(out, "Agent: Please provide some input.")
			continue
		}
		if _, ok := exitCommands[strings.ToLower(input)]; ok {
			fmt.Fprintln(out, "Agent: Goodbye!")
			return nil
		}

		reply, err := a.Turn(cmd.Context(), input)
		if err != nil {
			// One failed turn should not end the session; report and continue.
			fmt.Fprintf(out, "Agent: Sorry, something went wrong (%v). Please try again.\n", err)
			continue
		}
		fmt.Fprintf(out, "Agent: %s\n", reply)

		if a.Done() {
			return nil
		}
	}
}

// buildDecider selects the provider adapter from configuration.
func buildDecider(cfg *config.Config) (model.Decider, error) {
	switch cfg.Provider {
	case config.ProviderAnthropic:
		return anthropic.NewDecider(func(o *anthropic.Options) {
			o.APIKey = cfg.APIKey
			if cfg.Model != "" {
				o.Model = anthropicsdk.Model(cfg.Model)
			}
		}), nil
	case config.ProviderOpenAI:
		return openai.NewDecider(func(o *openai.Options) {
			if cfg.Model != "" {
				o.Model = cfg.Model
			}
		}), nil
	}
	return nil, fmt.Errorf("unsupported provider %q", cfg.Provider)
}
