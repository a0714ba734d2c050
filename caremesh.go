// Package caremesh provides a high-level façade over the health assistant:
// the fixed agent topology (identity verification, mood logging, glucose
// collection, meal planning with an embedded health QnA capability), the
// SQLite-backed store, a decider, and the turn runner. Most applications
// interact with this package by:
//  1. Opening a store and creating an Assistant via New()
//  2. Feeding user utterances to Turn() until Done() reports true
//
// Defaults are safe for local development; production deployments supply a
// real decider (OpenAI or Anthropic adapter) and a structured logger.
package caremesh

import (
	"context"

	"github.com/caremesh/caremesh/assistant"
	"github.com/caremesh/caremesh/logging"
	"github.com/caremesh/caremesh/model"
	"github.com/caremesh/caremesh/runner"
	"github.com/caremesh/caremesh/store"
)

// Options configures the Assistant instance.
type Options struct {
	// MaxModelCalls limits decider calls within a single turn.
	MaxModelCalls int

	// PersistTranscript enables conversation logging for verified users.
	PersistTranscript bool

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Assistant aggregates the store, the agent registry and one conversation
// session. Each Assistant handles exactly one user session; create a new one
// per conversation.
type Assistant struct {
	store  store.Store
	runner *runner.Runner
}

// New creates an Assistant over the given store and decider.
func New(st store.Store, decider model.Decider, optFns ...func(o *Options)) (*Assistant, error) {
	opts := Options{
		MaxModelCalls:     8,
		PersistTranscript: true,
		Logger:            logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	registry, err := assistant.NewRegistry(st)
	if err != nil {
		return nil, err
	}

	run := runner.New(registry, decider, func(o *runner.Options) {
		o.MaxModelCalls = opts.MaxModelCalls
		o.Logger = opts.Logger
		if opts.PersistTranscript {
			o.Store = st
		}
	})

	return &Assistant{store: st, runner: run}, nil
}

// Turn processes one user utterance and returns the assistant's reply.
func (a *Assistant) Turn(ctx context.Context, userText string) (string, error) {
	return a.runner.Turn(ctx, userText)
}

// Done reports whether the session has ended (meal plan delivered).
func (a *Assistant) Done() bool { return a.runner.Done() }

// SessionID returns the conversation session id.
func (a *Assistant) SessionID() string { return a.runner.SessionID() }

// ActiveAgent returns the name of the agent currently holding the conversation.
func (a *Assistant) ActiveAgent() string { return a.runner.ActiveAgent() }
