// Package model defines the decider abstraction: the normalized request and
// structured decision contract between orchestration and language model
// providers, plus a scriptable mock for tests. Provider adapters live in the
// openai and anthropic subpackages.
package model
