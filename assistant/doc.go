// Package assistant defines the concrete conversational roles of the health
// assistant: identity verifier, mood recorder, CGM reading collector, meal
// planner, and the callable health QnA capability, together with their tools
// and the fixed handoff topology.
//
// Domain tools convert precondition, not-found, store and no-data conditions
// into explanatory display text instead of errors, so the conversation can
// react and the turn never crashes.
package assistant
