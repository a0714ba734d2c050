// Package core defines the shared primitives of the caremesh runtime: the
// per-session interaction context, the constrained ToolContext handed to tool
// implementations, the conversation transcript types exchanged with deciders,
// and the error taxonomy surfaced at the tool boundary.
package core
