package assistant

import (
	"errors"
	"fmt"

	"github.com/caremesh/caremesh/agent"
	"github.com/caremesh/caremesh/core"
	"github.com/caremesh/caremesh/store"
	"github.com/caremesh/caremesh/tool"
)

// VerifyStatus discriminates identity verification outcomes.
type VerifyStatus string

// Verification outcomes.
const (
	// VerifyVerified means the user exists; the session user id is staged and
	// a handoff to the mood recorder requested.
	VerifyVerified VerifyStatus = "verified"
	// VerifyNotFound means no user row matched the given id.
	VerifyNotFound VerifyStatus = "not_found"
	// VerifyFailed means the lookup itself failed (infrastructure).
	VerifyFailed VerifyStatus = "failed"
)

// VerifyResult is the structured outcome of an identity check. Downstream
// logic branches on Status; String renders the display text shown to the
// user, so nothing ever needs to pattern-match response prose.
type VerifyResult struct {
	Status VerifyStatus `json:"status"`
	UserID int64        `json:"user_id"`
	Name   string       `json:"name,omitempty"`  // full name on success
	Cause  string       `json:"cause,omitempty"` // failure cause on VerifyFailed
}

// String renders the user-facing text for this result.
func (r *VerifyResult) String() string {
	switch r.Status {
	case VerifyVerified:
		return fmt.Sprintf("Verification successful. Welcome, %s!", r.Name)
	case VerifyNotFound:
		return fmt.Sprintf("User ID %d not found. Please provide a valid ID.", r.UserID)
	default:
		return "There was a problem verifying your ID. Please try again later."
	}
}

// NewVerifyIdentityTool builds the verify_identity tool. On a hit it stages
// the session user id and requests transfer to the mood recorder; the staged
// id becomes visible only after the runner applies it.
func NewVerifyIdentityTool(st store.Store) tool.Tool {
	params := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"user_id": map[string]any{
				"type":        "integer",
				"description": "The integer ID of the user to verify",
			},
		},
		"required": []string{"user_id"},
	}

	return tool.NewFunctionTool(
		"verify_identity",
		"Verifies user identity by looking up the user ID in the users table. Returns a welcome message with the user's full name if found.",
		params,
		func(tc *core.ToolContext, args map[string]any) (any, error) {
			userID, err := argInt64(args, "user_id")
			if err != nil {
				return nil, err
			}

			user, err := st.FindUserByID(tc.Context(), userID)
			if errors.Is(err, core.ErrNotFound) {
				return &VerifyResult{Status: VerifyNotFound, UserID: userID}, nil
			}
			if err != nil {
				tc.Logger().Error("identity.verify.store_error", "user_id", userID, "error", err.Error())
				return &VerifyResult{Status: VerifyFailed, UserID: userID, Cause: err.Error()}, nil
			}

			tc.StageUserID(user.ID)
			tc.TransferToAgent(MoodRecorderName)
			tc.Logger().Info("identity.verified", "user_id", user.ID)

			return &VerifyResult{Status: VerifyVerified, UserID: user.ID, Name: user.FullName()}, nil
		},
	)
}

// NewIdentityVerifier builds the entry agent. It is the only role usable
// before verification and may hand off only to the mood recorder.
func NewIdentityVerifier(st store.Store) *agent.Agent {
	return agent.New(IdentityVerifierName, func(o *agent.Options) {
		o.Description = "Verifies user identity against the user database and greets verified users."
		o.Instruction = agent.NewInstructionFromText(identityVerifierInstruction)
		o.Tools = []tool.Tool{NewVerifyIdentityTool(st)}
		o.Handoffs = []string{MoodRecorderName}
	})
}

const identityVerifierInstruction = `You are an assistant responsible for verifying user identity. Your primary goal is to greet users after confirming their identity using their provided ID.

Follow these steps:
1. If the user hasn't provided an ID, politely ask them for their user ID. For example: "Hello! To proceed, please provide your user ID."
2. Once the user provides an ID, use the verify_identity tool to check it against the database.
3. If the tool confirms the identity, relay the welcome message to the user.
4. If the tool indicates the ID was not found, inform the user clearly and ask them to provide a correct ID. For example: "It seems that ID is not in our records. Could you please double-check and provide a valid user ID?"
5. If the tool reports any other problem, tell the user there was an issue verifying their ID and suggest they try again later.

Be polite and clear in your communication.`
