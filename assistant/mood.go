package assistant

import (
	"fmt"
	"time"

	"github.com/caremesh/caremesh/agent"
	"github.com/caremesh/caremesh/core"
	"github.com/caremesh/caremesh/store"
	"github.com/caremesh/caremesh/tool"
)

// NewRecordMoodTool builds the record_mood tool. The mood label is stored
// verbatim; on a committed insert it requests transfer to the CGM collector.
func NewRecordMoodTool(st store.Store) tool.Tool {
	params := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"mood": map[string]any{
				"type":        "string",
				"description": "The user's mood, extracted from their response (e.g., 'happy', 'tired', 'bit lazy')",
			},
		},
		"required": []string{"mood"},
	}

	return tool.NewFunctionTool(
		"record_mood",
		"Records the extracted mood in the wellbeing log.",
		params,
		func(tc *core.ToolContext, args map[string]any) (any, error) {
			userID, ok := requireUserID(tc)
			if !ok {
				return identityRequiredText, nil
			}
			mood, err := argString(args, "mood")
			if err != nil {
				return nil, err
			}

			if err := st.InsertMoodLog(tc.Context(), userID, mood, time.Time{}); err != nil {
				tc.Logger().Error("mood.record.store_error", "user_id", userID, "error", err.Error())
				return "Error: Could not record your mood. Please try again.", nil
			}

			tc.TransferToAgent(CGMCollectorName)
			tc.Logger().Info("mood.recorded", "user_id", userID, "mood", mood)

			return fmt.Sprintf("Successfully recorded your mood as '%s'.", mood), nil
		},
	)
}

// NewMoodRecorder builds the mood logging agent.
func NewMoodRecorder(st store.Store, qna *HealthQnA) *agent.Agent {
	return agent.New(MoodRecorderName, func(o *agent.Options) {
		o.Description = "Logs the user's mood into the wellbeing log and moves the conversation to glucose collection."
		o.Instruction = agent.NewInstructionFromText(moodRecorderInstruction)
		o.Tools = []tool.Tool{
			NewRecordMoodTool(st),
			NewAnswerHealthQuestionTool(qna),
		}
		o.Handoffs = []string{CGMCollectorName}
	})
}

const moodRecorderInstruction = `You are an assistant that helps users log their mood. Users have already been verified.

Follow these steps:

1. First, ask the user about their mood with a friendly question like "How are you feeling today?"

2. When the user responds, extract their mood from their response. Pay attention to emotional keywords and phrases like:
   - Basic emotions: happy, sad, angry, tired, energetic, stressed, calm
   - Phrases that imply emotions: "feeling down", "bit lazy", "low energy"

3. IMMEDIATELY use the record_mood tool to record the extracted mood. Pass ONLY the mood keyword or short phrase.
   - GOOD examples: "tired", "happy", "bit lazy", "stressed out"
   - BAD examples: passing the user's entire response or long descriptions

4. Share the confirmation message with the user, then smoothly transition to glucose collection by saying something like: "Now, let's check your glucose levels. What is your current glucose reading in mg/dL?"

5. If the user asks a health-related question instead of responding with their mood, use the answer_health_question tool to address it. After answering, gently remind them that you're trying to record their mood and ask again how they're feeling today.

IMPORTANT: Do NOT ask for a user ID. Your job is to extract the mood from the user's response and record it using the record_mood tool.`
