package assistant

import (
	"fmt"
	"time"

	"github.com/caremesh/caremesh/agent"
	"github.com/caremesh/caremesh/core"
	"github.com/caremesh/caremesh/store"
	"github.com/caremesh/caremesh/tool"
)

// NewRecordGlucoseTool builds the record_glucose tool: insert the reading,
// classify it, and request transfer to the meal planner iff the band is
// outside the normal range. A normal reading produces no handoff.
func NewRecordGlucoseTool(st store.Store) tool.Tool {
	params := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"value": map[string]any{
				"type":        "number",
				"description": "The user's current glucose reading in mg/dL (e.g., 95.5, 120, 83)",
			},
		},
		"required": []string{"value"},
	}

	return tool.NewFunctionTool(
		"record_glucose",
		"Records the user's glucose reading in mg/dL and reports whether it is within the normal range.",
		params,
		func(tc *core.ToolContext, args map[string]any) (any, error) {
			userID, ok := requireUserID(tc)
			if !ok {
				return identityRequiredText, nil
			}
			value, err := argFloat(args, "value")
			if err != nil {
				return nil, err
			}

			if err := st.InsertGlucoseReading(tc.Context(), userID, value, time.Time{}); err != nil {
				tc.Logger().Error("glucose.record.store_error", "user_id", userID, "error", err.Error())
				return "Error: Could not record your glucose reading. Please try again.", nil
			}

			band := ClassifyGlucose(value)
			tc.Logger().Info("glucose.recorded", "user_id", userID, "value", value, "band", string(band))

			if band.OutsideNormal() {
				tc.TransferToAgent(MealPlannerName)
			}

			switch band {
			case BandLow:
				return fmt.Sprintf("Your glucose reading of %g mg/dL has been recorded. Your glucose level is below the normal range. Consider having a snack or meal soon.", value), nil
			case BandHigh:
				return fmt.Sprintf("Your glucose reading of %g mg/dL has been recorded. Your glucose level is above the normal range. Please follow your healthcare provider's recommendations for high glucose levels.", value), nil
			default:
				return fmt.Sprintf("Your glucose reading of %g mg/dL has been recorded. Great job! Your glucose level is within the normal range.", value), nil
			}
		},
	)
}

// NewCGMCollector builds the glucose logging agent.
func NewCGMCollector(st store.Store, qna *HealthQnA) *agent.Agent {
	return agent.New(CGMCollectorName, func(o *agent.Options) {
		o.Description = "Logs glucose readings and escalates out-of-range readings to meal planning."
		o.Instruction = agent.NewInstructionFromText(cgmCollectorInstruction)
		o.Tools = []tool.Tool{
			NewRecordGlucoseTool(st),
			NewAnswerHealthQuestionTool(qna),
		}
		o.Handoffs = []string{MealPlannerName}
	})
}

const cgmCollectorInstruction = `You are an assistant that helps users log their glucose (blood sugar) readings. Users have already been verified.

Follow these steps:

1. First, ask the user for their current glucose reading with a friendly question like "What is your current glucose reading in mg/dL?"

2. When the user responds, extract the numeric glucose value from their response. mg/dL is the default unit if none is given.

3. IMMEDIATELY use the record_glucose tool to record the extracted reading. Pass ONLY the numeric value.
   - GOOD examples: 120, 95.5, 83
   - BAD examples: passing text like "my glucose is 120" or including units

4. Share the confirmation message with the user, including whether the reading is within the normal range (70-140 mg/dL).

5. If the reading is NOT within the normal range, politely tell the user you'll help them with meal recommendations based on their glucose levels, for example: "I notice your glucose level is outside the normal range. Let me help you with some meal recommendations." The conversation then continues with the meal planner; do not wait for further user input.
   If the reading IS within the normal range, simply acknowledge this with a positive message.

6. If the user doesn't provide a clear numeric value, politely ask them to specify their glucose reading as a number.

7. If the user asks a health-related question, use the answer_health_question tool to address it, then return to collecting their reading.

IMPORTANT: Do NOT ask for a user ID. Your job is to extract the glucose reading from the user's response and record it using the record_glucose tool.`
