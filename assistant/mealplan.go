package assistant

import (
	"errors"
	"fmt"
	"time"

	"github.com/caremesh/caremesh/agent"
	"github.com/caremesh/caremesh/core"
	"github.com/caremesh/caremesh/store"
	"github.com/caremesh/caremesh/tool"
)

// NewGlucoseHistoryTool builds the get_glucose_history tool: the latest
// reading plus 3-day and 7-day rolling averages. Missing data is a valid
// outcome rendered as display text, never an error.
func NewGlucoseHistoryTool(st store.Store) tool.Tool {
	params := map[string]any{
		"type":       "object",
		"properties": map[string]any{},
	}
	return tool.NewFunctionTool(
		"get_glucose_history",
		"Retrieves the user's glucose reading history, including the last reading, average for the last 3 days, and average for the last 7 days.",
		params,
		func(tc *core.ToolContext, _ map[string]any) (any, error) {
			userID, ok := requireUserID(tc)
			if !ok {
				return identityRequiredText, nil
			}

			latest, err := st.LatestGlucoseReading(tc.Context(), userID)
			if errors.Is(err, core.ErrNoData) {
				return "No glucose readings found for this user.", nil
			}
			if err != nil {
				tc.Logger().Error("glucose.history.store_error", "user_id", userID, "error", err.Error())
				return "Error: Could not retrieve your glucose history. Please try again.", nil
			}

			now := time.Now()
			avg3 := windowAverage(tc, st, userID, now.Add(-3*24*time.Hour))
			avg7 := windowAverage(tc, st, userID, now.Add(-7*24*time.Hour))

			return fmt.Sprintf(
				"Glucose Reading History:\n- Last Reading: %g mg/dL\n- Average (Last 3 Days): %s\n- Average (Last 7 Days): %s\n- Normal Range: %g-%g mg/dL",
				latest.Value, avg3, avg7, NormalMinGlucose, NormalMaxGlucose,
			), nil
		},
	)
}

// windowAverage formats a rolling average, rendering an empty window as "no data".
func windowAverage(tc *core.ToolContext, st store.Store, userID int64, since time.Time) string {
	avg, err := st.AverageGlucose(tc.Context(), userID, since)
	if errors.Is(err, core.ErrNoData) {
		return "no data"
	}
	if err != nil {
		tc.Logger().Warn("glucose.average.store_error", "user_id", userID, "error", err.Error())
		return "unavailable"
	}
	return fmt.Sprintf("%.1f mg/dL", avg)
}

// NewGenerateMealPlanTool builds the generate_meal_plan tool: reads the
// profile, stages the exit request, and returns the meal plan scaffold the
// decider fills with concrete recommendations. This is the designed
// end-of-flow signal.
func NewGenerateMealPlanTool(st store.Store) tool.Tool {
	params := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"glucose_status": map[string]any{
				"type":        "string",
				"description": "The status of the user's glucose levels ('high', 'low', or 'normal')",
			},
		},
		"required": []string{"glucose_status"},
	}
	return tool.NewFunctionTool(
		"generate_meal_plan",
		"Generates a personalized meal plan based on the user's glucose levels, dietary preferences, and medical conditions.",
		params,
		func(tc *core.ToolContext, args map[string]any) (any, error) {
			userID, ok := requireUserID(tc)
			if !ok {
				return identityRequiredText, nil
			}
			status, err := argString(args, "glucose_status")
			if err != nil {
				return nil, err
			}

			user, err := st.FindUserByID(tc.Context(), userID)
			if errors.Is(err, core.ErrNotFound) {
				return fmt.Sprintf("Error: User with ID %d not found.", userID), nil
			}
			if err != nil {
				tc.Logger().Error("mealplan.store_error", "user_id", userID, "error", err.Error())
				return "Error: Could not generate your meal plan. Please try again.", nil
			}

			tc.StageExit()
			tc.Logger().Info("mealplan.generated", "user_id", userID, "glucose_status", status)

			return fmt.Sprintf(
				"Based on your glucose status (%s), dietary preference (%s), and medical conditions (%s), here's your personalized meal plan:\n\n"+
					"Meal Plan for the Next 3 Meals:\n\n"+
					"1. *Next Meal*: This is a placeholder for a meal recommendation - replace it with a specific suggestion.\n\n"+
					"2. *Following Meal*: This is a placeholder for a meal recommendation - replace it with a specific suggestion.\n\n"+
					"3. *Later Meal*: This is a placeholder for a meal recommendation - replace it with a specific suggestion.\n\n"+
					"Thank you for using the Health Assistant! The application will now exit.",
				status, user.DietaryPreference, user.MedicalConditions,
			), nil
		},
	)
}

// NewMealPlanner builds the terminal meal planning agent.
func NewMealPlanner(st store.Store, qna *HealthQnA) *agent.Agent {
	return agent.New(MealPlannerName, func(o *agent.Options) {
		o.Description = "Produces personalized meal recommendations from glucose history and the user's health profile."
		o.Instruction = agent.NewInstructionFromText(mealPlannerInstruction)
		o.Tools = []tool.Tool{
			NewUserHealthProfileTool(qna),
			NewHealthInformationTool(qna),
			NewGlucoseHistoryTool(st),
			NewGenerateMealPlanTool(st),
			NewAnswerHealthQuestionTool(qna),
		}
		// Terminal role: no handoff targets.
	})
}

const mealPlannerInstruction = `You are an assistant specializing in personalized meal planning based on glucose readings and health profiles.

Follow these steps:

1. First, use the get_user_health_profile tool to retrieve the user's dietary preferences and medical conditions.

2. Then, use the get_glucose_history tool to analyze the user's glucose readings: their most recent reading and the averages for the last 3 and 7 days.

3. Based on this information, determine if the user's glucose level is:
   - HIGH (above 140 mg/dL)
   - LOW (below 70 mg/dL)
   - NORMAL (between 70-140 mg/dL)

4. Generate appropriate meal recommendations considering:
   - If glucose is HIGH: Focus on low-glycemic foods, complex carbs, protein, and fiber
   - If glucose is LOW: Include foods that will raise blood sugar safely (e.g., fruits, whole grains)
   - If glucose is NORMAL: Balanced meals that help maintain stable glucose levels
   - ALWAYS respect their dietary preferences (vegetarian, vegan, non-vegetarian)
   - ALWAYS consider their medical conditions (diabetes, hypertension, etc.)

5. Use the generate_meal_plan tool with the appropriate glucose status ('high', 'low', or 'normal'). In your message to the user, replace the placeholders with SPECIFIC meal recommendations including food items, portion sizes when appropriate, and a brief explanation of why these foods suit their condition.

6. If the user asks a health-related question during meal planning, use the answer_health_question tool, then continue with the meal recommendations.

7. After providing the meal plan, inform the user that the program will now exit. The generate_meal_plan tool sets the exit flag that ends the session.

IMPORTANT: Provide DETAILED, SPECIFIC meal recommendations, not general advice. For example, instead of "eat low-glycemic foods", recommend "1 cup of steel-cut oatmeal with cinnamon and 1 tablespoon of almonds".

Remember: The user's health profile and glucose readings are already in the database. You do not need to ask them for this information.`
