package assistant

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caremesh/caremesh/core"
	"github.com/caremesh/caremesh/store"
	"github.com/caremesh/caremesh/tool"
)

// healthTopics is the fixed knowledge base for health questions. Lookup is a
// case-insensitive substring match of the topic key against the query.
var healthTopics = map[string]string{
	"diabetes": `Diabetes is a chronic health condition that affects how your body turns food into energy. Most of the food you eat is broken down into sugar (glucose) and released into your bloodstream. When your blood sugar goes up, it signals your pancreas to release insulin, which helps your body's cells use the blood sugar for energy.

There are several types of diabetes:
- Type 1: The body doesn't make insulin. This is thought to be caused by an autoimmune reaction.
- Type 2: The body doesn't use insulin well and can't keep blood sugar at normal levels.
- Gestational: Develops in pregnant women who have never had diabetes.

Managing diabetes involves monitoring blood sugar levels, taking medications as prescribed, eating healthy foods, and staying physically active.`,

	"glucose": `Glucose is a simple sugar and an important carbohydrate in biology. It's one of the primary molecules which serve as energy sources for plants and animals.

Normal blood glucose (blood sugar) levels are:
- Fasting: 70-100 mg/dL
- Before meals: 70-130 mg/dL
- After meals (1-2 hours): Less than 180 mg/dL

Consistently high blood glucose levels can indicate diabetes or prediabetes, while consistently low levels might indicate other health issues.`,

	"hypertension": `Hypertension, or high blood pressure, is a common condition where the long-term force of the blood against your artery walls is high enough that it may eventually cause health problems, such as heart disease.

Normal blood pressure is less than 120/80 mm Hg. Hypertension is defined as a pressure of 130/80 mm Hg or higher. Lifestyle changes and medications can help control hypertension.`,

	"diet": `A healthy diet is essential for good health and nutrition. It protects against many chronic diseases, such as heart disease, diabetes, and cancer, and can help maintain a healthy body weight.

A healthy diet includes:
- Fruits, vegetables, legumes (e.g., lentils and beans)
- Nuts and whole grains (e.g., unprocessed maize, millet, oats, wheat, and brown rice)
- At least 400 g (5 portions) of fruits and vegetables per day
- Less than 10% of total energy intake from free sugars
- Less than 30% of total energy intake from fats
- Less than 5 g of salt per day

Individual dietary needs may vary based on age, lifestyle, degree of physical activity, and medical conditions.`,

	"exercise": `Regular physical activity is one of the most important things you can do for your health. Being physically active can improve your brain health, help manage weight, reduce the risk of disease, strengthen bones and muscles, and improve your ability to do everyday activities.

Adults should aim for:
- At least 150 minutes a week of moderate-intensity activity or 75 minutes of vigorous activity
- Muscle-strengthening activities on 2 or more days a week

Even small amounts of physical activity are beneficial, and some physical activity is better than none.`,
}

// HealthQnA is the callable question-answering capability. It is never a
// handoff target: other agents expose it inline through the
// answer_health_question tool, so answering a question never moves the
// active-agent pointer.
type HealthQnA struct {
	store store.Store
}

// NewHealthQnA constructs the QnA capability over the given store.
func NewHealthQnA(st store.Store) *HealthQnA {
	return &HealthQnA{store: st}
}

// Lookup finds topic information by case-insensitive substring match of the
// known topic keys against the query. The second return reports a hit.
func (q *HealthQnA) Lookup(query string) (string, bool) {
	lowered := strings.ToLower(query)
	for topic, info := range healthTopics {
		if strings.Contains(lowered, topic) {
			return info, true
		}
	}
	return "", false
}

// Profile renders the display text of the user's health profile.
func (q *HealthQnA) Profile(tc *core.ToolContext) string {
	userID, ok := requireUserID(tc)
	if !ok {
		return identityRequiredText
	}
	user, err := q.store.FindUserByID(tc.Context(), userID)
	if errors.Is(err, core.ErrNotFound) {
		return fmt.Sprintf("Error: User with ID %d not found.", userID)
	}
	if err != nil {
		tc.Logger().Error("qna.profile.store_error", "user_id", userID, "error", err.Error())
		return "Error: Could not retrieve your profile. Please try again."
	}
	return fmt.Sprintf(
		"User Profile for %s:\n- Dietary Preference: %s\n- Medical Conditions: %s",
		user.FullName(), user.DietaryPreference, user.MedicalConditions,
	)
}

// Answer resolves a health question: topic hit returns the topic text, a
// miss composes the user's profile with a consult-your-provider note.
func (q *HealthQnA) Answer(tc *core.ToolContext, query string) string {
	if info, ok := q.Lookup(query); ok {
		return info
	}
	return fmt.Sprintf(
		"I don't have specific information about '%s' in my knowledge base. "+
			"Here's what I know about you based on your profile:\n\n%s\n\n"+
			"For specific health questions about %s, I recommend consulting with "+
			"your healthcare provider who knows your medical history and can provide "+
			"personalized advice.",
		query, q.Profile(tc), query,
	)
}

// NewUserHealthProfileTool builds the get_user_health_profile tool.
func NewUserHealthProfileTool(qna *HealthQnA) tool.Tool {
	params := map[string]any{
		"type":       "object",
		"properties": map[string]any{},
	}
	return tool.NewFunctionTool(
		"get_user_health_profile",
		"Retrieves the user's health profile including dietary preferences and medical conditions.",
		params,
		func(tc *core.ToolContext, _ map[string]any) (any, error) {
			return qna.Profile(tc), nil
		},
	)
}

// NewHealthInformationTool builds the get_health_information tool.
func NewHealthInformationTool(qna *HealthQnA) tool.Tool {
	params := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": "The health topic or question from the user",
			},
		},
		"required": []string{"query"},
	}
	return tool.NewFunctionTool(
		"get_health_information",
		"Provides information about health topics based on the user's query.",
		params,
		func(tc *core.ToolContext, args map[string]any) (any, error) {
			query, err := argString(args, "query")
			if err != nil {
				return nil, err
			}
			return qna.Answer(tc, query), nil
		},
	)
}

// NewAnswerHealthQuestionTool wraps the QnA capability for embedding into
// other agents' tool sets. It answers inline and never requests a handoff.
func NewAnswerHealthQuestionTool(qna *HealthQnA) tool.Tool {
	params := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "The health-related question from the user",
			},
		},
		"required": []string{"question"},
	}
	return tool.NewFunctionTool(
		"answer_health_question",
		"Answers health-related questions from the user.",
		params,
		func(tc *core.ToolContext, args map[string]any) (any, error) {
			question, err := argString(args, "question")
			if err != nil {
				return nil, err
			}
			return qna.Answer(tc, question), nil
		},
	)
}
