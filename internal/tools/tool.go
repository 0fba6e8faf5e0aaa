package tools

import (
	"fmt"

	"github.com/ndp-coder/Coustmize-ai-backend/internal/llm"
	"github.com/ndp-coder/Coustmize-ai-backend/internal/models"
)

// Tool is a one-shot generation built around a topic and the student's persona.
type Tool struct {
	prompt   func(topic, persona string) string
	mimeType string
	schema   *llm.Schema
}

// QuizSchema is the JSON shape requested from the model for quizzes.
var QuizSchema = &llm.Schema{
	Type: "OBJECT",
	Properties: map[string]*llm.Schema{
		"quiz": {
			Type: "ARRAY",
			Items: &llm.Schema{
				Type: "OBJECT",
				Properties: map[string]*llm.Schema{
					"question": {Type: "STRING"},
					"options":  {Type: "ARRAY", Items: &llm.Schema{Type: "STRING"}},
					"answer":   {Type: "STRING"},
				},
				Required: []string{"question", "options", "answer"},
			},
		},
	},
}

var tools = map[string]Tool{
	"planner": {
		prompt: func(topic, persona string) string {
			return fmt.Sprintf("Act as an expert teacher. Create a detailed 7-day study plan for the topic \"%s\". "+
				"The user is a student with the following profile: %s. Format the response using Markdown.", topic, persona)
		},
	},
	"quiz": {
		prompt: func(topic, persona string) string {
			return fmt.Sprintf("Generate a 5-question multiple-choice quiz on the topic \"%s\" suitable for a student "+
				"with the profile: %s. Provide four options and the correct answer.", topic, persona)
		},
		mimeType: "application/json",
		schema:   QuizSchema,
	},
}

func GetTool(key string) (Tool, bool) {
	tool, exists := tools[key]
	return tool, exists
}

// Request builds the single-turn generation request for topic.
func (t Tool) Request(topic, persona string) llm.Request {
	return llm.Request{
		Contents:         []models.Turn{models.NewTurn(models.RoleUser, t.prompt(topic, persona))},
		ResponseMIMEType: t.mimeType,
		ResponseSchema:   t.schema,
	}
}
