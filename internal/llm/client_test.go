package llm

import (
	"testing"

	"github.com/ndp-coder/Coustmize-ai-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestToGenAIContents(t *testing.T) {
	turns := []models.Turn{
		models.NewTurn(models.RoleUser, "persona"),
		{Role: models.RoleModel, Parts: []models.Part{{Text: "a"}, {Text: "b"}}},
	}
	got := toGenAIContents(turns)

	require.Len(t, got, 2)
	assert.Equal(t, "user", got[0].Role)
	assert.Equal(t, "persona", got[0].Parts[0].Text)
	assert.Equal(t, "model", got[1].Role)
	require.Len(t, got[1].Parts, 2)
	assert.Equal(t, "b", got[1].Parts[1].Text)
}

func TestToGenAISchema(t *testing.T) {
	assert.Nil(t, toGenAISchema(nil))

	s := toGenAISchema(&Schema{
		Type: "OBJECT",
		Properties: map[string]*Schema{
			"options": {Type: "ARRAY", Items: &Schema{Type: "STRING"}},
		},
		Required: []string{"options"},
	})
	assert.Equal(t, genai.TypeObject, s.Type)
	assert.Equal(t, genai.TypeArray, s.Properties["options"].Type)
	assert.Equal(t, genai.TypeString, s.Properties["options"].Items.Type)
	assert.Equal(t, []string{"options"}, s.Required)
}

func TestFirstText(t *testing.T) {
	assert.Equal(t, "", firstText(nil))
	assert.Equal(t, "", firstText(&genai.GenerateContentResponse{}))
	assert.Equal(t, "hi", firstText(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: genai.NewContentFromText("hi", genai.RoleModel)}},
	}))
}
