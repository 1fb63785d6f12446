package llm

import (
	"strings"
	"testing"
)

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain JSON unchanged",
			input: `{"impact_score":1}`,
			want:  `{"impact_score":1}`,
		},
		{
			name:  "strips json fenced block",
			input: "```json\n{\"impact_score\":1}\n```",
			want:  `{"impact_score":1}`,
		},
		{
			name:  "strips plain fenced block",
			input: "```\n{\"impact_score\":1}\n```",
			want:  `{"impact_score":1}`,
		},
		{
			name:  "trims surrounding whitespace",
			input: "  {\"impact_score\":1}  ",
			want:  `{"impact_score":1}`,
		},
		{
			name:  "extracts JSON from surrounding prose",
			input: "Here is the score:\n{\"impact_score\":-2,\"summary\":\"x\"}\nHope that helps!",
			want:  `{"impact_score":-2,"summary":"x"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cleanJSONResponse(tt.input)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScoringPromptContainsArticle(t *testing.T) {
	p := scoringPrompt(ScoreInput{
		CategoryName: "Defense Technology",
		Title:        "Major contract awarded",
		Description:  "A large modernization deal",
	})
	for _, want := range []string{"Defense Technology", "Major contract awarded", "A large modernization deal", "impact_score"} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestScoringPromptEmptyDescription(t *testing.T) {
	p := scoringPrompt(ScoreInput{CategoryName: "Energy Infrastructure", Title: "Grid update"})
	if !strings.Contains(p, "No summary available") {
		t.Error("prompt should substitute placeholder for empty description")
	}
}

func TestMilestonePromptIncludesScores(t *testing.T) {
	p := milestonePrompt(MilestoneInput{CategoryScores: map[string]float64{
		"Defense Technology":      72,
		"Energy Infrastructure":   75,
		"Manufacturing Reshoring": 68,
	}})
	if !strings.Contains(p, "Defense Technology (72)") {
		t.Errorf("prompt missing score line, got: %s", p)
	}
	if !strings.Contains(p, "supplyChain") {
		t.Error("prompt should name the expected response keys")
	}
}

func TestNewAnthropicClient_ModelID(t *testing.T) {
	c := NewAnthropicClient("test-key")
	if got := string(c.model); got != "claude-haiku-4-5" {
		t.Errorf("unexpected anthropic model id: %s", got)
	}
	if c.modelName != "claude-4.5-haiku" {
		t.Errorf("unexpected model label: %s", c.modelName)
	}
}
