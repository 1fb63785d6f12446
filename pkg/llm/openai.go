package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type OpenAIClient struct {
	client         *openai.Client
	scoreModel     openai.ChatModel
	milestoneModel openai.ChatModel
	modelName      string
}

func NewOpenAIClient(apiKey string) *OpenAIClient {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIClient{
		client:         &client,
		scoreModel:     openai.ChatModelGPT4oMini,
		milestoneModel: openai.ChatModelGPT4o,
		modelName:      "gpt-4o-mini",
	}
}

func (c *OpenAIClient) ScoreArticle(ctx context.Context, input ScoreInput) (*ScoreResult, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.scoreModel,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(scoringPrompt(input)),
		},
		MaxTokens:   openai.Int(150),
		Temperature: openai.Float(0.3),
	})

	if err != nil {
		return nil, fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from openai")
	}

	content := cleanJSONResponse(resp.Choices[0].Message.Content)

	var parsed struct {
		ImpactScore int    `json:"impact_score"`
		Summary     string `json:"summary"`
	}

	err = json.Unmarshal([]byte(content), &parsed)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w, content: %s", err, content)
	}

	return &ScoreResult{
		ImpactScore: parsed.ImpactScore,
		Summary:     parsed.Summary,
		ModelUsed:   c.modelName,
	}, nil
}

func (c *OpenAIClient) GenerateMilestones(ctx context.Context, input MilestoneInput) (map[string][]MilestonePlan, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.milestoneModel,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(milestonePrompt(input)),
		},
		MaxTokens:   openai.Int(2000),
		Temperature: openai.Float(0.7),
	})

	if err != nil {
		return nil, fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from openai")
	}

	content := cleanJSONResponse(resp.Choices[0].Message.Content)

	var parsed map[string][]MilestonePlan
	err = json.Unmarshal([]byte(content), &parsed)
	if err != nil {
		return nil, fmt.Errorf("failed to parse milestone response: %w, content: %s", err, content)
	}

	return parsed, nil
}
