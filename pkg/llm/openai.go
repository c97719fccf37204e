package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

var batchClassificationSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"classifications": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"article_id":       map[string]any{"type": "integer"},
					"importance_score": map[string]any{"type": "number"},
					"summary":          map[string]any{"type": "string"},
					"is_english":       map[string]any{"type": "boolean"},
				},
				"required":             []string{"article_id", "importance_score", "summary", "is_english"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []string{"classifications"},
	"additionalProperties": false,
}

type OpenAIClient struct {
	client *openai.Client
	model  openai.ChatModel
}

func NewOpenAIClient(apiKey string) *OpenAIClient {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIClient{
		client: &client,
		model:  openai.ChatModelGPT4oMini,
	}
}

func (c *OpenAIClient) Name() string {
	return "openai"
}

func (c *OpenAIClient) ClassifyBatch(ctx context.Context, articles []ClassifyInput) ([]Classification, error) {
	if len(articles) == 0 {
		return nil, nil
	}

	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        "batch_classification",
		Description: openai.String("Importance classification for a batch of news articles"),
		Schema:      batchClassificationSchema,
		Strict:      openai.Bool(true),
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(scoringSystemPrompt),
			openai.UserMessage(formatArticlesForScoring(articles)),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{JSONSchema: schemaParam},
		},
		Temperature: openai.Float(0.1),
		MaxTokens:   openai.Int(2000),
	})

	if err != nil {
		return nil, fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from openai")
	}

	var parsed struct {
		Classifications []Classification `json:"classifications"`
	}

	err = json.Unmarshal([]byte(resp.Choices[0].Message.Content), &parsed)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return parsed.Classifications, nil
}
