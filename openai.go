package main

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
	"go.uber.org/zap"
)

// OpenAISuggester implements Suggester against the OpenAI chat completions
// API using JSON-schema constrained responses, so the model either returns
// the exact shape we asked for or the request fails.
type OpenAISuggester struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// NewOpenAISuggester builds a suggester for the given API key and model.
func NewOpenAISuggester(apiKey, model string, logger *zap.Logger) *OpenAISuggester {
	return &OpenAISuggester{
		client: openai.NewClient(apiKey),
		model:  model,
		logger: logger,
	}
}

var bookmarkMetadataSchema = jsonschema.Definition{
	Type: jsonschema.Object,
	Properties: map[string]jsonschema.Definition{
		"title":       {Type: jsonschema.String},
		"description": {Type: jsonschema.String},
		"tags":        {Type: jsonschema.Array, Items: &jsonschema.Definition{Type: jsonschema.String}},
	},
	Required:             []string{"title", "description", "tags"},
	AdditionalProperties: false,
}

var noteTagsSchema = jsonschema.Definition{
	Type: jsonschema.Object,
	Properties: map[string]jsonschema.Definition{
		"tags": {Type: jsonschema.Array, Items: &jsonschema.Definition{Type: jsonschema.String}},
	},
	Required:             []string{"tags"},
	AdditionalProperties: false,
}

// SuggestBookmarkMetadata asks the model for a title, description and tags
// describing the URL.
func (s *OpenAISuggester) SuggestBookmarkMetadata(ctx context.Context, url string) (*BookmarkSuggestion, error) {
	prompt := fmt.Sprintf("Generate a title, a brief description, and 3 relevant tags for this URL: %s", url)
	var out BookmarkSuggestion
	if err := s.generate(ctx, prompt, "bookmark_metadata", bookmarkMetadataSchema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SuggestNoteTags asks the model for tags fitting the note's title and content.
func (s *OpenAISuggester) SuggestNoteTags(ctx context.Context, title, content string) ([]string, error) {
	prompt := fmt.Sprintf(
		"Suggest 3 to 5 concise tags for a note with the following title and content:\nTitle: %s\nContent: %s",
		title, content)
	var out struct {
		Tags []string `json:"tags"`
	}
	if err := s.generate(ctx, prompt, "note_tags", noteTagsSchema, &out); err != nil {
		return nil, err
	}
	return out.Tags, nil
}

func (s *OpenAISuggester) generate(ctx context.Context, prompt, name string, schema jsonschema.Definition, out any) error {
	s.logger.Debug("requesting suggestion", zap.String("schema", name), zap.String("model", s.model))
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   name,
				Schema: &schema,
				Strict: true,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return fmt.Errorf("chat completion returned no choices")
	}
	return decodeSuggestion([]byte(resp.Choices[0].Message.Content), out)
}

// decodeSuggestion parses a model response body. Anything that is not valid
// JSON for the expected shape is an error the caller turns into "no
// suggestion".
func decodeSuggestion(body []byte, out any) error {
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("malformed suggestion payload: %w", err)
	}
	return nil
}
