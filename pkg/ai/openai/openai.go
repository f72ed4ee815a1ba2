package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/sakura-notes/sakura/pkg/ai"
)

const (
	NAME = "openai"
)

type Driver struct {
	client *openai.Client
	model  ai.ModelName
}

func New(token, proxy string, model ai.ModelName) *Driver {
	cfg := openai.DefaultConfig(token)
	if proxy != "" {
		cfg.BaseURL = proxy
	}

	if model.ChatModel == "" {
		model.ChatModel = openai.GPT4oMini
	}
	if model.EmbeddingModel == "" {
		model.EmbeddingModel = string(openai.LargeEmbedding3)
	}

	return &Driver{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (s *Driver) Lang() string {
	return ai.MODEL_BASE_LANGUAGE_EN
}

type answerSchema struct {
	Title  string `json:"title"`
	Answer string `json:"answer"`
}

func (s *Driver) Generate(ctx context.Context, prompt, query string) (ai.GenerateResult, error) {
	slog.Debug("Generate", slog.String("driver", NAME), slog.String("model", s.model.ChatModel))

	var result ai.GenerateResult

	schema, err := jsonschema.GenerateSchemaForType(answerSchema{})
	if err != nil {
		return result, fmt.Errorf("Error generating answer schema: %w", err)
	}

	req := openai.ChatCompletionRequest{
		Model: s.model.ChatModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: prompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: query,
			},
		},
		Temperature: 0.7,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "note_answer",
				Schema: schema,
				Strict: true,
			},
		},
	}

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		// some providers reject the json_schema response format outright,
		// degrade to a plain completion and hand back the raw text
		slog.Warn("Structured completion failed, retrying plain", slog.String("driver", NAME), slog.Any("error", err))
		req.ResponseFormat = nil
		if resp, err = s.client.CreateChatCompletion(ctx, req); err != nil {
			return result, fmt.Errorf("Error creating chat completion: %w", err)
		}
		if len(resp.Choices) == 0 {
			return result, fmt.Errorf("empty response choices")
		}
		result.Usage = &resp.Usage
		result.Answer = resp.Choices[0].Message.Content
		result.Fallback = true
		return result, nil
	}
	if len(resp.Choices) == 0 {
		return result, fmt.Errorf("empty response choices")
	}

	raw := resp.Choices[0].Message.Content
	result.Usage = &resp.Usage

	var payload answerSchema
	if err = json.Unmarshal([]byte(raw), &payload); err != nil || payload.Answer == "" {
		slog.Warn("Generate fallback to raw output", slog.String("driver", NAME), slog.Any("error", err))
		result.Answer = raw
		result.Fallback = true
		return result, nil
	}

	result.Title = payload.Title
	result.Answer = payload.Answer
	return result, nil
}

func (s *Driver) embedding(ctx context.Context, title string, content []string) (ai.EmbeddingResult, error) {
	slog.Debug("Embedding", slog.String("driver", NAME))
	queryReq := openai.EmbeddingRequest{
		Model:      openai.EmbeddingModel(s.model.EmbeddingModel),
		Dimensions: 1024,
	}

	var (
		groups   [][]string
		result   [][]float32
		batchMax = 6
	)

	for i, v := range content {
		if i%batchMax == 0 {
			groups = append(groups, []string{})
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], v)
	}

	r := ai.EmbeddingResult{
		Usage: &openai.Usage{},
	}
	for _, v := range groups {
		queryReq.Input = v
		resp, err := s.client.CreateEmbeddings(ctx, queryReq)
		if err != nil {
			return r, fmt.Errorf("Error creating embedding: %w", err)
		}
		for _, d := range resp.Data {
			result = append(result, d.Embedding)
		}

		r.Usage.CompletionTokens += resp.Usage.CompletionTokens
		r.Usage.PromptTokens += resp.Usage.PromptTokens
		r.Usage.TotalTokens += resp.Usage.TotalTokens
		r.Model = string(resp.Model)
	}

	r.Data = result

	return r, nil
}

func (s *Driver) EmbeddingForQuery(ctx context.Context, content []string) (ai.EmbeddingResult, error) {
	return s.embedding(ctx, "", content)
}

func (s *Driver) EmbeddingForDocument(ctx context.Context, title string, content []string) (ai.EmbeddingResult, error) {
	return s.embedding(ctx, title, content)
}
