package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/api/option"

	"github.com/sakura-notes/sakura/pkg/ai"
)

const (
	NAME = "gemini"
)

type Driver struct {
	client *genai.Client
	model  ai.ModelName
}

func New(token string, model ai.ModelName) *Driver {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(token))
	if err != nil {
		panic(err)
	}

	if model.ChatModel == "" {
		model.ChatModel = "gemini-1.5-pro-latest"
	}
	if model.EmbeddingModel == "" {
		model.EmbeddingModel = "text-embedding-004"
	}

	return &Driver{
		client: client,
		model:  model,
	}
}

func (s *Driver) Lang() string {
	return ai.MODEL_BASE_LANGUAGE_EN
}

func (s *Driver) Generate(ctx context.Context, prompt, query string) (ai.GenerateResult, error) {
	slog.Debug("Generate", slog.String("driver", NAME), slog.String("model", s.model.ChatModel))

	var result ai.GenerateResult

	model := s.client.GenerativeModel(s.model.ChatModel)
	model.SystemInstruction = genai.NewUserContent(genai.Text(prompt))
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":  {Type: genai.TypeString},
			"answer": {Type: genai.TypeString},
		},
		Required: []string{"title", "answer"},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(query))
	if err != nil {
		// some deployments reject the response schema, degrade to a plain
		// generation and hand back the raw text
		slog.Warn("Structured generation failed, retrying plain", slog.String("driver", NAME), slog.Any("error", err))
		plain := s.client.GenerativeModel(s.model.ChatModel)
		plain.SystemInstruction = genai.NewUserContent(genai.Text(prompt))
		if resp, err = plain.GenerateContent(ctx, genai.Text(query)); err != nil {
			return result, err
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
			return result, errors.New("empty response content")
		}
		result.Usage = usageFrom(resp)
		result.Answer = collectText(resp)
		result.Fallback = true
		return result, nil
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return result, errors.New("empty response content")
	}

	if resp.Candidates[0].FinishReason != genai.FinishReasonStop {
		slog.Warn("Generate finished without stop", slog.String("driver", NAME), slog.String("reason", resp.Candidates[0].FinishReason.String()))
	}

	raw := collectText(resp)
	result.Usage = usageFrom(resp)

	var payload struct {
		Title  string `json:"title"`
		Answer string `json:"answer"`
	}
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

func collectText(resp *genai.GenerateContentResponse) string {
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	return b.String()
}

func usageFrom(resp *genai.GenerateContentResponse) *openai.Usage {
	if resp.UsageMetadata == nil {
		return nil
	}
	return &openai.Usage{
		PromptTokens:     int(resp.UsageMetadata.PromptTokenCount),
		CompletionTokens: int(resp.UsageMetadata.CandidatesTokenCount),
		TotalTokens:      int(resp.UsageMetadata.TotalTokenCount),
	}
}

func (s *Driver) embedding(ctx context.Context, title string, content []string) (ai.EmbeddingResult, error) {
	slog.Debug("Embedding", slog.String("driver", NAME))
	em := s.client.EmbeddingModel(s.model.EmbeddingModel)
	if title != "" {
		em.TaskType = genai.TaskTypeRetrievalDocument
	} else {
		em.TaskType = genai.TaskTypeRetrievalQuery
	}

	result := ai.EmbeddingResult{
		Model: s.model.EmbeddingModel,
	}
	for _, v := range content {
		res, err := em.EmbedContentWithTitle(ctx, title, genai.Text(v))
		if err != nil {
			return result, err
		}
		result.Data = append(result.Data, res.Embedding.Values)
	}

	return result, nil
}

func (s *Driver) EmbeddingForQuery(ctx context.Context, content []string) (ai.EmbeddingResult, error) {
	return s.embedding(ctx, "", content)
}

func (s *Driver) EmbeddingForDocument(ctx context.Context, title string, content []string) (ai.EmbeddingResult, error) {
	return s.embedding(ctx, title, content)
}
