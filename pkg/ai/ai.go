package ai

import (
	"context"
	"fmt"

	"github.com/pkoukk/tiktoken-go"
	"github.com/sashabaranov/go-openai"
)

const (
	MODEL_BASE_LANGUAGE_CN = "Chinese"
	MODEL_BASE_LANGUAGE_EN = "English"
)

type ModelName struct {
	ChatModel      string `toml:"chat_model"`
	EmbeddingModel string `toml:"embedding_model"`
}

type Lang interface {
	Lang() string
}

// ChatAI produces a titled answer from an instruction prompt and the user
// query. Drivers try structured output first; when the provider response
// cannot be parsed they return the raw text with Fallback set instead of
// an error.
type ChatAI interface {
	Generate(ctx context.Context, prompt, query string) (GenerateResult, error)
	Lang
}

// EmbeddingAI turns text into vectors. Document and query embeddings are
// separate calls because some providers embed them asymmetrically.
type EmbeddingAI interface {
	EmbeddingForQuery(ctx context.Context, content []string) (EmbeddingResult, error)
	EmbeddingForDocument(ctx context.Context, title string, content []string) (EmbeddingResult, error)
}

type AssistantAI interface {
	ChatAI
	EmbeddingAI
}

type GenerateResult struct {
	Title    string
	Answer   string
	Fallback bool
	Usage    *openai.Usage
}

type EmbeddingResult struct {
	Model string
	Data  [][]float32
	Usage *openai.Usage
}

const fallbackTitleLimit = 50

// FallbackTitle derives an answer title from the query when the model
// did not produce a usable one.
func FallbackTitle(query string) string {
	runes := []rune(query)
	if len(runes) <= fallbackTitleLimit {
		return query
	}
	return string(runes[:fallbackTitleLimit]) + "..."
}

// NumTokens counts prompt tokens for budgeting context blocks. Unknown
// models fall back to the gpt-4 encoding.
func NumTokens(content string, model string) (int, error) {
	tkm, err := tiktoken.EncodingForModel(model)
	if err != nil {
		if tkm, err = tiktoken.EncodingForModel("gpt-4"); err != nil {
			return 0, fmt.Errorf("encoding for model: %w", err)
		}
	}
	return len(tkm.Encode(content, nil, nil)), nil
}
