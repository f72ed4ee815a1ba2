package srv

import (
	"fmt"

	"github.com/sakura-notes/sakura/pkg/ai"
	"github.com/sakura-notes/sakura/pkg/ai/gemini"
	"github.com/sakura-notes/sakura/pkg/ai/openai"
)

type AIConfig struct {
	Driver         string `toml:"driver"` // openai | gemini
	Token          string `toml:"token"`
	Endpoint       string `toml:"endpoint"`
	ChatModel      string `toml:"chat_model"`
	EmbeddingModel string `toml:"embedding_model"`
}

// AI wraps the configured provider behind the capability interfaces so the
// rest of the system never sees a concrete driver.
type AI struct {
	ai.ChatAI
	ai.EmbeddingAI
}

func SetupAI(cfg AIConfig) (*AI, error) {
	model := ai.ModelName{
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: cfg.EmbeddingModel,
	}

	switch cfg.Driver {
	case gemini.NAME:
		driver := gemini.New(cfg.Token, model)
		return &AI{ChatAI: driver, EmbeddingAI: driver}, nil
	case openai.NAME, "":
		driver := openai.New(cfg.Token, cfg.Endpoint, model)
		return &AI{ChatAI: driver, EmbeddingAI: driver}, nil
	default:
		return nil, fmt.Errorf("unknown ai driver %s", cfg.Driver)
	}
}

func ApplyAI(cfg AIConfig) ApplyFunc {
	return func(s *Srv) {
		driver, err := SetupAI(cfg)
		if err != nil {
			panic(err)
		}
		s.ai = driver
	}
}
