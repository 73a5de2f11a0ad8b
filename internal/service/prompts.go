package service

import (
	"fmt"

	"dicas-api/pkg/api"
)

const (
	ebookSystemPrompt = "Você é um especialista em marketing digital e criação de eBooks."
	ebookUserPrompt   = "Crie 5 títulos criativos para eBooks sobre o tema: %s. Responda apenas com a lista."

	DefaultTemperature = 0.8
	DefaultMaxTokens   = 300
)

// SamplingOptions controls how creative the title generation is.
type SamplingOptions struct {
	Temperature float64
	MaxTokens   int
}

// EbookTitlePrompt asks for five e-book titles about topic.
func EbookTitlePrompt(topic string, sampling SamplingOptions) api.Prompt {
	return api.Prompt{
		System:      ebookSystemPrompt,
		User:        fmt.Sprintf(ebookUserPrompt, topic),
		Temperature: sampling.Temperature,
		MaxTokens:   sampling.MaxTokens,
	}
}
