// Package llm provides the optional enrichment boundary: a provider
// factory for chat models and the enricher that annotates drift issues.
// Nothing in here can fail the analysis; every failure degrades to the
// heuristic result.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"google.golang.org/genai"
)

// Settings carries the provider configuration the factory needs.
type Settings struct {
	Provider    string
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float64
}

// ChatModel is the narrow surface the enricher needs from any provider.
type ChatModel interface {
	Chat(ctx context.Context, system, user string) (string, error)
	Name() string
}

// NewChatModel builds a chat model for the configured provider. Supported
// providers: ollama (default), openai, anthropic, gemini.
func NewChatModel(ctx context.Context, s Settings) (ChatModel, error) {
	provider := strings.ToLower(strings.TrimSpace(s.Provider))
	if provider == "" {
		provider = "ollama"
	}

	switch provider {
	case "ollama":
		opts := []ollama.Option{ollama.WithModel(s.Model)}
		if s.BaseURL != "" {
			opts = append(opts, ollama.WithServerURL(s.BaseURL))
		}
		model, err := ollama.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("creating ollama client: %w", err)
		}
		return &langchainModel{model: model, name: "ollama/" + s.Model, temperature: s.Temperature}, nil

	case "openai":
		opts := []openai.Option{openai.WithModel(s.Model), openai.WithToken(s.APIKey)}
		if s.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(s.BaseURL))
		}
		model, err := openai.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("creating openai client: %w", err)
		}
		return &langchainModel{model: model, name: "openai/" + s.Model, temperature: s.Temperature}, nil

	case "anthropic":
		model, err := anthropic.New(anthropic.WithModel(s.Model), anthropic.WithToken(s.APIKey))
		if err != nil {
			return nil, fmt.Errorf("creating anthropic client: %w", err)
		}
		return &langchainModel{model: model, name: "anthropic/" + s.Model, temperature: s.Temperature}, nil

	case "gemini":
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  s.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("creating genai client: %w", err)
		}
		return &geminiModel{client: client, model: s.Model}, nil

	default:
		return nil, fmt.Errorf("unsupported LLM provider %q (expected ollama, openai, anthropic or gemini)", s.Provider)
	}
}

// langchainModel adapts any langchaingo backend to ChatModel.
type langchainModel struct {
	model       llms.Model
	name        string
	temperature float64
}

func (m *langchainModel) Name() string { return m.name }

func (m *langchainModel) Chat(ctx context.Context, system, user string) (string, error) {
	resp, err := m.model.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, user),
	}, llms.WithTemperature(m.temperature))
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("model returned no choices")
	}
	return resp.Choices[0].Content, nil
}

// geminiModel goes through google's own SDK; langchaingo's googleai
// backend lags behind it.
type geminiModel struct {
	client *genai.Client
	model  string
}

func (m *geminiModel) Name() string { return "gemini/" + m.model }

func (m *geminiModel) Chat(ctx context.Context, system, user string) (string, error) {
	contents := genai.Text(system + "\n\n" + user)
	resp, err := m.client.Models.GenerateContent(ctx, m.model, contents, nil)
	if err != nil {
		return "", err
	}
	text := resp.Text()
	if text == "" {
		return "", errors.New("model returned empty response")
	}
	return text, nil
}
