package explain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"

	"StockAdvisor/internal/domain/models"
)

var ErrEmptyCompletion = errors.New("llm returned no content")

// LocalPolisher returns the draft untouched.
type LocalPolisher struct{}

func NewLocalPolisher() *LocalPolisher { return &LocalPolisher{} }

func (LocalPolisher) Polish(_ context.Context, _ string, draft string) (string, models.ExplanationSource, error) {
	return draft, models.SourceLocal, nil
}

// generator is the part of llms.Model the polisher needs.
type generator interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// OpenAIPolisher rewrites drafts through an OpenAI-compatible chat completion endpoint.
type OpenAIPolisher struct {
	llm generator
	cfg OpenAIConfig
}

func NewOpenAIPolisher(cfg OpenAIConfig) (*OpenAIPolisher, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai polisher: api key is required")
	}
	opts := []openai.Option{openai.WithToken(cfg.APIKey), openai.WithModel(cfg.Model)}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("openai polisher: %w", err)
	}
	return newOpenAIPolisher(llm, cfg), nil
}

func newOpenAIPolisher(llm generator, cfg OpenAIConfig) *OpenAIPolisher {
	return &OpenAIPolisher{llm: llm, cfg: cfg}
}

// Polish returns the completion limited to WordLimit words. An empty
// completion is an error so the caller can fall back to the draft.
func (p *OpenAIPolisher) Polish(ctx context.Context, prompt, _ string) (string, models.ExplanationSource, error) {
	if p.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.Timeout)
		defer cancel()
	}

	msgs := []llms.MessageContent{
		{Role: schema.ChatMessageTypeSystem, Parts: []llms.ContentPart{llms.TextContent{Text: SystemPrompt}}},
		{Role: schema.ChatMessageTypeHuman, Parts: []llms.ContentPart{llms.TextContent{Text: prompt}}},
	}
	resp, err := p.llm.GenerateContent(ctx, msgs,
		llms.WithModel(p.cfg.Model),
		llms.WithTemperature(p.cfg.Temperature),
		llms.WithMaxTokens(p.cfg.MaxTokens),
	)
	if err != nil {
		return "", "", fmt.Errorf("generate content: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", "", ErrEmptyCompletion
	}
	content := strings.TrimSpace(resp.Choices[0].Content)
	if content == "" {
		return "", "", ErrEmptyCompletion
	}
	return EnforceWordLimit(content, WordLimit), models.SourceOpenAI, nil
}
