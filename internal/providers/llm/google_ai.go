package llm

import (
	"context"
	"errors"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GoogleAI talks to the Gemini API with an API key instead of Vertex AI
// project credentials.
type GoogleAI struct {
	client    *genai.Client
	modelName string
}

func NewGoogleAI(ctx context.Context, apiKey, modelName string) (*GoogleAI, error) {
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY is not set")
	}
	c, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	if modelName == "" {
		modelName = DefaultVertexModel
	}
	return &GoogleAI{client: c, modelName: modelName}, nil
}

func (g *GoogleAI) Name() string { return "gemini:" + g.modelName }

func (g *GoogleAI) Close() error { return g.client.Close() }

func (g *GoogleAI) Generate(ctx context.Context, prompt string, opts Options) (*Completion, error) {
	m := g.client.GenerativeModel(g.modelName)
	m.SetTemperature(opts.Temperature)
	m.SetTopP(opts.TopP)
	m.SetTopK(opts.TopK)
	m.SetMaxOutputTokens(opts.MaxOutputTokens)

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, err
	}

	var parts []string
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, p := range cand.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				parts = append(parts, string(t))
			}
		}
		if len(parts) > 0 {
			break
		}
	}

	text, err := joinParts(parts)
	if err != nil {
		return nil, err
	}
	out := &Completion{Text: text}
	if resp.UsageMetadata != nil {
		out.TokensUsed = int(resp.UsageMetadata.TotalTokenCount)
	}
	return out, nil
}
