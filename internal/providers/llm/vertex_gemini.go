package llm

import (
	"context"

	vertexgenai "cloud.google.com/go/vertexai/genai"
	"google.golang.org/api/option"
)

const DefaultVertexModel = "gemini-1.5-flash"

type VertexGemini struct {
	client    *vertexgenai.Client
	modelName string
}

func NewVertexGemini(ctx context.Context, projectID, location, modelName string, opts ...option.ClientOption) (*VertexGemini, error) {
	c, err := vertexgenai.NewClient(ctx, projectID, location, opts...)
	if err != nil {
		return nil, err
	}
	if modelName == "" {
		modelName = DefaultVertexModel
	}
	return &VertexGemini{client: c, modelName: modelName}, nil
}

func (v *VertexGemini) Name() string { return "vertex:" + v.modelName }

func (v *VertexGemini) Close() error { return v.client.Close() }

// Generate builds a model handle per call so concurrent requests never share
// mutable generation settings.
func (v *VertexGemini) Generate(ctx context.Context, prompt string, opts Options) (*Completion, error) {
	m := v.client.GenerativeModel(v.modelName)
	m.SetTemperature(opts.Temperature)
	m.SetTopP(opts.TopP)
	m.SetTopK(opts.TopK)
	m.SetMaxOutputTokens(opts.MaxOutputTokens)

	resp, err := m.GenerateContent(ctx, vertexgenai.Text(prompt))
	if err != nil {
		return nil, err
	}

	var parts []string
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, p := range cand.Content.Parts {
			if t, ok := p.(vertexgenai.Text); ok {
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
