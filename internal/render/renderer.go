package render

import (
	"context"
	"fmt"
	"strings"

	"github.com/maplepath/api/internal/models"
)

type Renderer interface {
	Render(ctx context.Context, doc Document, f Format) ([]byte, error)
}

// NewRenderer picks the PDF engine by name: "fpdf" (default) or "chromedp".
func NewRenderer(engine, chromePath string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(engine)) {
	case "", "fpdf":
		return NewFPDFRenderer(), nil
	case "chromedp":
		return NewHTMLRenderer(chromePath), nil
	}
	return nil, fmt.Errorf("unknown renderer %q", engine)
}

// RenderCV lays out cv and draws it with the named format.
func RenderCV(ctx context.Context, r Renderer, cv *models.UserCV, format string) ([]byte, error) {
	f, _ := LookupFormat(format)
	return r.Render(ctx, Build(cv), f)
}
