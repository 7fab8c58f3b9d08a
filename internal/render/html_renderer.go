package render

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

var htmlTemplate = template.Must(template.New("cv").Funcs(template.FuncMap{
	"rgb": func(c RGB) template.CSS { return template.CSS(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)) },
}).Parse(`<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>{{.Doc.Title}}</title>
<style>
@page { size: Letter; margin: 0.75in; }
body { font-family: {{.Family}}; font-size: {{.F.BodySize}}pt; color: #000; margin: 0; }
h1 { text-align: center; font-size: {{.F.NameSize}}pt; color: {{rgb .F.Accent}}; margin: 0 0 4pt; }
.contact { text-align: center; margin-bottom: 10pt; }
h2 { font-size: {{.F.HeadingSize}}pt; color: {{rgb .F.Accent}}; margin: 10pt 0 4pt;{{if .F.HeadingRule}} border-bottom: 0.8pt solid {{rgb .F.Accent}};{{end}} }
.entry { margin-bottom: 4pt; page-break-inside: avoid; }
.meta { font-style: italic; color: #5a5a5a; }
.bullet, .achievement { padding-left: 20pt; text-indent: -10pt; }
.achievement::before { content: "\2713\00a0"; color: {{rgb .F.Accent}}; }
.bullet::before { content: "\2022\00a0"; }
p { margin: 0; }
</style></head>
<body>
{{with .Doc.Name}}<h1>{{.}}</h1>{{end}}
{{with .Doc.Contact}}<div class="contact">{{.}}</div>{{end}}
{{range .Doc.Sections}}<h2>{{.Heading}}</h2>
{{range .Entries}}<div class="entry">
{{range .}}{{if eq .Kind 1}}<p><b>{{.Lead}}</b>{{.Text}}</p>
{{else if eq .Kind 2}}<p class="meta">{{.Text}}</p>
{{else if eq .Kind 3}}<p class="bullet">{{.Text}}</p>
{{else if eq .Kind 4}}<p class="achievement">{{.Text}}</p>
{{else}}<p>{{.Text}}</p>
{{end}}{{end}}</div>
{{end}}{{end}}
</body></html>
`))

// HTMLRenderer prints an HTML rendition of the document through headless Chrome.
type HTMLRenderer struct {
	chromePath string
	timeout    time.Duration
}

func NewHTMLRenderer(chromePath string) *HTMLRenderer {
	return &HTMLRenderer{chromePath: chromePath, timeout: 60 * time.Second}
}

// HTML returns the markup that would be printed.
func HTML(doc Document, f Format) (string, error) {
	family := "Helvetica, Arial, sans-serif"
	switch f.Font {
	case "Times":
		family = `"Times New Roman", Times, serif`
	case "Courier":
		family = `"Courier New", Courier, monospace`
	}

	var buf bytes.Buffer
	err := htmlTemplate.Execute(&buf, struct {
		Doc    Document
		F      Format
		Family template.CSS
	}{doc, f, template.CSS(family)})
	return buf.String(), err
}

func (r *HTMLRenderer) Render(ctx context.Context, doc Document, f Format) ([]byte, error) {
	markup, err := HTML(doc, f)
	if err != nil {
		return nil, err
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.chromePath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()
	cctx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()
	runCtx, cancelRun := context.WithTimeout(cctx, r.timeout)
	defer cancelRun()

	var out []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, markup).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// US Letter, margins come from the @page rule
			out, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.5).
				WithPaperHeight(11).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}
	return out, nil
}
