package render

import (
	"bytes"
	"context"
	"embed"
	"sync"

	"github.com/go-pdf/fpdf"
)

const (
	pageMargin   = 54.0 // 0.75in in points
	bulletIndent = 10.0
	markerWidth  = 10.0

	unicodeFamily = "DejaVu"
)

//go:embed fonts/*.ttf
var fontFiles embed.FS

type fontFace struct {
	style string
	data  []byte
}

var loadUnicodeFaces = sync.OnceValues(func() ([]fontFace, error) {
	files := []struct{ style, name string }{
		{"", "fonts/DejaVuSansCondensed.ttf"},
		{"B", "fonts/DejaVuSansCondensed-Bold.ttf"},
		{"I", "fonts/DejaVuSansCondensed-Oblique.ttf"},
	}
	faces := make([]fontFace, 0, len(files))
	for _, f := range files {
		b, err := fontFiles.ReadFile(f.name)
		if err != nil {
			return nil, err
		}
		faces = append(faces, fontFace{style: f.style, data: b})
	}
	return faces, nil
})

// FPDFRenderer draws documents on US Letter pages. Text is set in an embedded
// DejaVu Sans face so names outside Latin-1 survive; the format's core font is
// used only when that face cannot be loaded.
// Output is deterministic for a given Document and Format.
type FPDFRenderer struct{}

func NewFPDFRenderer() *FPDFRenderer { return &FPDFRenderer{} }

func (r *FPDFRenderer) Render(ctx context.Context, doc Document, f Format) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pdf, w := newUnicodeWriter(doc, f)
	if pdf.Error() != nil {
		pdf, w = newCoreWriter(doc, f)
	}

	pdf.AddPage()
	w.header(doc)
	for i, sec := range doc.Sections {
		w.section(i, sec)
	}

	if err := pdf.Error(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func newPage(doc Document) *fpdf.Fpdf {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(doc.Timestamp)
	pdf.SetModificationDate(doc.Timestamp)
	pdf.SetCreator("maplepath", false)
	pdf.SetTitle(doc.Title, true)
	pdf.SetAuthor(doc.Author, true)
	return pdf
}

func newUnicodeWriter(doc Document, f Format) (*fpdf.Fpdf, *fpdfWriter) {
	pdf := newPage(doc)
	faces, err := loadUnicodeFaces()
	if err != nil {
		pdf.SetError(err)
		return pdf, nil
	}
	for _, face := range faces {
		pdf.AddUTF8FontFromBytes(unicodeFamily, face.style, face.data)
	}
	return pdf, &fpdfWriter{pdf: pdf, f: f, family: unicodeFamily, tr: func(s string) string { return s }}
}

func newCoreWriter(doc Document, f Format) (*fpdf.Fpdf, *fpdfWriter) {
	pdf := newPage(doc)
	return pdf, &fpdfWriter{pdf: pdf, f: f, family: f.Font, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

type fpdfWriter struct {
	pdf    *fpdf.Fpdf
	f      Format
	family string
	tr     func(string) string
}

func (w *fpdfWriter) lineHeight() float64 { return w.f.BodySize * 1.35 }

func (w *fpdfWriter) body(style string) {
	w.pdf.SetFont(w.family, style, w.f.BodySize)
	w.pdf.SetTextColor(0, 0, 0)
}

func (w *fpdfWriter) header(doc Document) {
	if doc.Name != "" {
		w.pdf.SetFont(w.family, "B", w.f.NameSize)
		w.pdf.SetTextColor(w.f.Accent.R, w.f.Accent.G, w.f.Accent.B)
		w.pdf.CellFormat(0, w.f.NameSize+4, w.tr(doc.Name), "", 1, "C", false, 0, "")
	}
	if doc.Contact != "" {
		w.body("")
		w.pdf.MultiCell(0, w.lineHeight(), w.tr(doc.Contact), "", "C", false)
	}
}

func (w *fpdfWriter) section(i int, sec Section) {
	left, _, right, _ := w.pdf.GetMargins()
	pageW, _ := w.pdf.GetPageSize()

	if i == 0 {
		w.pdf.Ln(10)
	} else {
		w.pdf.Ln(8)
	}
	w.pdf.SetFont(w.family, "B", w.f.HeadingSize)
	w.pdf.SetTextColor(w.f.Accent.R, w.f.Accent.G, w.f.Accent.B)
	w.pdf.CellFormat(0, w.f.HeadingSize+4, w.tr(sec.Heading), "", 1, "L", false, 0, "")
	if w.f.HeadingRule {
		y := w.pdf.GetY()
		w.pdf.SetDrawColor(w.f.Accent.R, w.f.Accent.G, w.f.Accent.B)
		w.pdf.SetLineWidth(0.8)
		w.pdf.Line(left, y, pageW-right, y)
	}
	w.pdf.Ln(4)

	for j, e := range sec.Entries {
		if j > 0 {
			w.pdf.Ln(4)
		}
		for _, l := range e {
			w.line(l, left)
		}
	}
}

func (w *fpdfWriter) line(l Line, left float64) {
	lh := w.lineHeight()

	switch l.Kind {
	case LineTitle:
		w.body("B")
		w.pdf.Write(lh, w.tr(l.Lead))
		if l.Text != "" {
			w.body("")
			w.pdf.Write(lh, w.tr(l.Text))
		}
		w.pdf.Ln(lh)

	case LineMeta:
		w.pdf.SetFont(w.family, "I", w.f.BodySize-0.5)
		w.pdf.SetTextColor(90, 90, 90)
		w.pdf.Write(lh, w.tr(l.Text))
		w.pdf.Ln(lh)

	case LineBullet, LineAchievement:
		w.pdf.SetX(left + bulletIndent)
		if l.Kind == LineBullet {
			w.body("")
			w.pdf.CellFormat(markerWidth, lh, w.tr("•"), "", 0, "L", false, 0, "")
		} else {
			// "3" is the check mark glyph in ZapfDingbats
			w.pdf.SetFont("ZapfDingbats", "", w.f.BodySize-2)
			w.pdf.SetTextColor(w.f.Accent.R, w.f.Accent.G, w.f.Accent.B)
			w.pdf.CellFormat(markerWidth, lh, "3", "", 0, "L", false, 0, "")
		}
		// hanging indent: wrapped lines align with the text, not the marker
		w.pdf.SetLeftMargin(left + bulletIndent + markerWidth)
		w.body("")
		w.pdf.Write(lh, w.tr(l.Text))
		w.pdf.SetLeftMargin(left)
		w.pdf.Ln(lh)

	default:
		w.body("")
		w.pdf.MultiCell(0, lh, w.tr(l.Text), "", "L", false)
	}
}
