// Package pdf writes generated documents as A4 PDF files.
package pdf

import (
	"context"
	"io"
	"strconv"

	"github.com/go-pdf/fpdf"

	"github.com/vynal-docs/vynal/internal/core/domain"
	"github.com/vynal-docs/vynal/internal/core/ports/driven"
	"github.com/vynal-docs/vynal/internal/formats/layout"
)

// Ensure Renderer implements the interface.
var _ driven.FormatRenderer = (*Renderer)(nil)

const (
	fontFamily = "Helvetica"
	margin     = 20.0
)

// lineStyle is the font and spacing of one layout style.
type lineStyle struct {
	fontStyle string
	size      float64
	height    float64
	after     float64
}

var styles = map[layout.Style]lineStyle{
	layout.Heading1: {fontStyle: "B", size: 16, height: 8, after: 2},
	layout.Heading2: {fontStyle: "B", size: 13, height: 7, after: 1},
	layout.Meta:     {fontStyle: "I", size: 9, height: 5},
	layout.Body:     {size: 11, height: 6},
}

// Renderer lays the document out with the core PDF fonts.
// Text is converted to cp1252, so characters outside it are replaced.
type Renderer struct{}

// New creates a new PDF renderer.
func New() *Renderer {
	return &Renderer{}
}

// Format returns domain.FormatPDF.
func (r *Renderer) Format() domain.OutputFormat {
	return domain.FormatPDF
}

// Extension returns "pdf".
func (r *Renderer) Extension() string {
	return "pdf"
}

// Render writes doc as a PDF.
// The creation date is the generation time, so output is reproducible.
func (r *Renderer) Render(ctx context.Context, doc *domain.GeneratedDocument, w io.Writer) error {
	if doc == nil {
		return domain.ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.SetCreationDate(doc.GeneratedAt)
	pdf.SetModificationDate(doc.GeneratedAt)
	pdf.SetCreator("vynal", true)
	pdf.SetTitle(doc.Title, true)
	pdf.SetSubject(doc.Reference, true)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(fontFamily, "I", 8)
		pdf.CellFormat(0, 10, doc.Reference, "", 0, "L", false, 0, "")
		pdf.SetX(margin)
		pdf.CellFormat(0, 10, pageLabel(pdf), "", 0, "R", false, 0, "")
	})
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	for _, line := range layout.Document(doc) {
		if line.Style == layout.Blank {
			pdf.Ln(4)
			continue
		}
		st := styles[line.Style]
		pdf.SetFont(fontFamily, st.fontStyle, st.size)
		pdf.MultiCell(0, st.height, tr(line.Text), "", "L", false)
		if st.after > 0 {
			pdf.Ln(st.after)
		}
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

func pageLabel(pdf *fpdf.Fpdf) string {
	return "Page " + strconv.Itoa(pdf.PageNo()) + "/{nb}"
}
