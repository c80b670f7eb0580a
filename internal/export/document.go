package export

import (
	"bytes"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/cristianadrielbraun/qrsheet/internal/layout"
)

// Document is the page-authoring surface the orchestrator draws on.
type Document interface {
	PageSize() (width, height float64)
	SetDrawGray(level int)
	SetFontSize(size float64)
	DrawRect(r layout.Rect)
	// DrawText draws txt horizontally centered on x with its baseline at y.
	DrawText(txt string, x, y float64)
	// DrawImage places encoded image data. Images are registered once per
	// name, so repeated placements of the same name share one copy.
	DrawImage(name string, data []byte, format string, r layout.Rect)
	// Err returns the first error raised by any drawing call.
	Err() error
	Output(w io.Writer) error
}

// DocumentFactory creates a one-page document.
type DocumentFactory func(orientation, unit, format string) Document

type pdfDocument struct {
	pdf    *gofpdf.Fpdf
	tr     func(string) string
	images map[string]bool
}

// NewPDFDocument creates a gofpdf-backed document with one page, e.g.
// NewPDFDocument("P", "mm", "A4").
func NewPDFDocument(orientation, unit, format string) Document {
	pdf := gofpdf.New(orientation, unit, format, "")
	pdf.SetCreator("qrsheet", true)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 12)
	return &pdfDocument{
		pdf:    pdf,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		images: make(map[string]bool),
	}
}

func (d *pdfDocument) PageSize() (float64, float64) {
	return d.pdf.GetPageSize()
}

func (d *pdfDocument) SetDrawGray(level int) {
	d.pdf.SetDrawColor(level, level, level)
}

func (d *pdfDocument) SetFontSize(size float64) {
	d.pdf.SetFontSize(size)
}

func (d *pdfDocument) DrawRect(r layout.Rect) {
	d.pdf.Rect(r.X, r.Y, r.W, r.H, "D")
}

func (d *pdfDocument) DrawText(txt string, x, y float64) {
	s := d.tr(txt)
	d.pdf.Text(x-d.pdf.GetStringWidth(s)/2, y, s)
}

func (d *pdfDocument) DrawImage(name string, data []byte, format string, r layout.Rect) {
	opts := gofpdf.ImageOptions{ImageType: format}
	if !d.images[name] {
		d.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
		d.images[name] = true
	}
	d.pdf.ImageOptions(name, r.X, r.Y, r.W, r.H, false, opts, 0, "")
}

func (d *pdfDocument) Err() error {
	return d.pdf.Error()
}

func (d *pdfDocument) Output(w io.Writer) error {
	return d.pdf.Output(w)
}
