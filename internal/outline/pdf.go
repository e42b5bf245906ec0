package outline

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/at-ishikawa/storybuilder/internal/project"
)

const (
	pageMargin  = 14.0
	lineHeight  = 5.0
	swatchWidth = 1.5
)

type column struct {
	title string
	width float64
	align string
}

// Widths add up to the printable width of a portrait A4 page.
var pdfColumns = []column{
	{title: "#", width: 10, align: "C"},
	{title: "Subplot", width: 34, align: "L"},
	{title: "Scene Description", width: 66, align: "L"},
	{title: "Intensity", width: 18, align: "C"},
	{title: "Notes", width: 54, align: "L"},
}

// WritePDF writes the scenes as a paginated table under the outline title.
func WritePDF(w io.Writer, scenes []project.Scene) error {
	pdf := buildPDF(scenes)
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf.Output() > %w", err)
	}
	return nil
}

func buildPDF(scenes []project.Scene) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(Title, true)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, pageMargin)
	pdf.AliasNbPages("")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		_, pageHeight := pdf.GetPageSize()
		pdf.SetXY(pageMargin, pageHeight-pageMargin+4)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(100, 116, 139)
		pdf.CellFormat(0, 4, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(15, 23, 42)
	pdf.Text(pageMargin, 22, tr(Title))
	pdf.SetXY(pageMargin, 30)
	writeHeader(pdf, tr)

	if len(scenes) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.SetTextColor(100, 116, 139)
		pdf.CellFormat(0, 8, "The thread is empty.", "", 1, "L", false, 0, "")
		return pdf
	}

	_, pageHeight := pdf.GetPageSize()
	for _, sc := range scenes {
		cells := row(sc)
		cells[1] = tr(cells[1])
		cells[2] = tr(cells[2])
		cells[4] = tr(cells[4])

		pdf.SetFont("Helvetica", "", 9)
		height := rowHeight(pdf, cells)
		if pdf.GetY()+height > pageHeight-pageMargin {
			pdf.AddPage()
			pdf.SetXY(pageMargin, pageMargin)
			writeHeader(pdf, tr)
			pdf.SetFont("Helvetica", "", 9)
		}
		writeRow(pdf, cells, sc.SubplotColor, height)
	}
	return pdf
}

func writeHeader(pdf *fpdf.Fpdf, tr func(string) string) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(30, 41, 59)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetDrawColor(203, 213, 225)
	for _, c := range pdfColumns {
		pdf.CellFormat(c.width, 7, tr(c.title), "1", 0, c.align, true, 0, "")
	}
	pdf.Ln(-1)
}

func rowHeight(pdf *fpdf.Fpdf, cells []string) float64 {
	lines := 1
	for i, c := range pdfColumns {
		if n := len(pdf.SplitLines([]byte(cells[i]), c.width)); n > lines {
			lines = n
		}
	}
	return float64(lines)*lineHeight + 2
}

func writeRow(pdf *fpdf.Fpdf, cells []string, color string, height float64) {
	x, y := pdf.GetX(), pdf.GetY()
	pdf.SetTextColor(15, 23, 42)
	for i, c := range pdfColumns {
		pdf.Rect(x, y, c.width, height, "D")
		if i == 1 {
			r, g, b := subplotRGB(color)
			pdf.SetFillColor(int(r), int(g), int(b))
			pdf.Rect(x, y, swatchWidth, height, "F")
		}
		pdf.SetXY(x, y+1)
		pdf.MultiCell(c.width, lineHeight, cells[i], "", c.align, false)
		x += c.width
	}
	pdf.SetXY(pageMargin, y+height)
}

// subplotRGB parses a "#rrggbb" or "#rgb" color, falling back to the color
// used for unknown subplots.
func subplotRGB(hex string) (uint8, uint8, uint8) {
	c, err := colorful.Hex(hex)
	if err != nil {
		c, _ = colorful.Hex(project.UnknownSubplotColor)
	}
	return c.RGB255()
}
