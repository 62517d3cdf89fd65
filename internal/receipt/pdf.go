package receipt

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/jagadha/event-booking/internal/model"
)

// Renderer отдаёт PDF-квитанцию по бронированию. Документ для остального
// кода непрозрачен: его прикладывают к письму или отдают на скачивание.
type Renderer interface {
	Render(b *model.Booking) ([]byte, error)
}

// PDFRenderer — квитанция на gofpdf: шапка и поля бронирования.
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

func (r *PDFRenderer) Render(b *model.Booking) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 20, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "JAGADHA A to Z Event Management")
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 12)
	line := func(label, value string) {
		if value == "" {
			value = "-"
		}
		pdf.Cell(0, 7, fmt.Sprintf("%s: %s", label, value))
		pdf.Ln(7)
	}

	line("Booking ID", fmt.Sprintf("%d", b.ID))
	line("Name", b.Name)
	line("Phone", b.Phone)
	line("Email", b.CustomerEmail)
	line("Event Date", time.Time(b.EventDate).Format("2006-01-02"))
	line("Service", b.Service)

	pdf.Cell(0, 7, "Extras:")
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 10)
	extras := b.Extras
	if extras == "" {
		extras = "-"
	}
	pdf.SetX(pdf.GetX() + 4)
	pdf.Cell(0, 6, extras)
	pdf.Ln(9)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Notes:")
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 10)
	for _, notesLine := range strings.Split(b.Notes, "\n") {
		pdf.SetX(pdf.GetX() + 4)
		pdf.MultiCell(0, 5, notesLine, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt pdf: %w", err)
	}
	return buf.Bytes(), nil
}
