package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// OfferLetterData holds the fields rendered into an offer letter PDF.
type OfferLetterData struct {
	CandidateName   string
	JobTitle        string
	Department      string
	Company         string
	OfferCode       string
	CTCFixed        float64
	CTCVariable     float64
	JoiningBonus    float64
	RelocationBonus float64
	CTCTotal        float64
	DateOfJoining   time.Time
	ValidityDays    int
}

// OfferLetterRenderer produces offer letter PDFs.
type OfferLetterRenderer struct{}

// NewOfferLetterRenderer builds an offer letter renderer.
func NewOfferLetterRenderer() *OfferLetterRenderer {
	return &OfferLetterRenderer{}
}

// Render creates the PDF document for a released offer.
func (r *OfferLetterRenderer) Render(data OfferLetterData) ([]byte, error) {
	if data.CandidateName == "" || data.OfferCode == "" {
		return nil, fmt.Errorf("offer letter requires candidate name and offer code")
	}
	if data.Company == "" {
		data.Company = "HirePulse"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 20, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, fmt.Sprintf("%s - Offer of Employment", data.Company), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Offer Code: %s", data.OfferCode), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02")), "", 1, "", false, 0, "")
	pdf.Ln(4)

	pdf.MultiCell(0, 6, fmt.Sprintf(
		"Dear %s,\n\nWe are pleased to offer you the position of %s in the %s department. "+
			"Your compensation is detailed below.", data.CandidateName, data.JobTitle, data.Department), "", "", false)
	pdf.Ln(4)

	rows := []struct {
		label string
		value float64
	}{
		{"Fixed Compensation", data.CTCFixed},
		{"Variable Compensation", data.CTCVariable},
		{"Joining Bonus", data.JoiningBonus},
		{"Relocation Bonus", data.RelocationBonus},
		{"Total CTC", data.CTCTotal},
	}
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(95, 8, "Component", "1", 0, "", false, 0, "")
	pdf.CellFormat(85, 8, "Annual Amount", "1", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	for _, row := range rows {
		pdf.CellFormat(95, 7, row.label, "1", 0, "", false, 0, "")
		pdf.CellFormat(85, 7, fmt.Sprintf("%.2f", row.value), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	pdf.MultiCell(0, 6, fmt.Sprintf(
		"Your expected date of joining is %s. This offer remains valid for %d days from the date above.\n\n"+
			"We look forward to welcoming you aboard.\n\nRegards,\nHiring Team",
		data.DateOfJoining.Format("2006-01-02"), data.ValidityDays), "", "", false)

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render offer letter: %w", err)
	}
	return buf.Bytes(), nil
}
