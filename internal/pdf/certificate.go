// Package pdf renders completion certificates and stamps forensic
// watermarks onto lesson documents.
package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// CertificateData is everything needed to render a completion certificate.
type CertificateData struct {
	StudentName       string
	CourseTitle       string
	CertificateNumber string
	IssuedAt          time.Time
}

// Brand palette and fixed certificate copy.
const (
	brandR, brandG, brandB = 41, 71, 135

	certTitle      = "CERTIFICATE OF COMPLETION"
	certPreamble   = "This is to certify that"
	certTransition = "has successfully completed"
	certFooter     = "Mentora Academy | mentora.academy"
)

// RenderCertificate produces a single landscape A4 certificate page.
// Output is byte-stable for identical inputs: the document creation and
// modification dates are pinned to the certificate issue date, so
// re-generation yields identical bytes.
func RenderCertificate(data CertificateData) ([]byte, error) {
	doc := fpdf.New("L", "mm", "A4", "")
	doc.SetCreationDate(data.IssuedAt.UTC())
	doc.SetModificationDate(data.IssuedAt.UTC())
	doc.SetTitle("Certificate "+data.CertificateNumber, true)
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	pageW, _ := doc.GetPageSize() // 297 x 210

	// Thick outer border, thin inner border.
	doc.SetDrawColor(brandR, brandG, brandB)
	doc.SetLineWidth(1.2)
	doc.Rect(10, 10, pageW-20, 190, "D")
	doc.SetLineWidth(0.3)
	doc.Rect(14, 14, pageW-28, 182, "D")

	doc.SetTextColor(brandR, brandG, brandB)

	doc.SetY(40)
	doc.SetFont("Helvetica", "B", 32)
	doc.CellFormat(0, 14, certTitle, "", 1, "C", false, 0, "")

	doc.SetY(68)
	doc.SetFont("Helvetica", "", 14)
	doc.CellFormat(0, 8, certPreamble, "", 1, "C", false, 0, "")

	doc.SetY(82)
	doc.SetFont("Helvetica", "B", 26)
	doc.CellFormat(0, 12, data.StudentName, "", 1, "C", false, 0, "")

	// Rule under the name, sized to the text width plus a fixed margin.
	nameWidth := doc.GetStringWidth(data.StudentName) + 20
	ruleY := doc.GetY() + 1
	doc.SetLineWidth(0.4)
	doc.Line((pageW-nameWidth)/2, ruleY, (pageW+nameWidth)/2, ruleY)

	doc.SetY(104)
	doc.SetFont("Helvetica", "", 14)
	doc.CellFormat(0, 8, certTransition, "", 1, "C", false, 0, "")

	doc.SetY(118)
	doc.SetFont("Helvetica", "B", 20)
	doc.CellFormat(0, 10, data.CourseTitle, "", 1, "C", false, 0, "")

	doc.SetY(140)
	doc.SetFont("Helvetica", "", 12)
	issued := fmt.Sprintf("Issued on %s", data.IssuedAt.Format("January 2, 2006"))
	doc.CellFormat(0, 7, issued, "", 1, "C", false, 0, "")

	doc.SetY(152)
	doc.SetFont("Helvetica", "I", 10)
	doc.CellFormat(0, 6, fmt.Sprintf("Certificate No. %s", data.CertificateNumber), "", 1, "C", false, 0, "")

	doc.SetY(182)
	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(0, 6, certFooter, "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render certificate PDF: %w", err)
	}
	return buf.Bytes(), nil
}
