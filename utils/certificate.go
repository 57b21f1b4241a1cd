package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"nexora/config"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
)

// NewCertificateNumber returns a globally unique certificate number.
func NewCertificateNumber() string {
	return "CERT-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}

// GenerateCertificatePDF renders a landscape A4 certificate and writes it to
// the certificate directory. Returns the public URL path of the stored file.
func GenerateCertificatePDF(studentName, courseTitle, completionDate, certificateNumber string) (string, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pageWidth, pageHeight := pdf.GetPageSize()

	// Deep blue background
	pdf.SetFillColor(10, 29, 78)
	pdf.Rect(0, 0, pageWidth, pageHeight, "F")

	// Gold border
	pdf.SetDrawColor(255, 215, 0)
	pdf.SetLineWidth(2.5)
	pdf.Rect(8, 8, pageWidth-16, pageHeight-16, "D")

	// Title
	pdf.SetFont("Helvetica", "B", 36)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetXY(0, 30)
	pdf.CellFormat(pageWidth, 14, "CERTIFICATE", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(pageWidth, 10, "OF ACHIEVEMENT", "", 1, "C", false, 0, "")

	// Subtitle
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(247, 183, 49)
	pdf.SetXY(0, 68)
	pdf.CellFormat(pageWidth, 8, "PROUDLY PRESENTED TO", "", 1, "C", false, 0, "")

	// Student name
	pdf.SetFont("Helvetica", "BI", 40)
	pdf.SetTextColor(255, 215, 0)
	pdf.SetXY(0, 84)
	pdf.CellFormat(pageWidth, 18, studentName, "", 1, "C", false, 0, "")

	// Course details
	pdf.SetFont("Helvetica", "", 16)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetXY(0, 112)
	pdf.CellFormat(pageWidth, 8, "for successfully completing the course", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(247, 183, 49)
	pdf.CellFormat(pageWidth, 14, courseTitle, "", 1, "C", false, 0, "")

	// Date and issuer
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetXY(40, pageHeight-50)
	pdf.CellFormat(60, 6, "Date", "", 2, "C", false, 0, "")
	pdf.SetX(40)
	pdf.CellFormat(60, 6, completionDate, "", 0, "C", false, 0, "")

	pdf.SetXY(pageWidth-100, pageHeight-50)
	pdf.CellFormat(60, 6, "Issued by:", "", 2, "C", false, 0, "")
	pdf.SetX(pageWidth - 100)
	pdf.SetTextColor(247, 183, 49)
	pdf.CellFormat(60, 6, "Join Nexora", "", 0, "C", false, 0, "")

	// Certificate number
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(238, 238, 238)
	pdf.SetXY(0, pageHeight-24)
	pdf.CellFormat(pageWidth, 6, "Certificate ID: "+certificateNumber, "", 0, "C", false, 0, "")

	certDir := config.AppConfig.CertificateDir
	if err := os.MkdirAll(certDir, 0o755); err != nil {
		return "", fmt.Errorf("create certificate dir: %w", err)
	}

	fileName := fmt.Sprintf("%s_%s.pdf",
		strings.ReplaceAll(studentName, " ", "_"),
		certificateNumber,
	)
	if err := pdf.OutputFileAndClose(filepath.Join(certDir, fileName)); err != nil {
		return "", fmt.Errorf("write certificate pdf: %w", err)
	}

	return "/certificates/" + fileName, nil
}
