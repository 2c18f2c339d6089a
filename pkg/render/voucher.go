package render

import (
	"bytes"
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"
)

type VoucherLine struct {
	Name     string
	Quantity int
	Coins    int64
}

type Voucher struct {
	OrderID        uint
	Token          string
	RestaurantName string
	StatusLabel    string
	CoinsTotal     int64
	CreatedAt      time.Time
	Lines          []VoucherLine
}

// VoucherPDF renders a one-page A4 voucher with the QR code on the right.
func VoucherPDF(v Voucher) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	if err := writeVoucher(pdf, v); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// core fonts are cp1252, so every user-supplied string goes through tr.
// Runes outside cp1252 are dropped by the translator.
func writeVoucher(pdf *gofpdf.Fpdf, v Voucher) error {
	qrPNG, err := QRCodePNG(v.Token, DefaultQRSize)
	if err != nil {
		return fmt.Errorf("qr: %w", err)
	}
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Reward Voucher")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, tr(fmt.Sprintf("Restaurant: %s", v.RestaurantName)))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Redemption #%d", v.OrderID))
	pdf.Ln(8)
	if !v.CreatedAt.IsZero() {
		pdf.Cell(0, 10, fmt.Sprintf("Date: %s", v.CreatedAt.Format("2006-01-02 15:04")))
		pdf.Ln(8)
	}
	pdf.Cell(0, 10, tr(fmt.Sprintf("Status: %s", v.StatusLabel)))
	pdf.Ln(12)

	for _, l := range v.Lines {
		pdf.Cell(0, 8, tr(fmt.Sprintf("%dx %s (%d coins)", l.Quantity, l.Name, l.Coins*int64(l.Quantity))))
		pdf.Ln(6)
	}
	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Total: %d coins", v.CoinsTotal))
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 9)
	pdf.Cell(0, 10, v.Token)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 20, 45, 45, false, imageOpts, 0, "")
	return pdf.Error()
}
