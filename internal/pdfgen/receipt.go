package pdfgen

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"

	"github.com/bellenoire/salon-api/internal/models"
)

// Receipt renders a sale as a single-page A6 PDF.
func Receipt(sale *models.Sale, clientName string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A6", "")
	pdf.SetMargins(8, 8, 8)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "Belle Noire Salon", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(0, 4, fmt.Sprintf("Receipt %s", sale.ReceiptNumber), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 4, sale.CreatedAt.Format("02/01/2006 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, fmt.Sprintf("Client: %s", clientName), "", 1, "L", false, 0, "")
	pdf.Ln(1)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(50, 5, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(10, 5, "Qty", "B", 0, "R", false, 0, "")
	pdf.CellFormat(29, 5, "Price", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for _, item := range sale.Items {
		name := item.Service.Name
		if name == "" {
			name = fmt.Sprintf("Service #%d", item.ServiceID)
		}
		pdf.CellFormat(50, 5, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(10, 5, fmt.Sprintf("%d", item.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(29, 5, fmt.Sprintf("%.2f", item.Price*float64(item.Quantity)), "", 1, "R", false, 0, "")
	}
	pdf.Ln(2)

	line := func(label string, value float64) {
		pdf.CellFormat(60, 5, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(29, 5, fmt.Sprintf("%.2f", value), "", 1, "R", false, 0, "")
	}

	line("Subtotal", sale.Subtotal)
	if sale.Discount > 0 {
		line("Discount", -sale.Discount)
	}
	if sale.Tax > 0 {
		line("Tax", sale.Tax)
	}
	if sale.Tip > 0 {
		line("Tip", sale.Tip)
	}

	pdf.SetFont("Helvetica", "B", 10)
	line("Total", sale.Total)

	if sale.LoyaltyPointsUsed > 0 {
		pdf.SetFont("Helvetica", "", 7)
		pdf.CellFormat(0, 4, fmt.Sprintf("Loyalty points redeemed: %d", sale.LoyaltyPointsUsed), "", 1, "L", false, 0, "")
	}

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(0, 4, "Thank you for your visit!", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
