// Package export renders the billing register, the firm-level spreadsheet
// of all billing documents with their GST split and payment position.
package export

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"filingdesk/internal/domain"
)

// sheetName is the single worksheet the register is written to.
const sheetName = "Billing Register"

// columns defines the register header row.
var columns = []string{
	"Document ID",
	"Kind",
	"Status",
	"Client ID",
	"Obligation ID",
	"Subtotal",
	"Discount",
	"Tax",
	"CGST",
	"SGST",
	"IGST",
	"Total",
	"Paid",
	"Balance",
	"Due Date",
	"Created At",
}

// WriteRegister renders docs as an XLSX workbook onto w. Statuses are
// the read-time view as of now, so overdue documents show as overdue.
func WriteRegister(w io.Writer, docs []domain.BillingDocument, now time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i := range docs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := documentToRow(&docs[i], now)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func documentToRow(doc *domain.BillingDocument, now time.Time) []interface{} {
	obligationID := ""
	if doc.ObligationID != nil {
		obligationID = doc.ObligationID.String()
	}
	dueDate := ""
	if doc.DueDate != nil {
		dueDate = doc.DueDate.Format("2006-01-02")
	}
	return []interface{}{
		doc.ID.String(),
		string(doc.Kind),
		string(doc.EffectiveStatus(now)),
		doc.ClientID.String(),
		obligationID,
		doc.Subtotal,
		doc.Discount.Amount,
		doc.TaxAmount,
		doc.GST.CGST,
		doc.GST.SGST,
		doc.GST.IGST,
		doc.TotalAmount,
		doc.PaidAmount,
		doc.BalanceAmount,
		dueDate,
		doc.CreatedAt.Format(time.RFC3339),
	}
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for the register download.
// Format: {sanitized_firm_name}_billing_register_{YYYY-MM-DD}.xlsx
func BuildFilename(firmName string) string {
	sanitized := SanitizeFilename(firmName)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_billing_register_%s.xlsx", sanitized, date)
}
