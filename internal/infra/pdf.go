package infra

// pdf.go — End-of-shift recap rendering using go-pdf/fpdf.
// Generates an A5 one-pager with:
//   - Venue name header
//   - Shift cashier, open/close timestamps and cash counts
//   - Income breakdown (billiard vs cafe, with percentage split)
//   - Expense table
//   - Bold final total
//
// The output file is saved to storagePath/shift_{id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bismillahdumoro-svg/zyracafe/internal/dto"

	"github.com/go-pdf/fpdf"
)

// GenerateShiftReportPDF renders the recap for a closed shift.
// storagePath is the directory where the PDF will be written (created if needed).
// Returns the absolute path to the generated file.
func GenerateShiftReportPDF(report *dto.ShiftSummaryResponse, storagePath, venueName string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	filePath := filepath.Join(storagePath, ShiftReportFileName(report.Shift.ID))

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	sum := report.Summary
	shift := report.Shift

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, venueName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Rekap Shift", "", 1, "C", false, 0, "")
	pdf.Ln(3)

	// ── Shift info ────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 8)
	info := [][2]string{
		{"Kasir", shift.CashierName},
		{"Mulai", shift.StartTime},
		{"Kas awal", formatRupiah(shift.StartingCash)},
	}
	if shift.EndTime != nil {
		info = append(info, [2]string{"Selesai", *shift.EndTime})
	}
	if shift.EndingCash != nil {
		info = append(info, [2]string{"Kas akhir", formatRupiah(*shift.EndingCash)})
	}
	for _, row := range info {
		pdf.CellFormat(contentW*0.35, 5, row[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.65, 5, row[1], "", 1, "L", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(3)

	// ── Income breakdown ──────────────────────────────────────────────────────
	labelW := contentW * 0.6
	valueW := contentW * 0.4

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 6, "Pemasukan", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)

	billiardLabel := fmt.Sprintf("Billiard (%d transaksi, %s%%)", sum.BilliardTransactions, sum.BilliardPct)
	pdf.CellFormat(labelW, 5, billiardLabel, "", 0, "L", false, 0, "")
	pdf.CellFormat(valueW, 5, formatRupiah(sum.BilliardIncome), "", 1, "R", false, 0, "")

	cafeLabel := fmt.Sprintf("Cafe (%d transaksi, %s%%)", sum.CafeTransactions, sum.CafePct)
	pdf.CellFormat(labelW, 5, cafeLabel, "", 0, "L", false, 0, "")
	pdf.CellFormat(valueW, 5, formatRupiah(sum.CafeIncome), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(labelW, 5, fmt.Sprintf("Total (%d transaksi)", sum.TotalTransactions), "", 0, "L", false, 0, "")
	pdf.CellFormat(valueW, 5, formatRupiah(sum.TotalIncome), "", 1, "R", false, 0, "")
	pdf.Ln(3)

	// ── Expenses ──────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 6, "Pengeluaran", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	if len(sum.Expenses) == 0 {
		pdf.CellFormat(contentW, 5, "Tidak ada pengeluaran", "", 1, "L", false, 0, "")
	}
	for _, exp := range sum.Expenses {
		label := exp.Description
		if exp.RecipientName != "" {
			label = fmt.Sprintf("%s (%s)", exp.Description, exp.RecipientName)
		}
		pdf.CellFormat(labelW, 5, truncateLabel(label), "", 0, "L", false, 0, "")
		pdf.CellFormat(valueW, 5, formatRupiah(exp.Amount), "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(labelW, 5, "Total pengeluaran", "", 0, "L", false, 0, "")
	pdf.CellFormat(valueW, 5, formatRupiah(sum.TotalExpenses), "", 1, "R", false, 0, "")

	pdf.Ln(2)
	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(3)

	// ── Final total ───────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(labelW, 7, "TOTAL BERSIH:", "", 0, "L", false, 0, "")
	pdf.CellFormat(valueW, 7, formatRupiah(sum.FinalTotal), "", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}

// ShiftReportFileName is the canonical recap file name for a shift.
// Shared with the handler that serves the PDF back over HTTP.
// truncateLabel caps an expense label at 40 runes. Counting runes, not
// bytes, keeps multibyte descriptions intact at the cut.
func truncateLabel(label string) string {
	runes := []rune(label)
	if len(runes) <= 40 {
		return label
	}
	return string(runes[:39]) + "…"
}

func ShiftReportFileName(shiftID string) string {
	return fmt.Sprintf("shift_%s.pdf", shiftID)
}

// formatRupiah renders an amount as "Rp 1.250.000" (dot thousands separator).
func formatRupiah(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	s := strconv.FormatInt(amount, 10)
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, c)
	}
	if neg {
		return "Rp -" + string(out)
	}
	return "Rp " + string(out)
}
