package worker

// report_worker.go
// Processes end-of-shift report jobs from QueueShiftReport.
// Recomputes the shift summary, renders the PDF recap and optionally
// emails it to the configured recipient.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bismillahdumoro-svg/zyracafe/internal/dto"
	"github.com/bismillahdumoro-svg/zyracafe/internal/infra"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ShiftReportJobPayload is the job envelope sent to QueueShiftReport.
type ShiftReportJobPayload struct {
	ShiftID string `json:"shift_id"`
}

// ShiftSummarizer recomputes the income breakdown for a closed shift.
// Satisfied by the shift service.
type ShiftSummarizer interface {
	Summary(ctx context.Context, id uuid.UUID) (*dto.ShiftSummaryResponse, error)
}

// ReportWorker renders the end-of-shift PDF recap after a shift closes.
type ReportWorker struct {
	summarizer  ShiftSummarizer
	dispatcher  *Dispatcher
	storagePath string
	venueName   string
	reportEmail string
}

func NewReportWorker(
	summarizer ShiftSummarizer,
	dispatcher *Dispatcher,
	storagePath string,
	venueName string,
	reportEmail string,
) *ReportWorker {
	return &ReportWorker{
		summarizer:  summarizer,
		dispatcher:  dispatcher,
		storagePath: storagePath,
		venueName:   venueName,
		reportEmail: reportEmail,
	}
}

// Process handles a single shift report job:
//  1. Parse ShiftReportJobPayload from the job envelope
//  2. Recompute the shift summary from stored transactions
//  3. Render the PDF recap to the report storage path
//  4. Optionally enqueue an email job with the PDF attached
func (w *ReportWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload ShiftReportJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("report_worker: invalid payload")
		return nil // malformed payloads never succeed, do not retry
	}

	shiftID, err := uuid.Parse(payload.ShiftID)
	if err != nil {
		log.Error().Str("shift_id", payload.ShiftID).Msg("report_worker: invalid shift_id")
		return nil
	}

	summary, err := w.summarizer.Summary(ctx, shiftID)
	if err != nil {
		return fmt.Errorf("report_worker: summary failed: %w", err)
	}

	pdfPath, err := infra.GenerateShiftReportPDF(summary, w.storagePath, w.venueName)
	if err != nil {
		return fmt.Errorf("report_worker: PDF generation failed: %w", err)
	}
	log.Info().Str("pdf", pdfPath).Str("shift_id", payload.ShiftID).Msg("report_worker: PDF generated")

	if w.reportEmail != "" {
		emailJob := EmailJobPayload{
			ToEmail: w.reportEmail,
			Subject: fmt.Sprintf("Rekap Shift %s — %s", summary.Shift.ID, w.venueName),
			Body: fmt.Sprintf(
				"Rekap shift terlampir.\nTotal pemasukan: Rp %d\nTotal transaksi: %d",
				summary.Summary.FinalTotal, summary.Summary.TotalTransactions,
			),
			PDFPath: pdfPath,
		}
		if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
			log.Warn().Err(err).Str("shift_id", payload.ShiftID).Msg("report_worker: failed to enqueue email")
		}
	}
	return nil
}
