package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type StartShiftRequest struct {
	CashierID    string `json:"cashierId"    validate:"required,uuid"`
	StartingCash int64  `json:"startingCash" validate:"min=0"`
}

type EndShiftRequest struct {
	EndingCash int64 `json:"endingCash" validate:"min=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ShiftResponse struct {
	ID                string  `json:"id"`
	CashierID         string  `json:"cashierId"`
	CashierName       string  `json:"cashierName"`
	StartTime         string  `json:"startTime"`
	EndTime           *string `json:"endTime"`
	StartingCash      int64   `json:"startingCash"`
	EndingCash        *int64  `json:"endingCash"`
	TotalSales        int64   `json:"totalSales"`
	TotalTransactions int     `json:"totalTransactions"`
	Status            string  `json:"status"`
}

// ExpenseLine is one loan/expense row inside a shift summary.
type ExpenseLine struct {
	Description   string `json:"description"`
	Amount        int64  `json:"amount"`
	RecipientName string `json:"recipientName"`
}

// ShiftSummary is the income breakdown for one shift.
// Invariants: TotalIncome = BilliardIncome + CafeIncome,
// FinalTotal = TotalIncome - TotalExpenses.
type ShiftSummary struct {
	TotalIncome          int64         `json:"totalIncome"`
	BilliardIncome       int64         `json:"billiardIncome"`
	BilliardTransactions int           `json:"billiardTransactions"`
	CafeIncome           int64         `json:"cafeIncome"`
	CafeTransactions     int           `json:"cafeTransactions"`
	TotalTransactions    int           `json:"totalTransactions"`
	Expenses             []ExpenseLine `json:"expenses"`
	TotalExpenses        int64         `json:"totalExpenses"`
	FinalTotal           int64         `json:"finalTotal"`
	// Percentage split of income, rounded to 2 decimals. Both zero when
	// TotalIncome is zero — never NaN or Inf.
	BilliardPct string `json:"billiardPct"`
	CafePct     string `json:"cafePct"`
}

type ShiftSummaryResponse struct {
	Shift   ShiftResponse `json:"shift"`
	Summary ShiftSummary  `json:"summary"`
}
