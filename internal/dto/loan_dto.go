package dto

type CreateLoanRequest struct {
	ShiftID       string `json:"shiftId"       validate:"required,uuid"`
	Description   string `json:"description"   validate:"required,min=3"`
	Amount        int64  `json:"amount"        validate:"required,gt=0"`
	RecipientName string `json:"recipientName" validate:"required,min=2"`
}

type LoanResponse struct {
	ID            string `json:"id"`
	ShiftID       string `json:"shiftId"`
	Description   string `json:"description"`
	Amount        int64  `json:"amount"`
	RecipientName string `json:"recipientName"`
	CreatedAt     string `json:"createdAt"`
}

type CreateExpenseRequest struct {
	ShiftID     string `json:"shiftId"     validate:"required,uuid"`
	Description string `json:"description" validate:"required,min=3"`
	Amount      int64  `json:"amount"      validate:"required,gt=0"`
	Category    string `json:"category"    validate:"required,min=2"`
}

type ExpenseResponse struct {
	ID          string `json:"id"`
	ShiftID     string `json:"shiftId"`
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
	Category    string `json:"category"`
	CreatedAt   string `json:"createdAt"`
}
