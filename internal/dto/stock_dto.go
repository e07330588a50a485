package dto

type CreateStockAdjustmentRequest struct {
	ProductID  string `json:"productId"  validate:"required,uuid"`
	Adjustment int    `json:"adjustment" validate:"required"`
	Reason     string `json:"reason"     validate:"required,min=3"`
	// Optional; defaults to the authenticated caller.
	AdjustedBy string `json:"adjustedBy" validate:"omitempty,uuid"`
}

type StockAdjustmentResponse struct {
	ID             string `json:"id"`
	ProductID      string `json:"productId"`
	ProductName    string `json:"productName"`
	PreviousStock  int    `json:"previousStock"`
	NewStock       int    `json:"newStock"`
	Adjustment     int    `json:"adjustment"`
	Reason         string `json:"reason"`
	AdjustedBy     string `json:"adjustedBy"`
	AdjustedByName string `json:"adjustedByName"`
	CreatedAt      string `json:"createdAt"`
}
