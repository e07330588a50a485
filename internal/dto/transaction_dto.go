package dto

type TransactionItemRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity"  validate:"required,gt=0"`
}

type CreateTransactionRequest struct {
	ShiftID       string                   `json:"shiftId"       validate:"required,uuid"`
	CashierID     string                   `json:"cashierId"     validate:"required,uuid"`
	CustomerName  string                   `json:"customerName"`
	Items         []TransactionItemRequest `json:"items"         validate:"required,min=1,dive"`
	PaymentAmount int64                    `json:"paymentAmount" validate:"required,gt=0"`
	PaymentMethod string                   `json:"paymentMethod" validate:"required,oneof=cash qris"`
}

type TransactionItemResponse struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Price       int64  `json:"price"`
	Quantity    int    `json:"quantity"`
	Subtotal    int64  `json:"subtotal"`
	ItemType    string `json:"itemType"`
}

type TransactionResponse struct {
	ID            string                    `json:"id"`
	ShiftID       string                    `json:"shiftId"`
	CashierID     string                    `json:"cashierId"`
	CashierName   string                    `json:"cashierName"`
	CustomerName  string                    `json:"customerName"`
	Items         []TransactionItemResponse `json:"items"`
	Subtotal      int64                     `json:"subtotal"`
	Tax           int64                     `json:"tax"`
	Total         int64                     `json:"total"`
	PaymentAmount int64                     `json:"paymentAmount"`
	Change        int64                     `json:"change"`
	PaymentMethod string                    `json:"paymentMethod"`
	CreatedAt     string                    `json:"createdAt"`
}
