package dto

type CreateBilliardTableRequest struct {
	TableNumber string `json:"tableNumber" validate:"required"`
	HourlyRate  int64  `json:"hourlyRate"  validate:"required,gt=0"`
}

type BilliardTableResponse struct {
	ID          string `json:"id"`
	TableNumber string `json:"tableNumber"`
	HourlyRate  int64  `json:"hourlyRate"`
	Status      string `json:"status"`
}

type CreateBilliardRentalRequest struct {
	ShiftID     string `json:"shiftId"     validate:"required,uuid"`
	TableNumber string `json:"tableNumber" validate:"required"`
	HoursRented int    `json:"hoursRented" validate:"required,gt=0"`
}

type BilliardRentalResponse struct {
	ID          string  `json:"id"`
	ShiftID     string  `json:"shiftId"`
	TableNumber string  `json:"tableNumber"`
	HoursRented int     `json:"hoursRented"`
	HourlyRate  int64   `json:"hourlyRate"`
	TotalPrice  int64   `json:"totalPrice"`
	StartTime   string  `json:"startTime"`
	EndTime     *string `json:"endTime"`
	Status      string  `json:"status"`
}
