package dto

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=2"`
}

type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CreateProductRequest struct {
	Name       string `json:"name"       validate:"required,min=2"`
	SKU        string `json:"sku"        validate:"required,min=2"`
	Price      int64  `json:"price"      validate:"required,gt=0"`
	Stock      int    `json:"stock"      validate:"min=0"`
	CategoryID string `json:"categoryId" validate:"omitempty,uuid"`
}

type UpdateProductRequest struct {
	Name       string `json:"name"       validate:"omitempty,min=2"`
	SKU        string `json:"sku"        validate:"omitempty,min=2"`
	Price      *int64 `json:"price"      validate:"omitempty,gt=0"`
	CategoryID string `json:"categoryId" validate:"omitempty,uuid"`
}

type ProductResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	SKU          string `json:"sku"`
	Price        int64  `json:"price"`
	Stock        int    `json:"stock"`
	CategoryID   string `json:"categoryId,omitempty"`
	CategoryName string `json:"categoryName,omitempty"`
}
