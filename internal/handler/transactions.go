package handler

import (
	"net/http"

	"github.com/bismillahdumoro-svg/zyracafe/internal/apierror"
	"github.com/bismillahdumoro-svg/zyracafe/internal/dto"
	"github.com/bismillahdumoro-svg/zyracafe/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TransactionsHandler struct{ svc service.TransactionService }

func NewTransactionsHandler(svc service.TransactionService) *TransactionsHandler {
	return &TransactionsHandler{svc: svc}
}

// Create godoc
// @Summary Catat transaksi penjualan
// @Tags transactions
// @Accept json
// @Produce json
// @Param body body dto.CreateTransactionRequest true "Transaksi"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} apierror.APIError
// @Router /api/transactions [post]
func (h *TransactionsHandler) Create(c *gin.Context) {
	var req dto.CreateTransactionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List returns all transactions, or only one shift's when ?shiftId= is set.
func (h *TransactionsHandler) List(c *gin.Context) {
	if shiftParam := c.Query("shiftId"); shiftParam != "" {
		shiftID, err := uuid.Parse(shiftParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("shiftId tidak valid"))
			return
		}
		resp, err := h.svc.ListByShift(c.Request.Context(), shiftID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, apierror.New("Gagal mengambil daftar transaksi"))
			return
		}
		c.JSON(http.StatusOK, resp)
		return
	}

	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Gagal mengambil daftar transaksi"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
