package handler

import (
	"errors"
	"net/http"

	"github.com/bismillahdumoro-svg/zyracafe/internal/apierror"
	"github.com/bismillahdumoro-svg/zyracafe/internal/dto"
	"github.com/bismillahdumoro-svg/zyracafe/internal/middleware"
	"github.com/bismillahdumoro-svg/zyracafe/internal/service"

	"github.com/gin-gonic/gin"
)

type StockHandler struct{ svc service.StockService }

func NewStockHandler(svc service.StockService) *StockHandler {
	return &StockHandler{svc: svc}
}

// CreateAdjustment records a manual stock correction with its audit trail.
func (h *StockHandler) CreateAdjustment(c *gin.Context) {
	var req dto.CreateStockAdjustmentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if req.AdjustedBy == "" {
		claims := middleware.GetClaims(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, apierror.New("Sesi tidak valid"))
			return
		}
		req.AdjustedBy = claims.UserID
	}
	resp, err := h.svc.CreateAdjustment(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrNegativeStock) {
			c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *StockHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Gagal mengambil riwayat penyesuaian stok"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
