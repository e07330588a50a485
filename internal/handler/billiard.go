package handler

import (
	"net/http"

	"github.com/bismillahdumoro-svg/zyracafe/internal/apierror"
	"github.com/bismillahdumoro-svg/zyracafe/internal/dto"
	"github.com/bismillahdumoro-svg/zyracafe/internal/service"

	"github.com/gin-gonic/gin"
)

type BilliardHandler struct{ svc service.BilliardService }

func NewBilliardHandler(svc service.BilliardService) *BilliardHandler {
	return &BilliardHandler{svc: svc}
}

func (h *BilliardHandler) CreateTable(c *gin.Context) {
	var req dto.CreateBilliardTableRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateTable(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *BilliardHandler) ListTables(c *gin.Context) {
	resp, err := h.svc.ListTables(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Gagal mengambil daftar meja"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// StartRental godoc
// @Summary Buka sesi sewa meja billiard
// @Tags billiard
// @Accept json
// @Produce json
// @Param body body dto.CreateBilliardRentalRequest true "Sewa"
// @Success 201 {object} dto.BilliardRentalResponse
// @Failure 409 {object} apierror.APIError
// @Router /api/billiard-rentals [post]
func (h *BilliardHandler) StartRental(c *gin.Context) {
	var req dto.CreateBilliardRentalRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.StartRental(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *BilliardHandler) ListRentals(c *gin.Context) {
	resp, err := h.svc.ListRentals(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Gagal mengambil riwayat sewa"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BilliardHandler) ActiveRentals(c *gin.Context) {
	resp, err := h.svc.ActiveRentals(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Gagal mengambil sesi sewa aktif"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EndRental closes a rental session and frees its table.
func (h *BilliardHandler) EndRental(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.EndRental(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
