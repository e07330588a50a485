package handler

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/bismillahdumoro-svg/zyracafe/internal/apierror"
	"github.com/bismillahdumoro-svg/zyracafe/internal/dto"
	"github.com/bismillahdumoro-svg/zyracafe/internal/infra"
	"github.com/bismillahdumoro-svg/zyracafe/internal/service"

	"github.com/gin-gonic/gin"
)

type ShiftsHandler struct {
	svc         service.ShiftService
	storagePath string
}

func NewShiftsHandler(svc service.ShiftService, storagePath string) *ShiftsHandler {
	return &ShiftsHandler{svc: svc, storagePath: storagePath}
}

func (h *ShiftsHandler) Start(c *gin.Context) {
	var req dto.StartShiftRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Start(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// End closes a shift. Closing is irreversible; a second attempt returns 400.
func (h *ShiftsHandler) End(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.EndShiftRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.End(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, service.ErrShiftNotFound) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ShiftsHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ShiftsHandler) Active(c *gin.Context) {
	resp, err := h.svc.Active(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Gagal mengambil shift aktif"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ShiftsHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Gagal mengambil daftar shift"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Summary godoc
// @Summary Rekap pendapatan satu shift
// @Tags shifts
// @Produce json
// @Param id path string true "Shift ID"
// @Success 200 {object} dto.ShiftSummaryResponse
// @Failure 404 {object} apierror.APIError
// @Router /api/shifts/{id}/summary [get]
func (h *ShiftsHandler) Summary(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.Summary(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrShiftNotFound) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ReportPDF serves the recap PDF rendered by the report worker after the
// shift closed. 404 until the worker has finished.
func (h *ShiftsHandler) ReportPDF(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	path := filepath.Join(h.storagePath, infra.ShiftReportFileName(id.String()))
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Laporan belum tersedia"))
		return
	}
	c.FileAttachment(path, infra.ShiftReportFileName(id.String()))
}
