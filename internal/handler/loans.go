package handler

import (
	"net/http"

	"github.com/bismillahdumoro-svg/zyracafe/internal/apierror"
	"github.com/bismillahdumoro-svg/zyracafe/internal/dto"
	"github.com/bismillahdumoro-svg/zyracafe/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LoansHandler struct{ svc service.LoanService }

func NewLoansHandler(svc service.LoanService) *LoansHandler {
	return &LoansHandler{svc: svc}
}

// Create records a kasbon (cash loan) against the active shift. The amount is
// counted as an expense in the shift recap.
func (h *LoansHandler) Create(c *gin.Context) {
	var req dto.CreateLoanRequest
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

func (h *LoansHandler) List(c *gin.Context) {
	if shiftParam := c.Query("shiftId"); shiftParam != "" {
		shiftID, err := uuid.Parse(shiftParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("shiftId tidak valid"))
			return
		}
		resp, err := h.svc.ListByShift(c.Request.Context(), shiftID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, apierror.New("Gagal mengambil daftar kasbon"))
			return
		}
		c.JSON(http.StatusOK, resp)
		return
	}

	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Gagal mengambil daftar kasbon"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *LoansHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Expenses Handler ─────────────────────────────────────────────────────────

type ExpensesHandler struct{ svc service.LoanService }

func NewExpensesHandler(svc service.LoanService) *ExpensesHandler {
	return &ExpensesHandler{svc: svc}
}

func (h *ExpensesHandler) Create(c *gin.Context) {
	var req dto.CreateExpenseRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateExpense(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ExpensesHandler) List(c *gin.Context) {
	resp, err := h.svc.ListExpenses(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Gagal mengambil daftar pengeluaran"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
