package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zenithhr/payroll-backend-go/internal/domain/payroll"
	"github.com/zenithhr/payroll-backend-go/internal/handler/http/response"
	"github.com/zenithhr/payroll-backend-go/internal/pkg/validator"
)

type PayrollHandler interface {
	// Compute
	ComputeBreakdown(w http.ResponseWriter, r *http.Request)
	ComputeEmployeeBreakdown(w http.ResponseWriter, r *http.Request)
	ComputeCompanyBreakdowns(w http.ResponseWriter, r *http.Request)
	ComputeBonus(w http.ResponseWriter, r *http.Request)

	// Config
	GetConfig(w http.ResponseWriter, r *http.Request)
	UpdateConfig(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// ========== COMPUTE ==========

func (h *payrollHandlerImpl) ComputeBreakdown(w http.ResponseWriter, r *http.Request) {
	var req payroll.ComputeBreakdownRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.ComputeBreakdown(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ComputeEmployeeBreakdown(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	asOf := time.Now()
	if asOfStr := r.URL.Query().Get("as_of"); asOfStr != "" {
		parsed, ok := validator.IsValidDate(asOfStr)
		if !ok {
			response.BadRequest(w, "as_of must be a valid date (YYYY-MM-DD)", nil)
			return
		}
		asOf = parsed
	}

	result, err := h.payrollService.ComputeEmployeeBreakdown(r.Context(), id, asOf)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ComputeCompanyBreakdowns(w http.ResponseWriter, r *http.Request) {
	asOf := time.Now()
	if asOfStr := r.URL.Query().Get("as_of"); asOfStr != "" {
		parsed, ok := validator.IsValidDate(asOfStr)
		if !ok {
			response.BadRequest(w, "as_of must be a valid date (YYYY-MM-DD)", nil)
			return
		}
		asOf = parsed
	}

	result, err := h.payrollService.ComputeCompanyBreakdowns(r.Context(), asOf)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ComputeBonus(w http.ResponseWriter, r *http.Request) {
	var req payroll.ComputeBonusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.ComputeBonus(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== CONFIG ==========

func (h *payrollHandlerImpl) GetConfig(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.GetConfig(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpdateSalaryConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.UpdateConfig(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
