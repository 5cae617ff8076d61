package http

import (
	"net/http"

	"github.com/plantops/attendance-backend-go/internal/domain/payroll"
	"github.com/plantops/attendance-backend-go/internal/handler/http/middleware"
	"github.com/plantops/attendance-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	MonthlyOvertimePay(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	payrollService payroll.Service
}

func NewPayrollHandler(payrollService payroll.Service) PayrollHandler {
	return &PayrollHandlerImpl{payrollService: payrollService}
}

// MonthlyOvertimePay serves the downstream-pay aggregation. The employee
// query parameter lets payroll staff read other employees; it defaults to
// the caller.
func (h *PayrollHandlerImpl) MonthlyOvertimePay(w http.ResponseWriter, r *http.Request) {
	caller, err := middleware.CallerName(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	employee := r.URL.Query().Get("employee")
	if employee == "" {
		employee = caller
	}

	year, month, ok := yearMonthParams(w, r)
	if !ok {
		return
	}

	summary, err := h.payrollService.MonthlyOvertimePay(r.Context(), employee, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}
