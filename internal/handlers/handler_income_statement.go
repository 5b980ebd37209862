package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/slms-erp/slms_backend/internal/core/ports/services"
	"github.com/slms-erp/slms_backend/internal/dto"
	"github.com/slms-erp/slms_backend/internal/middleware"
)

// incomeStatementHandler handles income statement requests.
type incomeStatementHandler struct {
	incomeStatementService portssvc.IncomeStatementSvcFacade
}

func newIncomeStatementHandler(incomeStatementService portssvc.IncomeStatementSvcFacade) *incomeStatementHandler {
	return &incomeStatementHandler{incomeStatementService: incomeStatementService}
}

// getIncomeStatement godoc
// @Summary Build an income statement over a date range
// @Description Revenue, cost of goods sold and expense sections with summary totals; optional comparison range
// @Tags income-statement
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   fromDate query string true "Range start (YYYY-MM-DD)"
// @Param   toDate query string true "Range end (YYYY-MM-DD)"
// @Param   includeZero query bool false "Include zero-amount accounts"
// @Param   compareFromDate query string false "Comparison range start"
// @Param   compareToDate query string false "Comparison range end"
// @Success 200 {object} dto.IncomeStatementResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Router /companies/{company_id}/income-statement [get]
func (h *incomeStatementHandler) getIncomeStatement(c *gin.Context) {
	companyID, _ := middleware.GetCompanyIDFromContext(c)

	from, err := parseDateQuery(c, "fromDate")
	if err != nil {
		respondError(c, err)
		return
	}
	to, err := parseDateQuery(c, "toDate")
	if err != nil {
		respondError(c, err)
		return
	}
	params := dto.IncomeStatementParams{
		FromDate:    from,
		ToDate:      to,
		IncludeZero: c.Query("includeZero") == "true",
	}
	if compareFrom, err := parseDateQuery(c, "compareFromDate"); err != nil {
		respondError(c, err)
		return
	} else if !compareFrom.IsZero() {
		params.CompareFromDate = &compareFrom
	}
	if compareTo, err := parseDateQuery(c, "compareToDate"); err != nil {
		respondError(c, err)
		return
	} else if !compareTo.IsZero() {
		params.CompareToDate = &compareTo
	}

	report, err := h.incomeStatementService.GetIncomeStatement(c.Request.Context(), companyID, params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToIncomeStatementResponse(report))
}

// registerIncomeStatementRoutes registers income statement specific routes
func registerIncomeStatementRoutes(group *gin.RouterGroup, svc portssvc.IncomeStatementSvcFacade) {
	handler := newIncomeStatementHandler(svc)
	group.GET("/income-statement", handler.getIncomeStatement)
}
