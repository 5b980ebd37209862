package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/slms-erp/slms_backend/internal/core/domain"
	portssvc "github.com/slms-erp/slms_backend/internal/core/ports/services"
	"github.com/slms-erp/slms_backend/internal/dto"
	"github.com/slms-erp/slms_backend/internal/middleware"
)

// ledgerHandler handles HTTP requests for account balances and ledgers.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ledgerService portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ledgerService}
}

// listAccounts godoc
// @Summary List account balances as of a date
// @Description Returns per-account net balances from posted journals and posted opening batches
// @Tags ledger
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   asOf query string true "As-of date (YYYY-MM-DD)"
// @Param   excludeZero query bool false "Drop zero-balance accounts"
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Router /companies/{company_id}/accounts [get]
func (h *ledgerHandler) listAccounts(c *gin.Context) {
	companyID, _ := middleware.GetCompanyIDFromContext(c)

	asOf, err := parseDateQuery(c, "asOf")
	if err != nil {
		respondError(c, err)
		return
	}
	excludeZero := c.Query("excludeZero") == "true"

	summaries, err := h.ledgerService.ListAccounts(c.Request.Context(), companyID, asOf, excludeZero)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListAccountsResponse(summaries, asOf))
}

// getOpeningBalance godoc
// @Summary Get an account's opening balance before a date
// @Description Cumulative debit-minus-credit from all posted activity strictly before the date
// @Tags ledger
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   accountID path string true "Account ID"
// @Param   date query string true "Boundary date (YYYY-MM-DD)"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Validation error"
// @Router /companies/{company_id}/accounts/{accountID}/opening-balance [get]
func (h *ledgerHandler) getOpeningBalance(c *gin.Context) {
	companyID, _ := middleware.GetCompanyIDFromContext(c)
	accountID := c.Param("accountID")

	before, err := parseDateQuery(c, "date")
	if err != nil {
		respondError(c, err)
		return
	}

	balance, err := h.ledgerService.GetOpeningBalance(c.Request.Context(), companyID, accountID, before)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"accountID": accountID, "openingBalance": balance})
}

// getLedger godoc
// @Summary Get an account's ledger over a date range
// @Description Dated movement rows with running balances; accepts accountID or accountCode
// @Tags ledger
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   accountID query string false "Account ID"
// @Param   accountCode query string false "Account code"
// @Param   fromDate query string true "Range start (YYYY-MM-DD)"
// @Param   toDate query string true "Range end (YYYY-MM-DD)"
// @Param   includeOpeningRow query bool false "Prepend a synthetic opening row (default true)"
// @Success 200 {object} dto.LedgerResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Account not found"
// @Router /companies/{company_id}/ledger [get]
func (h *ledgerHandler) getLedger(c *gin.Context) {
	companyID, _ := middleware.GetCompanyIDFromContext(c)

	params, err := h.bindLedgerParams(c)
	if err != nil {
		respondError(c, err)
		return
	}

	report, err := h.ledgerService.GetLedger(c.Request.Context(), companyID, params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToLedgerResponse(report, params.FromDate, params.ToDate))
}

// getLedgerByClassification godoc
// @Summary Get ledgers for every posting account of a classification
// @Tags ledger
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   classification path string true "Account classification (ASSET, LIABILITY, EQUITY, REVENUE, EXPENSE)"
// @Param   fromDate query string true "Range start (YYYY-MM-DD)"
// @Param   toDate query string true "Range end (YYYY-MM-DD)"
// @Param   includeOpeningRow query bool false "Prepend synthetic opening rows"
// @Success 200 {object} map[string]dto.LedgerResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Router /companies/{company_id}/ledger/classification/{classification} [get]
func (h *ledgerHandler) getLedgerByClassification(c *gin.Context) {
	companyID, _ := middleware.GetCompanyIDFromContext(c)

	classification := domain.AccountClassification(strings.ToUpper(c.Param("classification")))
	switch classification {
	case domain.Asset, domain.Liability, domain.Equity, domain.Revenue, domain.Expense:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown account classification"})
		return
	}

	params, err := h.bindLedgerParams(c)
	if err != nil {
		respondError(c, err)
		return
	}

	reports, err := h.ledgerService.GetLedgerByClassification(c.Request.Context(), companyID, classification, params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToLedgerByClassificationResponse(reports, params.FromDate, params.ToDate))
}

func (h *ledgerHandler) bindLedgerParams(c *gin.Context) (dto.LedgerParams, error) {
	from, err := parseDateQuery(c, "fromDate")
	if err != nil {
		return dto.LedgerParams{}, err
	}
	to, err := parseDateQuery(c, "toDate")
	if err != nil {
		return dto.LedgerParams{}, err
	}
	return dto.LedgerParams{
		AccountID:         c.Query("accountID"),
		AccountCode:       c.Query("accountCode"),
		FromDate:          from,
		ToDate:            to,
		IncludeOpeningRow: c.Query("includeOpeningRow") != "false",
	}, nil
}

// registerLedgerRoutes registers ledger specific routes
func registerLedgerRoutes(group *gin.RouterGroup, svc portssvc.LedgerSvcFacade) {
	handler := newLedgerHandler(svc)

	group.GET("/accounts", handler.listAccounts)
	group.GET("/accounts/:accountID/opening-balance", handler.getOpeningBalance)
	group.GET("/ledger", handler.getLedger)
	group.GET("/ledger/classification/:classification", handler.getLedgerByClassification)
}
