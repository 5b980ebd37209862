package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/slms-erp/slms_backend/internal/core/ports/services"
	"github.com/slms-erp/slms_backend/internal/dto"
	"github.com/slms-erp/slms_backend/internal/middleware"
)

// openingBalanceHandler handles HTTP requests for the opening balance batch
// lifecycle.
type openingBalanceHandler struct {
	openingBalanceService portssvc.OpeningBalanceSvcFacade
}

func newOpeningBalanceHandler(openingBalanceService portssvc.OpeningBalanceSvcFacade) *openingBalanceHandler {
	return &openingBalanceHandler{openingBalanceService: openingBalanceService}
}

// addLine godoc
// @Summary Add a line to an opening balance batch
// @Description Appends a line to the named batch, creating the batch as a draft if it does not exist
// @Tags opening-balances
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   line body dto.AddOpeningBalanceLineRequest true "Opening balance line"
// @Success 201 {object} dto.OpeningBalanceLineResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Batch is not in draft status"
// @Router /companies/{company_id}/opening-balances/lines [post]
func (h *openingBalanceHandler) addLine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, _ := middleware.GetCompanyIDFromContext(c)
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.AddOpeningBalanceLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for addLine", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	line, err := h.openingBalanceService.AddLine(c.Request.Context(), companyID, req, userID)
	if err != nil {
		logger.Warn("Failed to add opening balance line", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToOpeningBalanceLineResponse(*line))
}

// postBatch godoc
// @Summary Post an opening balance batch
// @Description Materializes a balanced draft batch into the period's account balances
// @Tags opening-balances
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   batchID path string true "Batch ID"
// @Success 200 {object} dto.OpeningBalanceBatchResponse
// @Failure 404 {object} map[string]string "Batch not found"
// @Failure 409 {object} map[string]string "Batch not draft, unbalanced, or period already posted"
// @Router /companies/{company_id}/opening-balances/{batchID}/post [post]
func (h *openingBalanceHandler) postBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, _ := middleware.GetCompanyIDFromContext(c)
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	batchID := c.Param("batchID")

	batch, err := h.openingBalanceService.PostBatch(c.Request.Context(), companyID, batchID, userID)
	if err != nil {
		logger.Warn("Failed to post opening balance batch", slog.String("batch_id", batchID), slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOpeningBalanceBatchResponse(*batch))
}

// reverseBatch godoc
// @Summary Reverse a posted opening balance batch
// @Description Zeroes the balances the batch materialized and marks it reversed
// @Tags opening-balances
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   batchID path string true "Batch ID"
// @Success 200 {object} dto.OpeningBalanceBatchResponse
// @Failure 404 {object} map[string]string "Batch not found"
// @Failure 409 {object} map[string]string "Batch is not in posted status"
// @Router /companies/{company_id}/opening-balances/{batchID}/reverse [post]
func (h *openingBalanceHandler) reverseBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, _ := middleware.GetCompanyIDFromContext(c)
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	batchID := c.Param("batchID")

	batch, err := h.openingBalanceService.ReverseBatch(c.Request.Context(), companyID, batchID, userID)
	if err != nil {
		logger.Warn("Failed to reverse opening balance batch", slog.String("batch_id", batchID), slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOpeningBalanceBatchResponse(*batch))
}

// getBatch godoc
// @Summary Get an opening balance batch with its lines
// @Tags opening-balances
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   batchID path string true "Batch ID"
// @Success 200 {object} dto.OpeningBalanceBatchDetailResponse
// @Failure 404 {object} map[string]string "Batch not found"
// @Router /companies/{company_id}/opening-balances/{batchID} [get]
func (h *openingBalanceHandler) getBatch(c *gin.Context) {
	companyID, _ := middleware.GetCompanyIDFromContext(c)
	batchID := c.Param("batchID")

	batch, lines, err := h.openingBalanceService.GetBatch(c.Request.Context(), companyID, batchID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOpeningBalanceBatchDetailResponse(*batch, lines))
}

// listBatches godoc
// @Summary List opening balance batches
// @Tags opening-balances
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Pagination cursor"
// @Success 200 {object} dto.ListBatchesResponse
// @Router /companies/{company_id}/opening-balances [get]
func (h *openingBalanceHandler) listBatches(c *gin.Context) {
	companyID, _ := middleware.GetCompanyIDFromContext(c)

	var params dto.ListBatchesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	batches, nextToken, err := h.openingBalanceService.ListBatches(c.Request.Context(), companyID, params)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.ListBatchesResponse{
		Batches:   make([]dto.OpeningBalanceBatchResponse, len(batches)),
		NextToken: nextToken,
	}
	for i, batch := range batches {
		resp.Batches[i] = dto.ToOpeningBalanceBatchResponse(batch)
	}
	c.JSON(http.StatusOK, resp)
}

// registerOpeningBalanceRoutes registers opening balance specific routes
func registerOpeningBalanceRoutes(group *gin.RouterGroup, svc portssvc.OpeningBalanceSvcFacade) {
	handler := newOpeningBalanceHandler(svc)

	batches := group.Group("/opening-balances")
	{
		batches.GET("", handler.listBatches)
		batches.POST("/lines", handler.addLine)
		batches.GET("/:batchID", handler.getBatch)
		batches.POST("/:batchID/post", handler.postBatch)
		batches.POST("/:batchID/reverse", handler.reverseBatch)
	}
}
