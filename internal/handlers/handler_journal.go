package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/slms-erp/slms_backend/internal/core/ports/services"
	"github.com/slms-erp/slms_backend/internal/dto"
	"github.com/slms-erp/slms_backend/internal/middleware"
)

// journalHandler handles HTTP requests related to journals.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(journalService portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: journalService}
}

// createJournal godoc
// @Summary Record a balanced journal entry
// @Description Creates a journal and its transaction lines atomically
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   journal body dto.CreateJournalRequest true "Journal entry"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /companies/{company_id}/journals [post]
func (h *journalHandler) createJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, _ := middleware.GetCompanyIDFromContext(c)
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createJournal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	journal, transactions, err := h.journalService.CreateJournal(c.Request.Context(), companyID, req, userID)
	if err != nil {
		logger.Warn("Failed to create journal", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalResponse(*journal, transactions))
}

// getJournal godoc
// @Summary Get a journal entry with its lines
// @Tags journals
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   journalID path string true "Journal ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 404 {object} map[string]string "Journal not found"
// @Router /companies/{company_id}/journals/{journalID} [get]
func (h *journalHandler) getJournal(c *gin.Context) {
	companyID, _ := middleware.GetCompanyIDFromContext(c)
	journalID := c.Param("journalID")

	journal, transactions, err := h.journalService.GetJournalByID(c.Request.Context(), companyID, journalID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalResponse(*journal, transactions))
}

// registerJournalRoutes registers journal specific routes
func registerJournalRoutes(group *gin.RouterGroup, svc portssvc.JournalSvcFacade) {
	handler := newJournalHandler(svc)

	journals := group.Group("/journals")
	{
		journals.POST("", handler.createJournal)
		journals.GET("/:journalID", handler.getJournal)
	}
}
