package admin

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"velora_back_end/internal/services"
)

type ReportHandler struct {
	finance *services.FinanceService
}

func NewReportHandler(finance *services.FinanceService) *ReportHandler {
	return &ReportHandler{finance: finance}
}

//
// 💰 GET /api/admin/reports/monthly?month=&year=
//
func (h *ReportHandler) Monthly(c *gin.Context) {
	now := time.Now().UTC()

	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Mois invalide (1-12)"})
		return
	}
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil || year < 2000 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Année invalide"})
		return
	}

	report, err := h.finance.MonthlyReport(c.Request.Context(), month, year)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération rapport"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}
