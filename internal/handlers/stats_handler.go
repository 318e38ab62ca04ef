package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tutorhub/scheduling-service/internal/services"
	"github.com/tutorhub/scheduling-service/internal/store"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type StatsHandler struct {
	BaseHandler
	stats   services.StatsService
	reports services.ReportService
	store   *store.Store
}

func NewStatsHandler(stats services.StatsService, reports services.ReportService, st *store.Store, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{
		BaseHandler: NewBaseHandler(logger),
		stats:       stats,
		reports:     reports,
		store:       st,
	}
}

// Weekly returns the stats projection for the week containing the
// optional ?at= instant (RFC 3339), defaulting to now.
func (h *StatsHandler) Weekly(c *gin.Context) {
	at := time.Now()
	if raw := c.Query("at"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Message: "at must be RFC 3339", Details: err.Error()})
			return
		}
		at = parsed
	}

	report, err := h.stats.WeeklyStats(c.Request.Context(), at)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// AllTime returns the projection over the full slot history.
func (h *StatsHandler) AllTime(c *gin.Context) {
	report, err := h.stats.AllTimeStats(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Export streams the all-time stats as an xlsx workbook.
func (h *StatsHandler) Export(c *gin.Context) {
	report, err := h.stats.AllTimeStats(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	data, err := h.reports.ExportStats(c.Request.Context(), report)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("stats-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// EmailLog returns the outbound email journal for auditing.
func (h *StatsHandler) EmailLog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"emails": h.store.EmailLog()})
}
