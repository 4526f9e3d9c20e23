package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"scorecard/internal/activity"
	"scorecard/internal/reporter"
	"scorecard/internal/roster"
	"scorecard/internal/stats"

	"github.com/gin-gonic/gin"
)

// ReportBuilder is the reporter surface the handlers need.
type ReportBuilder interface {
	Operational(ctx context.Context, rng stats.DateRange, department string) (*reporter.OperationalReport, error)
	Compliance(ctx context.Context, stream activity.Stream, rng stats.DateRange) (*reporter.StreamReport, error)
}

// RosterStore is the store surface the handlers need.
type RosterStore interface {
	ReplaceRoster(ctx context.Context, docs []map[string]interface{}) (int, error)
	LoadSnapshots(ctx context.Context, limit int64) ([]roster.Snapshot, error)
}

// Handlers contains all HTTP handlers
type Handlers struct {
	reports ReportBuilder
	store   RosterStore
}

// NewHandlers creates a new handlers instance
func NewHandlers(reports ReportBuilder, store RosterStore) *Handlers {
	return &Handlers{reports: reports, store: store}
}

// parseRange reads the startDate and endDate query parameters (YYYY-MM-DD).
func parseRange(c *gin.Context) (stats.DateRange, error) {
	startStr := c.Query("startDate")
	endStr := c.Query("endDate")
	if startStr == "" || endStr == "" {
		return stats.DateRange{}, fmt.Errorf("startDate and endDate are required")
	}

	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return stats.DateRange{}, fmt.Errorf("invalid startDate %q: want YYYY-MM-DD", startStr)
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		return stats.DateRange{}, fmt.Errorf("invalid endDate %q: want YYYY-MM-DD", endStr)
	}

	return stats.NewDateRange(start, end), nil
}

// OperationalReportHandler handles GET /api/reports/operational
func (h *Handlers) OperationalReportHandler(c *gin.Context) {
	rng, err := parseRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.reports.Operational(c.Request.Context(), rng, c.Query("department"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}

// ComplianceReportHandler handles GET /api/reports/compliance/:stream
func (h *Handlers) ComplianceReportHandler(c *gin.Context) {
	stream := activity.Stream(c.Param("stream"))
	if stream != activity.StreamStandup && stream != activity.StreamTrackify {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown stream %q", c.Param("stream"))})
		return
	}

	rng, err := parseRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.reports.Compliance(c.Request.Context(), stream, rng)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}

// WeeklyScorecardHandler handles GET /api/scorecard/weekly
func (h *Handlers) WeeklyScorecardHandler(c *gin.Context) {
	limit := int64(12)
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.ParseInt(limitStr, 10, 64)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid limit %q", limitStr)})
			return
		}
		limit = parsed
	}

	snapshots, err := h.store.LoadSnapshots(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if snapshots == nil {
		snapshots = []roster.Snapshot{}
	}

	c.JSON(http.StatusOK, gin.H{"snapshots": snapshots})
}

// UploadRosterHandler handles POST /api/roster. The payload is validated
// against the roster schema before it replaces the stored roster.
func (h *Handlers) UploadRosterHandler(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	docs, err := roster.ValidateUpload(payload)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inserted, err := h.store.ReplaceRoster(c.Request.Context(), docs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"inserted": inserted})
}
