package stockalert

import (
	"log/slog"
	"net/http"
	"time"

	"canteen-api/internal/clock"
	"canteen-api/internal/v0/common"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	timer  *ReminderTimer
	clk    clock.Clock
	logger *slog.Logger
}

func NewHandler(timer *ReminderTimer, clk clock.Clock, logger *slog.Logger) *Handler {
	if clk == nil {
		clk = clock.System()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{timer: timer, clk: clk, logger: logger}
}

// GetAlerts returns the current stock alert tiers.
func (h *Handler) GetAlerts(c *gin.Context) {
	c.JSON(http.StatusOK, common.CreateSuccessResponse(h.timer.Survey()))
}

// GetReport returns the printable stock status report.
func (h *Handler) GetReport(c *gin.Context) {
	report := BuildReport(h.timer.catalog.List(), h.timer.Snapshot().Thresholds, h.clk.Now())
	c.JSON(http.StatusOK, common.CreateSuccessResponse(report))
}

// GetStatus returns the reminder countdown and banner state.
func (h *Handler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, common.CreateSuccessResponse(h.timer.Snapshot()))
}

// PostDismiss hides the reminder banner without resetting the countdown.
func (h *Handler) PostDismiss(c *gin.Context) {
	h.timer.Dismiss()
	c.JSON(http.StatusOK, common.CreateSuccessResponse(h.timer.Snapshot()))
}

type configRequest struct {
	IntervalSeconds *int        `json:"intervalSeconds"`
	Thresholds      *Thresholds `json:"thresholds"`
}

// PutConfig updates the reminder interval and alert thresholds.
func (h *Handler) PutConfig(c *gin.Context) {
	var req configRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.CreateErrorResponse([]string{err.Error()}))
		return
	}

	if req.IntervalSeconds != nil {
		if err := h.timer.SetInterval(time.Duration(*req.IntervalSeconds) * time.Second); err != nil {
			c.JSON(http.StatusBadRequest, common.CreateErrorResponse([]string{err.Error()}))
			return
		}
	}
	if req.Thresholds != nil {
		if err := h.timer.SetThresholds(*req.Thresholds); err != nil {
			c.JSON(http.StatusBadRequest, common.CreateErrorResponse([]string{err.Error()}))
			return
		}
	}
	c.JSON(http.StatusOK, common.CreateSuccessResponse(h.timer.Snapshot()))
}
