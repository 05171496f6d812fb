package specials

import (
	"log/slog"
	"net/http"

	"canteen-api/internal/catalog"
	"canteen-api/internal/v0/common"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	store     *ScheduleStore
	scheduler *Scheduler
	catalog   *catalog.Store
	logger    *slog.Logger
}

func NewHandler(store *ScheduleStore, scheduler *Scheduler, cat *catalog.Store, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{store: store, scheduler: scheduler, catalog: cat, logger: logger}
}

// GetSchedule returns the full weekly schedule.
func (h *Handler) GetSchedule(c *gin.Context) {
	c.JSON(http.StatusOK, common.CreateSuccessResponse(h.store.Get()))
}

type setDayRequest struct {
	ItemIDs []string `json:"itemIds"`
}

// PutDay replaces one day's specials.
func (h *Handler) PutDay(c *gin.Context) {
	day, err := ParseDay(c.Param("day"))
	if err != nil {
		c.JSON(http.StatusBadRequest, common.CreateErrorResponse([]string{err.Error()}))
		return
	}
	var req setDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.CreateErrorResponse([]string{err.Error()}))
		return
	}

	ids := h.store.SetDay(day, req.ItemIDs)
	c.JSON(http.StatusOK, common.CreateSuccessResponse(gin.H{"day": day, "itemIds": ids}))
}

type addItemRequest struct {
	ID string `json:"id"`
}

// PostDayItem adds one item to a day's specials.
func (h *Handler) PostDayItem(c *gin.Context) {
	day, err := ParseDay(c.Param("day"))
	if err != nil {
		c.JSON(http.StatusBadRequest, common.CreateErrorResponse([]string{err.Error()}))
		return
	}
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
		c.JSON(http.StatusBadRequest, common.CreateErrorResponse([]string{"id is required"}))
		return
	}

	ids := h.store.AddToDay(day, req.ID)
	c.JSON(http.StatusOK, common.CreateSuccessResponse(gin.H{"day": day, "itemIds": ids}))
}

// DeleteDayItem removes one item from a day's specials.
func (h *Handler) DeleteDayItem(c *gin.Context) {
	day, err := ParseDay(c.Param("day"))
	if err != nil {
		c.JSON(http.StatusBadRequest, common.CreateErrorResponse([]string{err.Error()}))
		return
	}

	ids := h.store.RemoveFromDay(day, c.Param("id"))
	c.JSON(http.StatusOK, common.CreateSuccessResponse(gin.H{"day": day, "itemIds": ids}))
}

// GetToday returns today's specials with their menu items resolved.
func (h *Handler) GetToday(c *gin.Context) {
	today := h.scheduler.CurrentDay()
	items := []catalog.MenuItem{}
	for _, id := range h.store.GetDay(today) {
		if item, ok := h.catalog.Find(id); ok {
			items = append(items, item)
		}
	}
	c.JSON(http.StatusOK, common.CreateSuccessResponse(gin.H{"day": today, "items": items}))
}

// GetReport returns the weekly specials overview.
func (h *Handler) GetReport(c *gin.Context) {
	report := BuildReport(h.store.Get(), h.catalog, h.scheduler.CurrentDay())
	c.JSON(http.StatusOK, common.CreateSuccessResponse(report))
}
