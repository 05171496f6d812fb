package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"canteen-api/internal/notify"
	"canteen-api/internal/v0/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler serves the menu catalogue endpoints of the admin console.
type Handler struct {
	store     *Store
	repo      *Repository
	policy    *StockPolicy
	notifier  notify.Notifier
	logger    *slog.Logger
	canteenID string

	lowStockThreshold int

	// OnStockUpdate runs after a manual stock edit; the console wires it to
	// hide the reminder banner without resetting the countdown.
	OnStockUpdate func()
}

func NewHandler(store *Store, repo *Repository, policy *StockPolicy, notifier notify.Notifier, logger *slog.Logger, canteenID string, lowStockThreshold int) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if notifier == nil {
		notifier = notify.NewLogNotifier(logger)
	}
	return &Handler{
		store:             store,
		repo:              repo,
		policy:            policy,
		notifier:          notifier,
		logger:            logger,
		canteenID:         canteenID,
		lowStockThreshold: lowStockThreshold,
	}
}

// GetItems lists the catalogue with optional search, filter and sort
// parameters (q, category, stock, sort).
func (h *Handler) GetItems(c *gin.Context) {
	items := h.store.List()
	items = Search(items, c.Query("q"))
	items = FilterByCategory(items, c.Query("category"))
	items = FilterByStock(items, c.Query("stock"), h.lowStockThreshold)
	if key := c.Query("sort"); key != "" {
		items = SortItems(items, key)
	}
	c.JSON(http.StatusOK, common.CreateSuccessResponse(items))
}

// GetItem returns a single menu item.
func (h *Handler) GetItem(c *gin.Context) {
	item, ok := h.store.Find(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, common.CreateErrorResponse([]string{ErrNotFound.Error()}))
		return
	}
	c.JSON(http.StatusOK, common.CreateSuccessResponse(item))
}

type createItemRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       int       `json:"price"`
	ImageURL    string    `json:"imageUrl"`
	Category    Category  `json:"category"`
	StockType   StockType `json:"stockType"`
	StockCount  int       `json:"stockCount"`
	IsEnabled   bool      `json:"isEnabled"`
}

// PostItem creates a new menu item with a fresh identifier.
func (h *Handler) PostItem(c *gin.Context) {
	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.CreateErrorResponse([]string{err.Error()}))
		return
	}

	item := MenuItem{
		ID:          "item_" + uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		StockType:   req.StockType,
		StockCount:  req.StockCount,
		IsEnabled:   req.IsEnabled,
		CanteenID:   h.canteenID,
	}
	if item.StockType == "" {
		item.StockType = StockUnlimited
	}
	if problems := item.Validate(); len(problems) > 0 {
		c.JSON(http.StatusBadRequest, common.CreateErrorResponse(problems))
		return
	}
	if item.StockType == StockLimited && item.StockCount == 0 {
		item.IsEnabled = false
	}

	if err := h.store.Insert(item); err != nil {
		c.JSON(http.StatusConflict, common.CreateErrorResponse([]string{err.Error()}))
		return
	}
	h.persist(item)
	h.notifier.Toast(fmt.Sprintf("%s added successfully!", item.Name), notify.SeveritySuccess)
	c.JSON(http.StatusCreated, common.CreateSuccessResponse(item))
}

// PatchItem edits item details. Stock count and enablement have their own
// endpoints so the stock policy cannot be sidestepped.
func (h *Handler) PatchItem(c *gin.Context) {
	var upd ItemUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, common.CreateErrorResponse([]string{err.Error()}))
		return
	}

	id := c.Param("id")
	item, problems, err := h.store.UpdateDetails(id, upd)
	if err != nil {
		c.JSON(http.StatusNotFound, common.CreateErrorResponse([]string{err.Error()}))
		return
	}
	if len(problems) > 0 {
		c.JSON(http.StatusBadRequest, common.CreateErrorResponse(problems))
		return
	}

	// Switching to limited stock can land an enabled item on a zero count;
	// replaying the count through the policy restores the invariant.
	if item.StockType == StockLimited {
		item, _, err = h.policy.AdjustStock(id, item.StockCount)
		if err != nil {
			c.JSON(http.StatusNotFound, common.CreateErrorResponse([]string{err.Error()}))
			return
		}
	}

	h.persist(item)
	c.JSON(http.StatusOK, common.CreateSuccessResponse(item))
}

// DeleteItem removes an item from the catalogue.
func (h *Handler) DeleteItem(c *gin.Context) {
	id := c.Param("id")
	item, err := h.store.Remove(id)
	if err != nil {
		c.JSON(http.StatusNotFound, common.CreateErrorResponse([]string{err.Error()}))
		return
	}
	if h.repo != nil {
		if err := h.repo.Delete(id); err != nil {
			h.logger.Error("failed to delete menu item", "id", id, "error", err)
		}
	}
	h.notifier.Toast(fmt.Sprintf("%s deleted", item.Name), notify.SeveritySuccess)
	c.JSON(http.StatusOK, common.CreateSuccessResponse(item))
}

type stockRequest struct {
	StockCount int `json:"stockCount"`
}

type stockResponse struct {
	Item         MenuItem `json:"item"`
	AutoDisabled bool     `json:"autoDisabled"`
}

// PutStock sets an item's stock count through the stock policy.
func (h *Handler) PutStock(c *gin.Context) {
	var req stockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.CreateErrorResponse([]string{err.Error()}))
		return
	}

	item, autoDisabled, err := h.policy.AdjustStock(c.Param("id"), req.StockCount)
	if err != nil {
		c.JSON(http.StatusNotFound, common.CreateErrorResponse([]string{err.Error()}))
		return
	}
	if h.OnStockUpdate != nil {
		h.OnStockUpdate()
	}
	c.JSON(http.StatusOK, common.CreateSuccessResponse(stockResponse{Item: item, AutoDisabled: autoDisabled}))
}

type enabledRequest struct {
	Enabled bool `json:"enabled"`
}

// PutEnabled toggles an item's visibility through the stock policy.
func (h *Handler) PutEnabled(c *gin.Context) {
	var req enabledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.CreateErrorResponse([]string{err.Error()}))
		return
	}

	item, err := h.policy.SetEnabled(c.Param("id"), req.Enabled)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, common.CreateErrorResponse([]string{err.Error()}))
		case errors.Is(err, ErrOutOfStock):
			h.notifier.Toast("Cannot enable item with 0 stock", notify.SeverityError)
			c.JSON(http.StatusConflict, common.CreateErrorResponse([]string{err.Error()}))
		default:
			c.JSON(http.StatusInternalServerError, common.CreateErrorResponse([]string{err.Error()}))
		}
		return
	}

	state := "disabled"
	if item.IsEnabled {
		state = "enabled"
	}
	h.notifier.Toast(fmt.Sprintf("%s %s", item.Name, state), notify.SeveritySuccess)
	c.JSON(http.StatusOK, common.CreateSuccessResponse(item))
}

// PostEnableAll enables every item that has stock.
func (h *Handler) PostEnableAll(c *gin.Context) {
	count := h.policy.EnableAll()
	c.JSON(http.StatusOK, common.CreateSuccessResponse(gin.H{"enabled": count}))
}

// PostDisableAll disables every enabled item.
func (h *Handler) PostDisableAll(c *gin.Context) {
	count := h.policy.DisableAll()
	c.JSON(http.StatusOK, common.CreateSuccessResponse(gin.H{"disabled": count}))
}

// GetExport streams the catalogue as JSON (default) or CSV.
func (h *Handler) GetExport(c *gin.Context) {
	items := h.store.List()
	switch c.DefaultQuery("format", "json") {
	case "csv":
		data, err := ExportCSV(items)
		if err != nil {
			c.JSON(http.StatusInternalServerError, common.CreateErrorResponse([]string{err.Error()}))
			return
		}
		c.Header("Content-Disposition", `attachment; filename="menu.csv"`)
		c.Data(http.StatusOK, "text/csv", data)
	case "json":
		data, err := ExportJSON(items)
		if err != nil {
			c.JSON(http.StatusInternalServerError, common.CreateErrorResponse([]string{err.Error()}))
			return
		}
		c.Header("Content-Disposition", `attachment; filename="menu.json"`)
		c.Data(http.StatusOK, "application/json", data)
	default:
		c.JSON(http.StatusBadRequest, common.CreateErrorResponse([]string{"unknown export format"}))
	}
}

// Stats mirror the dashboard's stat cards.
type Stats struct {
	TotalItems    int `json:"totalItems"`
	EnabledItems  int `json:"enabledItems"`
	LowStockItems int `json:"lowStockItems"`
	TodaySpecials int `json:"todaySpecials"`
}

// GetStats summarizes the catalogue for the dashboard header.
func (h *Handler) GetStats(c *gin.Context) {
	var stats Stats
	for _, it := range h.store.List() {
		stats.TotalItems++
		if it.IsEnabled {
			stats.EnabledItems++
		}
		if it.StockType == StockLimited && it.StockCount < h.lowStockThreshold {
			stats.LowStockItems++
		}
		if it.IsSpecial {
			stats.TodaySpecials++
		}
	}
	c.JSON(http.StatusOK, common.CreateSuccessResponse(stats))
}

func (h *Handler) persist(item MenuItem) {
	if h.repo == nil {
		return
	}
	if err := h.repo.Upsert(item); err != nil {
		h.logger.Error("failed to persist menu item", "id", item.ID, "error", err)
	}
}
