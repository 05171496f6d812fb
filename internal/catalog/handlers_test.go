package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*gin.Engine, *Handler, *Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := NewStore()
	store.Load(sampleItems())
	policy := NewStockPolicy(store, nil, &recordingNotifier{}, nil, nil)
	h := NewHandler(store, nil, policy, &recordingNotifier{}, nil, "main_canteen", 10)

	router := gin.New()
	router.GET("/items", h.GetItems)
	router.POST("/items", h.PostItem)
	router.GET("/items/:id", h.GetItem)
	router.PATCH("/items/:id", h.PatchItem)
	router.DELETE("/items/:id", h.DeleteItem)
	router.PUT("/items/:id/stock", h.PutStock)
	router.PUT("/items/:id/enabled", h.PutEnabled)
	router.GET("/items/export", h.GetExport)
	router.GET("/stats", h.GetStats)
	return router, h, store
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetItemsWithQuery(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/items?q=biryani", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Chicken Biryani")
	assert.NotContains(t, w.Body.String(), "Samosa")
}

func TestPostItemValidation(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/items", `{"name":"X","price":0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "name must be at least 2 characters")
	assert.Contains(t, w.Body.String(), "price must be at least 1")
}

func TestPostItemCreates(t *testing.T) {
	router, _, store := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/items",
		`{"name":"Pav Bhaji","price":60,"category":"main_course","stockType":"limited","stockCount":25,"isEnabled":true}`)
	require.Equal(t, http.StatusCreated, w.Code)

	items := store.List()
	created := items[len(items)-1]
	assert.Equal(t, "Pav Bhaji", created.Name)
	assert.True(t, strings.HasPrefix(created.ID, "item_"))
	assert.Equal(t, "main_canteen", created.CanteenID)
}

func TestPostItemZeroStockStartsDisabled(t *testing.T) {
	router, _, store := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/items",
		`{"name":"Veg Cutlet","price":20,"category":"snacks","stockType":"limited","stockCount":0,"isEnabled":true}`)
	require.Equal(t, http.StatusCreated, w.Code)

	items := store.List()
	assert.False(t, items[len(items)-1].IsEnabled)
}

func TestPatchItemRejectionLeavesItemUnchanged(t *testing.T) {
	router, _, store := newTestRouter(t)

	w := doJSON(t, router, http.MethodPatch, "/items/item_1", `{"name":"x","price":-5}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	item, ok := store.Find("item_1")
	require.True(t, ok)
	assert.Equal(t, "Chicken Biryani", item.Name)
	assert.Equal(t, 120, item.Price)
}

func TestPatchItemUpdates(t *testing.T) {
	router, _, store := newTestRouter(t)

	w := doJSON(t, router, http.MethodPatch, "/items/item_1", `{"price":130}`)
	require.Equal(t, http.StatusOK, w.Code)

	item, _ := store.Find("item_1")
	assert.Equal(t, 130, item.Price)
	assert.Equal(t, "Chicken Biryani", item.Name)
}

func TestPutStockAutoDisable(t *testing.T) {
	router, _, store := newTestRouter(t)

	w := doJSON(t, router, http.MethodPut, "/items/item_1/stock", `{"stockCount":0}`)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data stockResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.True(t, envelope.Data.AutoDisabled)

	item, _ := store.Find("item_1")
	assert.False(t, item.IsEnabled)
}

func TestPutStockRunsDismissHook(t *testing.T) {
	router, h, _ := newTestRouter(t)

	dismissed := false
	h.OnStockUpdate = func() { dismissed = true }

	w := doJSON(t, router, http.MethodPut, "/items/item_1/stock", `{"stockCount":40}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, dismissed)
}

func TestPutEnabledRefusal(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPut, "/items/item_1/stock", `{"stockCount":0}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPut, "/items/item_1/enabled", `{"enabled":true}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestPutEnabledNotFound(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPut, "/items/missing/enabled", `{"enabled":true}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteItem(t *testing.T) {
	router, _, store := newTestRouter(t)

	w := doJSON(t, router, http.MethodDelete, "/items/item_2", "")
	require.Equal(t, http.StatusOK, w.Code)
	_, ok := store.Find("item_2")
	assert.False(t, ok)

	w = doJSON(t, router, http.MethodDelete, "/items/item_2", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportEndpoint(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/items/export?format=csv", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Body.String(), "Chicken Biryani")

	w = doJSON(t, router, http.MethodGet, "/items/export?format=xml", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatsEndpoint(t *testing.T) {
	router, _, store := newTestRouter(t)
	require.NoError(t, store.SetSpecial("item_1", true))

	w := doJSON(t, router, http.MethodGet, "/stats", "")
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data Stats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, 3, envelope.Data.TotalItems)
	assert.Equal(t, 3, envelope.Data.EnabledItems)
	assert.Equal(t, 1, envelope.Data.TodaySpecials)
}
