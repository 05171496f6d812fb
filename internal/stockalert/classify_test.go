package stockalert

import (
	"testing"

	"canteen-api/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func alertFixture() []catalog.MenuItem {
	return []catalog.MenuItem{
		{ID: "healthy", Name: "Chicken Biryani", StockType: catalog.StockLimited, StockCount: 50},
		{ID: "low", Name: "Pav Bhaji", StockType: catalog.StockLimited, StockCount: 8},
		{ID: "boundary_low", Name: "Samosa", StockType: catalog.StockLimited, StockCount: 10},
		{ID: "critical", Name: "Paneer Butter Masala", StockType: catalog.StockLimited, StockCount: 5},
		{ID: "critical2", Name: "Veg Cutlet", StockType: catalog.StockLimited, StockCount: 1},
		{ID: "out", Name: "Veg Burger", StockType: catalog.StockLimited, StockCount: 0},
		{ID: "unlimited", Name: "Cold Coffee", StockType: catalog.StockUnlimited, StockCount: 0},
	}
}

func TestClassifyTiers(t *testing.T) {
	alerts := Classify(alertFixture(), DefaultThresholds)

	var ids []string
	for _, it := range alerts.Low {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"low", "boundary_low"}, ids)

	ids = nil
	for _, it := range alerts.Critical {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"critical", "critical2"}, ids)

	require.Len(t, alerts.OutOfStock, 1)
	assert.Equal(t, "out", alerts.OutOfStock[0].ID)

	assert.Equal(t, 5, alerts.Total())
}

func TestClassifyIgnoresUnlimited(t *testing.T) {
	alerts := Classify([]catalog.MenuItem{
		{ID: "u", StockType: catalog.StockUnlimited, StockCount: 0},
	}, DefaultThresholds)
	assert.Equal(t, 0, alerts.Total())
}

func TestClassifyCustomThresholds(t *testing.T) {
	items := []catalog.MenuItem{
		{ID: "a", StockType: catalog.StockLimited, StockCount: 20},
		{ID: "b", StockType: catalog.StockLimited, StockCount: 12},
		{ID: "c", StockType: catalog.StockLimited, StockCount: 2},
	}
	alerts := Classify(items, Thresholds{Low: 15, Critical: 3})

	require.Len(t, alerts.Low, 1)
	assert.Equal(t, "b", alerts.Low[0].ID)
	require.Len(t, alerts.Critical, 1)
	assert.Equal(t, "c", alerts.Critical[0].ID)
	assert.Empty(t, alerts.OutOfStock)
}

func TestClassifyEmpty(t *testing.T) {
	alerts := Classify(nil, DefaultThresholds)
	assert.NotNil(t, alerts.Low)
	assert.NotNil(t, alerts.Critical)
	assert.NotNil(t, alerts.OutOfStock)
	assert.Equal(t, 0, alerts.Total())
}
