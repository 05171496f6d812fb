package specials

import (
	"testing"

	"canteen-api/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildReport(t *testing.T) {
	store := catalog.NewStore()
	store.Load(menuFixture())

	schedule := NewSchedule()
	schedule[Friday] = []string{"item_1", "item_gone"}
	schedule[Saturday] = []string{"item_2"}

	report := BuildReport(schedule, store, Friday)
	require.Len(t, report, 7)

	assert.Equal(t, Sunday, report[0].Day)
	assert.Equal(t, Saturday, report[6].Day)

	friday := report[5]
	assert.Equal(t, Friday, friday.Day)
	assert.True(t, friday.IsToday)
	assert.Equal(t, 2, friday.Count)
	assert.Equal(t, "Chicken Biryani", friday.Items[0].Name)
	assert.False(t, friday.Items[0].Missing)
	assert.True(t, friday.Items[1].Missing)

	saturday := report[6]
	assert.False(t, saturday.IsToday)
	assert.Equal(t, "Masala Dosa", saturday.Items[0].Name)

	assert.Equal(t, 0, report[0].Count)
	assert.NotNil(t, report[0].Items)
}
