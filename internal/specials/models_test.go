package specials

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDay(t *testing.T) {
	tests := []struct {
		in      string
		want    Day
		wantErr bool
	}{
		{"monday", Monday, false},
		{"FRIDAY", Friday, false},
		{" sunday ", Sunday, false},
		{"Wednesday", Wednesday, false},
		{"funday", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDay(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDay)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDayOfMatchesWeekday(t *testing.T) {
	// 2025-01-03 is a Friday
	friday := time.Date(2025, 1, 3, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, Friday, DayOf(friday))
	assert.Equal(t, Saturday, DayOf(friday.AddDate(0, 0, 1)))
	assert.Equal(t, Sunday, DayOf(friday.AddDate(0, 0, 2)))
}

func TestDayTitle(t *testing.T) {
	assert.Equal(t, "Friday", Friday.Title())
	assert.Equal(t, "", Day("").Title())
}

func TestScheduleClone(t *testing.T) {
	s := NewSchedule()
	s[Monday] = []string{"item_7"}

	clone := s.Clone()
	clone[Monday][0] = "mutated"
	clone[Tuesday] = append(clone[Tuesday], "item_9")

	assert.Equal(t, []string{"item_7"}, s[Monday])
	assert.Empty(t, s[Tuesday])
}
