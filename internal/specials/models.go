package specials

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Day is a lowercase weekday name, matching time.Weekday ordering.
type Day string

const (
	Sunday    Day = "sunday"
	Monday    Day = "monday"
	Tuesday   Day = "tuesday"
	Wednesday Day = "wednesday"
	Thursday  Day = "thursday"
	Friday    Day = "friday"
	Saturday  Day = "saturday"
)

// Days lists the week in time.Weekday order.
var Days = []Day{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

var ErrInvalidDay = errors.New("invalid day")

// ParseDay accepts a weekday name in any casing.
func ParseDay(s string) (Day, error) {
	d := Day(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Days {
		if d == known {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDay, s)
}

// DayOf maps a wall-clock instant to its weekday.
func DayOf(t time.Time) Day {
	return Days[int(t.Weekday())]
}

func (d Day) String() string { return string(d) }

// Title renders the day for display, e.g. "friday" -> "Friday".
func (d Day) Title() string {
	if d == "" {
		return ""
	}
	return strings.ToUpper(string(d[0])) + string(d[1:])
}

// Schedule maps each weekday to the menu item IDs featured on that day.
type Schedule map[Day][]string

// NewSchedule returns a schedule with an empty slot for every weekday.
func NewSchedule() Schedule {
	s := make(Schedule, len(Days))
	for _, d := range Days {
		s[d] = []string{}
	}
	return s
}

// Clone deep-copies the schedule so callers cannot alias internal state.
func (s Schedule) Clone() Schedule {
	out := make(Schedule, len(Days))
	for _, d := range Days {
		out[d] = append([]string{}, s[d]...)
	}
	return out
}

/*
EZEATZ API provides the backend for the EZEATZ canteen admin console.
Copyright (C) 2025 EZEATZ

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
