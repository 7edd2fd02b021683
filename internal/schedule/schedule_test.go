package schedule

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func iv(start, end string) Interval {
	return Interval{Start: MustClock(start), End: MustClock(end)}
}

func TestOverlaps_HalfOpen(t *testing.T) {
	cases := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"adjacent", iv("10:00", "12:00"), iv("12:00", "14:00"), false},
		{"crossing", iv("10:00", "12:00"), iv("11:00", "13:00"), true},
		{"contained", iv("08:00", "22:00"), iv("10:00", "11:00"), true},
		{"identical", iv("10:00", "11:00"), iv("10:00", "11:00"), true},
		{"disjoint", iv("08:00", "09:00"), iv("15:00", "16:30"), false},
		{"one minute", iv("09:00", "10:01"), iv("10:00", "11:00"), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.Overlaps(tc.b))
			assert.Equal(t, tc.want, tc.b.Overlaps(tc.a), "overlap must be symmetric")
			assert.Equal(t, tc.a.Start < tc.b.End && tc.a.End > tc.b.Start, tc.a.Overlaps(tc.b))
		})
	}
}

func TestOverlaps_SymmetricOnGrid(t *testing.T) {
	// every 30-minute interval pair inside 08:00..12:00
	var all []Interval
	for s := ClockAt(8, 0); s < ClockAt(12, 0); s = s.Add(30) {
		for e := s.Add(30); e <= ClockAt(12, 0); e = e.Add(30) {
			all = append(all, Interval{Start: s, End: e})
		}
	}
	for _, a := range all {
		for _, b := range all {
			if a.Overlaps(b) != b.Overlaps(a) {
				t.Fatalf("asymmetric overlap for %s and %s", a, b)
			}
		}
	}
}

func TestNewInterval_RejectsInverted(t *testing.T) {
	_, err := NewInterval(MustClock("14:00"), MustClock("13:00"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = NewInterval(MustClock("13:00"), MustClock("13:00"))
	assert.ErrorIs(t, err, ErrValidation)

	got, err := NewInterval(MustClock("13:00"), MustClock("15:30"))
	require.NoError(t, err)
	assert.Equal(t, 150, got.Minutes())
}

func TestParseClock(t *testing.T) {
	c, err := ParseClock("08:30")
	require.NoError(t, err)
	assert.Equal(t, 8, c.Hour())
	assert.Equal(t, 30, c.Minute())
	assert.Equal(t, "08:30", c.String())

	end, err := ParseClock("24:00")
	require.NoError(t, err)
	assert.Equal(t, EndOfDay, end)

	for _, bad := range []string{"", "8:00", "08:60", "24:01", "25:00", "ab:cd", "-1:00", "0800"} {
		_, err := ParseClock(bad)
		assert.Error(t, err, bad)
	}
}

func TestClock_StringPastMidnight(t *testing.T) {
	assert.Equal(t, "28:00", MustClock("20:00").Add(8*60).String())
}

func TestClock_JSON(t *testing.T) {
	var v struct {
		At Clock `json:"at"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"at":"09:15"}`), &v))
	assert.Equal(t, ClockAt(9, 15), v.At)

	b, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"at":"09:15"}`, string(b))

	assert.Error(t, json.Unmarshal([]byte(`{"at":"9"}`), &v))
}

func TestDate_ParseAndArithmetic(t *testing.T) {
	d, err := ParseDate("2026-02-28")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-01", d.AddDays(1).String())
	assert.True(t, d.Before(d.AddDays(1)))

	first, last := d.MonthBounds()
	assert.Equal(t, "2026-02-01", first.String())
	assert.Equal(t, "2026-02-28", last.String())

	assert.Equal(t, NewDate(2026, time.March, 1), d.AddDays(1))

	_, err = ParseDate("2026-13-01")
	assert.Error(t, err)
	_, err = ParseDate("28/02/2026")
	assert.Error(t, err)
}

func TestDateOf_UsesLocalCalendarDay(t *testing.T) {
	loc := time.FixedZone("WITA", 8*3600)
	late := time.Date(2026, 10, 16, 23, 30, 0, 0, loc)
	assert.Equal(t, "2026-10-16", DateOf(late).String())
}

func TestDayStatuses_RangeAggregation(t *testing.T) {
	d1 := NewDate(2026, time.November, 2)
	d3 := d1.AddDays(2)
	d5 := d1.AddDays(4)

	got := StatusMap(d1, d5, Date{}, []Date{d1, d3, d3})
	require.Len(t, got, 5)
	assert.Equal(t, DayHasSlot, got[d1])
	assert.Equal(t, DayAvailable, got[d1.AddDays(1)])
	assert.Equal(t, DayHasSlot, got[d3])
	assert.Equal(t, DayAvailable, got[d1.AddDays(3)])
	assert.Equal(t, DayAvailable, got[d5])
}

func TestDayStatuses_PastWinsOverSlots(t *testing.T) {
	from := NewDate(2026, time.October, 14)
	today := NewDate(2026, time.October, 16)
	states := DayStatuses(from, today, today, []Date{from, today})

	require.Len(t, states, 3)
	assert.Equal(t, DayPast, states[0].Status)
	assert.Equal(t, DayPast, states[1].Status)
	assert.Equal(t, DayHasSlot, states[2].Status)
}

func TestDayStatuses_EmptyWhenInverted(t *testing.T) {
	d := NewDate(2026, time.October, 16)
	assert.Nil(t, DayStatuses(d, d.AddDays(-1), Date{}, nil))
}

func TestConflictError_Unwraps(t *testing.T) {
	var err error = &ConflictError{With: []Interval{iv("10:00", "12:00")}}
	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "10:00-12:00")

	var ce *ConflictError
	require.True(t, errors.As(err, &ce))
	assert.Len(t, ce.With, 1)
}

func TestInterval_JSONUsesCamelCase(t *testing.T) {
	b, err := json.Marshal(&ConflictError{With: []Interval{iv("10:00", "12:00")}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"With":[{"start":"10:00","end":"12:00"}]}`, string(b))

	var got Interval
	require.NoError(t, json.Unmarshal([]byte(`{"start":"13:00","end":"14:30"}`), &got))
	assert.Equal(t, iv("13:00", "14:30"), got)
}
