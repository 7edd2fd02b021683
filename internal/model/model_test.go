package model

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/studio-booking/internal/schedule"
)

var day = schedule.NewDate(2026, time.November, 3)

func TestNewUnavailableSlot(t *testing.T) {
	s, err := NewUnavailableSlot(1, day, schedule.MustClock("10:00"), schedule.MustClock("12:00"), "  maintenance ")
	require.NoError(t, err)
	require.NotNil(t, s.Reason)
	assert.Equal(t, "maintenance", *s.Reason)
	assert.Equal(t, schedule.Interval{Start: schedule.ClockAt(10, 0), End: schedule.ClockAt(12, 0)}, s.Interval())

	s, err = NewUnavailableSlot(1, day, schedule.MustClock("22:00"), schedule.EndOfDay, "")
	require.NoError(t, err)
	assert.Nil(t, s.Reason)
}

func TestNewUnavailableSlot_Rejects(t *testing.T) {
	ten, eleven := schedule.MustClock("10:00"), schedule.MustClock("11:00")
	cases := map[string]func() error{
		"no room": func() error { _, err := NewUnavailableSlot(0, day, ten, eleven, ""); return err },
		"no date": func() error { _, err := NewUnavailableSlot(1, schedule.Date{}, ten, eleven, ""); return err },
		"inverted": func() error {
			_, err := NewUnavailableSlot(1, day, schedule.MustClock("14:00"), schedule.MustClock("13:00"), "")
			return err
		},
		"empty": func() error { _, err := NewUnavailableSlot(1, day, ten, ten, ""); return err },
		"past midnight": func() error {
			_, err := NewUnavailableSlot(1, day, schedule.MustClock("23:00"), schedule.ClockAt(25, 0), "")
			return err
		},
		"long reason": func() error {
			_, err := NewUnavailableSlot(1, day, ten, eleven, strings.Repeat("x", MaxReasonLen+1))
			return err
		},
	}
	for name, fn := range cases {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, fn(), schedule.ErrValidation)
		})
	}
}

func TestSlotProjections(t *testing.T) {
	slots := []UnavailableSlot{
		{RoomID: 1, Date: day, Start: schedule.ClockAt(8, 0), End: schedule.ClockAt(9, 0)},
		{RoomID: 1, Date: day.AddDays(2), Start: schedule.ClockAt(13, 0), End: schedule.ClockAt(15, 0)},
	}
	assert.Equal(t, []schedule.Date{day, day.AddDays(2)}, SlotDates(slots))
	assert.Len(t, SlotIntervals(slots), 2)
}

func TestNewRoom(t *testing.T) {
	r, err := NewRoom(" Meeting Room ", 8, 150000, []string{"AC", " ", "WiFi "}, true)
	require.NoError(t, err)
	assert.Equal(t, "Meeting Room", r.Name)
	assert.Equal(t, []string{"AC", "WiFi"}, r.Facilities)

	_, err = NewRoom("", 8, 150000, nil, true)
	assert.ErrorIs(t, err, schedule.ErrValidation)
	_, err = NewRoom("Podcast", 0, 150000, nil, true)
	assert.ErrorIs(t, err, schedule.ErrValidation)
	_, err = NewRoom("Podcast", 4, 0, nil, true)
	assert.ErrorIs(t, err, schedule.ErrValidation)
}
