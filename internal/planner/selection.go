// Package planner implements the booking-page selection logic: which dates
// and start hours a visitor can pick for a room, conflict checks against
// blocked slots and the visitor's own pending picks, price estimation and
// the WhatsApp handoff.
package planner

import (
	"github.com/iliyamo/studio-booking/internal/model"
	"github.com/iliyamo/studio-booking/internal/schedule"
)

// Selection is one tentative booking entry.  It is never persisted; the
// room price is captured when the entry is added so later price edits do
// not change a quote in progress.
type Selection struct {
	RoomID       uint64         `json:"roomId"`
	RoomName     string         `json:"roomName"`
	Date         schedule.Date  `json:"date"`
	Start        schedule.Clock `json:"start"`
	End          schedule.Clock `json:"end"`
	FullDay      bool           `json:"fullDay"`
	PricePerHour int64          `json:"pricePerHour"`
}

// NewSelection checks that the entry names a room and a day and that
// start < end.
func NewSelection(room model.Room, day schedule.Date, start, end schedule.Clock, fullDay bool) (Selection, error) {
	if room.ID == 0 {
		return Selection{}, schedule.Invalid("roomId", "is required")
	}
	if day.IsZero() {
		return Selection{}, schedule.Invalid("date", "is required")
	}
	if _, err := schedule.NewInterval(start, end); err != nil {
		return Selection{}, err
	}
	return Selection{
		RoomID:       room.ID,
		RoomName:     room.Name,
		Date:         day,
		Start:        start,
		End:          end,
		FullDay:      fullDay,
		PricePerHour: room.PricePerHour,
	}, nil
}

func (s Selection) Interval() schedule.Interval {
	return schedule.Interval{Start: s.Start, End: s.End}
}

// Minutes is the billed length.  A full-day entry spans the operating
// hours, so it bills close - open hours.
func (s Selection) Minutes() int { return s.Interval().Minutes() }

// Price is PricePerHour times the billed hours, rounded down to a whole
// currency unit for fractional hours.
func (s Selection) Price() int64 {
	return s.PricePerHour * int64(s.Minutes()) / 60
}

// sameSlot reports whether two entries compete for the same room and day.
func (s Selection) sameSlot(roomID uint64, day schedule.Date) bool {
	return s.RoomID == roomID && s.Date == day
}
