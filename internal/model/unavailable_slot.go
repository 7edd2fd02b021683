package model

import (
	"strings"
	"time"

	"github.com/iliyamo/studio-booking/internal/schedule"
)

// MaxReasonLen bounds the optional free-text reason of a block.
const MaxReasonLen = 255

// UnavailableSlot is one admin-defined blocked window for a room on a single
// calendar day.  Start and End are wall-clock times within that day and the
// window is half-open.  Slots are immutable once stored; the only mutation is
// deletion.
//
// Fields:
//  ID        – primary key identifier.
//  RoomID    – owning room.
//  Date      – blocked calendar day.
//  Start     – first blocked minute.
//  End       – first minute after the block.
//  Reason    – optional note shown next to the block (nil when absent).
//  CreatedAt – creation timestamp.
type UnavailableSlot struct {
	ID        uint64         `json:"id"`        // unavailable_slots.id
	RoomID    uint64         `json:"roomId"`    // unavailable_slots.room_id
	Date      schedule.Date  `json:"date"`      // unavailable_slots.slot_date
	Start     schedule.Clock `json:"start"`     // unavailable_slots.start_time
	End       schedule.Clock `json:"end"`       // unavailable_slots.end_time
	Reason    *string        `json:"reason"`    // unavailable_slots.reason (nullable)
	CreatedAt time.Time      `json:"createdAt"` // unavailable_slots.created_at
}

// NewUnavailableSlot builds a slot that satisfies the record invariants: a
// room and a day are set and start < end.  Overlap with other slots is a
// store-level rule and is not checked here.
func NewUnavailableSlot(roomID uint64, date schedule.Date, start, end schedule.Clock, reason string) (UnavailableSlot, error) {
	if roomID == 0 {
		return UnavailableSlot{}, schedule.Invalid("roomId", "is required")
	}
	if date.IsZero() {
		return UnavailableSlot{}, schedule.Invalid("date", "is required")
	}
	if start < 0 || end > schedule.EndOfDay {
		return UnavailableSlot{}, schedule.Invalid("end", "must stay within a single day")
	}
	if _, err := schedule.NewInterval(start, end); err != nil {
		return UnavailableSlot{}, err
	}
	s := UnavailableSlot{RoomID: roomID, Date: date, Start: start, End: end}
	if r := strings.TrimSpace(reason); r != "" {
		if len(r) > MaxReasonLen {
			return UnavailableSlot{}, schedule.Invalid("reason", "is too long")
		}
		s.Reason = &r
	}
	return s, nil
}

// Interval is the slot's half-open window.
func (s UnavailableSlot) Interval() schedule.Interval {
	return schedule.Interval{Start: s.Start, End: s.End}
}

// SlotIntervals projects slots onto their windows.
func SlotIntervals(slots []UnavailableSlot) []schedule.Interval {
	out := make([]schedule.Interval, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Interval())
	}
	return out
}

// SlotDates lists the day of every slot, duplicates included.
func SlotDates(slots []UnavailableSlot) []schedule.Date {
	out := make([]schedule.Date, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Date)
	}
	return out
}
