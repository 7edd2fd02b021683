package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/studio-booking/internal/model"
	"github.com/iliyamo/studio-booking/internal/schedule"
)

// SlotSource is the read side of the availability store.
type SlotSource interface {
	DaySlots(ctx context.Context, roomID uint64, day schedule.Date) ([]model.UnavailableSlot, error)
	RangeSlots(ctx context.Context, roomID uint64, from, to schedule.Date) ([]model.UnavailableSlot, error)
}

// State is the position of the planner in the pick flow.
type State int

const (
	Idle State = iota
	DateSelected
	TimeSelected
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case DateSelected:
		return "date-selected"
	case TimeSelected:
		return "time-selected"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Options configure the operating window and duration limits.
type Options struct {
	OpenHour        int  // first bookable hour, default 8
	CloseHour       int  // closing hour, default 22; must be after OpenHour
	MaxDuration     int  // longest partial booking in hours, default 8
	DefaultDuration int  // duration preselected after each pick, default 2
	ClampToClose    bool // reject entries that end after CloseHour
	Now             func() time.Time
	Location        *time.Location
}

// Default operating window, used for unset hours and whenever the
// configured window is empty or inverted.
const (
	defaultOpenHour  = 8
	defaultCloseHour = 22
)

func (o Options) withDefaults() Options {
	if o.OpenHour == 0 {
		o.OpenHour = defaultOpenHour
	}
	if o.CloseHour == 0 {
		o.CloseHour = defaultCloseHour
	}
	o.OpenHour = min(max(o.OpenHour, 0), 23)
	o.CloseHour = min(max(o.CloseHour, 1), 24)
	if o.OpenHour >= o.CloseHour {
		o.OpenHour, o.CloseHour = defaultOpenHour, defaultCloseHour
	}
	if o.MaxDuration <= 0 {
		o.MaxDuration = 8
	}
	if o.DefaultDuration <= 0 || o.DefaultDuration > o.MaxDuration {
		o.DefaultDuration = min(2, o.MaxDuration)
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	return o
}

// Input errors returned by the pick operations.
var (
	ErrNoRoom        = schedule.Invalid("room", "select a room first")
	ErrNoDate        = schedule.Invalid("date", "select a date first")
	ErrNoTime        = schedule.Invalid("start", "select a start time and duration")
	ErrPastDate      = schedule.Invalid("date", "is in the past")
	ErrFullDayActive = schedule.Invalid("start", "hour picks are disabled in full-day mode")
)

// HourOption is one candidate start-hour button.
type HourOption struct {
	Start    schedule.Clock `json:"start"`
	Disabled bool           `json:"disabled"`
}

// Planner holds one visitor session.  It is not safe for concurrent use;
// every mutation is driven by a single user action.
type Planner struct {
	src  SlotSource
	opts Options

	state    State
	room     model.Room
	hasRoom  bool
	date     schedule.Date
	daySlots []model.UnavailableSlot
	start    schedule.Clock
	duration int
	fullDay  bool

	selections []Selection
}

func New(src SlotSource, opts Options) *Planner {
	opts = opts.withDefaults()
	return &Planner{src: src, opts: opts, duration: opts.DefaultDuration}
}

func (p *Planner) State() State { return p.state }
func (p *Planner) Date() schedule.Date { return p.date }
func (p *Planner) FullDay() bool { return p.fullDay }
func (p *Planner) Duration() int { return p.duration }
func (p *Planner) DaySlots() []model.UnavailableSlot { return append([]model.UnavailableSlot(nil), p.daySlots...) }
func (p *Planner) Selections() []Selection { return append([]Selection(nil), p.selections...) }
func (p *Planner) Room() (model.Room, bool) { return p.room, p.hasRoom }
func (p *Planner) openClock() schedule.Clock { return schedule.ClockAt(p.opts.OpenHour, 0) }
func (p *Planner) closeClock() schedule.Clock { return schedule.ClockAt(p.opts.CloseHour, 0) }
func (p *Planner) today() schedule.Date { return schedule.DateOf(p.opts.Now().In(p.opts.Location)) }
func (p *Planner) StartTime() (schedule.Clock, bool) { return p.start, p.state == TimeSelected && !p.fullDay }

// SelectRoom makes room the active room and returns to Idle.  Existing
// selections are kept; nothing is fetched until a date is picked.
func (p *Planner) SelectRoom(room model.Room) error {
	if room.ID == 0 {
		return ErrNoRoom
	}
	p.room, p.hasRoom = room, true
	p.resetPick()
	p.state = Idle
	return nil
}

func (p *Planner) resetPick() {
	p.date = schedule.Date{}
	p.daySlots = nil
	p.clearTime()
	p.fullDay = false
}

func (p *Planner) clearTime() {
	p.start = 0
	p.duration = p.opts.DefaultDuration
}

// SelectDate fetches the day's blocked slots for the active room and moves
// to DateSelected.  Past days are refused.  If the fetch fails the planner
// keeps its previous state and the error is returned.
func (p *Planner) SelectDate(ctx context.Context, day schedule.Date) error {
	if !p.hasRoom {
		return ErrNoRoom
	}
	if day.IsZero() {
		return ErrNoDate
	}
	if day.Before(p.today()) {
		return ErrPastDate
	}
	slots, err := p.src.DaySlots(ctx, p.room.ID, day)
	if err != nil {
		return fmt.Errorf("load blocked slots for %s: %w", day, err)
	}
	p.date = day
	p.daySlots = slots
	p.clearTime()
	p.fullDay = false
	p.state = DateSelected
	return nil
}

// SelectTime picks a whole-hour start.  Disabled hours are refused with the
// interval they collide with.
func (p *Planner) SelectTime(start schedule.Clock) error {
	if p.state == Idle {
		return ErrNoDate
	}
	if p.fullDay {
		return ErrFullDayActive
	}
	if start.Minute() != 0 || start < p.openClock() || start >= p.closeClock() {
		return schedule.Invalid("start", fmt.Sprintf("must be a whole hour between %s and %s", p.openClock(), p.closeClock().Add(-60)))
	}
	if err := p.checkConflicts(schedule.Interval{Start: start, End: start.Add(60)}); err != nil {
		return err
	}
	p.start = start
	p.state = TimeSelected
	return nil
}

// SetDuration sets the partial booking length in whole hours.
func (p *Planner) SetDuration(hours int) error {
	if hours < 1 || hours > p.opts.MaxDuration {
		return schedule.Invalid("duration", fmt.Sprintf("must be between 1 and %d hours", p.opts.MaxDuration))
	}
	p.duration = hours
	return nil
}

// SetFullDay toggles full-day mode.  Turning it on clears the start hour
// and, with a date picked, moves to TimeSelected; turning it off returns to
// DateSelected.
func (p *Planner) SetFullDay(on bool) error {
	if p.state == Idle {
		return ErrNoDate
	}
	p.fullDay = on
	p.clearTime()
	if on {
		p.state = TimeSelected
	} else {
		p.state = DateSelected
	}
	return nil
}

// EndTime returns start + duration on wall-clock minutes, or the closing
// hour in full-day mode.  The value may lie past closing time.
func (p *Planner) EndTime() (schedule.Clock, bool) {
	switch {
	case p.fullDay && p.state == TimeSelected:
		return p.closeClock(), true
	case p.state == TimeSelected:
		return EndTime(p.start, p.duration), true
	}
	return 0, false
}

// EndTime is start shifted by whole hours.
func EndTime(start schedule.Clock, hours int) schedule.Clock {
	return start.Add(hours * 60)
}

// Candidate is the interval the active pick would book.
func (p *Planner) Candidate() (schedule.Interval, error) {
	if !p.hasRoom {
		return schedule.Interval{}, ErrNoRoom
	}
	if p.state == Idle {
		return schedule.Interval{}, ErrNoDate
	}
	if p.state != TimeSelected {
		return schedule.Interval{}, ErrNoTime
	}
	if p.fullDay {
		return schedule.Interval{Start: p.openClock(), End: p.closeClock()}, nil
	}
	return schedule.NewInterval(p.start, EndTime(p.start, p.duration))
}

// CandidateHours lists one button per hour in [open, close).  Without a
// date, or in full-day mode, every button is disabled.
func (p *Planner) CandidateHours() []HourOption {
	out := make([]HourOption, 0, p.opts.CloseHour-p.opts.OpenHour)
	for h := p.opts.OpenHour; h < p.opts.CloseHour; h++ {
		t := schedule.ClockAt(h, 0)
		disabled := p.state == Idle || p.fullDay
		if !disabled {
			disabled = p.checkConflicts(schedule.Interval{Start: t, End: t.Add(60)}) != nil
		}
		out = append(out, HourOption{Start: t, Disabled: disabled})
	}
	return out
}

// checkConflicts tests iv against the day's blocked slots and the pending
// selections for the active room and date.
func (p *Planner) checkConflicts(iv schedule.Interval) error {
	var blocked []schedule.Interval
	for _, s := range p.daySlots {
		if s.Interval().Overlaps(iv) {
			blocked = append(blocked, s.Interval())
		}
	}
	if len(blocked) > 0 {
		return fmt.Errorf("overlaps a blocked slot: %w", &schedule.ConflictError{With: blocked})
	}
	var picked []schedule.Interval
	for _, s := range p.selections {
		if s.sameSlot(p.room.ID, p.date) && s.Interval().Overlaps(iv) {
			picked = append(picked, s.Interval())
		}
	}
	if len(picked) > 0 {
		return fmt.Errorf("overlaps an earlier selection: %w", &schedule.ConflictError{With: picked})
	}
	return nil
}

// Validate reports whether the active pick can be added.
func (p *Planner) Validate() error {
	iv, err := p.Candidate()
	if err != nil {
		return err
	}
	if p.opts.ClampToClose && iv.End > p.closeClock() {
		return schedule.Invalid("end", fmt.Sprintf("ends after closing time %s", p.closeClock()))
	}
	if iv.End > schedule.EndOfDay {
		return schedule.Invalid("end", "must stay within the same day")
	}
	return p.checkConflicts(iv)
}

// Add appends the active pick to the selection list and returns to
// DateSelected with the time cleared, ready for another pick.
func (p *Planner) Add() (Selection, error) {
	if err := p.Validate(); err != nil {
		return Selection{}, err
	}
	iv, _ := p.Candidate()
	sel, err := NewSelection(p.room, p.date, iv.Start, iv.End, p.fullDay)
	if err != nil {
		return Selection{}, err
	}
	p.selections = append(p.selections, sel)
	p.clearTime()
	p.fullDay = false
	p.state = DateSelected
	return sel, nil
}

// Remove drops the i-th selection.
func (p *Planner) Remove(i int) error {
	if i < 0 || i >= len(p.selections) {
		return fmt.Errorf("selection %d: %w", i, schedule.ErrNotFound)
	}
	p.selections = append(p.selections[:i], p.selections[i+1:]...)
	return nil
}

// TotalPrice sums the captured price of every selection.
func (p *Planner) TotalPrice() int64 {
	var total int64
	for _, s := range p.selections {
		total += s.Price()
	}
	return total
}

// MonthStatus renders the calendar of the active room for one month: past
// days, days with at least one blocked slot, and free days.
func (p *Planner) MonthStatus(ctx context.Context, year int, month time.Month) ([]schedule.DayState, error) {
	if !p.hasRoom {
		return nil, ErrNoRoom
	}
	first, last := schedule.NewDate(year, month, 1).MonthBounds()
	slots, err := p.src.RangeSlots(ctx, p.room.ID, first, last)
	if err != nil {
		return nil, fmt.Errorf("load month %04d-%02d: %w", year, int(month), err)
	}
	return schedule.DayStatuses(first, last, p.today(), model.SlotDates(slots)), nil
}

// IsConflict reports whether err came from an overlap check.
func IsConflict(err error) bool { return errors.Is(err, schedule.ErrConflict) }
