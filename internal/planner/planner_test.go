package planner

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/studio-booking/internal/model"
	"github.com/iliyamo/studio-booking/internal/schedule"
)

var (
	today        = schedule.NewDate(2026, time.October, 16)
	meetingRoom  = model.Room{ID: 1, Name: "Meeting Room", PricePerHour: 150000, IsActive: true}
	podcastRoom  = model.Room{ID: 2, Name: "Podcast Room", PricePerHour: 200000, IsActive: true}
	errBackendUp = errors.New("backend unavailable")
)

type fakeSource struct {
	slots map[uint64][]model.UnavailableSlot
	err   error
	calls int
}

func (f *fakeSource) DaySlots(_ context.Context, roomID uint64, day schedule.Date) ([]model.UnavailableSlot, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	var out []model.UnavailableSlot
	for _, s := range f.slots[roomID] {
		if s.Date == day {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSource) RangeSlots(_ context.Context, roomID uint64, from, to schedule.Date) ([]model.UnavailableSlot, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	var out []model.UnavailableSlot
	for _, s := range f.slots[roomID] {
		if !s.Date.Before(from) && !s.Date.After(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

func block(t *testing.T, roomID uint64, day schedule.Date, start, end string) model.UnavailableSlot {
	t.Helper()
	s, err := model.NewUnavailableSlot(roomID, day, schedule.MustClock(start), schedule.MustClock(end), "")
	require.NoError(t, err)
	return s
}

func newPlanner(src SlotSource, opts Options) *Planner {
	opts.Now = func() time.Time { return time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC) }
	opts.Location = time.UTC
	return New(src, opts)
}

func hourDisabled(hours []HourOption, at string) bool {
	for _, h := range hours {
		if h.Start == schedule.MustClock(at) {
			return h.Disabled
		}
	}
	panic("hour not offered: " + at)
}

func TestCandidateHours_ReflectsBlocksAndSelections(t *testing.T) {
	day := today.AddDays(3)
	src := &fakeSource{slots: map[uint64][]model.UnavailableSlot{1: {block(t, 1, day, "10:00", "11:00")}}}
	p := newPlanner(src, Options{})

	require.NoError(t, p.SelectRoom(meetingRoom))
	require.NoError(t, p.SelectDate(context.Background(), day))
	require.NoError(t, p.SelectTime(schedule.MustClock("14:00")))
	require.NoError(t, p.SetDuration(1))
	_, err := p.Add()
	require.NoError(t, err)

	hours := p.CandidateHours()
	require.Len(t, hours, 14)
	assert.True(t, hourDisabled(hours, "10:00"))
	assert.True(t, hourDisabled(hours, "14:00"))
	assert.False(t, hourDisabled(hours, "11:00"))
	assert.False(t, hourDisabled(hours, "15:00"))
	assert.False(t, hourDisabled(hours, "08:00"))
	assert.False(t, hourDisabled(hours, "21:00"))
}

func TestCandidateHours_AllDisabledWithoutDateOrInFullDay(t *testing.T) {
	p := newPlanner(&fakeSource{}, Options{})
	require.NoError(t, p.SelectRoom(meetingRoom))
	for _, h := range p.CandidateHours() {
		assert.True(t, h.Disabled)
	}

	require.NoError(t, p.SelectDate(context.Background(), today))
	require.NoError(t, p.SetFullDay(true))
	for _, h := range p.CandidateHours() {
		assert.True(t, h.Disabled)
	}
	assert.ErrorIs(t, p.SelectTime(schedule.MustClock("09:00")), ErrFullDayActive)
}

func TestSelectionsOnOtherRoomOrDayDoNotDisable(t *testing.T) {
	day := today.AddDays(1)
	p := newPlanner(&fakeSource{}, Options{})
	require.NoError(t, p.SelectRoom(meetingRoom))
	require.NoError(t, p.SelectDate(context.Background(), day))
	require.NoError(t, p.SelectTime(schedule.MustClock("09:00")))
	_, err := p.Add()
	require.NoError(t, err)

	require.NoError(t, p.SelectDate(context.Background(), day.AddDays(1)))
	assert.False(t, hourDisabled(p.CandidateHours(), "09:00"))

	require.NoError(t, p.SelectRoom(podcastRoom))
	require.NoError(t, p.SelectDate(context.Background(), day))
	assert.False(t, hourDisabled(p.CandidateHours(), "09:00"))
}

func TestTotalPrice_FullDayAndPartial(t *testing.T) {
	p := newPlanner(&fakeSource{}, Options{})
	require.NoError(t, p.SelectRoom(meetingRoom))
	require.NoError(t, p.SelectDate(context.Background(), today.AddDays(1)))
	require.NoError(t, p.SetFullDay(true))
	full, err := p.Add()
	require.NoError(t, err)
	assert.Equal(t, int64(2100000), full.Price())
	assert.Equal(t, "08:00", full.Start.String())
	assert.Equal(t, "22:00", full.End.String())

	require.NoError(t, p.SelectDate(context.Background(), today.AddDays(2)))
	require.NoError(t, p.SelectTime(schedule.MustClock("10:00")))
	require.NoError(t, p.SetDuration(2))
	part, err := p.Add()
	require.NoError(t, err)
	assert.Equal(t, int64(300000), part.Price())

	assert.Equal(t, int64(2400000), p.TotalPrice())
}

func TestPriceCapturedAtSelection(t *testing.T) {
	p := newPlanner(&fakeSource{}, Options{})
	room := meetingRoom
	require.NoError(t, p.SelectRoom(room))
	require.NoError(t, p.SelectDate(context.Background(), today))
	require.NoError(t, p.SelectTime(schedule.MustClock("12:00")))
	require.NoError(t, p.SetDuration(1))
	_, err := p.Add()
	require.NoError(t, err)

	room.PricePerHour = 999999
	require.NoError(t, p.SelectRoom(room))
	assert.Equal(t, int64(150000), p.TotalPrice())
}

func TestValidate_BlocksOverlapsWithoutCorrection(t *testing.T) {
	day := today.AddDays(1)
	src := &fakeSource{slots: map[uint64][]model.UnavailableSlot{1: {block(t, 1, day, "12:00", "13:00")}}}
	p := newPlanner(src, Options{})
	require.NoError(t, p.SelectRoom(meetingRoom))
	require.NoError(t, p.SelectDate(context.Background(), day))

	require.NoError(t, p.SelectTime(schedule.MustClock("10:00")))
	require.NoError(t, p.SetDuration(3)) // 10:00-13:00 runs into the block
	err := p.Validate()
	require.Error(t, err)
	assert.True(t, IsConflict(err))
	var ce *schedule.ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "12:00-13:00", ce.With[0].String())

	_, err = p.Add()
	require.Error(t, err)
	assert.Empty(t, p.Selections())
	d, ok := p.EndTime()
	require.True(t, ok)
	assert.Equal(t, "13:00", d.String(), "the pick is left as entered")

	require.NoError(t, p.SetDuration(2))
	_, err = p.Add()
	require.NoError(t, err)

	// full day now collides with both the block and the selection
	require.NoError(t, p.SetFullDay(true))
	assert.True(t, IsConflict(p.Validate()))
}

func TestSelectTime_RejectsDisabledAndOutOfHours(t *testing.T) {
	day := today.AddDays(1)
	src := &fakeSource{slots: map[uint64][]model.UnavailableSlot{1: {block(t, 1, day, "10:00", "11:00")}}}
	p := newPlanner(src, Options{})
	require.NoError(t, p.SelectRoom(meetingRoom))
	assert.ErrorIs(t, p.SelectTime(schedule.MustClock("09:00")), ErrNoDate)

	require.NoError(t, p.SelectDate(context.Background(), day))
	assert.True(t, IsConflict(p.SelectTime(schedule.MustClock("10:00"))))
	assert.ErrorIs(t, p.SelectTime(schedule.MustClock("07:00")), schedule.ErrValidation)
	assert.ErrorIs(t, p.SelectTime(schedule.MustClock("22:00")), schedule.ErrValidation)
	assert.ErrorIs(t, p.SelectTime(schedule.MustClock("09:30")), schedule.ErrValidation)
	assert.Equal(t, DateSelected, p.State())
}

func TestEndTimeNotClampedByDefault(t *testing.T) {
	p := newPlanner(&fakeSource{}, Options{})
	require.NoError(t, p.SelectRoom(meetingRoom))
	require.NoError(t, p.SelectDate(context.Background(), today.AddDays(1)))
	require.NoError(t, p.SelectTime(schedule.MustClock("20:00")))
	require.NoError(t, p.SetDuration(4))

	end, ok := p.EndTime()
	require.True(t, ok)
	assert.Equal(t, "24:00", end.String())
	assert.NoError(t, p.Validate())

	require.NoError(t, p.SetDuration(5))
	assert.ErrorIs(t, p.Validate(), schedule.ErrValidation, "cannot cross midnight")

	clamped := newPlanner(&fakeSource{}, Options{ClampToClose: true})
	require.NoError(t, clamped.SelectRoom(meetingRoom))
	require.NoError(t, clamped.SelectDate(context.Background(), today.AddDays(1)))
	require.NoError(t, clamped.SelectTime(schedule.MustClock("20:00")))
	require.NoError(t, clamped.SetDuration(3))
	assert.ErrorIs(t, clamped.Validate(), schedule.ErrValidation)
	require.NoError(t, clamped.SetDuration(2))
	assert.NoError(t, clamped.Validate())
}

func TestSetDurationBounds(t *testing.T) {
	p := newPlanner(&fakeSource{}, Options{})
	assert.Equal(t, 2, p.Duration())
	assert.Error(t, p.SetDuration(0))
	assert.Error(t, p.SetDuration(9))
	assert.NoError(t, p.SetDuration(8))
}

func TestStateMachine(t *testing.T) {
	src := &fakeSource{}
	p := newPlanner(src, Options{})
	assert.Equal(t, Idle, p.State())
	assert.ErrorIs(t, p.SelectDate(context.Background(), today), ErrNoRoom)

	require.NoError(t, p.SelectRoom(meetingRoom))
	require.NoError(t, p.SelectDate(context.Background(), today))
	assert.Equal(t, DateSelected, p.State())
	require.NoError(t, p.SelectTime(schedule.MustClock("16:00")))
	assert.Equal(t, TimeSelected, p.State())

	_, err := p.Add()
	require.NoError(t, err)
	assert.Equal(t, DateSelected, p.State())
	assert.Equal(t, today, p.Date(), "date is kept for the next pick")
	_, ok := p.StartTime()
	assert.False(t, ok)

	calls := src.calls
	require.NoError(t, p.SelectRoom(podcastRoom))
	assert.Equal(t, Idle, p.State())
	assert.True(t, p.Date().IsZero())
	assert.Equal(t, calls, src.calls, "switching room fetches nothing")
	assert.Len(t, p.Selections(), 1)
}

func TestSelectDate_PastAndFetchFailure(t *testing.T) {
	src := &fakeSource{}
	p := newPlanner(src, Options{})
	require.NoError(t, p.SelectRoom(meetingRoom))
	assert.ErrorIs(t, p.SelectDate(context.Background(), today.AddDays(-1)), ErrPastDate)

	day := today.AddDays(2)
	require.NoError(t, p.SelectDate(context.Background(), day))
	require.NoError(t, p.SelectTime(schedule.MustClock("09:00")))

	src.err = errBackendUp
	err := p.SelectDate(context.Background(), day.AddDays(1))
	assert.ErrorIs(t, err, errBackendUp)
	assert.Equal(t, TimeSelected, p.State())
	assert.Equal(t, day, p.Date())
	start, ok := p.StartTime()
	assert.True(t, ok)
	assert.Equal(t, "09:00", start.String())
}

func TestRemove(t *testing.T) {
	p := newPlanner(&fakeSource{}, Options{})
	require.NoError(t, p.SelectRoom(meetingRoom))
	require.NoError(t, p.SelectDate(context.Background(), today))
	require.NoError(t, p.SelectTime(schedule.MustClock("09:00")))
	_, err := p.Add()
	require.NoError(t, err)

	assert.True(t, hourDisabled(p.CandidateHours(), "09:00"))
	assert.ErrorIs(t, p.Remove(3), schedule.ErrNotFound)
	require.NoError(t, p.Remove(0))
	assert.Empty(t, p.Selections())
	assert.False(t, hourDisabled(p.CandidateHours(), "09:00"))
}

func TestMonthStatus(t *testing.T) {
	src := &fakeSource{slots: map[uint64][]model.UnavailableSlot{1: {
		block(t, 1, schedule.NewDate(2026, time.October, 2), "08:00", "09:00"),
		block(t, 1, schedule.NewDate(2026, time.October, 20), "08:00", "22:00"),
		block(t, 1, schedule.NewDate(2026, time.October, 22), "12:00", "13:00"),
	}}}
	p := newPlanner(src, Options{})
	require.NoError(t, p.SelectRoom(meetingRoom))

	days, err := p.MonthStatus(context.Background(), 2026, time.October)
	require.NoError(t, err)
	require.Len(t, days, 31)
	assert.Equal(t, schedule.DayPast, days[1].Status)
	assert.Equal(t, schedule.DayAvailable, days[15].Status)
	assert.Equal(t, schedule.DayHasSlot, days[19].Status)
	assert.Equal(t, schedule.DayHasSlot, days[21].Status, "a one-hour block looks like a full-day block")

	src.err = errBackendUp
	_, err = p.MonthStatus(context.Background(), 2026, time.November)
	assert.ErrorIs(t, err, errBackendUp)
}

type chanSink chan string

func (s chanSink) PostLead(_ context.Context, source, note string) (string, error) {
	s <- source + "|" + note
	return "", errBackendUp
}

func TestHandoff(t *testing.T) {
	p := newPlanner(&fakeSource{}, Options{})
	contact := model.ContactInfo{WhatsApp: "+62 852-4200-8058", WAMessage: "Halo Voxpro Hub, saya ingin booking ruangan."}

	_, err := p.Handoff(contact, "Rina", nil)
	assert.ErrorIs(t, err, ErrNoSelections)

	require.NoError(t, p.SelectRoom(podcastRoom))
	require.NoError(t, p.SelectDate(context.Background(), today.AddDays(1)))
	require.NoError(t, p.SelectTime(schedule.MustClock("10:00")))
	_, err = p.Add()
	require.NoError(t, err)

	_, err = p.Handoff(model.ContactInfo{}, "Rina", nil)
	assert.ErrorIs(t, err, ErrNoWhatsApp)

	sink := make(chanSink, 1)
	h, err := p.Handoff(contact, "Rina", sink)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(h.URL, "https://wa.me/6285242008058?text="))
	assert.Contains(t, h.Message, "Name: Rina")
	assert.Contains(t, h.Message, "1. Podcast Room | 2026-10-17 | 10:00-12:00")
	assert.Contains(t, h.Message, "Rp 400.000")

	u, err := url.Parse(h.URL)
	require.NoError(t, err)
	assert.Equal(t, h.Message, u.Query().Get("text"))

	select {
	case got := <-sink:
		assert.Equal(t, "booking_page_whatsapp|room=Podcast Room;dates=2026-10-17 10:00-12:00", got)
	case <-time.After(time.Second):
		t.Fatal("lead was not posted")
	}
}

func TestFormatIDR(t *testing.T) {
	assert.Equal(t, "Rp 0", FormatIDR(0))
	assert.Equal(t, "Rp 150.000", FormatIDR(150000))
	assert.Equal(t, "Rp 2.100.000", FormatIDR(2100000))
	assert.Equal(t, "-Rp 1.000", FormatIDR(-1000))
}

func TestOptions_PartialOrInvertedHours(t *testing.T) {
	cases := []struct {
		name        string
		opts        Options
		first, last string
		count       int
	}{
		{"open only", Options{OpenHour: 9}, "09:00", "21:00", 13},
		{"close only", Options{CloseHour: 18}, "08:00", "17:00", 10},
		{"inverted", Options{OpenHour: 22, CloseHour: 8}, "08:00", "21:00", 14},
		{"empty window", Options{OpenHour: 10, CloseHour: 10}, "08:00", "21:00", 14},
		{"out of range", Options{OpenHour: -3, CloseHour: 30}, "00:00", "23:00", 24},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := newPlanner(&fakeSource{}, tc.opts)
			hours := p.CandidateHours()
			require.Len(t, hours, tc.count)
			assert.Equal(t, tc.first, hours[0].Start.String())
			assert.Equal(t, tc.last, hours[len(hours)-1].Start.String())

			require.NoError(t, p.SelectRoom(meetingRoom))
			require.NoError(t, p.SelectDate(context.Background(), today.AddDays(1)))
			require.NoError(t, p.SetFullDay(true))
			iv, err := p.Candidate()
			require.NoError(t, err)
			assert.Less(t, iv.Start, iv.End)
			assert.Equal(t, tc.first, iv.Start.String())
		})
	}
}
