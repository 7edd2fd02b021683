package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/studio-booking/internal/model"
	"github.com/iliyamo/studio-booking/internal/schedule"
)

// maxRangeDays caps range queries; a calendar never asks for more than a
// few weeks.
const maxRangeDays = 366

// SlotStore is the availability store as used by the HTTP layer.
type SlotStore interface {
	ListByDay(ctx context.Context, roomID uint64, day schedule.Date) ([]model.UnavailableSlot, error)
	ListByRange(ctx context.Context, roomID uint64, from, to schedule.Date) ([]model.UnavailableSlot, error)
	Create(ctx context.Context, s model.UnavailableSlot) (model.UnavailableSlot, error)
	Delete(ctx context.Context, id uint64) error
}

// RoomChecker tells whether a room id exists.
type RoomChecker interface {
	Exists(ctx context.Context, id uint64) (bool, error)
}

// SlotHandler serves blocked-slot reads for visitors and slot management
// for admins.
type SlotHandler struct {
	Slots SlotStore
	Rooms RoomChecker
	Log   *zap.Logger
	Loc   *time.Location
	Now   func() time.Time
}

func NewSlotHandler(slots SlotStore, rooms RoomChecker, loc *time.Location, log *zap.Logger) *SlotHandler {
	if loc == nil {
		loc = time.Local
	}
	return &SlotHandler{Slots: slots, Rooms: rooms, Log: log, Loc: loc, Now: time.Now}
}

func (h *SlotHandler) today() schedule.Date {
	return schedule.DateOf(h.Now().In(h.Loc))
}

// room resolves the :id parameter to an existing room or writes the error
// response itself.
func (h *SlotHandler) room(ctx context.Context, c echo.Context) (uint64, bool, error) {
	id, ok := parseID(c, "id")
	if !ok {
		return 0, false, c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	exists, err := h.Rooms.Exists(ctx, id)
	if err != nil {
		return 0, false, fail(c, h.Log, err)
	}
	if !exists {
		return 0, false, c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
	}
	return id, true, nil
}

func queryDate(c echo.Context, name string) (schedule.Date, bool) {
	d, err := schedule.ParseDate(strings.TrimSpace(c.QueryParam(name)))
	return d, err == nil
}

// ListDay handles GET /rooms/:id/unavailable?date=YYYY-MM-DD.
func (h *SlotHandler) ListDay(c echo.Context) error {
	day, ok := queryDate(c, "date")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date is required (YYYY-MM-DD)"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	roomID, ok, err := h.room(ctx, c)
	if !ok {
		return err
	}
	slots, err := h.Slots.ListByDay(ctx, roomID, day)
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, slots)
}

func (h *SlotHandler) rangeParams(c echo.Context) (from, to schedule.Date, errMsg string) {
	from, okFrom := queryDate(c, "start")
	to, okTo := queryDate(c, "end")
	switch {
	case !okFrom || !okTo:
		return from, to, "start and end are required (YYYY-MM-DD)"
	case to.Before(from):
		return from, to, "start must not be after end"
	case from.AddDays(maxRangeDays).Before(to):
		return from, to, "range too large"
	}
	return from, to, ""
}

// ListRange handles GET /rooms/:id/unavailable-range?start=&end=.
func (h *SlotHandler) ListRange(c echo.Context) error {
	from, to, msg := h.rangeParams(c)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	roomID, ok, err := h.room(ctx, c)
	if !ok {
		return err
	}
	slots, err := h.Slots.ListByRange(ctx, roomID, from, to)
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, slots)
}

// Availability handles GET /rooms/:id/availability?start=&end= and returns
// one calendar status per day.
func (h *SlotHandler) Availability(c echo.Context) error {
	from, to, msg := h.rangeParams(c)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	roomID, ok, err := h.room(ctx, c)
	if !ok {
		return err
	}
	slots, err := h.Slots.ListByRange(ctx, roomID, from, to)
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"roomId": roomID,
		"days":   schedule.DayStatuses(from, to, h.today(), model.SlotDates(slots)),
	})
}

type createSlotReq struct {
	RoomID uint64 `json:"roomId"`
	Date   string `json:"date"`
	Start  string `json:"start"`
	End    string `json:"end"`
	Reason string `json:"reason"`
}

// Create handles POST /admin/unavailable.
func (h *SlotHandler) Create(c echo.Context) error {
	var req createSlotReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.RoomID == 0 || strings.TrimSpace(req.Date) == "" || strings.TrimSpace(req.Start) == "" || strings.TrimSpace(req.End) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "roomId, date, start, end are required"})
	}
	day, err := schedule.ParseDate(req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	start, err := schedule.ParseClock(req.Start)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start must be HH:MM"})
	}
	end, err := schedule.ParseClock(req.End)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end must be HH:MM"})
	}
	if start >= end {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start must be earlier than end"})
	}
	slot, err := model.NewUnavailableSlot(req.RoomID, day, start, end, req.Reason)
	if err != nil {
		return fail(c, h.Log, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	created, err := h.Slots.Create(ctx, slot)
	if err != nil {
		return fail(c, h.Log, err)
	}
	h.Log.Info("slot blocked",
		zap.Uint64("slot_id", created.ID),
		zap.Uint64("room_id", created.RoomID),
		zap.Stringer("date", created.Date),
		zap.Stringer("window", created.Interval()))
	return c.JSON(http.StatusCreated, created)
}

// Delete handles DELETE /admin/unavailable/:id.
func (h *SlotHandler) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid slot id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	if err := h.Slots.Delete(ctx, id); err != nil {
		return fail(c, h.Log, err)
	}
	return c.NoContent(http.StatusNoContent)
}
