package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/studio-booking/internal/model"
	"github.com/iliyamo/studio-booking/internal/repository"
)

// RoomStore is the room catalog.
type RoomStore interface {
	ListActive(ctx context.Context) ([]model.Room, error)
	ListAll(ctx context.Context) ([]model.Room, error)
	GetByID(ctx context.Context, id uint64) (model.Room, error)
	Create(ctx context.Context, r model.Room) (model.Room, error)
	Update(ctx context.Context, id uint64, r model.Room) (model.Room, error)
	Deactivate(ctx context.Context, id uint64) error
}

type RoomHandler struct {
	Rooms RoomStore
	Log   *zap.Logger
}

func NewRoomHandler(rooms RoomStore, log *zap.Logger) *RoomHandler {
	return &RoomHandler{Rooms: rooms, Log: log}
}

// List returns active rooms.
func (h *RoomHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	rooms, err := h.Rooms.ListActive(ctx)
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, rooms)
}

// Get returns one active room; deactivated rooms are 404 to visitors.
func (h *RoomHandler) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	rm, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		return fail(c, h.Log, err)
	}
	if !rm.IsActive {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
	}
	return c.JSON(http.StatusOK, rm)
}

// ListAll is the admin view including inactive rooms.
func (h *RoomHandler) ListAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	rooms, err := h.Rooms.ListAll(ctx)
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, rooms)
}

type roomReq struct {
	Name         string   `json:"name"`
	Capacity     uint32   `json:"capacity"`
	PricePerHour int64    `json:"pricePerHour"`
	Facilities   []string `json:"facilities"`
	IsActive     *bool    `json:"isActive"`
}

func (r roomReq) toRoom() (model.Room, error) {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return model.NewRoom(r.Name, r.Capacity, r.PricePerHour, r.Facilities, active)
}

// Create handles POST /admin/rooms.
func (h *RoomHandler) Create(c echo.Context) error {
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	rm, err := req.toRoom()
	if err != nil {
		return fail(c, h.Log, err)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	created, err := h.Rooms.Create(ctx, rm)
	if errors.Is(err, repository.ErrRoomNameTaken) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "room name already exists"})
	}
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// Update handles PUT /admin/rooms/:id and replaces every editable field.
func (h *RoomHandler) Update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	rm, err := req.toRoom()
	if err != nil {
		return fail(c, h.Log, err)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	updated, err := h.Rooms.Update(ctx, id, rm)
	if errors.Is(err, repository.ErrRoomNameTaken) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "room name already exists"})
	}
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, updated)
}

type roomPatch struct {
	Name         *string   `json:"name"`
	Capacity     *uint32   `json:"capacity"`
	PricePerHour *int64    `json:"pricePerHour"`
	Facilities   *[]string `json:"facilities"`
	IsActive     *bool     `json:"isActive"`
}

// apply overlays the fields present in the body onto rm.
func (p roomPatch) apply(rm model.Room) (model.Room, error) {
	if p.Name != nil {
		rm.Name = *p.Name
	}
	if p.Capacity != nil {
		rm.Capacity = *p.Capacity
	}
	if p.PricePerHour != nil {
		rm.PricePerHour = *p.PricePerHour
	}
	if p.Facilities != nil {
		rm.Facilities = *p.Facilities
	}
	if p.IsActive != nil {
		rm.IsActive = *p.IsActive
	}
	return model.NewRoom(rm.Name, rm.Capacity, rm.PricePerHour, rm.Facilities, rm.IsActive)
}

// Patch handles PATCH /admin/rooms/:id.  Only the fields present in the
// body change, so {"isActive": false} toggles visibility alone.
func (h *RoomHandler) Patch(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	var req roomPatch
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	current, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		return fail(c, h.Log, err)
	}
	rm, err := req.apply(current)
	if err != nil {
		return fail(c, h.Log, err)
	}
	updated, err := h.Rooms.Update(ctx, id, rm)
	if errors.Is(err, repository.ErrRoomNameTaken) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "room name already exists"})
	}
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete soft-deletes a room.
func (h *RoomHandler) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	if err := h.Rooms.Deactivate(ctx, id); err != nil {
		return fail(c, h.Log, err)
	}
	return c.NoContent(http.StatusNoContent)
}
