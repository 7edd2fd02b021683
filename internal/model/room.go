package model

import (
	"strings"
	"time"

	"github.com/iliyamo/studio-booking/internal/schedule"
)

// Room is a rentable space.  Rooms are reference data for availability: the
// scheduling code only reads ID, Name and PricePerHour.  Rooms are never hard
// deleted; deactivation hides them from the public catalog.
//
// Fields:
//  ID           – primary key identifier.
//  Name         – unique display name.
//  Capacity     – number of people the room seats.
//  PricePerHour – hourly rate in whole currency units (IDR has no minor unit).
//  Facilities   – free-form amenity labels.
//  IsActive     – whether the room is listed publicly.
type Room struct {
	ID           uint64    `json:"id"`           // rooms.id
	Name         string    `json:"name"`         // rooms.name
	Capacity     uint32    `json:"capacity"`     // rooms.capacity
	PricePerHour int64     `json:"pricePerHour"` // rooms.price_per_hour
	Facilities   []string  `json:"facilities"`   // rooms.facilities (JSON array)
	IsActive     bool      `json:"isActive"`     // rooms.is_active
	CreatedAt    time.Time `json:"createdAt"`    // rooms.created_at
	UpdatedAt    time.Time `json:"updatedAt"`    // rooms.updated_at
}

// NewRoom trims and validates the editable fields of a room.
func NewRoom(name string, capacity uint32, pricePerHour int64, facilities []string, active bool) (Room, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Room{}, schedule.Invalid("name", "is required")
	}
	if capacity == 0 {
		return Room{}, schedule.Invalid("capacity", "must be positive")
	}
	if pricePerHour <= 0 {
		return Room{}, schedule.Invalid("pricePerHour", "must be positive")
	}
	return Room{
		Name:         name,
		Capacity:     capacity,
		PricePerHour: pricePerHour,
		Facilities:   CleanFacilities(facilities),
		IsActive:     active,
	}, nil
}

// CleanFacilities drops blank labels and surrounding whitespace.
func CleanFacilities(in []string) []string {
	out := make([]string, 0, len(in))
	for _, f := range in {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
