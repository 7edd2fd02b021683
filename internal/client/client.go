// Package client is a typed HTTP client for the booking API.  Public reads
// need no credentials; admin calls take the Session returned by Login.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/iliyamo/studio-booking/internal/model"
	"github.com/iliyamo/studio-booking/internal/planner"
	"github.com/iliyamo/studio-booking/internal/schedule"
)

var (
	_ planner.SlotSource = (*Client)(nil)
	_ planner.LeadSink   = (*Client)(nil)
)

// Client talks to one API base URL, e.g. "http://localhost:8080/api/v1".
type Client struct {
	base string
	http *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		base: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http: &http.Client{Timeout: timeout},
	}
}

// APIError is a non-2xx response.  It unwraps to the schedule error class
// matching the status so callers can use errors.Is and errors.As.
type APIError struct {
	Status   int
	Message  string
	Overlaps []schedule.Interval
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusBadRequest:
		return &schedule.ValidationError{Reason: e.Message}
	case http.StatusNotFound:
		return schedule.ErrNotFound
	case http.StatusConflict:
		return &schedule.ConflictError{With: e.Overlaps}
	}
	return nil
}

type errorBody struct {
	Error    string              `json:"error"`
	Overlaps []schedule.Interval `json:"overlaps"`
}

// do sends a JSON request and decodes a JSON response into out when out is
// non-nil.
func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var eb errorBody
		_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&eb)
		if eb.Error == "" {
			eb.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: eb.Error, Overlaps: eb.Overlaps}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func roomPath(roomID uint64, tail string) string {
	return "/rooms/" + strconv.FormatUint(roomID, 10) + tail
}

// Rooms lists the active rooms.
func (c *Client) Rooms(ctx context.Context) ([]model.Room, error) {
	var rooms []model.Room
	err := c.do(ctx, http.MethodGet, "/rooms", "", nil, &rooms)
	return rooms, err
}

func (c *Client) Room(ctx context.Context, id uint64) (model.Room, error) {
	var r model.Room
	err := c.do(ctx, http.MethodGet, roomPath(id, ""), "", nil, &r)
	return r, err
}

// DaySlots returns the blocked slots of a room on one day.
func (c *Client) DaySlots(ctx context.Context, roomID uint64, day schedule.Date) ([]model.UnavailableSlot, error) {
	q := url.Values{"date": {day.String()}}
	var slots []model.UnavailableSlot
	err := c.do(ctx, http.MethodGet, roomPath(roomID, "/unavailable?"+q.Encode()), "", nil, &slots)
	return slots, err
}

// RangeSlots returns the blocked slots of a room within [from, to].
func (c *Client) RangeSlots(ctx context.Context, roomID uint64, from, to schedule.Date) ([]model.UnavailableSlot, error) {
	q := url.Values{"start": {from.String()}, "end": {to.String()}}
	var slots []model.UnavailableSlot
	err := c.do(ctx, http.MethodGet, roomPath(roomID, "/unavailable-range?"+q.Encode()), "", nil, &slots)
	return slots, err
}

// Availability returns the server-computed status of every day in [from, to].
func (c *Client) Availability(ctx context.Context, roomID uint64, from, to schedule.Date) ([]schedule.DayState, error) {
	q := url.Values{"start": {from.String()}, "end": {to.String()}}
	var out struct {
		RoomID uint64              `json:"roomId"`
		Days   []schedule.DayState `json:"days"`
	}
	err := c.do(ctx, http.MethodGet, roomPath(roomID, "/availability?"+q.Encode()), "", nil, &out)
	return out.Days, err
}

func (c *Client) Contact(ctx context.Context) (model.ContactInfo, error) {
	var info model.ContactInfo
	err := c.do(ctx, http.MethodGet, "/contact", "", nil, &info)
	return info, err
}

// PostLead records a handoff lead and returns its public ref.
func (c *Client) PostLead(ctx context.Context, source, note string) (string, error) {
	var out struct {
		Ref string `json:"ref"`
	}
	in := map[string]string{"source": source, "note": note}
	if err := c.do(ctx, http.MethodPost, "/leads", "", in, &out); err != nil {
		return "", err
	}
	return out.Ref, nil
}
