package client

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/iliyamo/studio-booking/internal/model"
	"github.com/iliyamo/studio-booking/internal/schedule"
)

// ErrLoggedOut is returned by admin calls made with an ended session.
var ErrLoggedOut = errors.New("session is logged out")

// Session is an authenticated admin or user session.  It is created by
// Login and ended by Logout; nothing is kept globally.
type Session struct {
	c *Client

	UserID       uint64
	Email        string
	Role         string
	AccessToken  string
	AccessExp    time.Time
	RefreshToken string
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

type authResp struct {
	User struct {
		ID    uint64 `json:"id"`
		Email string `json:"email"`
		Role  string `json:"role"`
	} `json:"user"`
	Access  tokenPart `json:"access"`
	Refresh tokenPart `json:"refresh"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var out authResp
	in := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", in, &out); err != nil {
		return nil, err
	}
	return &Session{
		c:            c,
		UserID:       out.User.ID,
		Email:        out.User.Email,
		Role:         out.User.Role,
		AccessToken:  out.Access.Token,
		AccessExp:    out.Access.Expires,
		RefreshToken: out.Refresh.Token,
	}, nil
}

// IsAdmin reports whether the session carries the ADMIN role.
func (s *Session) IsAdmin() bool { return s != nil && s.Role == model.RoleAdmin }

// Refresh rotates the refresh token and replaces both tokens.
func (s *Session) Refresh(ctx context.Context) error {
	if s.RefreshToken == "" {
		return ErrLoggedOut
	}
	var out authResp
	in := map[string]string{"refreshToken": s.RefreshToken}
	if err := s.c.do(ctx, http.MethodPost, "/auth/refresh", "", in, &out); err != nil {
		return err
	}
	s.AccessToken, s.AccessExp = out.Access.Token, out.Access.Expires
	s.RefreshToken = out.Refresh.Token
	return nil
}

// Logout revokes the refresh token server-side and clears the session.
func (s *Session) Logout(ctx context.Context) error {
	if s.RefreshToken == "" {
		return nil
	}
	in := map[string]string{"refreshToken": s.RefreshToken}
	err := s.c.do(ctx, http.MethodPost, "/auth/logout", "", in, nil)
	s.AccessToken, s.RefreshToken = "", ""
	return err
}

func (s *Session) token() (string, error) {
	if s == nil || s.AccessToken == "" {
		return "", ErrLoggedOut
	}
	return s.AccessToken, nil
}

// CreateSlot blocks [start, end) on day for a room.  An overlap comes back
// as an error satisfying errors.As(*schedule.ConflictError).
func (c *Client) CreateSlot(ctx context.Context, s *Session, roomID uint64, day schedule.Date, start, end schedule.Clock, reason string) (model.UnavailableSlot, error) {
	tok, err := s.token()
	if err != nil {
		return model.UnavailableSlot{}, err
	}
	in := map[string]any{
		"roomId": roomID,
		"date":   day.String(),
		"start":  start.String(),
		"end":    end.String(),
		"reason": reason,
	}
	var out model.UnavailableSlot
	err = c.do(ctx, http.MethodPost, "/admin/unavailable", tok, in, &out)
	return out, err
}

func (c *Client) DeleteSlot(ctx context.Context, s *Session, id uint64) error {
	tok, err := s.token()
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, "/admin/unavailable/"+strconv.FormatUint(id, 10), tok, nil, nil)
}
