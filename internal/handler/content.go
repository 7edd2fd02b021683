package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/studio-booking/internal/model"
	"github.com/iliyamo/studio-booking/internal/schedule"
)

// ContentStore holds the contact and landing singletons.
type ContentStore interface {
	GetContact(ctx context.Context) (model.ContactInfo, error)
	UpsertContact(ctx context.Context, c model.ContactInfo) (model.ContactInfo, error)
	GetLanding(ctx context.Context) (model.LandingContent, error)
	UpsertLanding(ctx context.Context, l model.LandingContent) (model.LandingContent, error)
}

type ContentHandler struct {
	Content ContentStore
	Log     *zap.Logger
}

func NewContentHandler(content ContentStore, log *zap.Logger) *ContentHandler {
	return &ContentHandler{Content: content, Log: log}
}

// NormalizePhone strips everything but digits from a WhatsApp number, as
// wa.me expects.
func NormalizePhone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Contact handles GET /contact.
func (h *ContentHandler) Contact(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	info, err := h.Content.GetContact(ctx)
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, info)
}

// UpdateContact handles PUT /admin/contact.
func (h *ContentHandler) UpdateContact(c echo.Context) error {
	var req model.ContactInfo
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.WhatsApp = NormalizePhone(req.WhatsApp)
	if n := len(req.WhatsApp); n < 8 || n > 15 {
		return fail(c, h.Log, schedule.Invalid("whatsapp", "must be 8 to 15 digits"))
	}
	req.WAMessage = strings.TrimSpace(req.WAMessage)
	req.Instagram = strings.TrimSpace(req.Instagram)

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	saved, err := h.Content.UpsertContact(ctx, req)
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, saved)
}

// Landing handles GET /landing.
func (h *ContentHandler) Landing(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	l, err := h.Content.GetLanding(ctx)
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, l)
}

// UpdateLanding handles PUT /admin/landing.
func (h *ContentHandler) UpdateLanding(c echo.Context) error {
	var req model.LandingContent
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.HeroTitle = strings.TrimSpace(req.HeroTitle)
	if req.HeroTitle == "" {
		return fail(c, h.Log, schedule.Invalid("heroTitle", "is required"))
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	saved, err := h.Content.UpsertLanding(ctx, req)
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, saved)
}
