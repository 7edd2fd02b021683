package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/studio-booking/internal/model"
	"github.com/iliyamo/studio-booking/internal/queue"
)

// Lead note and source limits.
const (
	maxLeadNote   = 2000
	maxLeadSource = 64
)

type LeadStore interface {
	Create(ctx context.Context, source, note string) (model.Lead, error)
}

// LeadPublisher forwards captured leads to the message broker.
type LeadPublisher interface {
	PublishLead(ctx context.Context, ev queue.LeadCapturedEvent) error
}

type LeadHandler struct {
	Leads     LeadStore
	Publisher LeadPublisher // optional
	Log       *zap.Logger
}

func NewLeadHandler(leads LeadStore, pub LeadPublisher, log *zap.Logger) *LeadHandler {
	return &LeadHandler{Leads: leads, Publisher: pub, Log: log}
}

type leadReq struct {
	Source string `json:"source"`
	Note   string `json:"note"`
}

// Capture handles POST /leads.  The lead is stored synchronously and the
// broker event is sent in the background; a broker failure never fails the
// request.
func (h *LeadHandler) Capture(c echo.Context) error {
	var req leadReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Source = strings.TrimSpace(req.Source)
	req.Note = strings.TrimSpace(req.Note)
	if req.Source == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "source is required"})
	}
	if len(req.Source) > maxLeadSource || len(req.Note) > maxLeadNote {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "source or note too long"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	lead, err := h.Leads.Create(ctx, req.Source, req.Note)
	if err != nil {
		return fail(c, h.Log, err)
	}

	if h.Publisher != nil {
		ev := queue.LeadCapturedEvent{
			Ref:        lead.Ref,
			Source:     lead.Source,
			Note:       lead.Note,
			CapturedAt: lead.CreatedAt.UTC().Format(time.RFC3339),
		}
		go func() {
			pctx, pcancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer pcancel()
			_ = h.Publisher.PublishLead(pctx, ev)
		}()
	}
	return c.JSON(http.StatusAccepted, echo.Map{"ref": lead.Ref})
}
