package planner

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/iliyamo/studio-booking/internal/model"
	"github.com/iliyamo/studio-booking/internal/schedule"
)

// LeadSource tags leads created by the booking page handoff.
const LeadSource = "booking_page_whatsapp"

// LeadSink records a lead.  Implementations may be slow or fail; the
// planner never waits on them.
type LeadSink interface {
	PostLead(ctx context.Context, source, note string) (string, error)
}

var (
	ErrNoSelections = schedule.Invalid("selections", "add at least one date")
	ErrNoWhatsApp   = schedule.Invalid("whatsapp", "contact number is not configured")
)

// Handoff is the composed chat message and the wa.me link that opens it.
type Handoff struct {
	Message string
	URL     string
}

// Handoff composes the summary of every selection for the business's
// WhatsApp number.  When sink is non-nil a lead is posted in the
// background; its outcome is ignored.
func (p *Planner) Handoff(contact model.ContactInfo, customer string, sink LeadSink) (Handoff, error) {
	if len(p.selections) == 0 {
		return Handoff{}, ErrNoSelections
	}
	number := digitsOnly(contact.WhatsApp)
	if number == "" {
		return Handoff{}, ErrNoWhatsApp
	}

	greeting := strings.TrimSpace(contact.WAMessage)
	if greeting == "" {
		greeting = "Hello, I would like to book a room."
	}
	if customer = strings.TrimSpace(customer); customer == "" {
		customer = "-"
	}
	lines := []string{greeting, "", "Name: " + customer, "", "Booking details:"}
	for i, s := range p.selections {
		lines = append(lines, fmt.Sprintf("%d. %s | %s | %s", i+1, s.RoomName, s.Date, p.window(s)))
	}
	lines = append(lines, "", "Estimated total: "+FormatIDR(p.TotalPrice()))
	msg := strings.Join(lines, "\n")

	if sink != nil {
		note := p.leadNote()
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_, _ = sink.PostLead(ctx, LeadSource, note)
		}()
	}
	return Handoff{
		Message: msg,
		URL:     "https://wa.me/" + number + "?text=" + url.QueryEscape(msg),
	}, nil
}

func (p *Planner) window(s Selection) string {
	if s.FullDay {
		return s.Interval().String() + " (full day)"
	}
	return s.Interval().String()
}

// leadNote is "room=<names>;dates=<day start-end>,...".
func (p *Planner) leadNote() string {
	var rooms, dates []string
	seen := map[string]bool{}
	for _, s := range p.selections {
		if !seen[s.RoomName] {
			seen[s.RoomName] = true
			rooms = append(rooms, s.RoomName)
		}
		dates = append(dates, s.Date.String()+" "+s.Interval().String())
	}
	return "room=" + strings.Join(rooms, "|") + ";dates=" + strings.Join(dates, ",")
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatIDR renders an amount as "Rp 2.100.000".
func FormatIDR(amount int64) string {
	sign := ""
	if amount < 0 {
		sign, amount = "-", -amount
	}
	s := strconv.FormatInt(amount, 10)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return sign + "Rp " + b.String()
}
