// Package queue defines the lead events exchanged over RabbitMQ and the
// consumer that records them.
package queue

// LeadCapturedEvent is published after a visitor hands a selection off to
// WhatsApp.
type LeadCapturedEvent struct {
	Ref        string `json:"ref"`
	Source     string `json:"source"`
	Note       string `json:"note"`
	CapturedAt string `json:"captured_at"` // RFC 3339, UTC
}
