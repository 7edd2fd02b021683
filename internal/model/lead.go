package model

import "time"

// Lead is the lightweight record logged when a visitor hands their selection
// off to WhatsApp.  Ref is a public UUID echoed back to the caller.
type Lead struct {
	ID        uint64    `json:"id"`        // leads.id
	Ref       string    `json:"ref"`       // leads.ref
	Source    string    `json:"source"`    // leads.source
	Note      string    `json:"note"`      // leads.note
	CreatedAt time.Time `json:"createdAt"` // leads.created_at
}
