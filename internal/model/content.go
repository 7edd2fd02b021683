package model

import "time"

// ContactInfo is the singleton row holding the business's public contact
// channels.  WhatsApp is the number used as the booking handoff target and
// WAMessage is the greeting that opens the composed message.
type ContactInfo struct {
	WhatsApp  string    `json:"whatsapp"`  // contact_info.whatsapp
	WAMessage string    `json:"waMessage"` // contact_info.wa_message
	Instagram string    `json:"instagram"` // contact_info.instagram
	UpdatedAt time.Time `json:"updatedAt"` // contact_info.updated_at
}

// LandingContent is the singleton row with the editable landing page copy.
type LandingContent struct {
	HeroTitle    string    `json:"heroTitle"`    // landing_content.hero_title
	HeroSubtitle string    `json:"heroSubtitle"` // landing_content.hero_subtitle
	HeroImage    string    `json:"heroImage"`    // landing_content.hero_image
	VisiTitle    string    `json:"visiTitle"`    // landing_content.visi_title
	VisiText     string    `json:"visiText"`     // landing_content.visi_text
	UpdatedAt    time.Time `json:"updatedAt"`    // landing_content.updated_at
}
