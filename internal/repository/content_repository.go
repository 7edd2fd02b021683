package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/studio-booking/internal/model"
)

// ContentRepo manages the contact_info and landing_content singleton rows
// (always id = 1).
type ContentRepo struct {
	db *sql.DB
}

func NewContentRepo(db *sql.DB) *ContentRepo { return &ContentRepo{db: db} }

// GetContact returns the contact row or ErrNotFound before seeding.
func (r *ContentRepo) GetContact(ctx context.Context) (model.ContactInfo, error) {
	var c model.ContactInfo
	err := r.db.QueryRowContext(ctx,
		`SELECT whatsapp, wa_message, instagram, updated_at FROM contact_info WHERE id = 1`).
		Scan(&c.WhatsApp, &c.WAMessage, &c.Instagram, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ContactInfo{}, ErrNotFound
	}
	return c, err
}

// UpsertContact creates or replaces the contact row.
func (r *ContentRepo) UpsertContact(ctx context.Context, c model.ContactInfo) (model.ContactInfo, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO contact_info (id, whatsapp, wa_message, instagram) VALUES (1, ?, ?, ?)
		 ON DUPLICATE KEY UPDATE whatsapp = VALUES(whatsapp), wa_message = VALUES(wa_message), instagram = VALUES(instagram)`,
		c.WhatsApp, c.WAMessage, c.Instagram)
	if err != nil {
		return model.ContactInfo{}, err
	}
	return r.GetContact(ctx)
}

// GetLanding returns the landing copy or ErrNotFound before seeding.
func (r *ContentRepo) GetLanding(ctx context.Context) (model.LandingContent, error) {
	var l model.LandingContent
	err := r.db.QueryRowContext(ctx,
		`SELECT hero_title, hero_subtitle, hero_image, visi_title, visi_text, updated_at FROM landing_content WHERE id = 1`).
		Scan(&l.HeroTitle, &l.HeroSubtitle, &l.HeroImage, &l.VisiTitle, &l.VisiText, &l.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.LandingContent{}, ErrNotFound
	}
	return l, err
}

// UpsertLanding creates or replaces the landing row.
func (r *ContentRepo) UpsertLanding(ctx context.Context, l model.LandingContent) (model.LandingContent, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO landing_content (id, hero_title, hero_subtitle, hero_image, visi_title, visi_text) VALUES (1, ?, ?, ?, ?, ?)
		 ON DUPLICATE KEY UPDATE hero_title = VALUES(hero_title), hero_subtitle = VALUES(hero_subtitle),
		 hero_image = VALUES(hero_image), visi_title = VALUES(visi_title), visi_text = VALUES(visi_text)`,
		l.HeroTitle, l.HeroSubtitle, l.HeroImage, l.VisiTitle, l.VisiText)
	if err != nil {
		return model.LandingContent{}, err
	}
	return r.GetLanding(ctx)
}
