package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/studio-booking/internal/model"
)

// LeadRepo records WhatsApp handoffs.
type LeadRepo struct {
	db *sql.DB
}

func NewLeadRepo(db *sql.DB) *LeadRepo { return &LeadRepo{db: db} }

// Create stores a lead under a fresh UUID reference.
func (r *LeadRepo) Create(ctx context.Context, source, note string) (model.Lead, error) {
	ref := uuid.NewString()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO leads (ref, source, note) VALUES (?, ?, ?)`, ref, source, note)
	if err != nil {
		return model.Lead{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Lead{}, err
	}
	var l model.Lead
	err = r.db.QueryRowContext(ctx,
		`SELECT id, ref, source, note, created_at FROM leads WHERE id = ?`, id).
		Scan(&l.ID, &l.Ref, &l.Source, &l.Note, &l.CreatedAt)
	return l, err
}

// DeleteBefore prunes leads created before the cutoff.
func (r *LeadRepo) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM leads WHERE created_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
