package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/studio-booking/internal/model"
	"github.com/iliyamo/studio-booking/internal/schedule"
)

// SlotRepo is the availability store: it persists admin-defined blocked
// windows and guarantees that no two windows of the same room and day
// overlap.
type SlotRepo struct {
	db *sql.DB
}

func NewSlotRepo(db *sql.DB) *SlotRepo { return &SlotRepo{db: db} }

const slotColumns = `id, room_id, slot_date, start_time, end_time, reason, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSlot(row rowScanner) (model.UnavailableSlot, error) {
	var (
		s          model.UnavailableSlot
		day        time.Time
		start, end string
		reason     sql.NullString
	)
	if err := row.Scan(&s.ID, &s.RoomID, &day, &start, &end, &reason, &s.CreatedAt); err != nil {
		return model.UnavailableSlot{}, err
	}
	var err error
	s.Date = schedule.DateOf(day)
	if s.Start, err = schedule.ParseClock(start); err != nil {
		return model.UnavailableSlot{}, err
	}
	if s.End, err = schedule.ParseClock(end); err != nil {
		return model.UnavailableSlot{}, err
	}
	if reason.Valid {
		r := reason.String
		s.Reason = &r
	}
	return s, nil
}

func collectSlots(rows *sql.Rows) ([]model.UnavailableSlot, error) {
	defer rows.Close()
	out := []model.UnavailableSlot{}
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ListByDay returns the room's blocks on one day ordered by start time.  An
// unknown room yields an empty list.
func (r *SlotRepo) ListByDay(ctx context.Context, roomID uint64, day schedule.Date) ([]model.UnavailableSlot, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+slotColumns+` FROM unavailable_slots
		 WHERE room_id = ? AND slot_date = ?
		 ORDER BY start_time, id`,
		roomID, day.String())
	if err != nil {
		return nil, err
	}
	return collectSlots(rows)
}

// ListByRange returns the room's blocks with from <= date <= to ordered by
// date then start time.  An inverted range yields an empty list.
func (r *SlotRepo) ListByRange(ctx context.Context, roomID uint64, from, to schedule.Date) ([]model.UnavailableSlot, error) {
	if to.Before(from) {
		return []model.UnavailableSlot{}, nil
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+slotColumns+` FROM unavailable_slots
		 WHERE room_id = ? AND slot_date BETWEEN ? AND ?
		 ORDER BY slot_date, start_time, id`,
		roomID, from.String(), to.String())
	if err != nil {
		return nil, err
	}
	return collectSlots(rows)
}

// Create stores a validated slot.  The room row is locked for the duration
// of the transaction so that concurrent creates for the same room are
// serialized and the overlap check cannot race.  It returns ErrNotFound for
// an unknown room and a *schedule.ConflictError listing the existing
// windows that intersect the new one.
func (r *SlotRepo) Create(ctx context.Context, s model.UnavailableSlot) (model.UnavailableSlot, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.UnavailableSlot{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var lockedID uint64
	err = tx.QueryRowContext(ctx, `SELECT id FROM rooms WHERE id = ? FOR UPDATE`, s.RoomID).Scan(&lockedID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.UnavailableSlot{}, ErrNotFound
	}
	if err != nil {
		return model.UnavailableSlot{}, err
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT start_time, end_time FROM unavailable_slots
		 WHERE room_id = ? AND slot_date = ? AND start_time < ? AND end_time > ?
		 ORDER BY start_time`,
		s.RoomID, s.Date.String(), s.End.String(), s.Start.String())
	if err != nil {
		return model.UnavailableSlot{}, err
	}
	var clashes []schedule.Interval
	for rows.Next() {
		var a, b string
		if err := rows.Scan(&a, &b); err != nil {
			rows.Close()
			return model.UnavailableSlot{}, err
		}
		iv := schedule.Interval{}
		if iv.Start, err = schedule.ParseClock(a); err != nil {
			rows.Close()
			return model.UnavailableSlot{}, err
		}
		if iv.End, err = schedule.ParseClock(b); err != nil {
			rows.Close()
			return model.UnavailableSlot{}, err
		}
		clashes = append(clashes, iv)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return model.UnavailableSlot{}, err
	}
	if len(clashes) > 0 {
		return model.UnavailableSlot{}, &schedule.ConflictError{With: clashes}
	}

	var reason any
	if s.Reason != nil {
		reason = *s.Reason
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO unavailable_slots (room_id, slot_date, start_time, end_time, reason) VALUES (?, ?, ?, ?, ?)`,
		s.RoomID, s.Date.String(), s.Start.String(), s.End.String(), reason)
	if err != nil {
		return model.UnavailableSlot{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.UnavailableSlot{}, err
	}
	created, err := scanSlot(tx.QueryRowContext(ctx,
		`SELECT `+slotColumns+` FROM unavailable_slots WHERE id = ?`, id))
	if err != nil {
		return model.UnavailableSlot{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.UnavailableSlot{}, err
	}
	committed = true
	return created, nil
}

// Delete removes a slot by id.
func (r *SlotRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM unavailable_slots WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteBefore prunes every slot dated strictly before cutoff and returns
// how many rows were removed.
func (r *SlotRepo) DeleteBefore(ctx context.Context, cutoff schedule.Date) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM unavailable_slots WHERE slot_date < ?`, cutoff.String())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
