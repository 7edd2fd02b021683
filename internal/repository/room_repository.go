package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/iliyamo/studio-booking/internal/model"
)

// RoomRepo reads and writes the room catalog.  Rooms are never hard
// deleted because blocked slots reference them.
type RoomRepo struct {
	db *sql.DB
}

func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

const roomColumns = `id, name, capacity, price_per_hour, facilities, is_active, created_at, updated_at`

func scanRoom(row rowScanner) (model.Room, error) {
	var (
		rm  model.Room
		fac []byte
	)
	if err := row.Scan(&rm.ID, &rm.Name, &rm.Capacity, &rm.PricePerHour, &fac, &rm.IsActive, &rm.CreatedAt, &rm.UpdatedAt); err != nil {
		return model.Room{}, err
	}
	rm.Facilities = []string{}
	if len(fac) > 0 {
		if err := json.Unmarshal(fac, &rm.Facilities); err != nil {
			return model.Room{}, err
		}
	}
	return rm, nil
}

func (r *RoomRepo) list(ctx context.Context, q string) ([]model.Room, error) {
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Room{}
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	return out, rows.Err()
}

// ListActive returns the public catalog ordered by name.
func (r *RoomRepo) ListActive(ctx context.Context) ([]model.Room, error) {
	return r.list(ctx, `SELECT `+roomColumns+` FROM rooms WHERE is_active = 1 ORDER BY name`)
}

// ListAll includes deactivated rooms.
func (r *RoomRepo) ListAll(ctx context.Context) ([]model.Room, error) {
	return r.list(ctx, `SELECT `+roomColumns+` FROM rooms ORDER BY name`)
}

// GetByID returns a room whatever its active flag.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (model.Room, error) {
	rm, err := scanRoom(r.db.QueryRowContext(ctx, `SELECT `+roomColumns+` FROM rooms WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Room{}, ErrNotFound
	}
	return rm, err
}

// Exists reports whether a room row with the id exists.
func (r *RoomRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM rooms WHERE id = ? LIMIT 1`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Create inserts a room and returns it as stored.
func (r *RoomRepo) Create(ctx context.Context, rm model.Room) (model.Room, error) {
	fac, err := json.Marshal(rm.Facilities)
	if err != nil {
		return model.Room{}, err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO rooms (name, capacity, price_per_hour, facilities, is_active) VALUES (?, ?, ?, ?, ?)`,
		rm.Name, rm.Capacity, rm.PricePerHour, string(fac), rm.IsActive)
	if err != nil {
		if isDuplicate(err) {
			return model.Room{}, ErrRoomNameTaken
		}
		return model.Room{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Room{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// Update overwrites the editable fields of room id.
func (r *RoomRepo) Update(ctx context.Context, id uint64, rm model.Room) (model.Room, error) {
	fac, err := json.Marshal(rm.Facilities)
	if err != nil {
		return model.Room{}, err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE rooms SET name = ?, capacity = ?, price_per_hour = ?, facilities = ?, is_active = ? WHERE id = ?`,
		rm.Name, rm.Capacity, rm.PricePerHour, string(fac), rm.IsActive, id)
	if err != nil {
		if isDuplicate(err) {
			return model.Room{}, ErrRoomNameTaken
		}
		return model.Room{}, err
	}
	// MySQL reports 0 affected rows when nothing changed, so confirm by reading.
	if n, _ := res.RowsAffected(); n == 0 {
		if ok, err := r.Exists(ctx, id); err != nil {
			return model.Room{}, err
		} else if !ok {
			return model.Room{}, ErrNotFound
		}
	}
	return r.GetByID(ctx, id)
}

// Deactivate hides a room from the public catalog.
func (r *RoomRepo) Deactivate(ctx context.Context, id uint64) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE rooms SET is_active = 0 WHERE id = ?`, id); err != nil {
		return err
	}
	ok, err := r.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
