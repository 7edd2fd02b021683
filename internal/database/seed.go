package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iliyamo/studio-booking/internal/model"
	"github.com/iliyamo/studio-booking/internal/utils"
)

// SeedOptions describes the bootstrap admin account.
type SeedOptions struct {
	AdminEmail    string
	AdminPassword string
	BcryptCost    int
}

var defaultRooms = []struct {
	name       string
	capacity   uint32
	price      int64
	facilities []string
}{
	{"Meeting Room", 8, 150000, []string{"AC", "Projector", "WiFi"}},
	{"Podcast Room", 4, 200000, []string{"Acoustic Treatment", "Mic Pro", "Mixer"}},
	{"Small Room", 3, 100000, []string{"AC", "WiFi"}},
}

// Seed inserts the admin user, the contact singleton and the default rooms.
// Existing rows are left untouched so Seed can run on every start.
func Seed(ctx context.Context, db *sql.DB, opt SeedOptions) error {
	email := strings.ToLower(strings.TrimSpace(opt.AdminEmail))
	if email != "" && opt.AdminPassword != "" {
		hash, err := utils.HashPassword(opt.AdminPassword, opt.BcryptCost)
		if err != nil {
			return fmt.Errorf("seed admin hash: %w", err)
		}
		if _, err := db.ExecContext(ctx,
			"INSERT IGNORE INTO users (name, email, password_hash, role) VALUES (?,?,?,?)",
			"Admin", email, hash, model.RoleAdmin); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
	}

	if _, err := db.ExecContext(ctx,
		"INSERT IGNORE INTO contact_info (id, whatsapp, wa_message, instagram) VALUES (1, ?, ?, ?)",
		"6285242008058", "Halo Voxpro Hub, saya ingin booking ruangan.", "@voxprohub"); err != nil {
		return fmt.Errorf("seed contact: %w", err)
	}
	if _, err := db.ExecContext(ctx,
		"INSERT IGNORE INTO landing_content (id, visi_text) VALUES (1, '')"); err != nil {
		return fmt.Errorf("seed landing: %w", err)
	}

	for _, r := range defaultRooms {
		fac, err := json.Marshal(r.facilities)
		if err != nil {
			return err
		}
		if _, err := db.ExecContext(ctx,
			"INSERT IGNORE INTO rooms (name, capacity, price_per_hour, facilities, is_active) VALUES (?,?,?,?,1)",
			r.name, r.capacity, r.price, string(fac)); err != nil {
			return fmt.Errorf("seed room %q: %w", r.name, err)
		}
	}
	return nil
}
