package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema lists idempotent DDL statements applied in order by Migrate.
// start_time/end_time are zero-padded "HH:MM" strings so that string
// comparison in SQL matches wall-clock order ("24:00" sorts last).
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name          VARCHAR(120) NOT NULL,
		email         VARCHAR(190) NOT NULL UNIQUE,
		password_hash VARCHAR(100) NOT NULL,
		role          VARCHAR(16)  NOT NULL DEFAULT 'USER',
		created_at    DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id    BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64) NOT NULL UNIQUE,
		expires_at DATETIME NOT NULL,
		revoked_at DATETIME NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT fk_refresh_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS rooms (
		id             BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name           VARCHAR(120) NOT NULL UNIQUE,
		capacity       INT UNSIGNED NOT NULL,
		price_per_hour BIGINT NOT NULL,
		facilities     JSON NOT NULL,
		is_active      TINYINT(1) NOT NULL DEFAULT 1,
		created_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS unavailable_slots (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		room_id    BIGINT UNSIGNED NOT NULL,
		slot_date  DATE NOT NULL,
		start_time CHAR(5) NOT NULL,
		end_time   CHAR(5) NOT NULL,
		reason     VARCHAR(255) NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_slots_room_day (room_id, slot_date, start_time),
		CONSTRAINT fk_slots_room FOREIGN KEY (room_id) REFERENCES rooms(id) ON DELETE RESTRICT,
		CONSTRAINT chk_slots_order CHECK (start_time < end_time)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS contact_info (
		id         TINYINT UNSIGNED PRIMARY KEY,
		whatsapp   VARCHAR(32)  NOT NULL DEFAULT '',
		wa_message VARCHAR(500) NOT NULL DEFAULT '',
		instagram  VARCHAR(120) NOT NULL DEFAULT '',
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS landing_content (
		id            TINYINT UNSIGNED PRIMARY KEY,
		hero_title    VARCHAR(200) NOT NULL DEFAULT '',
		hero_subtitle VARCHAR(500) NOT NULL DEFAULT '',
		hero_image    VARCHAR(500) NOT NULL DEFAULT '',
		visi_title    VARCHAR(200) NOT NULL DEFAULT '',
		visi_text     TEXT NOT NULL,
		updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS leads (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		ref        CHAR(36) NOT NULL UNIQUE,
		source     VARCHAR(64) NOT NULL,
		note       TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate creates missing tables.  It never alters existing ones.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate statement %d: %w", i, err)
		}
	}
	return nil
}
