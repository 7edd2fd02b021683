// Package repository holds the MySQL data access for rooms, blocked slots,
// site content, leads and accounts.  Not-found and overlap failures are
// reported with the schedule package's error classes so handlers can map
// them without knowing about SQL.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/studio-booking/internal/schedule"
)

// ErrNotFound is returned when a lookup, update or delete matches no row.
var ErrNotFound = schedule.ErrNotFound

// ErrEmailExists is returned by UserRepo.Create for a taken email.
var ErrEmailExists = errors.New("email already exists")

// ErrRoomNameTaken is returned when a room name collides with another room.
var ErrRoomNameTaken = errors.New("room name already exists")

// isDuplicate reports a MySQL unique key violation (error 1062).
func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
