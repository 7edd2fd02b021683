// Package database opens the MySQL pool and owns the schema and seed data.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Conn describes one MySQL server and database.
type Conn struct {
	User, Pass string
	Host, Port string
	Name       string
}

// DSN builds the driver connection string.  Times are parsed into
// time.Time in UTC so DATE columns map to stable calendar days; the
// connection uses utf8mb4.
func (c Conn) DSN() string {
	mc := mysql.NewConfig()
	mc.User = c.User
	mc.Passwd = c.Pass
	mc.Net = "tcp"
	mc.Addr = c.Host + ":" + c.Port
	mc.DBName = c.Name
	mc.ParseTime = true
	mc.Loc = time.UTC
	mc.Collation = "utf8mb4_unicode_ci"
	return mc.FormatDSN()
}

// Open connects, sizes the pool and pings within ctx.
func Open(ctx context.Context, c Conn) (*sql.DB, error) {
	db, err := sql.Open("mysql", c.DSN())
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s/%s: %w", c.Host, c.Name, err)
	}
	return db, nil
}
