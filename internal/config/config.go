// Package config loads application configuration from environment
// variables.  Required variables abort start-up; optional ones fall back to
// defaults.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the core runtime settings.
type Config struct {
	Env            string         // application environment ("dev", "prod")
	Port           string         // HTTP port to listen on
	DBUser         string         // database username
	DBPass         string         // database password (optional)
	DBHost         string         // database host address
	DBPort         string         // database port number
	DBName         string         // database name
	JWTSecret      string         // HS256 signing secret
	AccessTTLMin   int            // access token lifetime in minutes
	RefreshTTLDays int            // refresh token lifetime in days
	BcryptCost     int            // bcrypt cost for password hashing
	Seed           bool           // insert admin, contact and default rooms on start
	AdminEmail     string         // bootstrap admin email used by the seed
	AdminPassword  string         // bootstrap admin password used by the seed
	CORSOrigins    []string       // allowed browser origins; empty allows all
	Location       *time.Location // studio time zone; decides what "today" is
}

// Load reads the configuration.  Missing required variables are fatal.
func Load() Config {
	return Config{
		Env:            getenv("APP_ENV", "dev"),
		Port:           getenv("APP_PORT", "8080"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"),
		DBHost:         must("DB_HOST"),
		DBPort:         getenv("DB_PORT", "3306"),
		DBName:         must("DB_NAME"),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
		RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),
		BcryptCost:     envInt("BCRYPT_COST", 10),
		Seed:           envBool("SEED", false),
		AdminEmail:     getenv("ADMIN_EMAIL", "admin@voxprohub.local"),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
		CORSOrigins:    splitList(os.Getenv("CORS_ORIGINS")),
		Location:       mustLocation(getenv("APP_TZ", "Asia/Makassar")),
	}
}

// AccessTTL is AccessTTLMin as a duration.
func (c Config) AccessTTL() time.Duration { return time.Duration(c.AccessTTLMin) * time.Minute }

// RefreshTTL is RefreshTTLDays as a duration.
func (c Config) RefreshTTL() time.Duration { return time.Duration(c.RefreshTTLDays) * 24 * time.Hour }

// must retrieves a required environment variable or exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is must() converted to an int.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

func mustLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Fatalf("invalid APP_TZ %q: %v", name, err)
	}
	return loc
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
