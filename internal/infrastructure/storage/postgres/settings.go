package postgres

import (
	"fmt"
	"net/url"
)

// Settings identifies the storage target. It is an explicit value handed to
// NewPool; switching targets means building a new pool and new repositories.
type Settings struct {
	Host     string
	Port     int
	Username string
	Password string
	// Schema is the database name
	Schema  string
	SSLMode string
}

// DSN returns the connection URL. The password is URL-encoded.
func (s Settings) DSN() string {
	port := s.Port
	if port == 0 {
		port = 5432
	}
	sslMode := s.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(s.Username, s.Password),
		Host:     fmt.Sprintf("%s:%d", s.Host, port),
		Path:     "/" + s.Schema,
		RawQuery: "sslmode=" + url.QueryEscape(sslMode),
	}
	return u.String()
}

// String renders the target without the password, for logs.
func (s Settings) String() string {
	return fmt.Sprintf("%s@%s:%d/%s", s.Username, s.Host, s.Port, s.Schema)
}
