package models

import "time"

// FailedLogin is a single failed login attempt. Rows are append-only; they
// are deleted only when the user logs in successfully.
type FailedLogin struct {
	ID          int64     `db:"id"`
	Username    string    `db:"username"`
	IPAddress   string    `db:"ip_address"`
	AttemptedAt time.Time `db:"attempted_at"`
}
