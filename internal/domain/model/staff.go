package model

import "time"

// Staff is an employee account with access to fulfillment and reports.
type Staff struct {
	ID           string
	Name         string
	Username     string
	PasswordHash string
	Department   string
	JoinedAt     time.Time
}
