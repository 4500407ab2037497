package domain

import "time"

// Guest identity is the contact number; it is unique across the directory.
type Guest struct {
	ID            int64
	Name          string
	Address       string
	ContactNumber string
	Email         string
	CreatedAt     time.Time
}

type Staff struct {
	ID       int64
	Username string
	FullName string
	Role     string
}
