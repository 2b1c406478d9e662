package domain

import "time"

// Location represents a physical site tickets, assets and profiles are scoped to.
type Location struct {
	ID           string
	Code         string
	Name         string
	Address      string
	ContactEmail string
	ContactPhone string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
