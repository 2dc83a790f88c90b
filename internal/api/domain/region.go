package domain

import "time"

type Region struct {
	ID          string
	Name        string // unique
	Climate     string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
