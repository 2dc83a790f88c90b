package domain

import "time"

type Fruit struct {
	ID          string
	Name        string // unique
	Description string
	Season      string // e.g. "summer", "year-round"
	RegionID    string // optional, references a Region
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
