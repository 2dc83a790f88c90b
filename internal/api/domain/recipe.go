package domain

import "time"

type Recipe struct {
	ID           string
	FruitID      string
	Title        string
	Instructions string
	AuthorID     string // user who submitted the recipe
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
