package domain

import "time"

// Seed role names. A fresh system must contain exactly these two before
// it accepts traffic.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type Role struct {
	ID        string
	Name      string // unique
	CreatedAt time.Time
}
