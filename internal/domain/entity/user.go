package entity

import "time"

// User es una cuenta del personal. Roles guarda los grupos en minúscula (admin, manager, cashier).
type User struct {
	ID           string
	Username     string
	FullName     string
	PasswordHash string // bcrypt
	Roles        []string
	IsSuperuser  bool
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
