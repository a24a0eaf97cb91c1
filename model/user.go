package model

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Actor is the caller identity handed over by the identity provider. The
// service never authenticates it, it only reads it.
type Actor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

func (a Actor) Anonymous() bool { return a.ID == "" }
func (a Actor) IsAdmin() bool   { return a.Role == RoleAdmin }

// User is the local mirror of an identity seen on an authenticated request.
type User struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Role        Role      `json:"role"`
	FirstSeenAt time.Time `json:"first_seen_at"`
	LastSeenAt  time.Time `json:"last_seen_at"`
}
