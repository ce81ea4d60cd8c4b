package domain

import (
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
	RoleClient   Role = "client"
)

type Profile struct {
	Bio      string `json:"bio,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Company  string `json:"company,omitempty"`
	Position string `json:"position,omitempty"`
	Website  string `json:"website,omitempty"`
}

type User struct {
	ID         ID         `json:"id"`
	Email      string     `json:"email"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	FullName   string     `json:"full_name,omitempty"`
	Role       Role       `json:"role"`
	IsActive   bool       `json:"is_active"`
	DateJoined *time.Time `json:"date_joined,omitempty"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
	Profile    *Profile   `json:"profile,omitempty"`
}

func (u User) Key() string { return u.ID.String() }

// DisplayName prefers the server supplied full name.
func (u User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Credentials are submitted on login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the body returned by a successful login.
type LoginResult struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	User    User   `json:"user"`
}
