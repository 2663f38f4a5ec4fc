package models

import "time"

// RoleType represents a user's role in the system.
type RoleType string

// User roles
const (
	RoleAdmin     RoleType = "admin"     // full access, can manage users
	RoleScheduler RoleType = "scheduler" // can create and edit schedules
	RoleViewer    RoleType = "viewer"    // read-only access to timetables
)

// User represents an account that can authenticate against the API.
// The acting user id recorded on Publish comes from this entity.
type User struct {
	ID        int64     `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password_hash"` // Never serialized
	FullName  string    `json:"fullName" db:"full_name"`
	RoleType  RoleType  `json:"roleType" db:"role_type"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
