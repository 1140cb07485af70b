package models

import "time"

// Role is the closed set of privilege levels. Handlers never compare raw
// strings; they go through the middleware role guard.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is an account in the users collection. The id is a UUID string
// stored as the Mongo _id.
type User struct {
	ID           string    `bson:"_id" json:"id"`
	Username     string    `bson:"username" json:"username"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	MobileNumber string    `bson:"mobile_number" json:"mobile_number"`
	Role         Role      `bson:"role" json:"role"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}
