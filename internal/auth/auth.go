package auth

import "time"

// Admin is an operator account allowed into the admin API. Password holds the
// bcrypt hash and is never serialized.
type Admin struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
