package contact

import "time"

// Submission maps to the `contact_submissions` table.
type Submission struct {
	ID        int        `json:"id"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Email     string     `json:"email"`
	Message   string     `json:"message"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}
