package contact

import (
	"database/sql"
	"time"
)

// PostgresRepository implements Repository using Postgres.
type PostgresRepository struct {
	db *sql.DB
}

const (
	insertSubmissionQuery = `
		INSERT INTO contact_submissions (first_name, last_name, email, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	listSubmissionsQuery = `
		SELECT id, first_name, last_name, email, message, created_at
		FROM contact_submissions
		ORDER BY created_at DESC, id DESC
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(s Submission) (Submission, error) {
	var created time.Time
	err := r.db.QueryRow(insertSubmissionQuery, s.FirstName, s.LastName, s.Email, s.Message).
		Scan(&s.ID, &created)
	if err != nil {
		return Submission{}, err
	}
	s.CreatedAt = &created
	return s, nil
}

func (r *PostgresRepository) List() ([]Submission, error) {
	rows, err := r.db.Query(listSubmissionsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Submission, 0)
	for rows.Next() {
		var (
			s       Submission
			created sql.NullTime
		)
		if err := rows.Scan(&s.ID, &s.FirstName, &s.LastName, &s.Email, &s.Message, &created); err != nil {
			return nil, err
		}
		if created.Valid {
			t := created.Time
			s.CreatedAt = &t
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
