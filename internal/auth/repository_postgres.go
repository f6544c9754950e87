package auth

import "database/sql"

// PostgresRepository implements Repository using Postgres.
type PostgresRepository struct {
	db *sql.DB
}

const (
	getAdminByEmailQuery = `SELECT id, email, password, created_at FROM admins WHERE email = $1`
	insertAdminQuery     = `INSERT INTO admins (email, password) VALUES ($1, $2) RETURNING id, created_at`
	countAdminsQuery     = `SELECT COUNT(*) FROM admins`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByEmail(email string) (Admin, error) {
	var a Admin
	err := r.db.QueryRow(getAdminByEmailQuery, email).
		Scan(&a.ID, &a.Email, &a.Password, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return Admin{}, ErrNotFound
	}
	if err != nil {
		return Admin{}, err
	}
	return a, nil
}

func (r *PostgresRepository) Create(a Admin) (Admin, error) {
	err := r.db.QueryRow(insertAdminQuery, a.Email, a.Password).
		Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return Admin{}, err
	}
	return a, nil
}

func (r *PostgresRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow(countAdminsQuery).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
