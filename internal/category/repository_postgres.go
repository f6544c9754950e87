package category

import (
	"database/sql"
	"time"
)

// PostgresRepository implements Repository using Postgres.
type PostgresRepository struct {
	db *sql.DB
}

const (
	listCategoriesQuery = `
		SELECT id, name, slug, image_url, created_at
		FROM categories
		ORDER BY name, id
	`
	getCategoryByIDQuery = `
		SELECT id, name, slug, image_url, created_at
		FROM categories
		WHERE id = $1
	`
	insertCategoryQuery = `
		INSERT INTO categories (name, slug, image_url)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	updateCategoryQuery = `
		UPDATE categories
		SET name = $1, slug = $2, image_url = $3
		WHERE id = $4
		RETURNING created_at
	`
	deleteCategoryQuery = `DELETE FROM categories WHERE id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() ([]Category, error) {
	rows, err := r.db.Query(listCategoriesQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(id int) (Category, error) {
	var (
		c       Category
		img     sql.NullString
		created sql.NullTime
	)
	err := r.db.QueryRow(getCategoryByIDQuery, id).Scan(&c.ID, &c.Name, &c.Slug, &img, &created)
	if err == sql.ErrNoRows {
		return Category{}, ErrNotFound
	}
	if err != nil {
		return Category{}, err
	}
	applyNullable(&c, img, created)
	return c, nil
}

func (r *PostgresRepository) Create(c Category) (Category, error) {
	var created time.Time
	err := r.db.QueryRow(insertCategoryQuery, c.Name, c.Slug, c.ImageURL).Scan(&c.ID, &created)
	if err != nil {
		return Category{}, err
	}
	c.CreatedAt = &created
	return c, nil
}

func (r *PostgresRepository) Update(id int, c Category) (Category, error) {
	var created time.Time
	err := r.db.QueryRow(updateCategoryQuery, c.Name, c.Slug, c.ImageURL, id).Scan(&created)
	if err == sql.ErrNoRows {
		return Category{}, ErrNotFound
	}
	if err != nil {
		return Category{}, err
	}
	c.ID = id
	c.CreatedAt = &created
	return c, nil
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(deleteCategoryQuery, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanCategory(rows *sql.Rows) (Category, error) {
	var (
		c       Category
		img     sql.NullString
		created sql.NullTime
	)
	if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &img, &created); err != nil {
		return Category{}, err
	}
	applyNullable(&c, img, created)
	return c, nil
}

func applyNullable(c *Category, img sql.NullString, created sql.NullTime) {
	if img.Valid {
		c.ImageURL = &img.String
	}
	if created.Valid {
		t := created.Time
		c.CreatedAt = &t
	}
}
