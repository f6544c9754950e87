package product

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// PostgresRepository implements Repository using Postgres.
type PostgresRepository struct {
	db *sql.DB
}

const (
	listProductsQuery = `
		SELECT id, name, price, category, description, image_url, created_at
		FROM products
		ORDER BY created_at DESC, id DESC
	`
	listProductsByCategoryQuery = `
		SELECT id, name, price, category, description, image_url, created_at
		FROM products
		WHERE category = $1
		ORDER BY created_at DESC, id DESC
	`
	getProductByIDQuery = `
		SELECT id, name, price, category, description, image_url, created_at
		FROM products
		WHERE id = $1
	`
	insertProductQuery = `
		INSERT INTO products (name, price, category, description, image_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	updateProductQuery = `
		UPDATE products
		SET name = $1, price = $2, category = $3, description = $4, image_url = $5
		WHERE id = $6
		RETURNING created_at
	`
	deleteProductQuery   = `DELETE FROM products WHERE id = $1`
	countByCategoryQuery = `SELECT COUNT(*) FROM products WHERE category = $1`
	relinkCategoryQuery  = `UPDATE products SET category = $2 WHERE category = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() ([]Product, error) {
	return r.queryProducts(listProductsQuery)
}

func (r *PostgresRepository) ListByCategory(slug string) ([]Product, error) {
	return r.queryProducts(listProductsByCategoryQuery, slug)
}

func (r *PostgresRepository) GetByID(id int) (Product, error) {
	var (
		p       Product
		price   decimal.Decimal
		desc    sql.NullString
		img     sql.NullString
		created sql.NullTime
	)
	err := r.db.QueryRow(getProductByIDQuery, id).
		Scan(&p.ID, &p.Name, &price, &p.Category, &desc, &img, &created)
	if err == sql.ErrNoRows {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, err
	}
	applyScanned(&p, price, desc, img, created)
	return p, nil
}

func (r *PostgresRepository) Create(p Product) (Product, error) {
	var created time.Time
	err := r.db.QueryRow(insertProductQuery, p.Name, p.Price, p.Category, p.Description, p.ImageURL).
		Scan(&p.ID, &created)
	if err != nil {
		return Product{}, err
	}
	p.CreatedAt = &created
	return p, nil
}

func (r *PostgresRepository) Update(id int, p Product) (Product, error) {
	var created time.Time
	err := r.db.QueryRow(updateProductQuery, p.Name, p.Price, p.Category, p.Description, p.ImageURL, id).
		Scan(&created)
	if err == sql.ErrNoRows {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, err
	}
	p.ID = id
	p.CreatedAt = &created
	return p, nil
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(deleteProductQuery, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) CountByCategory(slug string) (int, error) {
	var n int
	if err := r.db.QueryRow(countByCategoryQuery, slug).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PostgresRepository) RelinkCategory(oldSlug, newSlug string) (int, error) {
	res, err := r.db.Exec(relinkCategoryQuery, oldSlug, newSlug)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (r *PostgresRepository) queryProducts(query string, args ...any) ([]Product, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		var (
			p       Product
			price   decimal.Decimal
			desc    sql.NullString
			img     sql.NullString
			created sql.NullTime
		)
		if err := rows.Scan(&p.ID, &p.Name, &price, &p.Category, &desc, &img, &created); err != nil {
			return nil, err
		}
		applyScanned(&p, price, desc, img, created)
		out = append(out, p)
	}
	return out, rows.Err()
}

func applyScanned(p *Product, price decimal.Decimal, desc, img sql.NullString, created sql.NullTime) {
	p.Price = price
	if desc.Valid {
		p.Description = &desc.String
	}
	if img.Valid {
		p.ImageURL = &img.String
	}
	if created.Valid {
		t := created.Time
		p.CreatedAt = &t
	}
}
