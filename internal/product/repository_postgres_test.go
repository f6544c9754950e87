package product

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
)

func TestPostgresListByCategory(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "price", "category", "description", "image_url", "created_at"}).
		AddRow(1, "Zoro Figure", "29.99", "figurine", "1/8 scale", "/uploads/products/a.png", now).
		AddRow(2, "Luffy Figure", "45.50", "figurine", nil, nil, now)
	mock.ExpectQuery("WHERE category = ").WithArgs("figurine").WillReturnRows(rows)

	out, err := repo.ListByCategory("figurine")
	if err != nil {
		t.Fatalf("ListByCategory: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 products, got %d", len(out))
	}
	if !out[0].Price.Equal(decimal.RequireFromString("29.99")) {
		t.Fatalf("price scanned wrong: %s", out[0].Price)
	}
	if out[1].Description != nil {
		t.Fatalf("expected nil description for NULL column")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	now := time.Now()
	mock.ExpectQuery("INSERT INTO products").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(9, now))

	created, err := repo.Create(Product{
		Name:     "Zoro Figure",
		Price:    decimal.RequireFromString("29.99"),
		Category: "figurine",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != 9 || created.CreatedAt == nil {
		t.Fatalf("unexpected created product: %+v", created)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresRelinkCategory(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("UPDATE products SET category").
		WithArgs("figurines", "mecha-figures").
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.RelinkCategory("figurines", "mecha-figures")
	if err != nil {
		t.Fatalf("RelinkCategory: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 relinked rows, got %d", n)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresCountByCategory(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("figurine").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	n, err := repo.CountByCategory("figurine")
	if err != nil {
		t.Fatalf("CountByCategory: %v", err)
	}
	if n != 4 {
		t.Fatalf("expected 4, got %d", n)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
