package category

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPostgresList(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "slug", "image_url", "created_at"}).
		AddRow(1, "Cosplay", "cosplay", "/uploads/categories/a.png", now).
		AddRow(2, "Figurines", "figurines", nil, now)
	mock.ExpectQuery("SELECT id, name, slug, image_url, created_at").WillReturnRows(rows)

	out, err := repo.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(out))
	}
	if out[0].ImageURL == nil || *out[0].ImageURL != "/uploads/categories/a.png" {
		t.Fatalf("unexpected image url: %+v", out[0])
	}
	if out[1].ImageURL != nil {
		t.Fatalf("expected nil image url for NULL column")
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
	mock.ExpectQuery("INSERT INTO categories").
		WithArgs("Figurines", "figurines", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(5, now))

	created, err := repo.Create(Category{Name: "Figurines", Slug: "figurines"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != 5 || created.CreatedAt == nil {
		t.Fatalf("unexpected created category: %+v", created)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresUpdate_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("UPDATE categories").
		WithArgs("Figurines", "figurines", nil, 42).
		WillReturnError(sql.ErrNoRows)

	if _, err := repo.Update(42, Category{Name: "Figurines", Slug: "figurines"}); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresDelete_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("DELETE FROM categories").
		WithArgs(42).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(42); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
