package category

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/aniverse-shop/aniverse-backend/internal/storage"
)

func newTestApp(t *testing.T, seed []Category) (*fiber.App, *InMemoryRepository) {
	t.Helper()
	repo := NewInMemoryRepository(seed)
	store := storage.NewLocalStore(t.TempDir(), "/uploads")
	h := NewHandler(NewService(repo, PolicyAcceptOrphaning, nil), store, zap.NewNop())

	app := fiber.New()
	h.RegisterPublicRoutes(app)
	h.RegisterProtectedRoutes(app)
	return app, repo
}

func TestCreateCategory_DerivesSlugFromName(t *testing.T) {
	app, repo := newTestApp(t, nil)

	form := url.Values{}
	form.Set("name", "Mecha Figures!")
	req := httptest.NewRequest("POST", "/api/v1/categories", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201 got %d", res.StatusCode)
	}
	body, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(body), `"slug":"mecha-figures"`) {
		t.Fatalf("unexpected body: %s", body)
	}

	stored, err := repo.GetByID(1)
	if err != nil || stored.Slug != "mecha-figures" {
		t.Fatalf("stored category not as expected: %+v err=%v", stored, err)
	}
}

func TestCreateCategory_MissingNameRejected(t *testing.T) {
	app, repo := newTestApp(t, nil)

	req := httptest.NewRequest("POST", "/api/v1/categories", strings.NewReader("image_url=http://x/y.png"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 got %d", res.StatusCode)
	}
	if list, _ := repo.List(); len(list) != 0 {
		t.Fatalf("invalid payload must not be stored")
	}
}

func TestListCategories_OrderedByName(t *testing.T) {
	app, _ := newTestApp(t, []Category{
		{ID: 1, Name: "Shoes", Slug: "shoes"},
		{ID: 2, Name: "Cosplay", Slug: "cosplay"},
	})

	req := httptest.NewRequest("GET", "/api/v1/categories", nil)
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	body, _ := io.ReadAll(res.Body)
	str := string(body)
	if strings.Index(str, "Cosplay") > strings.Index(str, "Shoes") {
		t.Fatalf("expected categories ordered by name, got %s", str)
	}
}

func TestUpdateCategory_RecomputesSlug(t *testing.T) {
	app, repo := newTestApp(t, []Category{{ID: 7, Name: "Figurines", Slug: "figurines"}})

	form := url.Values{}
	form.Set("name", "Premium Figurines")
	req := httptest.NewRequest("PUT", "/api/v1/category/7", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 got %d", res.StatusCode)
	}
	stored, _ := repo.GetByID(7)
	if stored.Slug != "premium-figurines" {
		t.Fatalf("slug not recomputed: %+v", stored)
	}
}

func TestDeleteCategory_NotFound(t *testing.T) {
	app, _ := newTestApp(t, nil)

	req := httptest.NewRequest("DELETE", "/api/v1/category/99", nil)
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 got %d", res.StatusCode)
	}
}

// stubStore records uploads and removals so tests can assert on the
// upload-before-write ordering and the compensation path.
type stubStore struct {
	uploadErr error
	uploaded  []string
	removed   []string
}

func (s *stubStore) Upload(path string, _ []byte) error {
	if s.uploadErr != nil {
		return s.uploadErr
	}
	s.uploaded = append(s.uploaded, path)
	return nil
}

func (s *stubStore) Remove(path string) error {
	s.removed = append(s.removed, path)
	return nil
}

func (s *stubStore) PublicURL(path string) string { return "/uploads/" + path }

type createFailRepo struct {
	*InMemoryRepository
}

func (createFailRepo) Create(Category) (Category, error) {
	return Category{}, errors.New("insert failed")
}

func multipartUpsert(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field %q: %v", k, err)
		}
	}
	fw, err := w.CreateFormFile("image", "cover.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte("png-bytes")); err != nil {
		t.Fatalf("write file part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func TestCreateCategory_UploadFailureAbortsWrite(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	store := &stubStore{uploadErr: errors.New("bucket unavailable")}
	h := NewHandler(NewService(repo, PolicyAcceptOrphaning, nil), store, zap.NewNop())
	app := fiber.New()
	h.RegisterProtectedRoutes(app)

	body, contentType := multipartUpsert(t, map[string]string{"name": "Mecha Figures"})
	req := httptest.NewRequest("POST", "/api/v1/categories", body)
	req.Header.Set("Content-Type", contentType)

	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusBadGateway {
		t.Fatalf("expected 502 got %d", res.StatusCode)
	}
	if list, _ := repo.List(); len(list) != 0 {
		t.Fatalf("row written despite failed upload: %+v", list)
	}
}

func TestCreateCategory_RowWriteFailureRemovesUpload(t *testing.T) {
	store := &stubStore{}
	h := NewHandler(NewService(createFailRepo{NewInMemoryRepository(nil)}, PolicyAcceptOrphaning, nil), store, zap.NewNop())
	app := fiber.New()
	h.RegisterProtectedRoutes(app)

	body, contentType := multipartUpsert(t, map[string]string{"name": "Mecha Figures"})
	req := httptest.NewRequest("POST", "/api/v1/categories", body)
	req.Header.Set("Content-Type", contentType)

	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", res.StatusCode)
	}
	if len(store.uploaded) != 1 {
		t.Fatalf("expected exactly one upload, got %v", store.uploaded)
	}
	if len(store.removed) != 1 || store.removed[0] != store.uploaded[0] {
		t.Fatalf("orphaned blob not compensated: uploaded=%v removed=%v", store.uploaded, store.removed)
	}
}

func TestUpdateCategory_FailedRelinkKeepsUploadedImage(t *testing.T) {
	repo := NewInMemoryRepository([]Category{{ID: 7, Name: "Figurines", Slug: "figurines"}})
	store := &stubStore{}
	h := NewHandler(NewService(repo, PolicyCascade, failingRelinker{}), store, zap.NewNop())
	app := fiber.New()
	h.RegisterProtectedRoutes(app)

	body, contentType := multipartUpsert(t, map[string]string{"name": "Premium Figurines"})
	req := httptest.NewRequest("PUT", "/api/v1/category/7", body)
	req.Header.Set("Content-Type", contentType)

	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", res.StatusCode)
	}

	// the category row was written before the relink failed, so the blob
	// its image_url points at must survive
	if len(store.removed) != 0 {
		t.Fatalf("blob removed although its URL is persisted: %v", store.removed)
	}
	stored, err := repo.GetByID(7)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Slug != "premium-figurines" {
		t.Fatalf("row write did not go through: %+v", stored)
	}
	if len(store.uploaded) != 1 {
		t.Fatalf("expected exactly one upload, got %v", store.uploaded)
	}
	if stored.ImageURL == nil || *stored.ImageURL != store.PublicURL(store.uploaded[0]) {
		t.Fatalf("stored image url does not point at the uploaded blob: %+v", stored)
	}
}
