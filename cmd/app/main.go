package main

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/aniverse-shop/aniverse-backend/internal/admin"
	"github.com/aniverse-shop/aniverse-backend/internal/auth"
	"github.com/aniverse-shop/aniverse-backend/internal/category"
	"github.com/aniverse-shop/aniverse-backend/internal/config"
	"github.com/aniverse-shop/aniverse-backend/internal/contact"
	"github.com/aniverse-shop/aniverse-backend/internal/product"
	"github.com/aniverse-shop/aniverse-backend/internal/storage"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()
	ensureSchema(db)

	policy, err := category.ParsePolicy(cfg.RenamePolicy)
	if err != nil {
		logger.Fatal("invalid CATEGORY_RENAME_POLICY", zap.Error(err))
	}

	app := fiber.New()
	setupCORS(app)
	app.Use(requestLogger(logger))

	store := storage.NewLocalStore(cfg.UploadDir, "/uploads")

	productService := product.NewService(product.NewPostgresRepository(db))
	productHandler := product.NewHandler(productService, store, logger)

	categoryService := category.NewService(category.NewPostgresRepository(db), policy, productService)
	categoryHandler := category.NewHandler(categoryService, store, logger)

	contactHandler := contact.NewHandler(contact.NewPostgresRepository(db))
	adminHandler := admin.NewHandler(categoryService, productService)

	notifier := auth.NewNotifier()
	if _, err := notifier.Subscribe(func(ev auth.SessionEvent) {
		logger.Info("session change",
			zap.String("email", ev.Email), zap.Bool("signed_in", ev.SignedIn))
	}); err != nil {
		logger.Fatal("session subscription failed", zap.Error(err))
	}

	authService := auth.NewService(auth.NewPostgresRepository(db))
	if err := authService.Seed(cfg.AdminEmail, cfg.AdminPassword); err != nil {
		logger.Fatal("admin seed failed", zap.Error(err))
	}
	authHandler := auth.NewHandler(authService, notifier, []byte(cfg.JWTSecret))

	// public routes first: Fiber matches them before the JWT middleware below
	authHandler.RegisterPublicRoutes(app)
	categoryHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)
	contactHandler.RegisterPublicRoutes(app)

	// uploaded images are public
	app.Static("/uploads", cfg.UploadDir)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	authHandler.RegisterProtectedRoutes(app)
	categoryHandler.RegisterProtectedRoutes(app)
	productHandler.RegisterProtectedRoutes(app)
	contactHandler.RegisterProtectedRoutes(app)
	adminHandler.RegisterProtectedRoutes(app)

	logger.Info("listening", zap.String("addr", cfg.Addr))
	if err := app.Listen(cfg.Addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func requestLogger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		logger.Info("request",
			zap.String("method", c.Method()),
			zap.String("path", c.OriginalURL()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("took", time.Since(start)))
		return err
	}
}

func mustOpenDB(dbURL string) *sql.DB {
	if dbURL == "" {
		panic("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		panic(err)
	}

	if err := db.Ping(); err != nil {
		panic(err)
	}

	return db
}

// ensureSchema creates the tables on first boot so the service can run against
// an empty database.
func ensureSchema(db *sql.DB) {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS categories (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			slug TEXT NOT NULL,
			image_url TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			price NUMERIC(10,2) NOT NULL,
			category TEXT NOT NULL,
			description TEXT,
			image_url TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS contact_submissions (
			id SERIAL PRIMARY KEY,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			email TEXT NOT NULL,
			message TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS admins (
			id SERIAL PRIMARY KEY,
			email TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			panic(err)
		}
	}
}
