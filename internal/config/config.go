package config

import "os"

// Config holds environment-driven configuration.
type Config struct {
	Addr          string
	DatabaseURL   string
	JWTSecret     string
	UploadDir     string
	AdminEmail    string
	AdminPassword string
	RenamePolicy  string
}

// Load reads configuration from environment variables.
func Load() Config {
	addr := os.Getenv("ANIVERSE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}

	return Config{
		Addr:          addr,
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		UploadDir:     uploadDir,
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		RenamePolicy:  os.Getenv("CATEGORY_RENAME_POLICY"),
	}
}
