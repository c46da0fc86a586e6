// seed inserts the role catalog and a development admin account.
// Idempotent: existing roles are kept and the admin insert is skipped if the
// account already exists.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"blog-platform/backend/internal/config"
	"blog-platform/backend/internal/db"
	roledomain "blog-platform/backend/internal/role/domain"
	rolerepo "blog-platform/backend/internal/role/repository"
	"blog-platform/backend/internal/security"
	userdomain "blog-platform/backend/internal/user/domain"
	userrepo "blog-platform/backend/internal/user/repository"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "admin-password123"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer conn.Close()

	ctx := context.Background()
	roles := rolerepo.NewPostgresRepository(conn)
	users := userrepo.NewPostgresRepository(conn)

	adminRole, err := ensureRole(ctx, roles, roledomain.CodeAdmin, "admin")
	if err != nil {
		log.Fatalf("seed admin role: %v", err)
	}
	if _, err := ensureRole(ctx, roles, roledomain.CodeBlogger, "blogger"); err != nil {
		log.Fatalf("seed blogger role: %v", err)
	}

	existing, err := users.GetByEmail(ctx, adminEmail, false)
	if err != nil {
		log.Fatalf("seed check: %v", err)
	}
	if existing != nil {
		log.Println("Seed already applied (admin@example.com exists). Skipping.")
		return
	}

	hasher := security.NewHasher(cfg.BcryptSaltRounds)
	passwordHash, err := hasher.Hash([]byte(adminPassword))
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	now := time.Now().UTC()
	admin := &userdomain.User{
		ID:           uuid.New().String(),
		Name:         "Admin",
		Email:        adminEmail,
		PasswordHash: passwordHash,
		IsActive:     true,
		Role:         *adminRole,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := users.Create(ctx, admin); err != nil {
		log.Fatalf("create admin user: %v", err)
	}

	log.Println("Seed completed successfully.")
	fmt.Printf("Admin login: %s / %s\n", adminEmail, adminPassword)
}

// ensureRole returns the role with the given code, creating it if absent.
func ensureRole(ctx context.Context, roles rolerepo.Repository, code roledomain.Code, name string) (*roledomain.Role, error) {
	role, err := roles.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if role != nil {
		return role, nil
	}
	role = &roledomain.Role{
		ID:   uuid.New().String(),
		Code: code,
		Name: name,
	}
	if err := roles.Create(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}
