package main

import (
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"bikefine/internal/config"
	"bikefine/internal/db"
	"bikefine/internal/model"
)

// Seeds the initial super_admin account from ADMIN_EMAIL/ADMIN_PASSWORD.
// Idempotent: an existing account with the same email is left untouched.
func main() {
	log.Println("Starting admin seed script...")

	email := strings.ToLower(os.Getenv("ADMIN_EMAIL"))
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
	}

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.AdminUser{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	var existing model.AdminUser
	err = gormDB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		log.Printf("Admin %s already exists, nothing to do", email)
		return
	}
	if err != gorm.ErrRecordNotFound {
		log.Fatalf("Failed to check existing admin: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	name := os.Getenv("ADMIN_NAME")
	if name == "" {
		name = "Super Admin"
	}

	admin := &model.AdminUser{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         model.AdminRoleSuperAdmin,
		Department:   "administration",
		Permissions: []model.Permission{
			{Resource: "*", Actions: []string{"*"}},
		},
		Active: true,
	}

	if err := gormDB.Create(admin).Error; err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	log.Printf("Created super_admin %s (%s)", admin.Email, admin.ID)
}
