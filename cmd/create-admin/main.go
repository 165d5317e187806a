package main

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	"go.uber.org/zap"

	"github.com/tacticalshop/storeapi/internal/config"
	"github.com/tacticalshop/storeapi/internal/domain"
	"github.com/tacticalshop/storeapi/internal/repository/postgres"
)

func main() {
	if len(os.Args) < 4 {
		fmt.Println("Usage: go run cmd/create-admin/main.go <email> <password> <full-name>")
		fmt.Println("Example: go run cmd/create-admin/main.go admin@shop.ge \"s3cret-pass\" \"Shop Admin\"")
		os.Exit(1)
	}

	email := os.Args[1]
	password := os.Args[2]
	fullName := os.Args[3]

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// Connect to database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// Hash the password
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to hash password: %v\n", err)
		os.Exit(1)
	}

	// Create repositories
	repos := postgres.NewRepositories(db, logger)

	// Create admin user
	admin := &domain.User{
		Email:        email,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}

	err = repos.User.Create(context.Background(), admin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create admin user: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Admin user created successfully!\n\n")
	fmt.Printf("User ID: %s\n", admin.ID.String())
	fmt.Printf("Email: %s\n", admin.Email)
	fmt.Printf("\nLog in via POST /v1/auth/login to obtain a token.\n")
}
