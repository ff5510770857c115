package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"apartment-backend/internal/config"
	"apartment-backend/internal/db"
	"apartment-backend/internal/models"
	"apartment-backend/internal/repositories"
	"apartment-backend/internal/services"
)

func main() {
	username := flag.String("username", "", "login name (required)")
	password := flag.String("password", "", "login secret (required)")
	fullName := flag.String("name", "", "display name")
	email := flag.String("email", "", "email address")
	phone := flag.String("phone", "", "phone number")
	address := flag.String("address", "", "postal address")
	age := flag.Int("age", 0, "age")
	hash := flag.Bool("hash", false, "store a bcrypt hash instead of the secret as given (defaults to auth.hash_passwords)")
	flag.Parse()

	if *username == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}
	defer pool.Close()

	// CreateUser needs neither a login log store nor a token issuer
	svc := services.NewUserService(repositories.NewUserRepository(pool), nil, nil, *hash || cfg.Auth.HashPasswords)
	user := &models.User{
		Username: *username,
		Password: *password,
		FullName: *fullName,
		Email:    *email,
		Phone:    *phone,
		Address:  *address,
		Age:      *age,
	}
	if err := svc.CreateUser(ctx, user); err != nil {
		log.Fatalf("Failed to create user: %v\n", err)
	}

	fmt.Printf("Created user %q\n", user.Username)
}
