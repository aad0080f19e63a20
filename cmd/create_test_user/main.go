package main

import (
	"context"
	"errors"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"echolearn/internal/db"
	"echolearn/internal/domain"
	"echolearn/internal/repository"
	"echolearn/internal/service"
)

// Dev helper: creates (or reuses) a test account and prints a token.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	repo := repository.NewUserRepository(pool)
	ctx := context.Background()

	email := "tester@example.com"

	hash, err := bcrypt.GenerateFromPassword([]byte("test-password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	u := &domain.User{
		Email:        email,
		Username:     "tester",
		PasswordHash: hash,
	}
	if err := repo.Create(ctx, u); err != nil {
		if !errors.Is(err, repository.ErrEmailTaken) {
			log.Fatalf("create user failed: %v", err)
		}
		u, err = repo.GetByEmail(ctx, email)
		if err != nil {
			log.Fatalf("get user failed: %v", err)
		}
		log.Printf("user already exists id=%d\n", u.ID)
	} else {
		log.Printf("user created id=%d coins=%d\n", u.ID, u.Coins)
	}

	service.InitJWT()
	token, err := service.GenerateJWT(u.ID)
	if err != nil {
		log.Fatalf("failed to generate token: %v", err)
	}
	log.Printf("token=%s\n", token)
}
