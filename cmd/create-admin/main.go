// Command create-admin seeds an admin account. Roles are immutable
// through the API, so admins are only ever created here.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/Unknownlegend09/ff-tournament/internal/config"
	"github.com/Unknownlegend09/ff-tournament/internal/database"
	"github.com/Unknownlegend09/ff-tournament/internal/models"
	"github.com/Unknownlegend09/ff-tournament/internal/repository"
	"github.com/Unknownlegend09/ff-tournament/internal/utils"
)

func main() {
	username := flag.String("username", "admin", "admin username")
	password := flag.String("password", "", "admin password (required)")
	mobile := flag.String("mobile", "9999999999", "admin mobile number")
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if *password == "" {
		log.Fatal("-password is required")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	sugar, err := utils.NewLogger(cfg.App.Env == "development")
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = sugar.Sync() }()

	db, client, err := database.ConnectMongo(cfg.Mongo.URI, cfg.Mongo.Database, sugar)
	if err != nil {
		sugar.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	defer func() { _ = client.Disconnect(ctx) }()

	users := repository.NewMongoUserRepo(db)

	if _, err := users.FindByUsername(ctx, *username); err == nil {
		sugar.Infof("user %q already exists, nothing to do", *username)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		sugar.Fatalf("failed to hash password: %v", err)
	}

	admin := &models.User{
		ID:           uuid.NewString(),
		Username:     *username,
		PasswordHash: string(hash),
		MobileNumber: *mobile,
		Role:         models.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	}
	if err := users.Create(ctx, admin); err != nil {
		sugar.Fatalf("failed to create admin: %v", err)
	}
	sugar.Infof("admin %q created (id=%s)", *username, admin.ID)
}
