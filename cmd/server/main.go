package main

import (
	"context"
	"fmt"
	"log" // standard log for errors before zap is set up
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"

	"github.com/Unknownlegend09/ff-tournament/internal/auth"
	"github.com/Unknownlegend09/ff-tournament/internal/config"
	"github.com/Unknownlegend09/ff-tournament/internal/database"
	"github.com/Unknownlegend09/ff-tournament/internal/handlers"
	"github.com/Unknownlegend09/ff-tournament/internal/legacy"
	"github.com/Unknownlegend09/ff-tournament/internal/middleware"
	"github.com/Unknownlegend09/ff-tournament/internal/repository"
	"github.com/Unknownlegend09/ff-tournament/internal/routes"
	"github.com/Unknownlegend09/ff-tournament/internal/services"
	"github.com/Unknownlegend09/ff-tournament/internal/storage"
	"github.com/Unknownlegend09/ff-tournament/internal/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	sugar, err := utils.NewLogger(cfg.App.Env == "development")
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = sugar.Sync() }()
	sugar.Infof("Starting tournament service in %s environment on port %d", cfg.App.Env, cfg.App.Port)

	db, mongoClient, err := database.ConnectMongo(cfg.Mongo.URI, cfg.Mongo.Database, sugar)
	if err != nil {
		sugar.Fatal(err)
	}

	var store storage.Store
	var localStore *storage.LocalStore
	switch cfg.Storage.Driver {
	case "s3":
		s3Store, err := storage.NewS3Store(context.Background(), cfg.AWS.Region, cfg.AWS.Bucket)
		if err != nil {
			sugar.Fatalf("s3 init: %v", err)
		}
		store = s3Store
		sugar.Infof("uploads stored in s3 bucket %s", cfg.AWS.Bucket)
	default:
		localStore, err = storage.NewLocalStore(cfg.Storage.LocalDir, cfg.Storage.BaseURL)
		if err != nil {
			sugar.Fatalf("upload dir init: %v", err)
		}
		store = localStore
		sugar.Infof("uploads stored locally under %s", cfg.Storage.LocalDir)
	}

	tm := auth.NewTokenManager(cfg.JWT.Secret, cfg.TokenTTL)

	userRepo := repository.NewMongoUserRepo(db)
	tournamentRepo := repository.NewMongoTournamentRepo(db)
	registrationRepo := repository.NewMongoRegistrationRepo(db)
	uploadRepo := repository.NewMongoUploadRepo(db)

	authSvc := services.NewAuthService(userRepo, tm, sugar)
	tournamentSvc := services.NewTournamentService(tournamentRepo, registrationRepo, sugar)
	uploadSvc := services.NewUploadService(uploadRepo, store, sugar)
	legacyLog := legacy.NewLog(cfg.Legacy.CSVPath)

	app := fiber.New()
	app.Use(middleware.Recovery(sugar.Desugar()))
	app.Use(cors.New())
	app.Use(middleware.RequestLogger(sugar.Desugar()))

	routes.Setup(app, tm,
		handlers.NewAuthHandler(authSvc),
		handlers.NewTournamentHandler(tournamentSvc),
		handlers.NewUploadHandler(uploadSvc),
		handlers.NewLegacyHandler(legacyLog, sugar),
	)
	if localStore != nil {
		app.Static("/uploads", localStore.Dir())
	}

	go func() {
		addr := fmt.Sprintf(":%d", cfg.App.Port)
		sugar.Infof("Server listening on %s", addr)
		if err := app.Listen(addr); err != nil {
			sugar.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	sugar.Info("Shutting down server...")

	ctxShut, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctxShut); err != nil {
		sugar.Errorf("Fiber app shutdown error: %v", err)
	}
	if err := mongoClient.Disconnect(ctxShut); err != nil {
		sugar.Errorf("MongoDB disconnect error: %v", err)
	}
	sugar.Info("Graceful shutdown complete")
}
