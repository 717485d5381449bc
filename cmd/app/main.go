package main

import (
	"database/sql"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/gjone124/restaurant-finder-backend/internal/apperr"
	"github.com/gjone124/restaurant-finder-backend/internal/auth"
	"github.com/gjone124/restaurant-finder-backend/internal/config"
	"github.com/gjone124/restaurant-finder-backend/internal/item"
	"github.com/gjone124/restaurant-finder-backend/internal/places"
	"github.com/gjone124/restaurant-finder-backend/internal/proxy"
	"github.com/gjone124/restaurant-finder-backend/internal/user"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	db := mustOpenDB(logger, cfg.DatabaseURL)
	defer db.Close()

	if err := ensureSchema(db); err != nil {
		logger.Error("schema setup failed", "error", err)
		os.Exit(1)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: apperr.ErrorHandler(logger),
	})
	setupCORS(app)
	app.Use(requestLogger(logger))

	placesClient := places.NewClient(cfg.GooglePlacesAPIKey, "")

	userService := user.NewService(user.NewPostgresRepository(db))
	userHandler := user.NewHandler(userService, placesClient, cfg.JWTSecret)

	itemService := item.NewService(item.NewPostgresRepository(db))
	itemHandler := item.NewHandler(itemService, placesClient)

	proxyHandler := proxy.NewHandler()

	// public routes first; everything registered after the auth middleware
	// requires a valid bearer token
	userHandler.RegisterPublicRoutes(app)
	itemHandler.RegisterPublicRoutes(app)
	proxyHandler.RegisterPublicRoutes(app)

	app.Use(auth.Middleware(cfg.JWTSecret))

	userHandler.RegisterProtectedRoutes(app)
	itemHandler.RegisterProtectedRoutes(app)

	logger.Info("starting server", "addr", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func requestLogger(logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		logger.Info("http request",
			"method", c.Method(),
			"path", c.OriginalURL(),
			"status", c.Response().StatusCode(),
			"duration_ms", float64(time.Since(start).Microseconds())/1000,
		)
		return err
	}
}

func mustOpenDB(logger *slog.Logger, databaseURL string) *sql.DB {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		logger.Error("could not open database", "error", err)
		os.Exit(1)
	}

	if err := db.Ping(); err != nil {
		logger.Error("could not reach database", "error", err)
		os.Exit(1)
	}

	return db
}

func ensureSchema(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL CHECK (char_length(name) BETWEEN 2 AND 30),
		avatar TEXT,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL
	)`); err != nil {
		return err
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS items (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL CHECK (char_length(name) BETWEEN 2 AND 100),
		cuisine TEXT NOT NULL CHECK (cuisine <> ''),
		address TEXT NOT NULL CHECK (char_length(address) >= 5),
		image TEXT NOT NULL,
		website TEXT NOT NULL,
		owner TEXT NOT NULL REFERENCES users(id)
	)`); err != nil {
		return err
	}

	return nil
}
