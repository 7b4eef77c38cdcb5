package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/utils"

	"campushub_backend/internals/configs"
	database "campushub_backend/internals/databases"
	"campushub_backend/internals/databases/inmem"
	eventModel "campushub_backend/internals/features/events/model"
	eventRepo "campushub_backend/internals/features/events/repository"
	faqModel "campushub_backend/internals/features/home/faqs/model"
	faqRepo "campushub_backend/internals/features/home/faqs/repository"
	notifModel "campushub_backend/internals/features/home/notifications/model"
	notifRepo "campushub_backend/internals/features/home/notifications/repository"
	authModel "campushub_backend/internals/features/users/auth/model"
	authRepository "campushub_backend/internals/features/users/auth/repository"
	scheduler "campushub_backend/internals/features/users/auth/scheduler"
	faqService "campushub_backend/internals/features/home/faqs/service"
	userModel "campushub_backend/internals/features/users/user/model"
	userRepo "campushub_backend/internals/features/users/user/repository"
	middlewares "campushub_backend/internals/middlewares"
	routes "campushub_backend/internals/route"
	seeds "campushub_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ProxyHeader:           fiber.HeaderXForwardedFor,
	})

	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	// Request-ID + timing
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()
		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		err := c.Next()
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
		return err
	})

	middlewares.SetupMiddlewares(app)

	deps, cleanup := buildDeps()
	defer cleanup()

	scheduler.StartBlacklistCleanupScheduler(deps.Tokens)

	if configs.GetEnv("SEED") == "1" {
		if err := seeds.Run(context.Background(), deps.Users, deps.Events, deps.Faqs); err != nil {
			log.Printf("[ERROR] seeding failed: %v", err)
		}
	}

	routes.SetupRoutes(app, deps)

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	go func() {
		log.Printf("[INFO] Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)
}

// buildDeps wires the storage medium selected by DATABASE_DRIVER:
// "postgres" (default) or "inmem" with an optional snapshot file.
func buildDeps() (routes.Deps, func()) {
	deps := routes.Deps{FaqGenerator: faqService.NewHTTPGenerator()}

	driver := strings.ToLower(configs.GetEnv("DATABASE_DRIVER", "postgres"))
	switch driver {
	case "inmem":
		store := inmem.Open(configs.GetEnv("INMEM_SNAPSHOT_PATH"))
		deps.Users = inmem.NewUserRepository(store)
		deps.Tokens = inmem.NewTokenRepository(store)
		deps.Events = inmem.NewEventRepository(store)
		deps.Faqs = inmem.NewFaqRepository(store)
		deps.Notifications = inmem.NewNotificationRepository(store)
		log.Println("[INFO] Using in-memory storage")
		return deps, func() {
			if err := store.Flush(); err != nil {
				log.Printf("[WARN] snapshot flush failed: %v", err)
			}
		}

	default:
		database.ConnectDB()
		database.TunePool()
		database.WarmUp()

		if configs.GetEnv("DB_AUTO_MIGRATE") == "1" {
			if err := database.DB.AutoMigrate(
				&userModel.UserModel{},
				&authModel.RefreshToken{},
				&authModel.TokenBlacklist{},
				&eventModel.EventModel{},
				&eventModel.EventRegistrationModel{},
				&faqModel.FaqModel{},
				&notifModel.NotificationModel{},
			); err != nil {
				log.Fatalf("auto-migrate failed: %v", err)
			}
		}

		deps.Users = userRepo.NewUserRepository(database.DB)
		deps.Tokens = authRepository.NewTokenRepository(database.DB)
		deps.Events = eventRepo.NewEventRepository(database.DB)
		deps.Faqs = faqRepo.NewFaqRepository(database.DB)
		deps.Notifications = notifRepo.NewNotificationRepository(database.DB)
		deps.Ping = func() error {
			sqlDB, err := database.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.Ping()
		}
		return deps, func() {
			if sqlDB, err := database.DB.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
	}
}
