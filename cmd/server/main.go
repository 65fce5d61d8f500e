package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskora/internal/config"
	"taskora/internal/database"
	"taskora/internal/handlers"
	"taskora/internal/jobs"
	"taskora/internal/logging"
	"taskora/internal/middleware"
	"taskora/internal/services"
	"taskora/pkg/auth"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/go-co-op/gocron/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Structured logging: JSON in production, text in dev
	logging.Init()

	log.Println("Starting taskora server...")

	// .env is optional; real deployments use environment variables
	if err := godotenv.Load(); err == nil {
		log.Println(".env file loaded")
	}

	cfg := config.Load()
	log.Printf("Configuration loaded (port %s, environment %s)", cfg.Port, cfg.Environment)

	if cfg.MongoURI == "" {
		log.Fatal("MONGODB_URI environment variable is required")
	}
	mongoDB, err := database.NewMongoDB(cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoDB.Close(context.Background())

	if err := mongoDB.Initialize(context.Background()); err != nil {
		log.Fatalf("Failed to initialize MongoDB indexes: %v", err)
	}

	// JWT auth; nil means dev bypass, which the middleware refuses in production
	var jwtAuth *auth.LocalJWTAuth
	if cfg.JWTSecret != "" {
		jwtAuth, err = auth.NewLocalJWTAuth(cfg.JWTSecret, cfg.AccessTokenExpiry, cfg.RefreshTokenExpiry)
		if err != nil {
			log.Fatalf("Failed to initialize JWT auth: %v", err)
		}
	} else if cfg.IsProduction() {
		log.Fatal("JWT_SECRET is required in production")
	} else {
		log.Println("JWT_SECRET not set, running with auth bypass (development only)")
	}

	// Services
	metrics := services.InitMetrics()
	activityService := services.NewActivityService(mongoDB)
	taskStore := services.NewTaskStore(mongoDB, activityService, metrics)
	projectStore := services.NewProjectStore(mongoDB, taskStore, activityService)
	tagStore := services.NewTagStore(mongoDB)
	subtaskStore := services.NewSubtaskStore(mongoDB, taskStore)
	commentStore := services.NewCommentStore(mongoDB, taskStore)
	templateStore := services.NewTemplateStore(mongoDB, taskStore)
	statsService := services.NewStatsService(mongoDB, projectStore, activityService, metrics)
	userService := services.NewUserService(mongoDB, taskStore, projectStore, tagStore, templateStore, activityService)

	// Handlers
	authHandler := handlers.NewLocalAuthHandler(jwtAuth, userService, templateStore)
	taskHandler := handlers.NewTaskHandler(taskStore, projectStore, tagStore, subtaskStore, commentStore)
	projectHandler := handlers.NewProjectHandler(projectStore)
	tagHandler := handlers.NewTagHandler(tagStore)
	subtaskHandler := handlers.NewSubtaskHandler(subtaskStore)
	commentHandler := handlers.NewCommentHandler(commentStore)
	templateHandler := handlers.NewTemplateHandler(templateStore)
	activityHandler := handlers.NewActivityHandler(activityService)
	statsHandler := handlers.NewStatsHandler(statsService)
	userHandler := handlers.NewUserHandler(userService, taskStore, projectStore, tagStore, templateStore, activityService)
	healthHandler := handlers.NewHealthHandler(mongoDB)

	app := fiber.New(fiber.Config{
		AppName:      "taskora",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	app.Use(recover.New())
	app.Use(logger.New())

	if cfg.AllowedOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins: cfg.AllowedOrigins,
			AllowHeaders: "Origin, Content-Type, Accept, Authorization",
			AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
		}))
	}

	prometheus := fiberprometheus.New("taskora")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	rateLimitConfig := middleware.LoadRateLimitConfig()
	app.Use("/api", middleware.GlobalAPIRateLimiter(rateLimitConfig))

	// Public routes
	app.Get("/health", healthHandler.Check)

	authAttempts := middleware.AuthAttemptRateLimiter(rateLimitConfig)
	app.Post("/api/auth/register", authAttempts, authHandler.Register)
	app.Post("/api/auth/login", authAttempts, authHandler.Login)
	app.Post("/api/auth/refresh", authAttempts, authHandler.Refresh)

	// Authenticated routes
	api := app.Group("/api",
		middleware.LocalAuthMiddleware(jwtAuth),
		middleware.AuthenticatedRateLimiter(rateLimitConfig))

	api.Get("/auth/profile", authHandler.Profile)

	// Static task routes before the :id wildcards
	api.Get("/tasks/trash", taskHandler.Trash)
	api.Delete("/tasks/empty_trash", taskHandler.EmptyTrash)
	api.Post("/tasks/bulk_restore", taskHandler.BulkRestore)
	api.Post("/tasks/bulk_delete_forever", taskHandler.BulkDeleteForever)
	api.Get("/tasks", taskHandler.List)
	api.Post("/tasks", taskHandler.Create)
	api.Get("/tasks/:id", taskHandler.Get)
	api.Put("/tasks/:id", taskHandler.Update)
	api.Delete("/tasks/:id", taskHandler.Delete)
	api.Post("/tasks/:id/restore", taskHandler.Restore)
	api.Delete("/tasks/:id/delete_forever", taskHandler.DeleteForever)

	api.Get("/projects", projectHandler.List)
	api.Post("/projects", projectHandler.Create)
	api.Get("/projects/:id", projectHandler.Get)
	api.Put("/projects/:id", projectHandler.Update)
	api.Delete("/projects/:id", projectHandler.Delete)

	api.Get("/tags", tagHandler.List)
	api.Post("/tags", tagHandler.Create)
	api.Get("/tags/:id", tagHandler.Get)
	api.Put("/tags/:id", tagHandler.Update)
	api.Delete("/tags/:id", tagHandler.Delete)

	api.Get("/subtasks", subtaskHandler.List)
	api.Post("/subtasks", subtaskHandler.Create)
	api.Put("/subtasks/:id", subtaskHandler.Update)
	api.Delete("/subtasks/:id", subtaskHandler.Delete)

	api.Get("/comments", commentHandler.List)
	api.Post("/comments", commentHandler.Create)
	api.Delete("/comments/:id", commentHandler.Delete)

	api.Get("/templates", templateHandler.List)
	api.Post("/templates", templateHandler.Create)
	api.Get("/templates/:id", templateHandler.Get)
	api.Put("/templates/:id", templateHandler.Update)
	api.Delete("/templates/:id", templateHandler.Delete)
	api.Post("/templates/:id/use", templateHandler.Use)

	api.Get("/activity", activityHandler.List)
	api.Get("/statistics", statsHandler.Get)

	api.Get("/user/data", userHandler.ExportData)
	api.Delete("/user/account", userHandler.DeleteAccount)

	// Nightly trash retention purge
	scheduler, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}
	trashCleanup := jobs.NewTrashCleanupJob(mongoDB, cfg.TrashRetentionDays)
	_, err = scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(2, 0, 0))),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
			defer cancel()
			if err := trashCleanup.Run(ctx); err != nil {
				log.Printf("Trash cleanup run failed: %v", err)
			}
		}),
	)
	if err != nil {
		log.Fatalf("Failed to schedule trash cleanup: %v", err)
	}
	scheduler.Start()

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")

		if err := scheduler.Shutdown(); err != nil {
			log.Printf("Error stopping scheduler: %v", err)
		}
		if err := app.Shutdown(); err != nil {
			log.Printf("Error shutting down server: %v", err)
		}
	}()

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
