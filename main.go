package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"agrosite/internal/handlers"
	"agrosite/internal/models"
	"agrosite/internal/repositories"
	"agrosite/internal/services"
	"agrosite/pkg/rabbitmq"
	"agrosite/pkg/ratelimit"
	"agrosite/pkg/storage"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("SQLITE_PATH", "agrosite.db")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("STORAGE_DIR", "storage")
	viper.SetDefault("STORAGE_BASE_URL", "/storage")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	databaseURL := viper.GetString("DATABASE_URL")
	redisAddr := viper.GetString("REDIS_ADDR")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")
	storageDir := viper.GetString("STORAGE_DIR")
	storageBaseURL := viper.GetString("STORAGE_BASE_URL")

	// --- Database ---
	// Postgres when DATABASE_URL is set, a local SQLite file otherwise.
	var dialector gorm.Dialector
	if databaseURL != "" {
		dialector = postgres.Open(databaseURL)
	} else {
		dialector = sqlite.Open(viper.GetString("SQLITE_PATH"))
	}
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.Service{}, &models.Contact{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Rate limiter ---
	// Redis-backed when configured, in-process otherwise.
	var limiter ratelimit.Limiter
	if redisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: redisAddr})
		limiter = ratelimit.NewRedisLimiter(redisClient, "ratelimit:")
		log.Printf("Rate limiting backed by Redis at %s", redisAddr)
	} else {
		limiter = ratelimit.NewMemoryLimiter(nil)
		log.Println("Rate limiting backed by in-process memory store")
	}

	// --- RabbitMQ (optional) ---
	var publisher services.EventPublisher
	var mqClient *rabbitmq.Client
	if rabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		publisher = mqClient
	}

	// --- Image storage ---
	imageStore := storage.NewLocalStore(storageDir)

	// --- Repositories ---
	productRepo := repositories.NewGORMProductRepository(db)
	serviceRepo := repositories.NewGORMServiceRepository(db)
	contactRepo := repositories.NewGORMContactRepository(db)

	// --- Services ---
	productService := services.NewProductService(productRepo, imageStore)
	serviceService := services.NewServiceService(serviceRepo, imageStore)
	contactService := services.NewContactService(contactRepo, limiter, publisher)

	// --- Handlers ---
	productHandler := handlers.NewProductHandler(productService, storageBaseURL)
	serviceHandler := handlers.NewServiceHandler(serviceService, storageBaseURL)
	contactHandler := handlers.NewContactHandler(contactService)

	// --- Fiber app ---
	app := fiber.New()
	app.Use(logger.New())

	// Serve stored images.
	app.Static(storageBaseURL, storageDir)

	apiV1 := app.Group("/api/v1")
	productHandler.RegisterRoutes(apiV1)
	serviceHandler.RegisterRoutes(apiV1)
	contactHandler.RegisterRoutes(apiV1)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Contact event consumer (optional) ---
	// Logs contact.submitted events until a real notification worker exists.
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for contact events...")
			err := mqClient.ConsumeContactEvents(func(msg amqp.Delivery) error {
				log.Printf("Received contact event (tag %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil
			})
			if err != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", err)
			}
		}()
	}

	// --- Start HTTP server ---
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}
