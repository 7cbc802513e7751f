package main

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Shamshod-Xatamov/TravelScout-V2/internal/config"
	"github.com/Shamshod-Xatamov/TravelScout-V2/internal/handlers"
	"github.com/Shamshod-Xatamov/TravelScout-V2/internal/repositories"
	"github.com/Shamshod-Xatamov/TravelScout-V2/internal/services"
	"github.com/Shamshod-Xatamov/TravelScout-V2/utils"
)

const defaultSigningKey = "travelscout-dev-signing-key"

type application struct {
	errorLog   *log.Logger
	infoLog    *log.Logger
	signingKey string

	userRepo *repositories.UserRepository

	userHandler    *handlers.UserHandler
	tripHandler    *handlers.TripHandler
	storyHandler   *handlers.StoryHandler
	flightHandler  *handlers.FlightHandler
	supportHandler *handlers.SupportHandler
}

func initializeApp(cfg config.Config, db *sql.DB, errorLog, infoLog *log.Logger) *application {
	signingKey := cfg.Auth.SigningKey
	if signingKey == "" {
		signingKey = defaultSigningKey
	}

	// Repositories
	userRepo := repositories.UserRepository{DB: db}
	profileRepo := repositories.ProfileRepository{DB: db}
	tripRepo := repositories.TripRepository{DB: db}
	storyRepo := repositories.StoryRepository{DB: db}
	commentRepo := repositories.CommentRepository{DB: db}
	reactionRepo := repositories.StoryReactionRepository{DB: db}

	// External clients
	redisClient := openRedis(cfg, infoLog)

	var flightCache services.FlightCache = services.NoOpFlightCache{}
	var viewTracker services.ViewTracker = services.AlwaysCountViews{}
	if redisClient != nil {
		flightCache = services.NewRedisFlightCache(redisClient)
		viewTracker = services.NewRedisViewTracker(redisClient)
	}

	amadeusClient := services.NewAmadeusClient(nil, cfg.Amadeus.ClientID, cfg.Amadeus.ClientSecret, cfg.Amadeus.Hostname)

	var chatClient services.ChatCompletionClient
	if cfg.Groq.APIKey != "" {
		chatClient = services.NewGroqClient(nil, cfg.Groq.APIKey)
	} else {
		infoLog.Println("GROQ_API_KEY not set, itineraries will use baseline budgets only")
	}

	storage, err := utils.NewStorage(utils.StorageConfig{
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		Endpoint:  cfg.Storage.Endpoint,
	})
	if err != nil {
		infoLog.Printf("Image storage not configured: %v", err)
	}

	tokenManager, err := utils.NewManager(signingKey)
	if err != nil {
		errorLog.Fatal(err)
	}

	// Services
	userService := &services.UserService{
		UserRepo:    &userRepo,
		ProfileRepo: &profileRepo,
		Tokens:      tokenManager,
	}
	itineraryService := services.NewItineraryService(chatClient, cfg.Groq.Model, errorLog)
	tripService := &services.TripService{
		TripRepo:  &tripRepo,
		Itinerary: itineraryService,
	}
	storyService := &services.StoryService{
		StoryRepo:   &storyRepo,
		CommentRepo: &commentRepo,
		UserRepo:    &userRepo,
		ProfileRepo: &profileRepo,
		Reactions:   &reactionRepo,
		Views:       viewTracker,
	}
	flightService := services.NewFlightService(amadeusClient, flightCache)

	return &application{
		errorLog:   errorLog,
		infoLog:    infoLog,
		signingKey: signingKey,
		userRepo:   &userRepo,
		userHandler: &handlers.UserHandler{
			Service: userService,
			Storage: storage,
		},
		tripHandler: &handlers.TripHandler{
			Service: tripService,
			Storage: storage,
		},
		storyHandler: &handlers.StoryHandler{
			Service: storyService,
			Storage: storage,
		},
		flightHandler: &handlers.FlightHandler{
			Service: flightService,
		},
		supportHandler: &handlers.SupportHandler{
			InfoLog: infoLog,
		},
	}
}

func openRedis(cfg config.Config, infoLog *log.Logger) *redis.Client {
	if cfg.Redis.Addr == "" {
		infoLog.Println("Redis not configured, caching and view tracking disabled")
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		infoLog.Printf("Redis unreachable (%v), caching and view tracking disabled", err)
		return nil
	}
	return client
}
