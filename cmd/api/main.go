package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"najia-backend/internal/client"
	"najia-backend/internal/config"
	"najia-backend/internal/jobs"
	"najia-backend/internal/ratelimit"
	"najia-backend/internal/repository"
	"najia-backend/internal/server"
	"najia-backend/internal/service"

	"github.com/caarlos0/env/v10"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	db := client.InitMysqlClient(cfg.DatabaseURL)
	if err := client.Migrate(db); err != nil {
		log.Fatal("migration failed: ", err)
	}

	stripeClient := client.NewStripeClient(&cfg.Stripe)

	var smsSender client.SMSSender
	if cfg.Environment.Name == "development" {
		smsSender = client.NewLogSMSSender()
	} else {
		var err error
		smsSender, err = client.NewSNSSender(&cfg.AWS)
		if err != nil {
			log.Fatal("sns client: ", err)
		}
	}

	objectStore, err := client.NewS3Store(&cfg.AWS)
	if err != nil {
		log.Fatal("s3 client: ", err)
	}

	var cooldowns ratelimit.CooldownStore
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatal("redis url: ", err)
		}
		cooldowns = ratelimit.NewRedisStore(redis.NewClient(opts))
	} else {
		cooldowns = ratelimit.NewMemoryStore()
	}

	userRepo := repository.NewUserRepository(db)
	recordRepo := repository.NewWorshipRecordRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	webhookRepo := repository.NewWebhookEventRepository(db)
	otpRepo := repository.NewOtpRepository(db)
	qadaRepo := repository.NewQadaRepository(db)
	puasaRepo := repository.NewQadaPuasaRepository(db)
	childRepo := repository.NewChildRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	groceryRepo := repository.NewGroceryRepository(db)

	userService := service.NewUserService(userRepo)
	otpService := service.NewOtpService(otpRepo, smsSender, cooldowns)
	authService := service.NewAuthService(otpService, userService, userRepo, &cfg.Auth)
	worshipService := service.NewWorshipService(recordRepo)
	paymentService := service.NewPaymentService(db, stripeClient, paymentRepo, subRepo, webhookRepo, userRepo)
	qadaService := service.NewQadaService(qadaRepo)
	puasaService := service.NewQadaPuasaService(puasaRepo)
	familyService := service.NewFamilyService(db, childRepo, taskRepo)
	groceryService := service.NewGroceryService(groceryRepo)
	storageService := service.NewStorageService(objectStore)

	sweeper := jobs.NewExpirySweeper(subRepo, userService)
	if err := sweeper.Start(); err != nil {
		log.Fatal("start expiry sweeper: ", err)
	}
	defer sweeper.Stop()

	srv := server.NewServer(server.Services{
		Auth:      authService,
		User:      userService,
		Worship:   worshipService,
		Payment:   paymentService,
		Qada:      qadaService,
		QadaPuasa: puasaService,
		Family:    familyService,
		Grocery:   groceryService,
		Storage:   storageService,
	})

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port
	log.Println("Starting HTTP server on", serverAddr)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Println("Signal received, starting graceful shutdown...")

	if err := srv.Shutdown(); err != nil {
		log.Fatal("HTTP server shutdown error")
	}
}
