package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"calidad-be/company"
	"calidad-be/config"
	"calidad-be/cron"
	"calidad-be/document"
	"calidad-be/middleware"
	"calidad-be/migrate"
	"calidad-be/notify"
	"calidad-be/seeder"
	"calidad-be/sso"
	"calidad-be/user"
	"calidad-be/util"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables.")
	}

	args := os.Args
	db := config.InitDB()
	defer db.Close()

	if len(args) > 1 && args[1] == "--migrate" {
		migrate.RunMigrations(db)
		return
	}

	if len(args) > 1 && args[1] == "--seed" {
		seeder.RunSeeder(db)
		return
	}

	redisClient := config.InitRedis()
	defer redisClient.Close()

	notifierCfg := config.LoadNotifierConfig()
	notifier := notify.NewProcessor(notify.NewClient(notifierCfg), notifierCfg.WorkerCount)

	scheduler := cron.NewScheduler()
	reviewScheduler := cron.NewReviewScheduler(db, notifier)
	if err := reviewScheduler.RegisterJobs(scheduler); err != nil {
		log.Fatalf("Failed to register scheduler jobs: %v", err)
	}
	scheduler.Start()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{os.Getenv("ALLOWED_ORIGINS")},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	user.RegisterRoutes(r, db, redisClient)
	company.RegisterRoutes(r, db)
	sso.RegisterRoutes(r, db, redisClient)
	document.RegisterRoutes(r, db, redisClient)

	internalGroup := r.Group("/internal")
	internalGroup.Use(middleware.APIKeyMiddleware())
	{
		internalGroup.POST("/review-sweep", func(c *gin.Context) {
			reviewScheduler.SweepReviewDue()
			util.SuccessResponse(c, "Review sweep completed", nil)
		})
	}

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8000"
	}

	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: r,
	}

	go func() {
		log.Printf("Server running at http://0.0.0.0:%s\n", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	scheduler.Stop()
	notifier.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited successfully")
}
