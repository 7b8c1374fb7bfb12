package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-gonic/gin"

	"aira-server/config"
	"aira-server/db"
	"aira-server/exam"
	"aira-server/handlers"
	"aira-server/ingestion"
	"aira-server/middleware"
	"aira-server/session"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	// Initialize database connection pool
	pool, err := db.InitDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer pool.Close()

	// Ensure database schema is set up (simple creation for demo)
	if err := db.CreateSchema(pool); err != nil {
		log.Fatalf("Error creating database schema: %v", err)
	}

	// Load the topic catalog and question banks
	if err := ingestion.LoadBanks(pool, cfg.BankDir); err != nil {
		log.Fatalf("Error loading question banks: %v", err)
	}

	// Storage, session state and the exam engine
	questions := db.NewQuestionStore(pool)
	assessments := db.NewAssessmentStore(pool)
	topics := db.NewTopicStore(pool)
	users := db.NewUserStore(pool)
	sessions := session.NewStore()
	engine := exam.NewEngine(questions, assessments, topics, sessions,
		cfg.Exam.DrawSize, cfg.Exam.WeakAreaThreshold)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Initialize Gin router
	router := gin.Default()

	// Load HTML templates for the web flow
	renderer := multitemplate.NewRenderer()
	renderer.AddFromFiles("exam_form", "templates/layout.html", "templates/exam_form.html")
	renderer.AddFromFiles("exam_result", "templates/layout.html", "templates/exam_result.html")
	renderer.AddFromFiles("assessment_history", "templates/layout.html", "templates/assessment_history.html")
	renderer.AddFromFiles("suggestions", "templates/layout.html", "templates/suggestions.html")
	renderer.AddFromFiles("error_page", "templates/layout.html", "templates/error_page.html")
	router.HTMLRender = renderer

	// Middleware and static assets
	router.Use(middleware.Logger())
	router.Static("/static", "./static")
	authMiddleware := middleware.AuthMiddleware(cfg.Auth.JWTSigningKey, cfg.Auth.Issuer)

	// Public auth routes
	router.POST("/register", handlers.Register(users))
	router.POST("/login", handlers.Login(users, cfg.Auth.JWTSigningKey, cfg.Auth.Issuer, cfg.Auth.TokenTTL))

	// API Routes (version 1)
	apiV1 := router.Group("/api/v1")
	apiV1.Use(authMiddleware)
	{
		apiV1.GET("/topics", handlers.ListTopics(topics))
		apiV1.POST("/topics/:topic_id/exam", handlers.DrawExam(engine, topics))
		apiV1.POST("/exam/submit", handlers.SubmitExam(engine))
		apiV1.GET("/assessments", handlers.GetHistory(assessments))
		apiV1.GET("/assessments/suggestions", handlers.GetSuggestions(engine))
	}

	// Web UI routes
	web := router.Group("/")
	web.Use(authMiddleware)
	{
		web.GET("/exams/:topic_id", handlers.ExamPage(engine, topics))
		web.POST("/submit-exam", handlers.SubmitExamForm(engine))
		web.GET("/assessment", handlers.HistoryPage(assessments))
		web.GET("/analyze-assessment", handlers.SuggestionsPage(engine))
	}

	// Start the server
	srv := &http.Server{
		Addr:    cfg.ServerPort,
		Handler: router,
	}

	// Goroutine to gracefully shut down the server
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Fatalf("Server forced to shutdown: %v", err)
		}
	}()

	log.Printf("AIRA server starting on %s", cfg.ServerPort)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server startup error: %v", err)
	}
	log.Println("Server exited gracefully.")
}
