package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/aakash391999/ExamSphare-sub000/internal/config"
	"github.com/aakash391999/ExamSphare-sub000/internal/database"
	"github.com/aakash391999/ExamSphare-sub000/internal/generator"
	"github.com/aakash391999/ExamSphare-sub000/internal/handlers"
	"github.com/aakash391999/ExamSphare-sub000/internal/practice"
	"github.com/aakash391999/ExamSphare-sub000/internal/repository"
	"github.com/aakash391999/ExamSphare-sub000/internal/security"
	"github.com/aakash391999/ExamSphare-sub000/internal/service"
)

func main() {
	// Load .env if present; real env vars take precedence
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env: %v", err)
	}

	cfg := config.Load()

	db, err := database.Initialize(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Repositories
	userRepo := repository.NewUserRepository(db)
	examRepo := repository.NewExamRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	mistakeRepo := repository.NewMistakeRepository(db)
	resultRepo := repository.NewResultRepository(db)
	socialRepo := repository.NewSocialRepository(db)
	flashcardRepo := repository.NewFlashcardRepository(db)
	planRepo := repository.NewPlanRepository(db)

	// Services
	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL, cfg.EmailDebug)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	authService := service.NewAuthService(userRepo, cfg.SessionDuration)
	contentService := service.NewContentService(examRepo, questionRepo)
	practiceService := service.NewPracticeService(contentService, mistakeRepo, resultRepo,
		generator.NewOpenAIGenerator(cfg.OpenAIAPIKey),
		practice.Config{
			SecondsPerQuestion: cfg.PracticeSecondsPerQuestion,
			SampleSize:         cfg.PracticeSampleSize,
			GenerationCount:    cfg.GenerationBatchSize,
		})
	socialService := service.NewSocialService(socialRepo, userRepo, emailService)
	flashcardService := service.NewFlashcardService(flashcardRepo)
	plannerService := service.NewPlannerService(planRepo, contentService)
	statsService := service.NewStatsService(mistakeRepo, resultRepo, contentService)

	// Handlers
	rateLimiter := security.NewRateLimiter(10, time.Minute)
	middleware := handlers.NewMiddleware(authService, rateLimiter)
	authHandler := handlers.NewAuthHandler(authService)
	oauthHandler := handlers.NewOAuthHandler(authService, cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.OAuthRedirectURL, cfg.AppBaseURL)
	contentHandler := handlers.NewContentHandler(contentService)
	practiceHandler := handlers.NewPracticeHandler(practiceService)
	socialHandler := handlers.NewSocialHandler(socialService)
	studyHandler := handlers.NewStudyHandler(contentService, flashcardService, plannerService, statsService, mistakeRepo, resultRepo)

	mux := http.NewServeMux()

	// Auth
	mux.HandleFunc("POST /api/auth/register", middleware.RateLimit(authHandler.Register))
	mux.HandleFunc("POST /api/auth/login", middleware.RateLimit(authHandler.Login))
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.HandleFunc("GET /api/auth/me", middleware.RequireAuth(authHandler.Me))
	mux.HandleFunc("PATCH /api/auth/me", middleware.RequireAuth(authHandler.UpdateProfile))
	mux.HandleFunc("GET /api/auth/google", oauthHandler.Start)
	mux.HandleFunc("GET /api/auth/google/callback", oauthHandler.Callback)

	// Exam catalog
	mux.HandleFunc("GET /api/exams", middleware.RequireAuth(contentHandler.ListExams))
	mux.HandleFunc("GET /api/exams/{examID}", middleware.RequireAuth(contentHandler.GetExam))
	mux.HandleFunc("GET /api/exams/{examID}/syllabus", middleware.RequireAuth(contentHandler.Syllabus))
	mux.HandleFunc("GET /api/exams/{examID}/topics/{topicID}/questions", middleware.RequireAuth(contentHandler.TopicQuestions))

	// Practice sessions
	mux.HandleFunc("POST /api/practice/start", middleware.RequireAuth(practiceHandler.Start))
	mux.HandleFunc("GET /api/practice/session", middleware.RequireAuth(practiceHandler.State))
	mux.HandleFunc("POST /api/practice/select", middleware.RequireAuth(practiceHandler.SelectOption))
	mux.HandleFunc("POST /api/practice/submit", middleware.RequireAuth(practiceHandler.Submit))
	mux.HandleFunc("POST /api/practice/next", middleware.RequireAuth(practiceHandler.Next))
	mux.HandleFunc("POST /api/practice/reset", middleware.RequireAuth(practiceHandler.Reset))

	// Study tooling
	mux.HandleFunc("GET /api/mistakes", middleware.RequireAuth(studyHandler.ListMistakes))
	mux.HandleFunc("DELETE /api/mistakes", middleware.RequireAuth(studyHandler.ClearMistakes))
	mux.HandleFunc("GET /api/results", middleware.RequireAuth(studyHandler.ListResults))
	mux.HandleFunc("GET /api/stats", middleware.RequireAuth(studyHandler.Stats))
	mux.HandleFunc("POST /api/flashcards", middleware.RequireAuth(studyHandler.CreateCard))
	mux.HandleFunc("GET /api/flashcards", middleware.RequireAuth(studyHandler.ListCards))
	mux.HandleFunc("POST /api/flashcards/{cardID}/review", middleware.RequireAuth(studyHandler.ReviewCard))
	mux.HandleFunc("DELETE /api/flashcards/{cardID}", middleware.RequireAuth(studyHandler.DeleteCard))
	mux.HandleFunc("POST /api/plans", middleware.RequireAuth(studyHandler.CreatePlan))
	mux.HandleFunc("GET /api/plans", middleware.RequireAuth(studyHandler.ListPlans))
	mux.HandleFunc("GET /api/plans/today", middleware.RequireAuth(studyHandler.TodayAgenda))
	mux.HandleFunc("DELETE /api/plans/{planID}", middleware.RequireAuth(studyHandler.DeletePlan))
	mux.HandleFunc("POST /api/plans/{planID}/tasks", middleware.RequireAuth(studyHandler.AddTask))
	mux.HandleFunc("GET /api/plans/{planID}/tasks", middleware.RequireAuth(studyHandler.ListTasks))
	mux.HandleFunc("PATCH /api/plans/{planID}/tasks/{taskID}", middleware.RequireAuth(studyHandler.SetTaskDone))

	// Social
	mux.HandleFunc("POST /api/posts", middleware.RequireAuth(socialHandler.CreatePost))
	mux.HandleFunc("GET /api/feed", middleware.RequireAuth(socialHandler.Feed))
	mux.HandleFunc("GET /api/users/search", middleware.RequireAuth(socialHandler.SearchUsers))
	mux.HandleFunc("GET /api/users/{userID}", middleware.RequireAuth(socialHandler.Profile))
	mux.HandleFunc("POST /api/users/{userID}/follow", middleware.RequireAuth(socialHandler.Follow))
	mux.HandleFunc("DELETE /api/users/{userID}/follow", middleware.RequireAuth(socialHandler.Unfollow))
	mux.HandleFunc("POST /api/users/{userID}/messages", middleware.RequireAuth(socialHandler.SendMessage))
	mux.HandleFunc("GET /api/users/{userID}/messages", middleware.RequireAuth(socialHandler.Conversation))
	mux.HandleFunc("GET /api/notifications", middleware.RequireAuth(socialHandler.Notifications))
	mux.HandleFunc("POST /api/notifications/read", middleware.RequireAuth(socialHandler.MarkNotificationsRead))

	handler := handlers.Logging(mux)

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:        addr,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		// Session start may wait on question generation
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go cleanupExpiredSessions(authService)
	go sendStudyReminders(plannerService, userRepo, emailService)

	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
}

// sendStudyReminders emails each user their pending plan tasks once a day
func sendStudyReminders(plannerService *service.PlannerService, userRepo *repository.UserRepository, emailService *service.EmailService) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		userIDs, err := plannerService.UsersWithTasksDueToday(now)
		if err != nil {
			log.Printf("Error listing users with due tasks: %v", err)
			continue
		}

		for _, userID := range userIDs {
			user, err := userRepo.GetUserByID(userID)
			if err != nil || user == nil {
				log.Printf("Warning: failed to resolve user %d for reminder: %v", userID, err)
				continue
			}

			tasks, err := plannerService.TodayAgenda(userID, now)
			if err != nil {
				log.Printf("Warning: failed to load agenda for user %d: %v", userID, err)
				continue
			}

			titles := make([]string, 0, len(tasks))
			for _, task := range tasks {
				if !task.Done {
					titles = append(titles, task.Title)
				}
			}
			if len(titles) == 0 {
				continue
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if err := emailService.SendStudyReminder(ctx, user.Email, user.Name, titles); err != nil {
				log.Printf("Warning: failed to send study reminder to user %d: %v", userID, err)
			}
			cancel()
		}
	}
}

func cleanupExpiredSessions(authService *service.AuthService) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := authService.CleanupExpiredSessions(); err != nil {
			log.Printf("Error cleaning up expired sessions: %v", err)
		} else {
			log.Println("Expired sessions cleaned up")
		}
	}
}
