// Package server wires the HTTP API: routing, middleware and the Fiber
// handlers sitting on top of the service layer.
package server

import (
	"context"
	"fmt"
	"time"

	"critiq/internal/cache"
	"critiq/internal/config"
	"critiq/internal/database"
	"critiq/internal/mail"
	"critiq/internal/middleware"
	"critiq/internal/models"
	"critiq/internal/repository"
	"critiq/internal/service"
	"critiq/internal/token"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers.
type Server struct {
	config *config.Config
	db     *gorm.DB
	redis  *redis.Client
	signer token.Signer

	userRepo repository.UserRepository

	authService     *service.AuthService
	userService     *service.UserService
	titleService    *service.TitleService
	genreService    *service.GenreService
	categoryService *service.CategoryService
	reviewService   *service.ReviewService
	commentService  *service.CommentService
}

// NewServer builds a fully wired server: database, Redis, repositories and
// services.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	redisClient := cache.InitRedis(cfg.RedisURL)

	signer, err := token.NewJWTSigner(cfg.JWTSecret, cfg.JWTExpiry())
	if err != nil {
		return nil, err
	}

	var mailer mail.Mailer
	if cfg.SMTPHost != "" {
		mailer = mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.MailFrom)
	} else {
		mailer = mail.NewLogMailer()
	}

	return NewServerWithDeps(cfg, db, redisClient, signer, mailer), nil
}

// NewServerWithDeps wires a server from already-constructed collaborators.
// Tests use it to swap in fakes.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, signer token.Signer, mailer mail.Mailer) *Server {
	userRepo := repository.NewUserRepository(db)
	titleRepo := repository.NewTitleRepository(db)
	genreRepo := repository.NewGenreRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	ratings := cache.NewRatingCache(redisClient)

	return &Server{
		config:          cfg,
		db:              db,
		redis:           redisClient,
		signer:          signer,
		userRepo:        userRepo,
		authService:     service.NewAuthService(userRepo, mailer, signer, cfg.ConfirmationTTL()),
		userService:     service.NewUserService(userRepo, reviewRepo, ratings),
		titleService:    service.NewTitleService(titleRepo, categoryRepo, genreRepo, ratings),
		genreService:    service.NewGenreService(genreRepo),
		categoryService: service.NewCategoryService(categoryRepo),
		reviewService:   service.NewReviewService(reviewRepo, titleRepo, ratings),
		commentService:  service.NewCommentService(commentRepo, reviewRepo),
	}
}

// App assembles the Fiber application with middleware and routes.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "Critiq API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return models.RespondWithError(c, models.StatusForError(err), err)
		},
	})

	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// SetupMiddleware registers the global middleware chain.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.StructuredLogger())

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	middleware.InitMetrics(app, "critiq-api")
}

// SetupRoutes configures all routes for the application.
func (s *Server) SetupRoutes(app *fiber.App) {
	authRequired := middleware.AuthRequired(s.signer, s.userRepo)
	optionalAuth := middleware.OptionalAuth(s.signer, s.userRepo)
	withCtx := middleware.ContextMiddleware()

	api := app.Group("/api/v1")
	api.Get("/health", s.HealthCheck)

	auth := api.Group("/auth")
	auth.Post("/signup", s.Signup)
	auth.Post("/token", s.IssueToken)

	users := api.Group("/users", authRequired, withCtx)
	users.Get("/", s.ListUsers)
	users.Post("/", s.CreateUser)
	// /me must be registered before the generic /:username routes.
	users.Get("/me", s.GetMyProfile)
	users.Patch("/me", s.UpdateMyProfile)
	users.Get("/:username", s.GetUser)
	users.Patch("/:username", s.UpdateUser)
	users.Delete("/:username", s.DeleteUser)

	categories := api.Group("/categories", optionalAuth, withCtx)
	categories.Get("/", s.ListCategories)
	categories.Post("/", s.CreateCategory)
	categories.Delete("/:slug", s.DeleteCategory)

	genres := api.Group("/genres", optionalAuth, withCtx)
	genres.Get("/", s.ListGenres)
	genres.Post("/", s.CreateGenre)
	genres.Delete("/:slug", s.DeleteGenre)

	titles := api.Group("/titles", optionalAuth, withCtx)
	titles.Get("/", s.ListTitles)
	titles.Post("/", s.CreateTitle)
	titles.Get("/:titleId", s.GetTitle)
	titles.Patch("/:titleId", s.UpdateTitle)
	titles.Delete("/:titleId", s.DeleteTitle)

	reviews := titles.Group("/:titleId/reviews")
	reviews.Get("/", s.ListReviews)
	reviews.Post("/", s.CreateReview)
	reviews.Get("/:reviewId", s.GetReview)
	reviews.Patch("/:reviewId", s.UpdateReview)
	reviews.Delete("/:reviewId", s.DeleteReview)

	comments := reviews.Group("/:reviewId/comments")
	comments.Get("/", s.ListComments)
	comments.Post("/", s.CreateComment)
	comments.Get("/:commentId", s.GetComment)
	comments.Patch("/:commentId", s.UpdateComment)
	comments.Delete("/:commentId", s.DeleteComment)
}

// Close releases the database and Redis connections.
func (s *Server) Close() error {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			middleware.Logger.Error("closing redis", "error", err)
		}
	}
	if s.db != nil {
		sqlDB, err := s.db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

// HealthCheck reports database and Redis status.
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if s.db != nil {
		sqlDB, err := s.db.DB()
		if err != nil {
			dbStatus = "unhealthy"
		} else if err := sqlDB.PingContext(ctx); err != nil {
			dbStatus = "unhealthy"
		}
	} else {
		dbStatus = "unavailable"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"status": "ok",
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}
