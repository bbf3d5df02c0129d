package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sibsankar910/inkflows-server/internal/handlers"
	"github.com/sibsankar910/inkflows-server/internal/middleware"
	"github.com/sibsankar910/inkflows-server/internal/models"
	"github.com/sibsankar910/inkflows-server/internal/repositories"
	"github.com/sibsankar910/inkflows-server/pkg/config"
	"github.com/sibsankar910/inkflows-server/pkg/firebase"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, cfg *config.Config, logger *zap.Logger) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORSWithConfig(eMiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.CorsOrigin},
		AllowCredentials: true,
	}))
	e.Use(eMiddleware.BodyLimit("16K"))
	e.Use(requestLogger(logger))

	e.HTTPErrorHandler = newHTTPErrorHandler(logger)
	logger.Info("global middleware configured")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, mgClient *mongo.Client, storage *firebase.App, cfg *config.Config, logger *zap.Logger) {
	db := mgClient.Database(cfg.MongoDBName)

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewMongoUserRepository(db)
	blogRepo := repositories.NewMongoBlogRepository(db)
	likeRepo := repositories.NewMongoLikeRepository(db)
	viewRepo := repositories.NewMongoViewRepository(db)
	followRepo := repositories.NewMongoFollowRepository(db)
	savedBlogRepo := repositories.NewMongoSavedBlogRepository(db)
	contributionRepo := repositories.NewMongoContributionRepository(db)

	// --- Gates ---
	auth := middleware.AuthGate(userRepo, cfg.AccessTokenSecret)
	editor := middleware.BlogEditorGate(blogRepo, contributionRepo)

	userGroup := e.Group("/api/v1/user")
	blogGroup := e.Group("/api/v1/blog")

	// User-side routes
	authHandler := handlers.NewAuthHandler(userRepo, storage, cfg, logger)
	authHandler.RegisterAuthRoutes(userGroup, auth)

	googleAuthHandler := handlers.NewGoogleAuthHandler(userRepo, cfg, logger)
	googleAuthHandler.RegisterGoogleAuthRoutes(userGroup)

	userHandler := handlers.NewUserHandler(userRepo, storage, logger)
	userHandler.RegisterUserRoutes(userGroup, auth)

	followHandler := handlers.NewFollowHandler(followRepo, userRepo)
	followHandler.RegisterFollowRoutes(userGroup, auth)

	// Blog-side routes
	blogHandler := handlers.NewBlogHandler(blogRepo, userRepo, storage, logger)
	blogHandler.RegisterBlogRoutes(blogGroup, auth, editor)

	likeHandler := handlers.NewLikeHandler(likeRepo, blogRepo)
	likeHandler.RegisterLikeRoutes(blogGroup, auth)

	viewHandler := handlers.NewViewHandler(viewRepo, blogRepo)
	viewHandler.RegisterViewRoutes(blogGroup, auth)

	savedBlogHandler := handlers.NewSavedBlogHandler(savedBlogRepo)
	savedBlogHandler.RegisterSavedBlogRoutes(blogGroup, auth)

	searchHandler := handlers.NewSearchHandler(userRepo, blogRepo)
	searchHandler.RegisterSearchRoutes(blogGroup)

	contributionHandler := handlers.NewContributionHandler(contributionRepo, userRepo)
	contributionHandler.RegisterContributionRoutes(blogGroup, auth, editor)

	logger.Info("routes configured")
}

// newHTTPErrorHandler converts every error escaping a handler into the
// uniform response envelope. Unknown errors are logged and collapsed to
// a generic 500 so internals never leak to the client.
func newHTTPErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := "Internal server error"
		if httpErr, ok := err.(*echo.HTTPError); ok {
			code = httpErr.Code
			if msg, ok := httpErr.Message.(string); ok {
				message = msg
			}
		} else {
			logger.Error("unhandled error",
				zap.String("path", c.Request().URL.Path),
				zap.Error(err),
			)
		}

		if writeErr := c.JSON(code, models.NewApiResponse(code, echo.Map{}, message)); writeErr != nil {
			logger.Error("failed to write error response", zap.Error(writeErr))
		}
	}
}

func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return eMiddleware.RequestLoggerWithConfig(eMiddleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v eMiddleware.RequestLoggerValues) error {
			logger.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)
			return nil
		},
	})
}
