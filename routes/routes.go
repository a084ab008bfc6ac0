package routes

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Azeezfasasi/lasu-mba-cloth/config"
	"github.com/Azeezfasasi/lasu-mba-cloth/controllers"
	"github.com/Azeezfasasi/lasu-mba-cloth/logger"
	"github.com/Azeezfasasi/lasu-mba-cloth/middleware"
	"github.com/Azeezfasasi/lasu-mba-cloth/services"
)

// Dependencies is everything the router needs to serve the API
type Dependencies struct {
	Config     *config.Config
	Log        *logger.Logger
	Database   *config.Database
	Gatherer   prometheus.Gatherer
	Users      middleware.UserFinder
	Linker     middleware.AccountLinker
	Cloths     *services.ClothService
	Quotes     *services.QuoteService
	Volunteers *services.VolunteerService
	Images     services.ImageService
}

// SetupRouter builds the gin engine with every route under /api.
// Admin routes require a valid token and a staff account when Auth0 is configured.
func SetupRouter(deps Dependencies) (*gin.Engine, error) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(deps.Log))
	router.Use(cors.New(corsConfig(deps.Config.CORS)))
	router.MaxMultipartMemory = 16 << 20

	admin, err := adminGuard(deps)
	if err != nil {
		return nil, err
	}

	health := controllers.NewHealthController(deps.Database)
	cloth := controllers.NewClothController(deps.Cloths)
	quote := controllers.NewQuoteController(deps.Quotes)
	volunteer := controllers.NewVolunteerController(deps.Volunteers)
	upload := controllers.NewUploadController(deps.Images)

	api := router.Group("/api")
	{
		api.GET("/health", health.Health)
		api.GET("/database/status", health.DatabaseStatus)
		if deps.Gatherer != nil {
			api.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
		}

		api.GET("/cloth", cloth.List)
		api.GET("/cloth/featured", cloth.Featured)
		api.POST("/quote", quote.Create)
		api.POST("/volunteer", volunteer.Create)
	}

	staff := api.Group("", admin...)
	{
		staff.POST("/cloth", cloth.Create)
		staff.PUT("/cloth", cloth.Update)
		staff.DELETE("/cloth", cloth.Delete)
		staff.PUT("/cloth/stock", cloth.UpdateStock)

		staff.GET("/quote", quote.List)
		staff.GET("/quote/:id", quote.Get)
		staff.PUT("/quote/:id", quote.Update)
		staff.DELETE("/quote/:id", quote.Delete)
		staff.PUT("/quote/:id/status", quote.ChangeStatus)
		staff.POST("/quote/:id/reply", quote.Reply)
		staff.PUT("/quote/:id/assign", quote.Assign)

		staff.GET("/volunteer", volunteer.List)
		staff.GET("/volunteer/:id", volunteer.Get)
		staff.PUT("/volunteer/:id", volunteer.Update)
		staff.DELETE("/volunteer/:id", volunteer.Delete)

		staff.POST("/upload", upload.Upload)
		staff.POST("/upload/sign", upload.Sign)
		staff.DELETE("/upload", upload.Delete)
	}

	return router, nil
}

// corsConfig allows the configured origins; an empty list or "*" allows any
// origin without credentials
func corsConfig(cfg config.CORSConfig) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 0 || slices.Contains(cfg.AllowedOrigins, "*") {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = cfg.AllowedOrigins
	c.AllowCredentials = true
	return c
}

func adminGuard(deps Dependencies) ([]gin.HandlerFunc, error) {
	if !deps.Config.Auth.Enabled() {
		deps.Log.Warn(context.Background(), "AUTH0_DOMAIN not set, admin routes are unprotected")
		return nil, nil
	}
	validToken, err := middleware.EnsureValidToken(deps.Config.Auth, deps.Log)
	if err != nil {
		return nil, fmt.Errorf("setting up admin authentication: %w", err)
	}
	return []gin.HandlerFunc{validToken, middleware.RequireStaff(deps.Users, deps.Linker, deps.Log)}, nil
}
