package main

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Azeezfasasi/lasu-mba-cloth/config"
	"github.com/Azeezfasasi/lasu-mba-cloth/logger"
	"github.com/Azeezfasasi/lasu-mba-cloth/metrics"
	"github.com/Azeezfasasi/lasu-mba-cloth/middleware"
	"github.com/Azeezfasasi/lasu-mba-cloth/routes"
	"github.com/Azeezfasasi/lasu-mba-cloth/services"
	"github.com/Azeezfasasi/lasu-mba-cloth/stores"
)

// appDeps are the external clients the API is built on
type appDeps struct {
	cfg      *config.Config
	log      *logger.Logger
	db       *config.Database
	media    services.S3Interface
	mail     services.MailService
	identity services.IdentityProvider // nil when Auth0 is not configured
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
}

// app is the wired API: the router plus the background worker that must be
// started and drained around it
type app struct {
	router   *gin.Engine
	notifier *services.Notifier
}

func newApp(d appDeps) (*app, error) {
	notifier := services.NewNotifier(d.log, d.metrics, d.cfg.Notify.QueueSize)

	users := stores.NewUserStore(d.db.DB)
	notify := services.NewNotificationService(d.mail, users, notifier, d.cfg.Mail.AdminEmail, d.cfg.Notify.FanoutDelay, d.log)
	images := services.NewS3ImageService(d.media, d.cfg.Media.UploadPreset, d.metrics)

	var linker middleware.AccountLinker
	if d.identity != nil {
		linker = services.NewStaffLinker(users, d.identity, d.log)
	}

	router, err := routes.SetupRouter(routes.Dependencies{
		Config:     d.cfg,
		Log:        d.log,
		Database:   d.db,
		Gatherer:   d.gatherer,
		Users:      users,
		Linker:     linker,
		Cloths:     services.NewClothService(stores.NewClothStore(d.db.DB), images, d.log),
		Quotes:     services.NewQuoteService(stores.NewQuoteStore(d.db.DB), users, notify, d.log),
		Volunteers: services.NewVolunteerService(stores.NewVolunteerStore(d.db.DB), users, notify, d.log),
		Images:     images,
	})
	if err != nil {
		return nil, err
	}

	return &app{router: router, notifier: notifier}, nil
}
