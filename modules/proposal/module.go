package proposal

import (
	"time"

	"yildizli-agac-api/core/cache"
	"yildizli-agac-api/core/config"
	"yildizli-agac-api/core/database"
	"yildizli-agac-api/core/logger"
	"yildizli-agac-api/core/middleware"
	"yildizli-agac-api/core/queue"
	"yildizli-agac-api/core/realtime"
	"yildizli-agac-api/modules/proposal/controller"
	"yildizli-agac-api/modules/proposal/repository"
	"yildizli-agac-api/modules/proposal/router"
	"yildizli-agac-api/modules/proposal/service"
	"yildizli-agac-api/modules/proposal/worker"

	"github.com/labstack/echo/v4"
)

// Init wires the proposal module and registers its routes
func Init(e *echo.Echo, db database.Database, c cache.Cache, q service.Enqueuer, matches service.CounterpartSource, mw *middleware.Middleware) {
	repo := repository.NewProposalRepository(db)
	svc := service.NewProposalService(repo, matches, c, q, Settings())
	ctrl := controller.NewProposalController(svc)

	router.NewProposalRouter(ctrl).Setup(e, mw)
}

// InitWorker registers the proposal:submitted handler on the queue server.
func InitWorker(srv *queue.Server, db database.Database, matches worker.MatchStore, notifier worker.Notifier, publisher realtime.Publisher) {
	repo := repository.NewProposalRepository(db)
	worker.NewSubmissionWorker(repo, matches, notifier, publisher).Register(srv)
}

// Settings reads the proposal rules from configuration.
func Settings() service.Settings {
	cfg := config.Get().Proposal
	return service.Settings{
		RequireDistinctDates: cfg.RequireDistinctDates,
		DraftTTL:             cfg.DraftTTL,
		SubmitDelay:          cfg.SubmitDelay,
		Location:             Location(cfg.Location),
	}
}

// Location resolves the zone used for "today"; unknown names fall back to
// the process zone.
func Location(name string) *time.Location {
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		logger.Warn("Proposal:Location:Fallback", "location", name, "error", err)
		return time.Local
	}
	return loc
}
