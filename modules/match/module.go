package match

import (
	"yildizli-agac-api/core/database"
	"yildizli-agac-api/core/middleware"
	"yildizli-agac-api/modules/match/controller"
	"yildizli-agac-api/modules/match/repository"
	"yildizli-agac-api/modules/match/router"
	"yildizli-agac-api/modules/match/service"

	"github.com/labstack/echo/v4"
)

// Init registers the match routes and returns the service so the proposal
// module can read counterpart proposals through it.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) service.MatchServiceInterface {
	repo := repository.NewMatchRepository(db)
	svc := service.NewMatchService(repo)
	ctrl := controller.NewMatchController(svc)

	router.NewMatchRouter(ctrl).Setup(e, mw)
	return svc
}
