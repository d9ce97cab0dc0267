package router

import (
	"yildizli-agac-api/core/middleware"
	"yildizli-agac-api/modules/match/controller"

	"github.com/labstack/echo/v4"
)

type MatchRouter struct {
	MatchController *controller.MatchController
}

func NewMatchRouter(matchController *controller.MatchController) *MatchRouter {
	return &MatchRouter{
		MatchController: matchController,
	}
}

func (r *MatchRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	privateRoutes := v1.Group("/private/match", mw.AuthMiddleware())
	privateRoutes.GET("", r.MatchController.GetMyMatch)
	privateRoutes.POST("/reveal", r.MatchController.Reveal)

	internalRoutes := v1.Group("/internal", mw.InternalKeyMiddleware())
	internalRoutes.PUT("/matches", r.MatchController.ImportMatches)
}
