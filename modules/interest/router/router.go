package router

import (
	"yildizli-agac-api/modules/interest/controller"

	"github.com/labstack/echo/v4"
)

type InterestRouter struct {
	InterestController *controller.InterestController
}

func NewInterestRouter(interestController *controller.InterestController) *InterestRouter {
	return &InterestRouter{InterestController: interestController}
}

func (r *InterestRouter) Setup(e *echo.Echo) {
	e.GET("/api/v1/interests", r.InterestController.List)
}
