package controller

import (
	"yildizli-agac-api/core/controller"
	"yildizli-agac-api/modules/interest/service"

	"github.com/labstack/echo/v4"
)

type InterestController struct {
	controller.BaseController
	InterestService service.InterestServiceInterface
}

func NewInterestController(svc service.InterestServiceInterface) *InterestController {
	return &InterestController{
		BaseController:  controller.NewBaseController(),
		InterestService: svc,
	}
}

// List handles GET /interests
// @Summary İlgi alanlarını listele
// @Tags Interest
// @Produce json
// @Param search query string false "Name filter"
// @Success 200 {object} dto.InterestListResponse
// @Failure 502 {object} errors.AppError
// @Router /interests [get]
func (c *InterestController) List(ctx echo.Context) error {
	result, appErr := c.InterestService.List(ctx.Request().Context(), ctx.QueryParam("search"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Interests retrieved successfully")
}
