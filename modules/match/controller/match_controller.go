package controller

import (
	"yildizli-agac-api/core/controller"
	"yildizli-agac-api/core/errors"
	"yildizli-agac-api/core/middleware"
	"yildizli-agac-api/modules/match/dto"
	"yildizli-agac-api/modules/match/service"

	"github.com/labstack/echo/v4"
)

type MatchController struct {
	controller.BaseController
	MatchService service.MatchServiceInterface
}

func NewMatchController(svc service.MatchServiceInterface) *MatchController {
	return &MatchController{
		BaseController: controller.NewBaseController(),
		MatchService:   svc,
	}
}

// GetMyMatch handles GET /match
// @Summary Eşleşme bilgisini getir
// @Description Counterpart is shown by initials until the match is revealed
// @Tags Match
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.MatchResponse
// @Failure 404 {object} errors.AppError
// @Router /private/match [get]
func (c *MatchController) GetMyMatch(ctx echo.Context) error {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	result, appErr := c.MatchService.GetMyMatch(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Match retrieved successfully")
}

// Reveal handles POST /match/reveal
// @Summary Eşleşmeyi aç
// @Tags Match
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.MatchResponse
// @Failure 404 {object} errors.AppError
// @Router /private/match/reveal [post]
func (c *MatchController) Reveal(ctx echo.Context) error {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	result, appErr := c.MatchService.Reveal(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Match revealed")
}

// ImportMatches handles PUT /internal/matches
// @Summary Import matches from the matching service
// @Tags Internal
// @Security InternalKey
// @Accept json
// @Param request body dto.ImportMatchesRequest true "Matches"
// @Success 200 {object} dto.ImportMatchesResponse
// @Failure 400 {object} errors.AppError
// @Router /internal/matches [put]
func (c *MatchController) ImportMatches(ctx echo.Context) error {
	var req dto.ImportMatchesRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if len(req.Matches) == 0 {
		return c.BadRequest(errors.ErrInvalidRequestData, "matches must not be empty")
	}

	result, appErr := c.MatchService.ImportMatches(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Matches imported")
}
