package controller

import (
	"strconv"

	"yildizli-agac-api/core/controller"
	"yildizli-agac-api/core/errors"
	"yildizli-agac-api/core/middleware"
	"yildizli-agac-api/modules/proposal/dto"
	"yildizli-agac-api/modules/proposal/service"

	"github.com/labstack/echo/v4"
)

// ProposalController handles proposal draft and submission requests
type ProposalController struct {
	controller.BaseController
	ProposalService service.ProposalServiceInterface
}

func NewProposalController(svc service.ProposalServiceInterface) *ProposalController {
	return &ProposalController{
		BaseController:  controller.NewBaseController(),
		ProposalService: svc,
	}
}

func slotIndex(ctx echo.Context) (int, bool) {
	index, err := strconv.Atoi(ctx.Param("index"))
	if err != nil || index < 0 {
		return 0, false
	}
	return index, true
}

// GetDraft handles GET /proposals/draft
// @Summary Taslak zaman önerilerini getir
// @Tags Proposal
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.DraftResponse
// @Failure 401 {object} errors.AppError
// @Router /private/proposals/draft [get]
func (c *ProposalController) GetDraft(ctx echo.Context) error {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	result, appErr := c.ProposalService.GetDraft(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Draft retrieved successfully")
}

// AddSlot handles POST /proposals/draft/slots
// @Summary Boş zaman slotu ekle
// @Tags Proposal
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.DraftResponse
// @Router /private/proposals/draft/slots [post]
func (c *ProposalController) AddSlot(ctx echo.Context) error {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	result, appErr := c.ProposalService.AddSlot(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Slot added")
}

// RemoveSlot handles DELETE /proposals/draft/slots/:index
// @Summary Zaman slotunu sil
// @Tags Proposal
// @Security BearerAuth
// @Param index path int true "Slot index (0 = most preferred)"
// @Success 200 {object} dto.DraftResponse
// @Failure 404 {object} errors.AppError
// @Router /private/proposals/draft/slots/{index} [delete]
func (c *ProposalController) RemoveSlot(ctx echo.Context) error {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	index, ok := slotIndex(ctx)
	if !ok {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid slot index")
	}

	result, appErr := c.ProposalService.RemoveSlot(ctx.Request().Context(), userID, index)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Slot removed")
}

// UpdateSlot handles PATCH /proposals/draft/slots/:index
// @Summary Zaman slotunun tarih veya saatini değiştir
// @Tags Proposal
// @Security BearerAuth
// @Accept json
// @Param index path int true "Slot index"
// @Param request body dto.UpdateSlotRequest true "Field and value"
// @Success 200 {object} dto.DraftResponse
// @Failure 400 {object} errors.AppError
// @Router /private/proposals/draft/slots/{index} [patch]
func (c *ProposalController) UpdateSlot(ctx echo.Context) error {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	index, ok := slotIndex(ctx)
	if !ok {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid slot index")
	}

	var req dto.UpdateSlotRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.ProposalService.UpdateSlot(ctx.Request().Context(), userID, index, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Slot updated")
}

// MoveSlot handles POST /proposals/draft/slots/:index/move
// @Summary Zaman slotunun öncelik sırasını değiştir
// @Tags Proposal
// @Security BearerAuth
// @Accept json
// @Param index path int true "Slot index"
// @Param request body dto.MoveSlotRequest true "up or down"
// @Success 200 {object} dto.DraftResponse
// @Router /private/proposals/draft/slots/{index}/move [post]
func (c *ProposalController) MoveSlot(ctx echo.Context) error {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	index, ok := slotIndex(ctx)
	if !ok {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid slot index")
	}

	var req dto.MoveSlotRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.ProposalService.MoveSlot(ctx.Request().Context(), userID, index, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Slot moved")
}

// SetPicker handles PUT /proposals/draft/slots/:index/picker
// @Summary Tarih/saat seçicisini aç veya kapat
// @Tags Proposal
// @Security BearerAuth
// @Accept json
// @Param index path int true "Slot index"
// @Param request body dto.PickerRequest true "Picker state"
// @Success 200 {object} dto.DraftResponse
// @Router /private/proposals/draft/slots/{index}/picker [put]
func (c *ProposalController) SetPicker(ctx echo.Context) error {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	index, ok := slotIndex(ctx)
	if !ok {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid slot index")
	}

	var req dto.PickerRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.ProposalService.SetPicker(ctx.Request().Context(), userID, index, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Picker updated")
}

// ResetDraft handles DELETE /proposals/draft
// @Summary Taslağı sıfırla
// @Tags Proposal
// @Security BearerAuth
// @Success 200 {object} controller.SuccessResponse
// @Router /private/proposals/draft [delete]
func (c *ProposalController) ResetDraft(ctx echo.Context) error {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	if appErr := c.ProposalService.ResetDraft(ctx.Request().Context(), userID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Draft reset")
}

// Submit handles POST /proposals/submit
// @Summary Zaman önerilerini gönder
// @Description Exactly three complete slots; the same set submitted twice returns the first submission
// @Tags Proposal
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.SubmissionResponse
// @Failure 400 {object} errors.AppError
// @Failure 409 {object} errors.AppError
// @Router /private/proposals/submit [post]
func (c *ProposalController) Submit(ctx echo.Context) error {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	result, appErr := c.ProposalService.Submit(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Zaman önerileriniz kaydedildi")
}

// GetSubmission handles GET /proposals/submission
// @Summary Son gönderilen önerileri getir
// @Tags Proposal
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.SubmissionResponse
// @Failure 404 {object} errors.AppError
// @Router /private/proposals/submission [get]
func (c *ProposalController) GetSubmission(ctx echo.Context) error {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	result, appErr := c.ProposalService.GetLatestSubmission(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Submission retrieved successfully")
}
