package controller

import (
	"net/http"
	"time"

	"yildizli-agac-api/core/constants"
	"yildizli-agac-api/core/controller"
	"yildizli-agac-api/core/errors"
	"yildizli-agac-api/core/middleware"
	"yildizli-agac-api/core/utils"
	"yildizli-agac-api/modules/account/dto"
	"yildizli-agac-api/modules/account/service"
	"yildizli-agac-api/modules/account/validator"

	"github.com/labstack/echo/v4"
)

type AccountController struct {
	controller.BaseController
	AccountService service.AccountServiceInterface
	cookieName     string
}

func NewAccountController(svc service.AccountServiceInterface, cookieName string) *AccountController {
	if cookieName == "" {
		cookieName = "token"
	}
	return &AccountController{
		BaseController: controller.NewBaseController(),
		AccountService: svc,
		cookieName:     cookieName,
	}
}

// Register handles POST /account/register
// @Summary Kayıt ol
// @Description Validates the student e-mail domain, password and gender, then forwards to the account API
// @Tags Account
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} errors.AppError
// @Failure 502 {object} errors.AppError
// @Router /account/register [post]
func (c *AccountController) Register(ctx echo.Context) error {
	var req dto.RegisterRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	validationResult := validator.ValidateRegisterRequest(&req)
	if validationResult.HasError() {
		return c.BadRequest(errors.ErrValidationFailed, validationResult.Errors[0].Message, validationResult)
	}

	result, appErr := c.AccountService.Register(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, result.Message)
}

// Login handles POST /account/login
// @Summary Giriş yap
// @Tags Account
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} errors.AppError
// @Router /account/login [post]
func (c *AccountController) Login(ctx echo.Context) error {
	var req dto.LoginRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	validationResult := validator.ValidateLoginRequest(&req)
	if validationResult.HasError() {
		return c.BadRequest(errors.ErrValidationFailed, validationResult.Errors[0].Message, validationResult)
	}

	result, appErr := c.AccountService.Login(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	ctx.SetCookie(&http.Cookie{
		Name:     c.cookieName,
		Value:    result.Token,
		Path:     "/",
		HttpOnly: true,
		Secure:   ctx.Scheme() == "https",
		SameSite: http.SameSiteLaxMode,
	})
	return c.SuccessResponse(ctx, result, "Giriş başarılı")
}

// Verify handles POST /account/verify
// @Summary E-posta doğrula
// @Tags Account
// @Accept json
// @Param request body dto.VerifyRequest true "Verification token"
// @Success 200 {object} dto.MessageResponse
// @Router /account/verify [post]
func (c *AccountController) Verify(ctx echo.Context) error {
	var req dto.VerifyRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}
	if req.Token == "" {
		req.Token = ctx.QueryParam("token")
	}

	validationResult := validator.ValidateVerifyRequest(&req)
	if validationResult.HasError() {
		return c.BadRequest(errors.ErrValidationFailed, validationResult.Errors[0].Message, validationResult)
	}

	result, appErr := c.AccountService.Verify(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, result.Message)
}

// ForgotPassword handles POST /account/forgot-password
// @Summary Şifremi unuttum
// @Tags Account
// @Accept json
// @Param request body dto.ForgotPasswordRequest true "Student e-mail"
// @Success 200 {object} dto.MessageResponse
// @Router /account/forgot-password [post]
func (c *AccountController) ForgotPassword(ctx echo.Context) error {
	var req dto.ForgotPasswordRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	validationResult := validator.ValidateForgotPasswordRequest(&req)
	if validationResult.HasError() {
		return c.BadRequest(errors.ErrValidationFailed, validationResult.Errors[0].Message, validationResult)
	}

	result, appErr := c.AccountService.ForgotPassword(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, result.Message)
}

// Me handles GET /private/account/me
// @Summary Oturumdaki kullanıcı
// @Tags Account
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} errors.AppError
// @Router /private/account/me [get]
func (c *AccountController) Me(ctx echo.Context) error {
	token := middleware.GetToken(ctx)
	if token == "" {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	result, appErr := c.AccountService.Me(ctx.Request().Context(), token)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "User retrieved successfully")
}

// Logout handles POST /private/account/logout
// @Summary Çıkış yap
// @Description The local session ends even when the account API is unreachable
// @Tags Account
// @Security BearerAuth
// @Success 200 {object} controller.SuccessResponse
// @Router /private/account/logout [post]
func (c *AccountController) Logout(ctx echo.Context) error {
	token := middleware.GetToken(ctx)
	if token == "" {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var expiresAt *time.Time
	if claims, ok := ctx.Get(constants.ContextTokenData).(*utils.TokenClaims); ok && claims.ExpiresAt != nil {
		t := claims.ExpiresAt.Time
		expiresAt = &t
	}

	if appErr := c.AccountService.Logout(ctx.Request().Context(), token, expiresAt); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	ctx.SetCookie(&http.Cookie{
		Name:     c.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return c.SuccessResponse(ctx, nil, "Çıkış yapıldı")
}
