package account

import (
	"yildizli-agac-api/core/middleware"
	"yildizli-agac-api/modules/account/controller"
	"yildizli-agac-api/modules/account/router"
	"yildizli-agac-api/modules/account/service"

	"github.com/labstack/echo/v4"
)

// Init registers the account routes. The service is created by the caller
// because the auth middleware needs it before any module is set up.
func Init(e *echo.Echo, svc service.AccountServiceInterface, cookieName string, mw *middleware.Middleware) {
	ctrl := controller.NewAccountController(svc, cookieName)
	router.NewAccountRouter(ctrl).Setup(e, mw)
}
