package router

import (
	"yildizli-agac-api/core/middleware"
	"yildizli-agac-api/modules/account/controller"

	"github.com/labstack/echo/v4"
)

type AccountRouter struct {
	AccountController *controller.AccountController
}

func NewAccountRouter(accountController *controller.AccountController) *AccountRouter {
	return &AccountRouter{
		AccountController: accountController,
	}
}

func (r *AccountRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	publicRoutes := v1.Group("/account")
	publicRoutes.POST("/register", r.AccountController.Register)
	publicRoutes.POST("/login", r.AccountController.Login)
	publicRoutes.POST("/verify", r.AccountController.Verify)
	publicRoutes.POST("/forgot-password", r.AccountController.ForgotPassword)

	privateRoutes := v1.Group("/private/account", mw.AuthMiddleware())
	privateRoutes.GET("/me", r.AccountController.Me)
	privateRoutes.POST("/logout", r.AccountController.Logout)
}
