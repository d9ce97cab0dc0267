package notification

import (
	"yildizli-agac-api/core/database"
	"yildizli-agac-api/core/middleware"
	"yildizli-agac-api/core/realtime"
	"yildizli-agac-api/modules/notification/controller"
	"yildizli-agac-api/modules/notification/repository"
	"yildizli-agac-api/modules/notification/router"
	"yildizli-agac-api/modules/notification/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, db database.Database, publisher realtime.Publisher, mw *middleware.Middleware) *service.NotificationService {
	repo := repository.NewNotificationRepository(db)
	svc := service.NewNotificationService(repo, publisher)
	ctrl := controller.NewNotificationController(svc)

	router.NewNotificationRouter(ctrl).Setup(e, mw)

	return svc
}
