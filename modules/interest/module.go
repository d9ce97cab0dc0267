package interest

import (
	"yildizli-agac-api/core/cache"
	"yildizli-agac-api/core/config"
	"yildizli-agac-api/modules/interest/controller"
	"yildizli-agac-api/modules/interest/router"
	"yildizli-agac-api/modules/interest/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, source service.CatalogSource, c cache.Cache) {
	cfg := config.Get().Upstream
	svc := service.NewInterestService(source, c, service.Settings{
		FetchTimeout: cfg.InterestsTimeout,
		CacheTTL:     cfg.InterestCacheTTL,
	})
	ctrl := controller.NewInterestController(svc)

	router.NewInterestRouter(ctrl).Setup(e)
}
