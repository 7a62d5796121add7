package server

import (
	"app/internal/config"
	"app/internal/handler"
	"app/internal/repository"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	appmw "app/internal/middleware"
)

// Handlersはルーティングに必要な一式
type Handlers struct {
	Auth         *handler.AuthHandler
	Profile      *handler.ProfileHandler
	Product      *handler.ProductHandler
	Cart         *handler.CartHandler
	Order        *handler.OrderHandler
	Upload       *handler.UploadHandler
	AdminProduct *handler.AdminProductHandler
	AdminUser    *handler.AdminUserHandler
	AdminOrder   *handler.AdminOrderHandler
	AdminMetrics *handler.AdminMetricsHandler
	AdminAudit   *handler.AdminAuditLogHandler
}

// Newはechoを組み立てて返す。起動はmain側。
func New(cfg config.Config, h Handlers, userRepo repository.UserRepository, redisClient *redis.Client) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(appmw.Metrics())

	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{cfg.FEURL},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	registerRoutes(e, cfg, h, userRepo, redisClient)

	return e
}
