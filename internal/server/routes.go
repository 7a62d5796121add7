package server

import (
	"net/http"

	"app/internal/config"
	"app/internal/repository"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	appmw "app/internal/middleware"
)

func registerRoutes(e *echo.Echo, cfg config.Config, h Handlers, userRepo repository.UserRepository, redisClient *redis.Client) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	//アップロード済み画像の配信
	e.Static("/uploads", cfg.UploadDir)

	// /auth（未認証、レート制限あり）
	h.Auth.RegisterRoutes(e, redisClient)

	// /user（要ログイン）
	user := e.Group("/user")
	user.Use(appmw.AuthJWT(cfg))
	user.Use(appmw.TokenVersionGuard(userRepo))

	h.Profile.RegisterRoutes(user)
	h.Product.RegisterRoutes(user)
	h.Cart.RegisterRoutes(user)
	h.Order.RegisterRoutes(user)
	h.Upload.RegisterRoutes(user)

	// /admin（要ログイン＋adminロール）
	admin := e.Group("/admin")
	admin.Use(appmw.AuthJWT(cfg))
	admin.Use(appmw.TokenVersionGuard(userRepo))
	admin.Use(appmw.AdminRoleGuard())

	h.AdminProduct.RegisterRoutes(admin)
	h.AdminUser.RegisterRoutes(admin)
	h.AdminOrder.RegisterRoutes(admin)
	h.AdminMetrics.RegisterRoutes(admin)
	h.AdminAudit.RegisterRoutes(admin)
}
