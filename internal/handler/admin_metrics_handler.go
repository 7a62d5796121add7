package handler

import (
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /admin/metrics のHTTP
type AdminMetricsHandler struct {
	uc *usecase.AdminMetricsUsecase
}

// DI
func NewAdminMetricsHandler(uc *usecase.AdminMetricsUsecase) *AdminMetricsHandler {
	return &AdminMetricsHandler{uc: uc}
}

func (h *AdminMetricsHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/metrics", h.getMetrics)
}

func (h *AdminMetricsHandler) getMetrics(c echo.Context) error {
	out, err := h.uc.Get(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return okJSON(c, http.StatusOK, "", out)
}
