package handler

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"app/internal/config"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// 商品画像アップロードのHTTP
type UploadHandler struct {
	cfg config.Config
}

// DI
func NewUploadHandler(cfg config.Config) *UploadHandler {
	return &UploadHandler{cfg: cfg}
}

func (h *UploadHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/upload", h.uploadImage)
}

func (h *UploadHandler) uploadImage(c echo.Context) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "image file is required"})
	}

	// 拡張子の簡易チェック
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "only .jpg, .jpeg, and .png files are allowed"})
	}

	src, err := file.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not read file"})
	}
	defer src.Close()

	if err := os.MkdirAll(h.cfg.UploadDir, 0o755); err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not save file"})
	}

	// 衝突しないファイル名にする
	filename := uuid.NewString() + ext
	destination := filepath.Join(h.cfg.UploadDir, filename)

	dst, err := os.Create(destination)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not save file"})
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not save file"})
	}

	return okJSON(c, http.StatusCreated, "file uploaded successfully", map[string]string{
		"url": "/uploads/" + filename,
	})
}
