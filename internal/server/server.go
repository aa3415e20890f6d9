package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"vidbrief/internal/config"
	"vidbrief/internal/logger"
	"vidbrief/internal/registry"
	"vidbrief/internal/storage"
	"vidbrief/internal/task"
)

// New wires the HTTP surface: submission, notification channel, and
// document retrieval, plus a health probe.
func New(
	cfg *config.Config,
	reg *registry.Registry,
	coordinator task.Coordinator,
	store *storage.Store,
	log logger.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{cfg.Server.AllowedOrigin},
		AllowCredentials: true,
	}))

	videoHandler := NewVideoHandler(coordinator, store, log)
	wsHandler := NewWSHandler(reg, log, cfg.Server.AllowedOrigin, cfg.Server.KeepaliveInterval)

	e.POST("/process_video", videoHandler.Process)
	e.GET("/download/:task_id", videoHandler.Download)
	e.GET("/ws/:task_id", wsHandler.Connect)
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	return e
}
