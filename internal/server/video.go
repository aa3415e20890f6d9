package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"vidbrief/internal/document"
	"vidbrief/internal/logger"
	"vidbrief/internal/pipeline"
	"vidbrief/internal/storage"
	"vidbrief/internal/task"
)

// VideoHandler serves submission and document retrieval.
type VideoHandler struct {
	coordinator task.Coordinator
	store       *storage.Store
	logger      logger.Logger
}

// NewVideoHandler creates a new VideoHandler.
func NewVideoHandler(coordinator task.Coordinator, store *storage.Store, log logger.Logger) *VideoHandler {
	return &VideoHandler{
		coordinator: coordinator,
		store:       store,
		logger:      log,
	}
}

// Process handles video submission.
// POST /process_video (multipart: file, task_id)
//
// The response is never partial: either the complete summary with a
// document reference, or a structured error.
func (h *VideoHandler) Process(c echo.Context) error {
	ctx := c.Request().Context()

	taskID := c.FormValue("task_id")
	if taskID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "task_id is required"})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "file is required"})
	}

	f, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to open upload"})
	}
	defer f.Close()

	result, err := h.coordinator.Process(ctx, taskID, task.Upload{
		Filename: fileHeader.Filename,
		Content:  f,
	})
	if err != nil {
		if errors.Is(err, task.ErrNoViewer) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "No active notification channel for this task."})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, result)
}

// Download serves the rendered summary document.
// GET /download/:task_id
//
// Rendering is deferred past the submission response, so not-found here
// is the normal answer until the final progress message has been seen.
func (h *VideoHandler) Download(c echo.Context) error {
	taskID := c.Param("task_id")
	name := pipeline.DocumentName(taskID)

	if !h.store.Exists(name) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Document not found."})
	}

	f, err := h.store.Open(name)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	defer f.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="summary_%s.docx"`, taskID))
	return c.Stream(http.StatusOK, document.ContentType, f)
}
