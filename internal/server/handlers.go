package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/appointly/scheduler-assistant/internal/common"
	"github.com/appointly/scheduler-assistant/internal/extract"
)

// Extractor is the pipeline surface the transport depends on.
type Extractor interface {
	Run(ctx context.Context, in extract.RawInput) (extract.ExtractionResult, error)
}

type Handler struct {
	pipeline Extractor
	logger   *slog.Logger
}

func NewHandler(pipeline Extractor, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{pipeline: pipeline, logger: logger}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Parse accepts a multipart form with an optional "input_text" field and an
// optional "file" image part, runs the extraction pipeline, and relays its
// result verbatim. Precondition violations are client errors and never reach
// the model; backend failures map to 502.
func (h *Handler) Parse(c *gin.Context) {
	text := c.PostForm("input_text")

	var imageBytes []byte
	var mediaType string
	if fh, err := c.FormFile("file"); err == nil && fh != nil {
		ct := fh.Header.Get("Content-Type")
		if !strings.HasPrefix(ct, "image/") {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid file type. Please upload an image."})
			return
		}
		f, err := fh.Open()
		if err != nil {
			h.logger.Error("parse.file_open_error", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to read the uploaded file."})
			return
		}
		defer func() {
			if cerr := f.Close(); cerr != nil {
				h.logger.Warn("parse.file_close_error", "error", cerr)
			}
		}()
		if imageBytes, err = io.ReadAll(f); err != nil {
			h.logger.Error("parse.file_read_error", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to read the uploaded file."})
			return
		}
		mediaType = ct
	}

	in, err := extract.NewRawInput(text, imageBytes, mediaType)
	if err != nil {
		if errors.Is(err, common.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Please provide either text or an image."})
			return
		}
		h.logger.Error("parse.normalize_error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "An error occurred."})
		return
	}

	res, err := h.pipeline.Run(c.Request.Context(), in)
	if err != nil {
		// Backend unreachable and backend non-success are both surfaced as a
		// generic upstream failure; nothing to recover here.
		if errors.Is(err, common.ErrBackendUnavailable) || errors.Is(err, common.ErrBackendError) {
			c.JSON(http.StatusBadGateway, gin.H{"detail": "The extraction backend could not be reached."})
			return
		}
		h.logger.Error("parse.pipeline_error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "An error occurred."})
		return
	}

	c.JSON(http.StatusOK, res)
}
