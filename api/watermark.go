package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Domenick1991/spaceflights/internal/domain"
	"github.com/Domenick1991/spaceflights/internal/watermark"
	"github.com/gin-gonic/gin"
)

type WatermarkHandler struct {
	maxImageBytes  int64
	maxImagePixels int64
}

func NewWatermarkHandler(maxImageBytes, maxImagePixels int64) *WatermarkHandler {
	return &WatermarkHandler{maxImageBytes: maxImageBytes, maxImagePixels: maxImagePixels}
}

func (h *WatermarkHandler) Register(router *gin.RouterGroup) {
	router.POST("/lunar-watermark/", h.stamp)
}

// stamp returns the PNG itself when the client accepts image/png, otherwise an acknowledgement.
func (h *WatermarkHandler) stamp(c *gin.Context) {
	if h.maxImageBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxImageBytes)
	}

	header, fileErr := c.FormFile("fileimage")
	message, hasMessage := c.GetPostForm("message")
	if fileErr != nil || !hasMessage {
		var tooLarge *http.MaxBytesError
		if errors.As(fileErr, &tooLarge) {
			respondError(c, http.StatusRequestEntityTooLarge, "Uploaded file is too large", nil)
			return
		}
		respondError(c, http.StatusBadRequest, "Missing file or message", nil)
		return
	}
	if err := watermark.ValidateMessage(message); err != nil {
		respondError(c, http.StatusBadRequest, "Message must be 10-20 characters", nil)
		return
	}

	f, err := header.Open()
	if err != nil {
		writeError(c, err)
		return
	}
	defer f.Close()

	out, err := watermark.Render(f, message, h.maxImagePixels)
	if err != nil {
		if errors.Is(err, watermark.ErrImageTooLarge) {
			respondError(c, http.StatusBadRequest, "Image dimensions are too large", nil)
			return
		}
		if errors.Is(err, domain.ErrValidation) {
			respondError(c, http.StatusBadRequest, "Uploaded file is not a valid image", nil)
			return
		}
		writeError(c, err)
		return
	}

	if strings.Contains(c.GetHeader("Accept"), "image/png") {
		c.Data(http.StatusCreated, "image/png", out)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Watermark added successfully"})
}
