package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/Sharma12321/SreeHari-Portfolio/pkg/logging"
	"github.com/Sharma12321/SreeHari-Portfolio/pkg/models"
	"github.com/Sharma12321/SreeHari-Portfolio/pkg/services"
)

// ReadinessChecker reports whether a backing dependency can serve requests
type ReadinessChecker interface {
	Ready(ctx context.Context) error
}

// Handlers contains all HTTP handlers for the API
type Handlers struct {
	submissionService services.ContactSubmissionService
	assetService      *services.AssetService
	readiness         ReadinessChecker
	logger            zerolog.Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	submissionService services.ContactSubmissionService,
	assetService *services.AssetService,
	readiness ReadinessChecker,
	logger zerolog.Logger,
) *Handlers {
	return &Handlers{
		submissionService: submissionService,
		assetService:      assetService,
		readiness:         readiness,
		logger:            logging.Component(logger, "api"),
	}
}

// RegisterRoutes mounts every endpoint on router. gatherer backs /metrics.
func (h *Handlers) RegisterRoutes(router gin.IRouter, gatherer prometheus.Gatherer) {
	router.POST("/submit", h.HandleSubmit)

	router.POST("/upload-photo", h.UploadPhoto)
	router.GET("/get-photo", h.GetPhoto)
	router.POST("/upload-resume", h.UploadResume)
	router.GET("/get-resume", h.GetResume)

	router.GET("/health", h.HealthCheck)
	router.GET("/ready", h.Ready)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}

// HealthCheck handler for monitoring
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Ready reports 503 until the database answers
func (h *Handlers) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.readiness.Ready(ctx); err != nil {
		h.logger.Warn().Err(err).Msg("Readiness check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// HandleSubmit processes a contact form submission. The response is sent only
// after the notification was delivered or failed.
func (h *Handlers) HandleSubmit(c *gin.Context) {
	var sub models.ContactSubmission
	if !h.bindJSON(c, &sub) {
		return
	}

	err := h.submissionService.Submit(c.Request.Context(), sub)

	var validationErr *services.ValidationError
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "Missing required fields",
			"fields": validationErr.Fields,
		})
	default:
		h.logger.Error().Err(err).Msg("Error processing contact submission")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"details": err.Error(),
		})
	}
}

// UploadPhoto stores a new profile photo data URL
func (h *Handlers) UploadPhoto(c *gin.Context) {
	var body models.PhotoUpload
	if !h.bindJSON(c, &body) {
		return
	}
	h.upload(c, models.AssetPhoto, body.Photo)
}

// UploadResume stores a new resume data URL
func (h *Handlers) UploadResume(c *gin.Context) {
	var body models.ResumeUpload
	if !h.bindJSON(c, &body) {
		return
	}
	h.upload(c, models.AssetResume, body.Resume)
}

func (h *Handlers) upload(c *gin.Context, kind models.AssetKind, data string) {
	err := h.assetService.Upload(c.Request.Context(), kind, data)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true})
	case errors.Is(err, services.ErrEmptyAsset):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
	default:
		h.logger.Error().Err(err).Str("kind", string(kind)).Msg("Upload failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
	}
}

// GetPhoto returns the latest photo, or null when none was uploaded
func (h *Handlers) GetPhoto(c *gin.Context) {
	photo, ok, err := h.assetService.LatestPhoto(c.Request.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Error fetching photo")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch photo"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"photo": nullable(photo, ok)})
}

// GetResume returns the latest resume as a PDF data URL, or null
func (h *Handlers) GetResume(c *gin.Context) {
	url, ok, err := h.assetService.LatestResumeURL(c.Request.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Error fetching resume")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch resume"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"resumeUrl": nullable(url, ok)})
}

// bindJSON decodes the body into dst and writes the 4xx response on failure
func (h *Handlers) bindJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body too large"})
		return false
	}

	h.logger.Debug().Err(err).Str("path", c.FullPath()).Msg("Error parsing JSON")
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format"})
	return false
}

func nullable(value string, ok bool) any {
	if !ok {
		return nil
	}
	return value
}
