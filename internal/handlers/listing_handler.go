package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apierrors "suumosync/internal/errors"
	"suumosync/internal/middleware"
	"suumosync/internal/models"
	"suumosync/internal/services"
)

// ListingHandler handles listing scrape HTTP requests.
type ListingHandler struct {
	service services.ListingService
}

// NewListingHandler creates a new ListingHandler instance.
func NewListingHandler(service services.ListingService) *ListingHandler {
	return &ListingHandler{
		service: service,
	}
}

// ScrapeRequest represents the body of the scrape endpoint.
type ScrapeRequest struct {
	URL    string `json:"url" binding:"required,url"`
	Upload bool   `json:"upload"`
}

// ScrapeResponse represents the response for the scrape endpoint. The
// record is always the preview; RecordID is set only after an upload.
type ScrapeResponse struct {
	Record   *models.ListingRecord `json:"record"`
	Uploaded bool                  `json:"uploaded"`
	RecordID string                `json:"record_id,omitempty"`
}

// Scrape handles POST /api/v1/listings.
// It scrapes the given listing URL into a preview record and, when
// upload is set, creates that record in the main table.
func (h *ListingHandler) Scrape(c *gin.Context) {
	log := middleware.GetLogger(c)

	// Bind and validate the request body
	var req ScrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Check if it's a validation error
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		// Generic bad request for other binding errors
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}

	if log != nil {
		log.Info("Processing scrape request", map[string]interface{}{
			"url":    req.URL,
			"upload": req.Upload,
		})
	}

	// Call service layer
	record, err := h.service.Preview(c.Request.Context(), req.URL)
	if err != nil {
		// Handle service-level errors
		if errors.Is(err, services.ErrFetchFailed) {
			apierrors.UpstreamError(c, "Failed to fetch the listing page", err)
			return
		}
		if errors.Is(err, services.ErrStoreFailed) {
			apierrors.UpstreamError(c, "Record store lookup failed", err)
			return
		}
		// Unexpected errors
		apierrors.InternalServerError(c, "Failed to scrape listing", err)
		return
	}

	response := ScrapeResponse{
		Record: record,
	}

	// Optionally create the record in the main table
	if req.Upload {
		recordID, err := h.service.Submit(c.Request.Context(), record)
		if err != nil {
			apierrors.UpstreamError(c, "Failed to create the listing record", err)
			return
		}
		response.Uploaded = true
		response.RecordID = recordID

		if log != nil {
			log.Info("Listing uploaded", map[string]interface{}{
				"url":       req.URL,
				"record_id": recordID,
			})
		}
	}

	c.JSON(http.StatusOK, response)
}
