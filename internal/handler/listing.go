package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"travelapp/internal/domain"
	"travelapp/internal/service"
)

// ListingHandler handles HTTP requests for listings.
type ListingHandler struct {
	listingService *service.ListingService
}

// NewListingHandler creates a new ListingHandler.
func NewListingHandler(listingService *service.ListingService) *ListingHandler {
	return &ListingHandler{listingService: listingService}
}

const dateLayout = "2006-01-02"

// ListingRequest is the HTTP request body for creating or updating a listing.
type ListingRequest struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	PricePerNight string `json:"price_per_night"`
	AvailableFrom string `json:"available_from"`
	AvailableTo   string `json:"available_to"`
}

// ListingResponse is the HTTP representation of a listing.
type ListingResponse struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	PricePerNight string `json:"price_per_night"`
	AvailableFrom string `json:"available_from"`
	AvailableTo   string `json:"available_to"`
}

// CreateListing handles POST /v1/listings
func (h *ListingHandler) CreateListing(c *gin.Context) {
	req, ok := bindListingRequest(c)
	if !ok {
		return
	}

	from, to, ok := parseDateRange(c, req.AvailableFrom, req.AvailableTo)
	if !ok {
		return
	}

	listing, err := h.listingService.CreateListing(c.Request.Context(), service.CreateListingRequest{
		Title:         req.Title,
		Description:   req.Description,
		PricePerNight: req.PricePerNight,
		AvailableFrom: from,
		AvailableTo:   to,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusCreated, toListingResponse(listing))
}

// GetListing handles GET /v1/listings/:id
func (h *ListingHandler) GetListing(c *gin.Context) {
	listing, err := h.listingService.GetListing(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toListingResponse(listing))
}

// ListListings handles GET /v1/listings
func (h *ListingHandler) ListListings(c *gin.Context) {
	listings, err := h.listingService.ListListings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]ListingResponse, 0, len(listings))
	for _, listing := range listings {
		responses = append(responses, toListingResponse(listing))
	}
	respondJSON(c, http.StatusOK, responses)
}

// UpdateListing handles PUT /v1/listings/:id
func (h *ListingHandler) UpdateListing(c *gin.Context) {
	req, ok := bindListingRequest(c)
	if !ok {
		return
	}

	from, to, ok := parseDateRange(c, req.AvailableFrom, req.AvailableTo)
	if !ok {
		return
	}

	listing, err := h.listingService.UpdateListing(c.Request.Context(), c.Param("id"), service.UpdateListingRequest{
		Title:         req.Title,
		Description:   req.Description,
		PricePerNight: req.PricePerNight,
		AvailableFrom: from,
		AvailableTo:   to,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toListingResponse(listing))
}

// DeleteListing handles DELETE /v1/listings/:id
func (h *ListingHandler) DeleteListing(c *gin.Context) {
	if err := h.listingService.DeleteListing(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func bindListingRequest(c *gin.Context) (ListingRequest, bool) {
	var req ListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return req, false
	}
	return req, true
}

func parseDateRange(c *gin.Context, fromStr, toStr string) (time.Time, time.Time, bool) {
	from, err := time.Parse(dateLayout, fromStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "dates must use YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}
	to, err := time.Parse(dateLayout, toStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "dates must use YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

func toListingResponse(listing *domain.Listing) ListingResponse {
	return ListingResponse{
		ID:            listing.ID,
		Title:         listing.Title,
		Description:   listing.Description,
		PricePerNight: listing.PricePerNight,
		AvailableFrom: listing.AvailableFrom.Format(dateLayout),
		AvailableTo:   listing.AvailableTo.Format(dateLayout),
	}
}
