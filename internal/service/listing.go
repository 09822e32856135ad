package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"travelapp/internal/domain"
	internalRedis "travelapp/internal/redis"
	"travelapp/internal/repository"
)

// ListingService handles listing CRUD with a read-through cache.
type ListingService struct {
	listingRepo repository.ListingRepository
	cache       *internalRedis.CacheStore
}

// NewListingService creates a new ListingService.
func NewListingService(listingRepo repository.ListingRepository, cache *internalRedis.CacheStore) *ListingService {
	return &ListingService{listingRepo: listingRepo, cache: cache}
}

// CreateListingRequest contains the parameters for creating a listing.
type CreateListingRequest struct {
	Title         string
	Description   string
	PricePerNight string
	AvailableFrom time.Time
	AvailableTo   time.Time
}

// CreateListing creates a new listing.
func (s *ListingService) CreateListing(ctx context.Context, req CreateListingRequest) (*domain.Listing, error) {
	if req.Title == "" {
		return nil, ErrInvalidListingTitle
	}
	if !validAmount(req.PricePerNight) {
		return nil, ErrInvalidAmount
	}

	now := time.Now().UTC()
	listing := &domain.Listing{
		ID:            uuid.New().String(),
		Title:         req.Title,
		Description:   req.Description,
		PricePerNight: req.PricePerNight,
		AvailableFrom: req.AvailableFrom,
		AvailableTo:   req.AvailableTo,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.listingRepo.Create(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// GetListing retrieves a listing, serving from cache when possible.
// Cache errors degrade to a repository read.
func (s *ListingService) GetListing(ctx context.Context, id string) (*domain.Listing, error) {
	if id == "" {
		return nil, ErrInvalidListingID
	}

	if s.cache != nil {
		cached, err := s.cache.GetListing(ctx, id)
		if err != nil {
			log.Printf("listing %s: cache read failed: %v", id, err)
		} else if cached != nil {
			return cachedToListing(cached), nil
		}
	}

	listing, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetListing(ctx, listingToCached(listing)); err != nil {
			log.Printf("listing %s: cache write failed: %v", id, err)
		}
	}
	return listing, nil
}

// ListListings retrieves all listings.
func (s *ListingService) ListListings(ctx context.Context) ([]*domain.Listing, error) {
	return s.listingRepo.GetAll(ctx)
}

// UpdateListingRequest contains the parameters for updating a listing.
type UpdateListingRequest struct {
	Title         string
	Description   string
	PricePerNight string
	AvailableFrom time.Time
	AvailableTo   time.Time
}

// UpdateListing updates an existing listing and invalidates its cache entry.
func (s *ListingService) UpdateListing(ctx context.Context, id string, req UpdateListingRequest) (*domain.Listing, error) {
	if id == "" {
		return nil, ErrInvalidListingID
	}
	if req.Title == "" {
		return nil, ErrInvalidListingTitle
	}
	if !validAmount(req.PricePerNight) {
		return nil, ErrInvalidAmount
	}

	listing, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	listing.Title = req.Title
	listing.Description = req.Description
	listing.PricePerNight = req.PricePerNight
	listing.AvailableFrom = req.AvailableFrom
	listing.AvailableTo = req.AvailableTo
	listing.UpdatedAt = time.Now().UTC()

	if err := s.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return listing, nil
}

// DeleteListing removes a listing and invalidates its cache entry.
func (s *ListingService) DeleteListing(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidListingID
	}
	if err := s.listingRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *ListingService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateListing(ctx, id); err != nil {
		log.Printf("listing %s: cache invalidation failed: %v", id, err)
	}
}

func listingToCached(listing *domain.Listing) *internalRedis.CachedListing {
	return &internalRedis.CachedListing{
		ID:            listing.ID,
		Title:         listing.Title,
		Description:   listing.Description,
		PricePerNight: listing.PricePerNight,
		AvailableFrom: listing.AvailableFrom.Format(time.RFC3339),
		AvailableTo:   listing.AvailableTo.Format(time.RFC3339),
	}
}

func cachedToListing(cached *internalRedis.CachedListing) *domain.Listing {
	from, _ := time.Parse(time.RFC3339, cached.AvailableFrom)
	to, _ := time.Parse(time.RFC3339, cached.AvailableTo)
	return &domain.Listing{
		ID:            cached.ID,
		Title:         cached.Title,
		Description:   cached.Description,
		PricePerNight: cached.PricePerNight,
		AvailableFrom: from,
		AvailableTo:   to,
	}
}
