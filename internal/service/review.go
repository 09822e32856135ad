package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"travelapp/internal/domain"
	"travelapp/internal/repository"
)

// ReviewService handles reviews with ownership checks on mutation.
type ReviewService struct {
	reviewRepo  repository.ReviewRepository
	listingRepo repository.ListingRepository
}

// NewReviewService creates a new ReviewService.
func NewReviewService(reviewRepo repository.ReviewRepository, listingRepo repository.ListingRepository) *ReviewService {
	return &ReviewService{reviewRepo: reviewRepo, listingRepo: listingRepo}
}

// CreateReviewRequest contains the parameters for creating a review.
type CreateReviewRequest struct {
	UserID    string
	ListingID string
	Rating    int
	Comment   string
}

// CreateReview creates a review for an existing listing.
func (s *ReviewService) CreateReview(ctx context.Context, req CreateReviewRequest) (*domain.Review, error) {
	if req.ListingID == "" {
		return nil, ErrInvalidListingID
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	if _, err := s.listingRepo.GetByID(ctx, req.ListingID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	review := &domain.Review{
		ID:        uuid.New().String(),
		ListingID: req.ListingID,
		UserID:    req.UserID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// ListReviews retrieves all reviews for a listing.
func (s *ReviewService) ListReviews(ctx context.Context, listingID string) ([]*domain.Review, error) {
	if listingID == "" {
		return nil, ErrInvalidListingID
	}
	return s.reviewRepo.GetByListing(ctx, listingID)
}

// UpdateReview updates the caller's own review.
func (s *ReviewService) UpdateReview(ctx context.Context, userID, reviewID string, rating int, comment string) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.UserID != userID {
		return nil, ErrNotReviewOwner
	}

	review.Rating = rating
	review.Comment = comment
	review.UpdatedAt = time.Now().UTC()

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// DeleteReview removes the caller's own review.
func (s *ReviewService) DeleteReview(ctx context.Context, userID, reviewID string) error {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.UserID != userID {
		return ErrNotReviewOwner
	}
	return s.reviewRepo.Delete(ctx, reviewID)
}
