package gateway

import (
	"context"
	"fmt"
	"net/http"

	"boxoffice/entity"
)

type ReviewsClient struct {
	backend *Backend
}

func NewReviewsClient(backend *Backend) ReviewsClient {
	return ReviewsClient{backend: backend}
}

func (c ReviewsClient) ListForEvent(ctx context.Context, eventID string) ([]entity.Review, error) {
	var reviews []entity.Review
	if err := c.backend.do(ctx, "GET", "/api/events/"+eventID+"/reviews", nil, &reviews); err != nil {
		return nil, fmt.Errorf("could not fetch reviews for event %s: %w", eventID, err)
	}
	return reviews, nil
}

func (c ReviewsClient) Get(ctx context.Context, reviewID string) (entity.Review, error) {
	var review entity.Review
	if err := c.backend.do(ctx, "GET", "/api/reviews/"+reviewID, nil, &review); err != nil {
		return entity.Review{}, fmt.Errorf("could not fetch review %s: %w", reviewID, err)
	}
	return review, nil
}

func (c ReviewsClient) Create(ctx context.Context, review entity.Review) (entity.Review, error) {
	var created entity.Review
	if err := c.backend.do(ctx, "POST", "/api/events/"+review.EventID+"/reviews", review, &created, http.StatusCreated); err != nil {
		return entity.Review{}, fmt.Errorf("could not create review: %w", err)
	}
	return created, nil
}

func (c ReviewsClient) Update(ctx context.Context, review entity.Review) error {
	if err := c.backend.do(ctx, "PUT", "/api/reviews/"+review.ID, review, nil); err != nil {
		return fmt.Errorf("could not update review %s: %w", review.ID, err)
	}
	return nil
}

func (c ReviewsClient) Delete(ctx context.Context, reviewID string) error {
	if err := c.backend.do(ctx, "DELETE", "/api/reviews/"+reviewID, nil, nil, http.StatusOK, http.StatusNoContent); err != nil {
		return fmt.Errorf("could not delete review %s: %w", reviewID, err)
	}
	return nil
}

func (c ReviewsClient) ListComments(ctx context.Context, reviewID string) ([]entity.ReviewComment, error) {
	var comments []entity.ReviewComment
	if err := c.backend.do(ctx, "GET", "/api/reviews/"+reviewID+"/comments", nil, &comments); err != nil {
		return nil, fmt.Errorf("could not fetch comments for review %s: %w", reviewID, err)
	}
	return comments, nil
}

func (c ReviewsClient) AddComment(ctx context.Context, comment entity.ReviewComment) (entity.ReviewComment, error) {
	var created entity.ReviewComment
	if err := c.backend.do(ctx, "POST", "/api/reviews/"+comment.ReviewID+"/comments", comment, &created, http.StatusCreated); err != nil {
		return entity.ReviewComment{}, fmt.Errorf("could not add comment: %w", err)
	}
	return created, nil
}
