package services

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"campwild-api-io/api/pkg/apperr"
	"campwild-api-io/api/pkg/models"
	"campwild-api-io/api/pkg/repository"
	"campwild-api-io/api/pkg/util"
)

type ReviewService interface {
	Create(ctx context.Context, authorID primitive.ObjectID, authorName string, campgroundID primitive.ObjectID, req models.ReviewRequest) (*models.Review, error)
	Delete(ctx context.Context, principal primitive.ObjectID, campgroundID, reviewID primitive.ObjectID) error
	ListByCampground(ctx context.Context, campgroundID primitive.ObjectID, args util.PaginationArgs) ([]models.Review, int64, error)
}

type reviewService struct {
	store       repository.Store
	campgrounds repository.CampgroundRepository
	reviews     repository.ReviewRepository
	validate    *validator.Validate
}

func NewReviewService(store repository.Store, campgrounds repository.CampgroundRepository, reviews repository.ReviewRepository, validate *validator.Validate) ReviewService {
	return &reviewService{
		store:       store,
		campgrounds: campgrounds,
		reviews:     reviews,
		validate:    validate,
	}
}

// Create inserts the review document and appends its id to the campground's
// reviews array. The two writes run under the store's transaction boundary;
// if the campground turns out not to exist the already-inserted review is
// deleted again so no orphan survives the operation.
func (rs *reviewService) Create(ctx context.Context, authorID primitive.ObjectID, authorName string, campgroundID primitive.ObjectID, req models.ReviewRequest) (*models.Review, error) {
	if err := rs.validate.Struct(&req); err != nil {
		return nil, apperr.FromValidation(err)
	}

	review := &models.Review{
		ID:           primitive.NewObjectID(),
		CampgroundID: campgroundID,
		Body:         req.Body,
		Rating:       req.Rating,
		AuthorID:     authorID,
		AuthorName:   authorName,
		CreatedAt:    time.Now(),
	}

	err := rs.store.WithTransaction(ctx, func(ctx context.Context) error {
		if err := rs.reviews.Insert(ctx, review); err != nil {
			return apperr.Wrap(apperr.Internal, err, "failed to create review")
		}

		matched, modified, err := rs.campgrounds.PushReview(ctx, campgroundID, review.ID)
		if err != nil {
			return apperr.Wrap(apperr.Internal, err, "failed to attach review")
		}
		if matched == 0 {
			// The review we just inserted is an orphan; remove it before
			// reporting the failure.
			if _, delErr := rs.reviews.DeleteByID(ctx, review.ID); delErr != nil {
				util.LogError("orphan review %s could not be compensated: %v", review.ID.Hex(), delErr)
			}
			return apperr.New(apperr.NotFound, "campground not found")
		}
		if modified != 1 {
			return apperr.New(apperr.CascadeIntegrity, "review reference was not recorded")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return review, nil
}

// Delete pulls the review id from the campground and deletes the review
// document. Both counts must be exactly one; anything else is a partial
// deletion and is reported as such instead of being swallowed.
func (rs *reviewService) Delete(ctx context.Context, principal primitive.ObjectID, campgroundID, reviewID primitive.ObjectID) error {
	return rs.store.WithTransaction(ctx, func(ctx context.Context) error {
		review, err := rs.reviews.FindByID(ctx, reviewID)
		if err != nil {
			if repository.IsNotFound(err) {
				return apperr.New(apperr.NotFound, "review not found")
			}
			return apperr.Wrap(apperr.Internal, err, "failed to load review")
		}
		if review.CampgroundID != campgroundID {
			return apperr.New(apperr.NotFound, "review does not belong to this campground")
		}

		// Review author may delete their own review; the campground owner
		// may remove any review on their campground.
		if review.AuthorID != principal {
			campground, err := rs.campgrounds.FindByID(ctx, campgroundID)
			if err != nil {
				if repository.IsNotFound(err) {
					return apperr.New(apperr.NotFound, "campground not found")
				}
				return apperr.Wrap(apperr.Internal, err, "failed to load campground")
			}
			if campground.Author != principal {
				return apperr.New(apperr.Forbidden, "you do not have permission to delete this review")
			}
		}

		_, pulled, err := rs.campgrounds.PullReview(ctx, campgroundID, reviewID)
		if err != nil {
			return apperr.Wrap(apperr.Internal, err, "failed to detach review")
		}

		deleted, err := rs.reviews.DeleteByID(ctx, reviewID)
		if err != nil {
			return apperr.Wrap(apperr.Internal, err, "failed to delete review")
		}

		if pulled != 1 || deleted != 1 {
			util.LogError("partial review deletion: campground=%s review=%s pulled=%d deleted=%d",
				campgroundID.Hex(), reviewID.Hex(), pulled, deleted)
			return apperr.New(apperr.CascadeIntegrity, "review deletion left inconsistent state")
		}
		return nil
	})
}

func (rs *reviewService) ListByCampground(ctx context.Context, campgroundID primitive.ObjectID, args util.PaginationArgs) ([]models.Review, int64, error) {
	reviews, count, err := rs.reviews.ListByCampground(ctx, campgroundID, args)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.Internal, err, "failed to list reviews")
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	return reviews, count, nil
}
