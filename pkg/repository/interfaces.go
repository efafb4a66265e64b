// Package repository holds the persistence interfaces the services depend
// on, plus their MongoDB implementations. Counts from the driver (matched,
// modified, deleted) are surfaced so the services can verify the
// campground/review cross-reference invariants after every write.
package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"campwild-api-io/api/pkg/models"
	"campwild-api-io/api/pkg/util"
)

// Store is the transaction boundary for multi-document sequences.
type Store interface {
	// WithTransaction runs fn inside a multi-document transaction when the
	// deployment supports one, and falls back to plain sequential
	// execution otherwise. fn must be safe to run in either mode.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// CampgroundFieldsUpdate carries the mutable campground fields for an
// update. Author and reviews are never part of it. Geometry is set only
// when the location changed and was re-geocoded.
type CampgroundFieldsUpdate struct {
	Title       string
	Slug        string
	Price       float64
	Description string
	Location    string
	Geometry    *models.Geometry
}

type CampgroundRepository interface {
	Insert(ctx context.Context, campground *models.Campground) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Campground, error)
	FindDetailByID(ctx context.Context, id primitive.ObjectID) (*models.CampgroundDetail, error)
	FindDetailBySlug(ctx context.Context, slug string) (*models.CampgroundDetail, error)
	List(ctx context.Context, args util.PaginationArgs) ([]models.Campground, int64, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, update CampgroundFieldsUpdate) (matched int64, err error)
	PullImages(ctx context.Context, id primitive.ObjectID, publicIDs []string) (modified int64, err error)
	PushImages(ctx context.Context, id primitive.ObjectID, images []models.Image) (modified int64, err error)
	PushReview(ctx context.Context, id, reviewID primitive.ObjectID) (matched, modified int64, err error)
	PullReview(ctx context.Context, id, reviewID primitive.ObjectID) (matched, modified int64, err error)
	Delete(ctx context.Context, id primitive.ObjectID) (deleted int64, err error)
}

type ReviewRepository interface {
	Insert(ctx context.Context, review *models.Review) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) (deleted int64, err error)
	DeleteByIDs(ctx context.Context, ids []primitive.ObjectID) (deleted int64, err error)
	ListByCampground(ctx context.Context, campgroundID primitive.ObjectID, args util.PaginationArgs) ([]models.Review, int64, error)
}

type UserRepository interface {
	Insert(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	TouchLastLogin(ctx context.Context, id primitive.ObjectID) error
}
